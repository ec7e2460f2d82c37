package metrics

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/fx"
)

// FXModule wires the metrics system into Fx.
//
// It provides:
//   - Config    (NewConfig)
//   - *Metrics  (NewMetrics)
//
// and registers a lifecycle hook that starts the /metrics server (when one
// is configured) and shuts it down gracefully on application stop.
var FXModule = fx.Module("metrics",
	fx.Provide(
		NewConfig,
		NewMetrics,
	),
	fx.Invoke(RegisterMetricsLifecycle),
)

// RegisterMetricsLifecycle starts and stops the metrics HTTP server with the
// application lifecycle. When no server is configured this is a no-op.
func RegisterMetricsLifecycle(lc fx.Lifecycle, m *Metrics) {
	if m.Server == nil {
		return
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := m.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					// The server failing is not fatal for the client
					// itself; scrapes just stop working.
					return
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return m.Server.Shutdown(ctx)
		},
	})
}
