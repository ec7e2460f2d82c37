package tracer

import (
	"context"

	"go.uber.org/fx"
)

// FXModule configures distributed tracing for the application.
//
// The module:
//  1. Provides the tracer client through the NewClient constructor
//  2. Registers shutdown hooks to flush and close tracer resources on
//     application termination
//
// Usage:
//
//	app := fx.New(
//	    tracer.FXModule,
//	    fx.Provide(tracer.NewConfig),
//	    // other modules...
//	)
var FXModule = fx.Module("tracer",
	fx.Provide(
		NewClient,
	),
	fx.Invoke(RegisterTracerLifecycle),
)

// RegisterTracerLifecycle registers shutdown hooks for the tracer with the
// FX lifecycle, ensuring pending spans are flushed to exporters before the
// process exits.
//
// This function is automatically invoked by the FXModule and normally does
// not need to be called directly.
func RegisterTracerLifecycle(lc fx.Lifecycle, tracer *Tracer) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			if tracer.tracer == nil {
				return nil
			}
			return tracer.tracer.Shutdown(ctx)
		},
	})
}
