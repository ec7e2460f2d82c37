package voyage

import (
	"context"

	"go.uber.org/fx"
)

// FXModule wires the voyage client into Fx.
//
// It provides:
//   - *Config  (NewConfig, environment-based)
//   - *Client  (NewClient)
//
// and registers a lifecycle hook that closes the client on application
// shutdown.
//
// Applications that want logging or metrics on the client should provide
// their own *Client via NewClientBuilder instead of using this module's
// NewClient, or decorate the Config before it reaches NewClient.
var FXModule = fx.Module(
	"voyage",

	fx.Provide(
		NewConfig, // -> *Config
		NewClient, // -> *Client
	),

	fx.Invoke(RegisterClientLifecycle),
)

// RegisterClientLifecycle ensures the client's transport resources are
// released on application shutdown.
func RegisterClientLifecycle(lc fx.Lifecycle, client *Client) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return client.Close()
		},
	})
}
