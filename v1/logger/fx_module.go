package logger

import (
	"context"

	"go.uber.org/fx"
)

// FXModule defines the Fx module for the logger package.
//
// The module:
//  1. Provides the NewLoggerClient factory function to the dependency
//     injection container, making the logger available to other components
//  2. Invokes RegisterLoggerLifecycle to flush buffered logs on shutdown
//
// Usage:
//
//	app := fx.New(
//	    logger.FXModule,
//	    fx.Provide(logger.NewConfig),
//	    // other modules...
//	)
//
// A logger.Config must be available in the dependency injection container.
var FXModule = fx.Module("logger",
	fx.Provide(
		NewLoggerClient,
	),
	fx.Invoke(RegisterLoggerLifecycle),
)

// RegisterLoggerLifecycle handles cleanup (sync) of the Zap logger.
// It registers a shutdown hook that flushes any buffered log entries before
// the application terminates.
//
// This function is automatically invoked by the FXModule and does not need
// to be called directly in application code.
func RegisterLoggerLifecycle(lc fx.Lifecycle, client *Logger) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return client.Zap.Sync() // flushes any buffered logs
		},
	})
}
