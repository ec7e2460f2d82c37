// Package logger provides structured logging for the voyage SDK and CLI.
//
// The package wraps Uber's Zap logger behind a small, stable API with log
// levels, structured key-value fields, and optional OpenTelemetry trace
// correlation. It integrates with the fx dependency injection framework for
// easy incorporation into applications.
//
// # Direct Usage (Without FX)
//
// For simple applications or tests, create a logger directly:
//
//	log := logger.NewLoggerClient(logger.Config{
//	    Level:       logger.Info,
//	    ServiceName: "voyage-cli",
//	})
//
//	log.Info("embeddings created", nil, map[string]interface{}{
//	    "model":  "voyage-3-large",
//	    "inputs": 3,
//	})
//
// # FX Module Integration
//
// For applications using Uber's fx, use the FXModule:
//
//	app := fx.New(
//	    logger.FXModule,
//	    fx.Provide(logger.NewConfig),
//	    fx.Invoke(func(log *logger.Logger) {
//	        log.Info("service started", nil, nil)
//	    }),
//	)
//	app.Run()
//
// # Tracing Integration
//
// When tracing is enabled (EnableTracing: true), the *WithContext methods
// automatically extract trace and span IDs from the context and include them
// in log entries as trace_id and span_id, correlating logs with distributed
// traces.
//
// # Thread Safety
//
// All methods on Logger are safe for concurrent use by multiple goroutines.
package logger
