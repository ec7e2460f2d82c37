package logger

import "os"

// Log levels accepted by Config.Level.
const (
	Debug   = "debug"
	Info    = "info"
	Warning = "warning"
	Error   = "error"
)

// Config controls how the logger is built.
type Config struct {
	// Level is one of "debug", "info", "warning" or "error".
	// Unknown values fall back to "info".
	Level string

	// ServiceName is attached to every log entry as the "service" field.
	ServiceName string

	// EnableTracing makes the *WithContext methods extract OpenTelemetry
	// trace and span IDs from the context and attach them to log entries.
	EnableTracing bool
}

// NewConfig reads the logger configuration from environment variables.
//
// Recognized variables:
//
//   - VOYAGE_LOG_LEVEL      log level (default "info")
//   - VOYAGE_SERVICE_NAME   service field value (default "voyage")
//   - VOYAGE_LOG_TRACING    any non-empty value enables trace correlation
func NewConfig() Config {
	level := os.Getenv("VOYAGE_LOG_LEVEL")
	if level == "" {
		level = Info
	}

	service := os.Getenv("VOYAGE_SERVICE_NAME")
	if service == "" {
		service = "voyage"
	}

	return Config{
		Level:         level,
		ServiceName:   service,
		EnableTracing: os.Getenv("VOYAGE_LOG_TRACING") != "",
	}
}
