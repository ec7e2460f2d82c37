package tracer

import "os"

// Config controls how the OpenTelemetry tracer provider is built.
type Config struct {
	// ServiceName identifies this process in exported traces.
	ServiceName string

	// AppEnv is the deployment environment attached to every span
	// (e.g. "production", "development").
	AppEnv string

	// EnableExport turns on the OTLP HTTP exporter. The exporter endpoint
	// is taken from the standard OTEL_EXPORTER_OTLP_* environment
	// variables. When false, spans are created but never exported, which
	// keeps span-derived log correlation working without any collector.
	EnableExport bool
}

// NewConfig reads the tracer configuration from environment variables.
//
// Recognized variables:
//
//   - VOYAGE_SERVICE_NAME   service name in traces (default "voyage")
//   - VOYAGE_APP_ENV        deployment environment (default "development")
//   - VOYAGE_TRACE_EXPORT   any non-empty value enables OTLP export
func NewConfig() Config {
	service := os.Getenv("VOYAGE_SERVICE_NAME")
	if service == "" {
		service = "voyage"
	}

	env := os.Getenv("VOYAGE_APP_ENV")
	if env == "" {
		env = "development"
	}

	return Config{
		ServiceName:  service,
		AppEnv:       env,
		EnableExport: os.Getenv("VOYAGE_TRACE_EXPORT") != "",
	}
}
