// Package tracer provides OpenTelemetry distributed tracing for the voyage
// SDK and CLI.
//
// NewClient builds a TracerProvider, optionally wired to an OTLP HTTP
// exporter, and installs it as the global OpenTelemetry provider. The voyage
// client's transport creates one span per API call through that global
// provider, so including this package's FXModule (or calling NewClient
// directly) is all that is needed to get per-request traces.
//
// Spans can also be created manually:
//
//	ctx, span := tracerClient.StartSpan(ctx, "load-documents")
//	defer span.End()
//
// Export is controlled by Config.EnableExport and the standard
// OTEL_EXPORTER_OTLP_* environment variables.
package tracer
