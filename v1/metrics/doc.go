// Package metrics provides Prometheus metrics for the voyage client.
//
// # Overview
//
// The package maintains an isolated Prometheus registry with a constant
// `service` label and a set of built-in metrics describing Voyage AI API
// usage:
//
//   - voyage_api_requests_total{operation,status}
//   - voyage_api_request_duration_seconds{operation}
//   - voyage_api_retries_total{operation}
//   - voyage_api_tokens_total{operation}
//
// *Metrics implements observability.Observer, so it plugs straight into the
// client:
//
//	m := metrics.NewMetrics(metrics.NewConfig())
//	client, err := voyage.NewClientBuilder().
//	    WithAPIKey(key).
//	    WithObserver(m).
//	    Build()
//
// # Exposing /metrics
//
// Long-running consumers set Config.Address to expose the registry over
// HTTP; the CLI leaves it empty and the registry stays in-process only.
//
// Additional application metrics can be registered through CreateCounter,
// CreateHistogram and CreateGauge, which attach the service label
// automatically.
package metrics
