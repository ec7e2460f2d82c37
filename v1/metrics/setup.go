package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics encapsulates the Prometheus registry for the voyage client and,
// when configured, an HTTP server exposing the /metrics endpoint.
//
// Metrics implements observability.Observer, so a *Metrics instance can be
// passed directly to the voyage client builder to record every API call.
type Metrics struct {
	// Server is the HTTP server exposing /metrics, or nil when no address
	// is configured.
	Server *http.Server

	// Registry is the Prometheus registry where all metrics are registered.
	// Each process keeps its own isolated registry to prevent metric name
	// collisions.
	Registry *prometheus.Registry

	// registerer is the Registry wrapped with the constant service label.
	registerer prometheus.Registerer

	// API call metrics fed by ObserveOperation.
	apiRequestsTotal   *prometheus.CounterVec
	apiRequestDuration *prometheus.HistogramVec
	apiRetriesTotal    *prometheus.CounterVec
	apiTokensTotal     *prometheus.CounterVec
}

// NewMetrics initializes and returns a new Metrics instance.
// It sets up a dedicated Prometheus registry, registers the API call
// metrics, wraps everything with a constant `service` label and, when
// cfg.Address is set, creates an HTTP server exposing /metrics.
//
// Example:
//
//	m := metrics.NewMetrics(metrics.Config{
//	    Address:     ":9090",
//	    ServiceName: "voyage",
//	})
//	go m.Server.ListenAndServe()
func NewMetrics(cfg Config) *Metrics {
	// Isolated registry per process. Avoids metric collisions when several
	// instrumented components run side by side.
	registry := prometheus.NewRegistry()

	// All metrics emitted by this process automatically carry the label
	// service="<cfg.ServiceName>".
	wrappedRegistry := prometheus.WrapRegistererWith(
		prometheus.Labels{"service": cfg.ServiceName},
		registry,
	)

	m := &Metrics{
		Registry:   registry,
		registerer: wrappedRegistry,
	}

	m.apiRequestsTotal = createCounterVec(
		"voyage_api_requests_total",
		"Total number of Voyage AI API calls, by operation and outcome",
		[]string{"operation", "status"},
	)
	m.apiRequestDuration = createHistogramVec(
		"voyage_api_request_duration_seconds",
		"Wall-clock duration of Voyage AI API calls, retries included",
		[]string{"operation"},
		prometheus.DefBuckets,
	)
	m.apiRetriesTotal = createCounterVec(
		"voyage_api_retries_total",
		"Number of retried Voyage AI API attempts",
		[]string{"operation"},
	)
	m.apiTokensTotal = createCounterVec(
		"voyage_api_tokens_total",
		"Billed tokens reported by the Voyage AI API, by operation",
		[]string{"operation"},
	)

	wrappedRegistry.MustRegister(
		m.apiRequestsTotal,
		m.apiRequestDuration,
		m.apiRetriesTotal,
		m.apiTokensTotal,
	)

	// Standard collectors for long-running processes:
	//   - GoCollector: memory usage, goroutines, GC stats
	//   - ProcessCollector: CPU, file descriptors, memory stats
	//   - BuildInfoCollector: binary version/build info
	if cfg.EnableDefaultCollectors {
		wrappedRegistry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			collectors.NewBuildInfoCollector(),
		)
	}

	if cfg.Address != "" {
		handler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
		m.Server = &http.Server{
			Addr:    cfg.Address,
			Handler: handler,
		}
	}

	return m
}
