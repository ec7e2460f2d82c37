package metrics

import "os"

// Config controls the metrics registry and the optional /metrics endpoint.
type Config struct {
	// Address is the listen address for the /metrics HTTP server
	// (e.g. ":9090"). When empty, no server is created and the registry is
	// only available for programmatic scraping, the right mode for
	// short-lived processes such as the CLI.
	Address string

	// ServiceName is applied to all metrics as a constant "service" label.
	ServiceName string

	// EnableDefaultCollectors registers the Go runtime, process and build
	// info collectors in addition to the API metrics.
	EnableDefaultCollectors bool
}

// NewConfig reads the metrics configuration from environment variables.
//
// Recognized variables:
//
//   - VOYAGE_METRICS_ADDRESS   listen address for /metrics (default: none)
//   - VOYAGE_SERVICE_NAME      service label value (default "voyage")
func NewConfig() Config {
	service := os.Getenv("VOYAGE_SERVICE_NAME")
	if service == "" {
		service = "voyage"
	}

	return Config{
		Address:                 os.Getenv("VOYAGE_METRICS_ADDRESS"),
		ServiceName:             service,
		EnableDefaultCollectors: true,
	}
}
