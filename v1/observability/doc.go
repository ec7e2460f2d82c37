// Package observability defines the shared observer contract used by the
// instrumented packages in this module.
//
// Components (the voyage client in particular) report completed operations
// through the Observer interface. Concrete observers translate those
// notifications into metrics, traces, or logs; the metrics package ships a
// Prometheus-backed implementation.
//
// The package contains no implementation of its own so that instrumented
// packages do not pull in Prometheus or OpenTelemetry dependencies they do
// not use.
package observability
