package metrics

import (
	"github.com/voyageai/voyage-go/v1/observability"
)

// ObserveOperation records a completed API operation in the Prometheus
// metrics. It implements observability.Observer.
//
// Mapping:
//   - api_requests_total{operation,status}  one increment per operation
//   - api_request_duration_seconds          total duration, retries included
//   - api_retries_total{operation}          attempts beyond the first
//   - api_tokens_total{operation}           billed tokens (OperationContext.Size)
func (m *Metrics) ObserveOperation(ctx observability.OperationContext) {
	status := "success"
	if ctx.Error != nil {
		status = "error"
	}

	m.apiRequestsTotal.WithLabelValues(ctx.Operation, status).Inc()
	m.apiRequestDuration.WithLabelValues(ctx.Operation).Observe(ctx.Duration.Seconds())

	if attempts, ok := ctx.Metadata["attempts"].(int); ok && attempts > 1 {
		m.apiRetriesTotal.WithLabelValues(ctx.Operation).Add(float64(attempts - 1))
	}

	if ctx.Size > 0 {
		m.apiTokensTotal.WithLabelValues(ctx.Operation).Add(float64(ctx.Size))
	}
}
