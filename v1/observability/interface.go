package observability

import "time"

// OperationContext carries everything an observer needs to know about a
// single completed operation. Components fill in the fields that make sense
// for them and leave the rest at their zero value.
type OperationContext struct {
	// Component is the package that performed the operation (e.g. "voyage").
	Component string

	// Operation is the logical operation name (e.g. "embeddings", "rerank").
	Operation string

	// Resource identifies what the operation acted on (e.g. the model name).
	Resource string

	// SubResource carries additional context (e.g. the endpoint path).
	SubResource string

	// Duration is the total wall-clock time of the operation, including
	// any internal retries.
	Duration time.Duration

	// Error is the final error of the operation, or nil on success.
	Error error

	// Size is an operation-specific magnitude. API clients report the
	// number of billed tokens here.
	Size int64

	// Metadata holds free-form extra attributes (attempt counts, HTTP
	// status codes, batch sizes, ...).
	Metadata map[string]interface{}
}

// Observer receives operation notifications from instrumented components.
// Implementations must be safe for concurrent use; components may report
// from multiple goroutines.
type Observer interface {
	ObserveOperation(ctx OperationContext)
}
