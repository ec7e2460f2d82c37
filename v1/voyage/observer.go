package voyage

import (
	"time"

	"github.com/voyageai/voyage-go/v1/observability"
)

// operationObserver is the subset of observability.Observer this package
// needs. Declared locally so consumers that never configure an observer do
// not have to know the observability package.
type operationObserver interface {
	ObserveOperation(ctx observability.OperationContext)
}

// observe notifies the observer about a completed API call if one is
// configured.
//
// Notes:
//   - resource: the model the operation ran against
//   - subResource: the endpoint path
//   - size: billed tokens reported by the API (0 on failure)
func (t *transport) observe(operation, model, path string, duration time.Duration, err error, tokens, attempts, statusCode int) {
	if t == nil || t.observer == nil {
		return
	}

	t.observer.ObserveOperation(observability.OperationContext{
		Component:   "voyage",
		Operation:   operation,
		Resource:    model,
		SubResource: path,
		Duration:    duration,
		Error:       err,
		Size:        int64(tokens),
		Metadata: map[string]interface{}{
			"attempts":    attempts,
			"status_code": statusCode,
		},
	})
}
