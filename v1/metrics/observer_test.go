package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/voyageai/voyage-go/v1/observability"
)

func TestObserveOperationSuccess(t *testing.T) {
	m := NewMetrics(Config{ServiceName: "test"})

	m.ObserveOperation(observability.OperationContext{
		Component: "voyage",
		Operation: "embeddings",
		Duration:  250 * time.Millisecond,
		Size:      42,
		Metadata:  map[string]interface{}{"attempts": 1},
	})

	assert.Equal(t, 1.0, testutil.ToFloat64(m.apiRequestsTotal.WithLabelValues("embeddings", "success")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.apiRequestsTotal.WithLabelValues("embeddings", "error")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.apiRetriesTotal.WithLabelValues("embeddings")))
	assert.Equal(t, 42.0, testutil.ToFloat64(m.apiTokensTotal.WithLabelValues("embeddings")))
}

func TestObserveOperationErrorWithRetries(t *testing.T) {
	m := NewMetrics(Config{ServiceName: "test"})

	m.ObserveOperation(observability.OperationContext{
		Component: "voyage",
		Operation: "rerank",
		Duration:  time.Second,
		Error:     errors.New("upstream failure"),
		Metadata:  map[string]interface{}{"attempts": 4},
	})

	assert.Equal(t, 1.0, testutil.ToFloat64(m.apiRequestsTotal.WithLabelValues("rerank", "error")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.apiRetriesTotal.WithLabelValues("rerank")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.apiTokensTotal.WithLabelValues("rerank")))
}

func TestObserveOperationMissingMetadata(t *testing.T) {
	m := NewMetrics(Config{ServiceName: "test"})

	// No attempts metadata and no size; only the request counter moves.
	m.ObserveOperation(observability.OperationContext{
		Operation: "embeddings",
	})

	assert.Equal(t, 1.0, testutil.ToFloat64(m.apiRequestsTotal.WithLabelValues("embeddings", "success")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.apiRetriesTotal.WithLabelValues("embeddings")))
}

func TestMetricsServerOnlyWithAddress(t *testing.T) {
	withServer := NewMetrics(Config{Address: ":0", ServiceName: "test"})
	assert.NotNil(t, withServer.Server)

	withoutServer := NewMetrics(Config{ServiceName: "test"})
	assert.Nil(t, withoutServer.Server)
}
