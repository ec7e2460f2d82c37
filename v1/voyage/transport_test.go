package voyage

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestClient builds a client against an httptest server wrapping handler.
// Every request increments the returned counter. Retry delays are shortened
// so retry-path tests stay fast.
func newTestClient(t *testing.T, cfg Config, handler http.HandlerFunc) (*Client, *atomic.Int32) {
	t.Helper()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	if cfg.APIKey == "" {
		cfg.APIKey = "test-key"
	}
	cfg.BaseURL = srv.URL
	if cfg.RetryBaseDelayMS == 0 {
		cfg.RetryBaseDelayMS = 1
	}

	client, err := NewClientBuilder().WithConfig(&cfg).Build()
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	return client, &calls
}

// serveEmbeddings answers /embeddings with one vector per input, produced by
// embed. Data entries are written in reverse order to exercise the client's
// index-based reordering.
func serveEmbeddings(t *testing.T, embed func(text string) []float64) http.HandlerFunc {
	t.Helper()

	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Input []string `json:"input"`
			Model string   `json:"model"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		data := make([]map[string]any, 0, len(req.Input))
		for i := len(req.Input) - 1; i >= 0; i-- {
			data = append(data, map[string]any{
				"object":    "embedding",
				"embedding": embed(req.Input[i]),
				"index":     i,
			})
		}

		writeJSON(t, w, map[string]any{
			"object": "list",
			"data":   data,
			"model":  req.Model,
			"usage":  map[string]any{"total_tokens": 7 * len(req.Input)},
		})
	}
}

func writeJSON(t *testing.T, w http.ResponseWriter, body any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	require.NoError(t, json.NewEncoder(w).Encode(body))
}

func TestTransportSendsBearerAuth(t *testing.T) {
	var gotAuth string
	client, _ := newTestClient(t, Config{APIKey: "secret-key"}, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		serveEmbeddings(t, func(string) []float64 { return []float64{1} })(w, r)
	})

	_, err := client.Embed(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, "Bearer secret-key", gotAuth)
}

func TestTransportServerErrorsRetriedUpToBound(t *testing.T) {
	client, calls := newTestClient(t, Config{MaxRetries: 2}, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"detail": "overloaded"}`))
	})

	_, err := client.Embed(context.Background(), "hello")
	require.Error(t, err)
	assert.True(t, IsTransportError(err))

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusServiceUnavailable, apiErr.StatusCode)
	assert.Equal(t, "overloaded", apiErr.Message)

	// Initial attempt plus MaxRetries, then exactly one error surfaces.
	assert.Equal(t, int32(3), calls.Load())
}

func TestTransportServerErrorThenSuccess(t *testing.T) {
	var attempt atomic.Int32
	client, calls := newTestClient(t, Config{MaxRetries: 3}, func(w http.ResponseWriter, r *http.Request) {
		if attempt.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		serveEmbeddings(t, func(string) []float64 { return []float64{1, 2} })(w, r)
	})

	vec, err := client.Embed(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2}, vec)
	assert.Equal(t, int32(2), calls.Load())
}

func TestTransportAuthErrorNotRetried(t *testing.T) {
	client, calls := newTestClient(t, Config{MaxRetries: 3}, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail": "invalid api key"}`))
	})

	_, err := client.Embed(context.Background(), "hello")
	require.Error(t, err)
	assert.True(t, IsAuthError(err))
	assert.Contains(t, err.Error(), "invalid api key")
	assert.Equal(t, int32(1), calls.Load())
}

func TestTransportRateLimitRetriedOnce(t *testing.T) {
	var attempt atomic.Int32
	client, calls := newTestClient(t, Config{}, func(w http.ResponseWriter, r *http.Request) {
		if attempt.Add(1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			w.Write([]byte(`{"detail": "rate limit exceeded"}`))
			return
		}
		serveEmbeddings(t, func(string) []float64 { return []float64{1} })(w, r)
	})

	_, err := client.Embed(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, int32(2), calls.Load())
}

func TestTransportRateLimitSecondFailureSurfaces(t *testing.T) {
	client, calls := newTestClient(t, Config{MaxRetries: 5}, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"detail": "rate limit exceeded"}`))
	})

	_, err := client.Embed(context.Background(), "hello")
	require.Error(t, err)
	assert.True(t, IsRateLimitError(err))
	// One retry only, regardless of MaxRetries.
	assert.Equal(t, int32(2), calls.Load())
}

func TestTransportClientErrorNotRetried(t *testing.T) {
	client, calls := newTestClient(t, Config{MaxRetries: 3}, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"detail": "unknown model"}`))
	})

	_, err := client.Embed(context.Background(), "hello")
	require.Error(t, err)
	assert.True(t, IsValidationError(err))
	assert.Contains(t, err.Error(), "unknown model")
	assert.Equal(t, int32(1), calls.Load())
}

func TestTransportNonJSONErrorBody(t *testing.T) {
	client, _ := newTestClient(t, Config{}, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte("plain text failure"))
	})

	_, err := client.Embed(context.Background(), "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "plain text failure")
}

func TestTransportContextCancellation(t *testing.T) {
	client, _ := newTestClient(t, Config{}, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		serveEmbeddings(t, func(string) []float64 { return []float64{1} })(w, r)
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := client.Embed(ctx, "hello")
	require.Error(t, err)
	assert.True(t, IsTransportError(err))
}

func TestParseRetryAfter(t *testing.T) {
	cases := []struct {
		value string
		want  time.Duration
	}{
		{"", 0},
		{"3", 3 * time.Second},
		{"0", 0},
		{"-1", 0},
		{"soon", 0},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, parseRetryAfter(tc.value), "value %q", tc.value)
	}
}

func TestReadErrorDetail(t *testing.T) {
	assert.Equal(t, "bad input", readErrorDetail(strings.NewReader(`{"detail": "bad input"}`)))
	assert.Equal(t, `{"other": "shape"}`, readErrorDetail(strings.NewReader(`{"other": "shape"}`)))
	assert.Equal(t, "no error detail", readErrorDetail(strings.NewReader("")))
}
