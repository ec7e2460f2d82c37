package voyage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// tracerName identifies this package's spans in the global tracer provider.
const tracerName = "github.com/voyageai/voyage-go/v1/voyage"

// Logical operation names used in spans, logs and metrics.
const (
	opEmbeddings = "embeddings"
	opRerank     = "rerank"
)

// Logger defines the logging operations the voyage package needs.
// This interface allows the package to use any logging implementation that
// conforms to these methods.
type Logger interface {
	Info(msg string, err error, fields ...map[string]interface{})
	Debug(msg string, err error, fields ...map[string]interface{})
	Warn(msg string, err error, fields ...map[string]interface{})
	Error(msg string, err error, fields ...map[string]interface{})
	Fatal(msg string, err error, fields ...map[string]interface{})
}

// noopLogger is the default when no logger is configured.
type noopLogger struct{}

func (noopLogger) Info(string, error, ...map[string]interface{})  {}
func (noopLogger) Debug(string, error, ...map[string]interface{}) {}
func (noopLogger) Warn(string, error, ...map[string]interface{})  {}
func (noopLogger) Error(string, error, ...map[string]interface{}) {}
func (noopLogger) Fatal(string, error, ...map[string]interface{}) {}

// transport issues authenticated JSON calls against the API and maps
// HTTP-level failures to the package's typed errors. Each call is
// independent; the only shared state is the immutable configuration and the
// client-side rate limiter.
type transport struct {
	baseURL        string
	apiKey         string
	httpClient     *http.Client
	maxRetries     int
	retryBaseDelay time.Duration
	logger         Logger
	limiter        *rateLimiter
	observer       operationObserver
}

func newTransport(cfg *Config, logger Logger, observer operationObserver, httpClient *http.Client) *transport {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: time.Duration(cfg.HTTPTimeoutS) * time.Second}
	}

	return &transport{
		baseURL:        cfg.BaseURL,
		apiKey:         cfg.APIKey,
		httpClient:     httpClient,
		maxRetries:     cfg.MaxRetries,
		retryBaseDelay: time.Duration(cfg.RetryBaseDelayMS) * time.Millisecond,
		logger:         logger,
		limiter:        newRateLimiter(cfg),
		observer:       observer,
	}
}

// usageCarrier is implemented by response types that report billed tokens.
type usageCarrier interface {
	usageTokens() int
}

// postJSON sends one logical operation to the API, retrying per policy:
//
//   - auth and validation failures are never retried
//   - rate-limit responses are retried once, honoring Retry-After
//   - transport failures are retried up to maxRetries with exponential
//     backoff
//
// Intermediate attempts are invisible to the caller; exactly one final
// outcome is returned. The call is recorded as a span and reported to the
// observer, retries included.
func (t *transport) postJSON(ctx context.Context, operation, path, model string, body, out any, estimatedTokens int) error {
	start := time.Now()

	ctx, span := otel.Tracer(tracerName).Start(ctx, "voyage."+operation)
	defer span.End()
	span.SetAttributes(
		attribute.String("voyage.model", model),
		attribute.Int("voyage.estimated_tokens", estimatedTokens),
	)

	attempts := 0
	rateLimitRetried := false
	var err error
	var status int

	for {
		attempts++

		var release func()
		release, err = t.limiter.acquire(ctx, estimatedTokens)
		if err != nil {
			err = &APIError{Kind: ErrTransport, Message: err.Error()}
			break
		}
		status, err = t.doOnce(ctx, path, body, out)
		release()

		if err == nil {
			break
		}

		if errors.Is(err, ErrRateLimit) && !rateLimitRetried {
			rateLimitRetried = true
			delay := t.retryBaseDelay
			var apiErr *APIError
			if errors.As(err, &apiErr) && apiErr.RetryAfter > 0 {
				delay = apiErr.RetryAfter
			}
			t.logger.Warn("voyage: rate limited, retrying once", err, map[string]interface{}{
				"operation": operation,
				"delay":     delay.String(),
			})
			if sleepErr := sleepCtx(ctx, delay); sleepErr != nil {
				err = &APIError{Kind: ErrTransport, Message: sleepErr.Error()}
				break
			}
			continue
		}

		if errors.Is(err, ErrTransport) && attempts <= t.maxRetries {
			delay := t.retryBaseDelay << (attempts - 1)
			t.logger.Warn("voyage: transport failure, retrying", err, map[string]interface{}{
				"operation": operation,
				"attempt":   attempts,
				"delay":     delay.String(),
			})
			if sleepErr := sleepCtx(ctx, delay); sleepErr != nil {
				err = &APIError{Kind: ErrTransport, Message: sleepErr.Error()}
				break
			}
			continue
		}

		break
	}

	tokens := 0
	if err == nil {
		if uc, ok := out.(usageCarrier); ok {
			tokens = uc.usageTokens()
			t.limiter.recordUsage(estimatedTokens, tokens)
		}
		t.logger.Debug("voyage: request succeeded", nil, map[string]interface{}{
			"operation": operation,
			"attempts":  attempts,
			"tokens":    tokens,
		})
	} else {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		t.logger.Error("voyage: request failed", err, map[string]interface{}{
			"operation": operation,
			"attempts":  attempts,
		})
	}

	t.observe(operation, model, path, time.Since(start), err, tokens, attempts, status)
	return err
}

// doOnce performs a single HTTP attempt.
func (t *transport) doOnce(ctx context.Context, path string, body, out any) (int, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return 0, fmt.Errorf("%w: encode request: %v", ErrValidation, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return 0, fmt.Errorf("%w: build request: %v", ErrValidation, err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+t.apiKey)

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return 0, &APIError{Kind: ErrTransport, Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return resp.StatusCode, t.statusError(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return resp.StatusCode, &APIError{
				Kind:       ErrTransport,
				StatusCode: resp.StatusCode,
				Message:    fmt.Sprintf("decode response: %v", err),
			}
		}
	}

	return resp.StatusCode, nil
}

// statusError maps a non-success HTTP response to a typed error.
func (t *transport) statusError(resp *http.Response) error {
	message := readErrorDetail(resp.Body)

	apiErr := &APIError{
		StatusCode: resp.StatusCode,
		Message:    message,
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		apiErr.Kind = ErrAuth
	case resp.StatusCode == http.StatusTooManyRequests:
		apiErr.Kind = ErrRateLimit
		apiErr.RetryAfter = parseRetryAfter(resp.Header.Get("Retry-After"))
	case resp.StatusCode >= 500:
		apiErr.Kind = ErrTransport
	default:
		apiErr.Kind = ErrValidation
	}

	return apiErr
}

// readErrorDetail extracts the API's {"detail": ...} error envelope, falling
// back to the raw body.
func readErrorDetail(body io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(body, 4096))
	if err != nil || len(raw) == 0 {
		return "no error detail"
	}

	var envelope struct {
		Detail string `json:"detail"`
	}
	if json.Unmarshal(raw, &envelope) == nil && envelope.Detail != "" {
		return envelope.Detail
	}
	return string(raw)
}

// parseRetryAfter reads the Retry-After header as integer seconds. Absent or
// unparsable values return 0 and the configured base delay applies.
func parseRetryAfter(value string) time.Duration {
	if value == "" {
		return 0
	}
	seconds, err := strconv.Atoi(value)
	if err != nil || seconds < 0 {
		return 0
	}
	return time.Duration(seconds) * time.Second
}

// close releases idle HTTP connections held by the transport.
func (t *transport) close() {
	t.httpClient.CloseIdleConnections()
}
