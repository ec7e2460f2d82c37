package voyage

import (
	"errors"
	"fmt"
	"time"
)

// Error kinds surfaced by the client. Every error returned by this package
// wraps exactly one of these sentinels, so callers can classify failures
// with errors.Is without inspecting messages.
var (
	// ErrValidation marks malformed or incomplete requests. Builder-time
	// validation errors never reach the network; server-side 4xx responses
	// (other than auth and rate limiting) map here as well.
	ErrValidation = errors.New("voyage: validation error")

	// ErrAuth marks rejected credentials (HTTP 401/403). Never retried.
	ErrAuth = errors.New("voyage: authentication error")

	// ErrRateLimit marks quota exhaustion (HTTP 429). Retried once.
	ErrRateLimit = errors.New("voyage: rate limit exceeded")

	// ErrTransport marks network failures, timeouts and 5xx responses.
	// Retried with exponential backoff up to the configured bound.
	ErrTransport = errors.New("voyage: transport error")

	// ErrNotFound marks operations whose result set is empty, e.g. asking
	// for the most similar document when the API returned no ranking.
	ErrNotFound = errors.New("voyage: not found")
)

// APIError is the concrete error type for failures reported by the remote
// API. It wraps one of the sentinel kinds above.
type APIError struct {
	// Kind is the sentinel this error wraps (ErrAuth, ErrRateLimit, ...).
	Kind error

	// StatusCode is the HTTP status of the failing response, or 0 for
	// network-level failures.
	StatusCode int

	// Message is the server-supplied error detail, or the underlying
	// network error text.
	Message string

	// RetryAfter is the server-requested backoff for rate-limit errors,
	// zero when the server did not supply one.
	RetryAfter time.Duration
}

func (e *APIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%v: %s (http %d)", e.Kind, e.Message, e.StatusCode)
	}
	return fmt.Sprintf("%v: %s", e.Kind, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.Kind
}

// IsValidationError reports whether err is a request validation failure.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsAuthError reports whether err is an authentication failure.
func IsAuthError(err error) bool {
	return errors.Is(err, ErrAuth)
}

// IsRateLimitError reports whether err is a rate-limit failure.
func IsRateLimitError(err error) bool {
	return errors.Is(err, ErrRateLimit)
}

// IsTransportError reports whether err is a network or server failure.
func IsTransportError(err error) bool {
	return errors.Is(err, ErrTransport)
}

// IsNotFoundError reports whether err marks an empty result set.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}
