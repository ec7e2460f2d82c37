package voyage

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// DefaultBaseURL is the public Voyage AI API root.
const DefaultBaseURL = "https://api.voyageai.com/v1"

// Defaults applied by Config.withDefaults. The retry parameters are
// deliberately configuration, not constants: the remote policy is not
// contractual and deployments tune them.
const (
	defaultHTTPTimeoutS          = 30
	defaultMaxRetries            = 3
	defaultRetryBaseDelayMS      = 500
	defaultStreamBufferSize      = 16
	defaultMaxConcurrentRequests = 8
	defaultRequestsPerMinute     = 300
	defaultTokensPerMinute       = 1_000_000
)

// Config holds the static configuration of a client. One configured Config
// is owned by one Client instance and never mutated afterwards; there is no
// ambient global state.
type Config struct {
	// APIKey authenticates every request. Required.
	APIKey string

	// BaseURL is the API root. Defaults to DefaultBaseURL; override it to
	// target a proxy or a test server.
	BaseURL string

	// EmbeddingModel is used by convenience operations that do not carry
	// an explicit model (Embed, EmbedBatch, Search).
	EmbeddingModel string

	// RerankModel is used by rerank operations that do not carry an
	// explicit model (FindSimilarDocuments, MostSimilarDocument).
	RerankModel string

	// HTTPTimeoutS is the per-call HTTP timeout in seconds.
	HTTPTimeoutS int

	// MaxRetries bounds the number of retries for transport-level
	// failures. Rate-limit responses are retried at most once regardless.
	MaxRetries int

	// RetryBaseDelayMS is the first backoff delay in milliseconds; each
	// further transport retry doubles it.
	RetryBaseDelayMS int

	// StreamBufferSize is the capacity of similarity streams. A full
	// buffer suspends the producer until the consumer catches up.
	StreamBufferSize int

	// MaxConcurrentRequests caps in-flight API calls per client.
	// 0 means unlimited.
	MaxConcurrentRequests int

	// RequestsPerMinute is the client-side request budget per rolling
	// minute. 0 disables the budget.
	RequestsPerMinute int

	// TokensPerMinute is the client-side token budget per rolling minute,
	// counted against the estimated token cost of each request. 0 disables
	// the budget.
	TokensPerMinute int
}

// NewConfig reads the client configuration from environment variables.
//
// Recognized variables:
//
//   - VOYAGE_API_KEY                  API key (required)
//   - VOYAGE_BASE_URL                 API root override
//   - VOYAGE_EMBEDDING_MODEL          default embedding model
//   - VOYAGE_RERANK_MODEL             default rerank model
//   - VOYAGE_HTTP_TIMEOUT_SECONDS     HTTP timeout (default 30)
//   - VOYAGE_MAX_RETRIES              transport retry bound (default 3)
//   - VOYAGE_RETRY_BASE_DELAY_MS      first backoff delay (default 500)
//   - VOYAGE_STREAM_BUFFER_SIZE       similarity stream capacity (default 16)
//   - VOYAGE_MAX_CONCURRENT_REQUESTS  in-flight call cap (default 8)
//   - VOYAGE_REQUESTS_PER_MINUTE      request budget (default 300, 0 disables)
//   - VOYAGE_TOKENS_PER_MINUTE        token budget (default 1000000, 0 disables)
func NewConfig() *Config {
	return &Config{
		APIKey:                os.Getenv("VOYAGE_API_KEY"),
		BaseURL:               os.Getenv("VOYAGE_BASE_URL"),
		EmbeddingModel:        os.Getenv("VOYAGE_EMBEDDING_MODEL"),
		RerankModel:           os.Getenv("VOYAGE_RERANK_MODEL"),
		HTTPTimeoutS:          envInt("VOYAGE_HTTP_TIMEOUT_SECONDS", defaultHTTPTimeoutS),
		MaxRetries:            envInt("VOYAGE_MAX_RETRIES", defaultMaxRetries),
		RetryBaseDelayMS:      envInt("VOYAGE_RETRY_BASE_DELAY_MS", defaultRetryBaseDelayMS),
		StreamBufferSize:      envInt("VOYAGE_STREAM_BUFFER_SIZE", defaultStreamBufferSize),
		MaxConcurrentRequests: envInt("VOYAGE_MAX_CONCURRENT_REQUESTS", defaultMaxConcurrentRequests),
		RequestsPerMinute:     envInt("VOYAGE_REQUESTS_PER_MINUTE", defaultRequestsPerMinute),
		TokensPerMinute:       envInt("VOYAGE_TOKENS_PER_MINUTE", defaultTokensPerMinute),
	}
}

// Validate ensures required fields are present.
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("%w: missing VOYAGE_API_KEY", ErrValidation)
	}
	return nil
}

// withDefaults returns a copy of the config with zero values replaced by
// defaults and the base URL normalized. The receiver is not modified.
func (c *Config) withDefaults() *Config {
	out := *c

	if out.BaseURL == "" {
		out.BaseURL = DefaultBaseURL
	}
	// Remove trailing slash if the caller added one.
	out.BaseURL = strings.TrimRight(out.BaseURL, "/")

	if out.EmbeddingModel == "" {
		out.EmbeddingModel = DefaultEmbeddingModel
	}
	if out.RerankModel == "" {
		out.RerankModel = DefaultRerankModel
	}
	if out.HTTPTimeoutS <= 0 {
		out.HTTPTimeoutS = defaultHTTPTimeoutS
	}
	if out.MaxRetries < 0 {
		out.MaxRetries = defaultMaxRetries
	}
	if out.RetryBaseDelayMS <= 0 {
		out.RetryBaseDelayMS = defaultRetryBaseDelayMS
	}
	if out.StreamBufferSize <= 0 {
		out.StreamBufferSize = defaultStreamBufferSize
	}

	return &out
}

// envInt reads an integer environment variable, falling back to def when the
// variable is unset or unparsable.
func envInt(name string, def int) int {
	v := os.Getenv(name)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
