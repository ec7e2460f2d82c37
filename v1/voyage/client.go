package voyage

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// Client is the public entrypoint for the Voyage AI API.
//
// It hides all transport details (endpoint paths, HTTP, retries, rate
// limiting) from the application layer and exposes the embedding and
// reranking operations directly. Application code should depend on *Client,
// not on the per-endpoint clients it composes.
type Client struct {
	cfg        *Config
	logger     Logger
	transport  *transport
	embeddings *EmbeddingsClient
	rerank     *RerankClient
}

// NewClient constructs a Client from Config with default logging and no
// observer. Use NewClientBuilder for more options.
func NewClient(cfg *Config) (*Client, error) {
	return NewClientBuilder().WithConfig(cfg).Build()
}

// Embeddings returns the underlying embeddings client for request-level
// control.
func (c *Client) Embeddings() *EmbeddingsClient {
	return c.embeddings
}

// Reranker returns the underlying rerank client for request-level control.
func (c *Client) Reranker() *RerankClient {
	return c.rerank
}

// Embed returns the embedding vector of a single text using the configured
// default model.
func (c *Client) Embed(ctx context.Context, text string) ([]float64, error) {
	return c.embeddings.Embed(ctx, text)
}

// CreateEmbeddings executes a single embedding request built with
// EmbeddingsRequestBuilder.
func (c *Client) CreateEmbeddings(ctx context.Context, req *EmbeddingsRequest) (*EmbeddingsResponse, error) {
	return c.embeddings.CreateEmbeddings(ctx, req)
}

// EmbedBatch embeds any number of texts in the background and returns a
// future for the merged response. The ctx governs the underlying calls;
// Wait takes its own context so waiting can be bounded independently.
func (c *Client) EmbedBatch(ctx context.Context, texts []string) *EmbeddingsFuture {
	future, resolve := newEmbeddingsFuture()

	go func() {
		resp, err := c.embeddings.EmbedBatch(ctx, texts)
		resolve(resp, err)
	}()

	return future
}

// Rerank executes a rerank request built with RerankRequestBuilder.
func (c *Client) Rerank(ctx context.Context, req *RerankRequest) (*RerankResponse, error) {
	return c.rerank.Rerank(ctx, req)
}

// FindSimilarDocuments ranks documents against the query and returns a
// stream of DocumentSimilarity in descending similarity order, ranks dense
// from 0.
//
// The whole rerank response is received before the first item is emitted;
// the stream then delivers through a bounded buffer, suspending the
// producer when the consumer falls behind. The stream is single-pass: a
// fresh call is needed to iterate again. An empty document list fails the
// stream with a validation error before any network call.
func (c *Client) FindSimilarDocuments(ctx context.Context, query string, documents []string) *SimilarityStream {
	stream := newSimilarityStream(c.cfg.StreamBufferSize)

	req, err := buildSimilarityRequest(query, documents, c.cfg.RerankModel)
	if err != nil {
		stream.finish(err)
		return stream
	}

	go func() {
		resp, err := c.rerank.Rerank(ctx, req)
		if err != nil {
			stream.finish(err)
			return
		}
		for _, item := range similarities(resp) {
			if !stream.emit(item) {
				// Consumer closed the stream; drop the rest.
				break
			}
		}
		stream.finish(nil)
	}()

	return stream
}

// MostSimilarDocument ranks documents against the query in the background
// and returns a future for the single most similar one (rank 0).
//
// An empty document list resolves the future with a validation error before
// any network call; an empty ranking from the API resolves it with a
// not-found error.
func (c *Client) MostSimilarDocument(ctx context.Context, query string, documents []string) *SimilarityFuture {
	future, resolve := newSimilarityFuture()

	req, err := buildSimilarityRequest(query, documents, c.cfg.RerankModel)
	if err != nil {
		resolve(DocumentSimilarity{}, err)
		return future
	}

	go func() {
		resp, err := c.rerank.Rerank(ctx, req)
		if err != nil {
			resolve(DocumentSimilarity{}, err)
			return
		}
		if len(resp.Results) == 0 {
			resolve(DocumentSimilarity{}, fmt.Errorf("%w: ranking returned no documents", ErrNotFound))
			return
		}
		best := resp.Results[0]
		resolve(DocumentSimilarity{
			Rank:       0,
			Similarity: best.RelevanceScore,
			Document:   best.Document,
		}, nil)
	}()

	return future
}

// buildSimilarityRequest validates the query and documents before any
// network activity.
func buildSimilarityRequest(query string, documents []string, model string) (*RerankRequest, error) {
	builder := NewRerankRequestBuilder().
		Query(query).
		Model(model)
	for _, text := range documents {
		builder.AddDocument(text)
	}
	return builder.Build()
}

// Close releases any internal resources held by the client.
func (c *Client) Close() error {
	c.transport.close()
	return nil
}

// ClientBuilder assembles a Client from configuration plus optional
// collaborators (logger, observer, HTTP client).
type ClientBuilder struct {
	cfg        *Config
	logger     Logger
	observer   operationObserver
	httpClient *http.Client
}

// NewClientBuilder returns a builder with environment-based configuration.
func NewClientBuilder() *ClientBuilder {
	return &ClientBuilder{}
}

// WithConfig replaces the whole configuration.
func (b *ClientBuilder) WithConfig(cfg *Config) *ClientBuilder {
	b.cfg = cfg
	return b
}

// WithAPIKey sets the API key, creating a default config when none is set.
func (b *ClientBuilder) WithAPIKey(key string) *ClientBuilder {
	b.ensureConfig()
	b.cfg.APIKey = key
	return b
}

// WithBaseURL overrides the API root, e.g. to target a proxy.
func (b *ClientBuilder) WithBaseURL(baseURL string) *ClientBuilder {
	b.ensureConfig()
	b.cfg.BaseURL = baseURL
	return b
}

// WithEmbeddingModel sets the default embedding model.
func (b *ClientBuilder) WithEmbeddingModel(model string) *ClientBuilder {
	b.ensureConfig()
	b.cfg.EmbeddingModel = model
	return b
}

// WithRerankModel sets the default rerank model.
func (b *ClientBuilder) WithRerankModel(model string) *ClientBuilder {
	b.ensureConfig()
	b.cfg.RerankModel = model
	return b
}

// WithTimeout sets the per-call HTTP timeout.
func (b *ClientBuilder) WithTimeout(d time.Duration) *ClientBuilder {
	b.ensureConfig()
	b.cfg.HTTPTimeoutS = int(d / time.Second)
	return b
}

// WithMaxRetries bounds transport-level retries.
func (b *ClientBuilder) WithMaxRetries(n int) *ClientBuilder {
	b.ensureConfig()
	b.cfg.MaxRetries = n
	return b
}

// WithLogger attaches a logger; without one the client is silent.
func (b *ClientBuilder) WithLogger(logger Logger) *ClientBuilder {
	b.logger = logger
	return b
}

// WithObserver attaches an operation observer (e.g. *metrics.Metrics).
func (b *ClientBuilder) WithObserver(observer operationObserver) *ClientBuilder {
	b.observer = observer
	return b
}

// WithHTTPClient replaces the underlying HTTP client. The caller then owns
// timeout configuration.
func (b *ClientBuilder) WithHTTPClient(client *http.Client) *ClientBuilder {
	b.httpClient = client
	return b
}

func (b *ClientBuilder) ensureConfig() {
	if b.cfg == nil {
		b.cfg = &Config{}
	}
}

// Build validates the configuration and assembles the client.
func (b *ClientBuilder) Build() (*Client, error) {
	if b.cfg == nil {
		return nil, fmt.Errorf("%w: configuration is required", ErrValidation)
	}
	if err := b.cfg.Validate(); err != nil {
		return nil, err
	}

	cfg := b.cfg.withDefaults()

	logger := b.logger
	if logger == nil {
		logger = noopLogger{}
	}

	t := newTransport(cfg, logger, b.observer, b.httpClient)

	return &Client{
		cfg:        cfg,
		logger:     logger,
		transport:  t,
		embeddings: newEmbeddingsClient(cfg, t, logger),
		rerank:     newRerankClient(cfg, t, logger),
	}, nil
}
