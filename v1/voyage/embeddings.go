package voyage

import (
	"context"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"
)

// maxBatchSize is the largest input count sent in a single /embeddings
// call. Larger batches are split into chunks embedded concurrently.
const maxBatchSize = 128

// EmbeddingsClient executes embedding requests against the /embeddings
// endpoint. It is created by the facade Client and shares its transport.
type EmbeddingsClient struct {
	cfg       *Config
	transport *transport
	logger    Logger
}

func newEmbeddingsClient(cfg *Config, t *transport, logger Logger) *EmbeddingsClient {
	return &EmbeddingsClient{cfg: cfg, transport: t, logger: logger}
}

// CreateEmbeddings executes a single embedding request. The response
// contains exactly one vector per input, in input order.
//
// A request without a model falls back to the configured default embedding
// model.
func (c *EmbeddingsClient) CreateEmbeddings(ctx context.Context, req *EmbeddingsRequest) (*EmbeddingsResponse, error) {
	if req == nil || len(req.Input) == 0 {
		return nil, fmt.Errorf("%w: input is required", ErrValidation)
	}
	if len(req.Input) > maxBatchSize {
		return nil, fmt.Errorf("%w: at most %d inputs per request, use EmbedBatch for more", ErrValidation, maxBatchSize)
	}

	wire := *req
	if wire.Model == "" {
		wire.Model = c.cfg.EmbeddingModel
	}

	var resp EmbeddingsResponse
	est := estimateEmbeddingTokens(wire.Input)
	if err := c.transport.postJSON(ctx, opEmbeddings, "/embeddings", wire.Model, &wire, &resp, est); err != nil {
		return nil, err
	}

	// The API reports each vector's input position; restore input order
	// before checking the count so callers can index by input.
	sort.SliceStable(resp.Data, func(i, j int) bool {
		return resp.Data[i].Index < resp.Data[j].Index
	})
	if len(resp.Data) != len(wire.Input) {
		return nil, &APIError{
			Kind:    ErrTransport,
			Message: fmt.Sprintf("expected %d embeddings, got %d", len(wire.Input), len(resp.Data)),
		}
	}

	return &resp, nil
}

// Embed returns the embedding vector of a single text using the configured
// default model.
func (c *EmbeddingsClient) Embed(ctx context.Context, text string) ([]float64, error) {
	req, err := NewEmbeddingsRequestBuilder().
		Input(text).
		Model(c.cfg.EmbeddingModel).
		Build()
	if err != nil {
		return nil, err
	}

	resp, err := c.CreateEmbeddings(ctx, req)
	if err != nil {
		return nil, err
	}
	return resp.Data[0].Embedding, nil
}

// EmbedBatch embeds any number of texts, splitting them into chunks of
// maxBatchSize embedded concurrently. The merged response preserves input
// order and sums usage across chunks. An empty input resolves immediately
// without any network call.
func (c *EmbeddingsClient) EmbedBatch(ctx context.Context, texts []string) (*EmbeddingsResponse, error) {
	if len(texts) == 0 {
		return &EmbeddingsResponse{Object: "list", Model: c.cfg.EmbeddingModel}, nil
	}

	if len(texts) <= maxBatchSize {
		req, err := NewEmbeddingsRequestBuilder().
			Input(texts...).
			Model(c.cfg.EmbeddingModel).
			Build()
		if err != nil {
			return nil, err
		}
		return c.CreateEmbeddings(ctx, req)
	}

	type chunk struct {
		start int
		texts []string
	}
	var chunks []chunk
	for start := 0; start < len(texts); start += maxBatchSize {
		end := start + maxBatchSize
		if end > len(texts) {
			end = len(texts)
		}
		chunks = append(chunks, chunk{start: start, texts: texts[start:end]})
	}

	c.logger.Debug("voyage: splitting batch", nil, map[string]interface{}{
		"inputs": len(texts),
		"chunks": len(chunks),
	})

	responses := make([]*EmbeddingsResponse, len(chunks))
	g, gctx := errgroup.WithContext(ctx)
	if c.cfg.MaxConcurrentRequests > 0 {
		g.SetLimit(c.cfg.MaxConcurrentRequests)
	}

	for i, ch := range chunks {
		i, ch := i, ch
		g.Go(func() error {
			req, err := NewEmbeddingsRequestBuilder().
				Input(ch.texts...).
				Model(c.cfg.EmbeddingModel).
				Build()
			if err != nil {
				return err
			}
			resp, err := c.CreateEmbeddings(gctx, req)
			if err != nil {
				return err
			}
			responses[i] = resp
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := &EmbeddingsResponse{
		Object: "list",
		Model:  c.cfg.EmbeddingModel,
		Data:   make([]EmbeddingData, 0, len(texts)),
	}
	for i, resp := range responses {
		for _, d := range resp.Data {
			d.Index = chunks[i].start + d.Index
			merged.Data = append(merged.Data, d)
		}
		merged.Usage.TotalTokens += resp.Usage.TotalTokens
	}

	return merged, nil
}
