package voyage

import (
	"context"
	"fmt"
	"sort"
)

// RerankClient executes document ranking requests against the /rerank
// endpoint. It is created by the facade Client and shares its transport.
type RerankClient struct {
	cfg       *Config
	transport *transport
	logger    Logger
}

func newRerankClient(cfg *Config, t *transport, logger Logger) *RerankClient {
	return &RerankClient{cfg: cfg, transport: t, logger: logger}
}

// Rerank orders the request's documents by relevance to the query. Results
// are sorted by non-increasing relevance score and each result carries a
// copy of the originating document.
//
// A request without a model falls back to the configured default rerank
// model. An empty document list is rejected before any network call.
func (c *RerankClient) Rerank(ctx context.Context, req *RerankRequest) (*RerankResponse, error) {
	if req == nil || req.Query == "" {
		return nil, fmt.Errorf("%w: query is required", ErrValidation)
	}
	if len(req.Documents) == 0 {
		return nil, fmt.Errorf("%w: at least one document is required", ErrValidation)
	}
	if req.TopK < 0 {
		return nil, fmt.Errorf("%w: top_k must not be negative", ErrValidation)
	}

	model := req.Model
	if model == "" {
		model = c.cfg.RerankModel
	}

	texts := make([]string, len(req.Documents))
	for i, d := range req.Documents {
		texts[i] = d.Text
	}

	body := rerankBody{
		Query:     req.Query,
		Documents: texts,
		Model:     model,
	}
	if req.TopK > 0 {
		body.TopK = &req.TopK
	}

	var wire rerankWireResponse
	est := estimateRerankTokens(req.Query, texts)
	if err := c.transport.postJSON(ctx, opRerank, "/rerank", model, &body, &wire, est); err != nil {
		return nil, err
	}

	// The API returns results ordered by relevance already; sorting here
	// makes the ordering a guarantee of this client rather than a
	// server-side courtesy.
	sort.SliceStable(wire.Data, func(i, j int) bool {
		return wire.Data[i].RelevanceScore > wire.Data[j].RelevanceScore
	})

	resp := &RerankResponse{
		Model:   wire.Model,
		Usage:   wire.Usage,
		Results: make([]RerankResult, 0, len(wire.Data)),
	}
	for _, d := range wire.Data {
		if d.Index < 0 || d.Index >= len(req.Documents) {
			return nil, &APIError{
				Kind:    ErrTransport,
				Message: fmt.Sprintf("result references document %d of %d", d.Index, len(req.Documents)),
			}
		}
		resp.Results = append(resp.Results, RerankResult{
			Index:          d.Index,
			RelevanceScore: d.RelevanceScore,
			Document:       req.Documents[d.Index],
		})
	}

	return resp, nil
}

// similarities converts a rerank response into DocumentSimilarity values
// with dense ranks starting at 0.
func similarities(resp *RerankResponse) []DocumentSimilarity {
	out := make([]DocumentSimilarity, len(resp.Results))
	for rank, r := range resp.Results {
		out[rank] = DocumentSimilarity{
			Rank:       rank,
			Similarity: r.RelevanceScore,
			Document:   r.Document,
		}
	}
	return out
}
