package voyage

import (
	"context"
	"fmt"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// SearchRequest describes a client-side semantic search: the query and the
// candidate documents are embedded and ranked locally by cosine similarity,
// without the rerank endpoint.
type SearchRequest struct {
	// Query is the search text.
	Query string

	// Documents are the candidates to rank.
	Documents []Document

	// TopK limits the number of returned results; 0 returns all.
	TopK int

	// Model overrides the configured default embedding model.
	Model string
}

// SearchResult is one ranked candidate of a local semantic search.
type SearchResult struct {
	// Index is the document's position in the request.
	Index int

	// Score is the cosine similarity between query and document vectors,
	// in [-1.0, 1.0].
	Score float64

	// Document is a copy of the originating document.
	Document Document
}

// Search embeds the query and the documents, ranks the documents by cosine
// similarity to the query and returns them in descending score order.
//
// Two embedding calls are issued (query-tagged and document-tagged); the
// ranking itself happens locally. Use Rerank when ranking quality matters
// more than cost: the rerank models score query/document pairs jointly.
func (c *Client) Search(ctx context.Context, req *SearchRequest) ([]SearchResult, error) {
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
		model = c.cfg.EmbeddingModel
	}

	queryReq, err := NewEmbeddingsRequestBuilder().
		Input(req.Query).
		Model(model).
		InputType(InputTypeQuery).
		Build()
	if err != nil {
		return nil, err
	}
	queryResp, err := c.embeddings.CreateEmbeddings(ctx, queryReq)
	if err != nil {
		return nil, err
	}
	queryVec := queryResp.Data[0].Embedding

	texts := make([]string, len(req.Documents))
	for i, d := range req.Documents {
		texts[i] = d.Text
	}
	docsBuilder := NewEmbeddingsRequestBuilder().
		Input(texts...).
		Model(model).
		InputType(InputTypeDocument)
	docsReq, err := docsBuilder.Build()
	if err != nil {
		return nil, err
	}
	docsResp, err := c.embeddings.CreateEmbeddings(ctx, docsReq)
	if err != nil {
		return nil, err
	}

	results := make([]SearchResult, len(req.Documents))
	for i, d := range docsResp.Data {
		results[i] = SearchResult{
			Index:    i,
			Score:    CosineSimilarity(queryVec, d.Embedding),
			Document: req.Documents[i],
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if req.TopK > 0 && req.TopK < len(results) {
		results = results[:req.TopK]
	}
	return results, nil
}

// CosineSimilarity returns the cosine of the angle between two vectors.
// Mismatched lengths, empty vectors and zero vectors yield 0.
func CosineSimilarity(a, b []float64) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}

	dot := floats.Dot(a, b)
	normA := floats.Norm(a, 2)
	normB := floats.Norm(b, 2)
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (normA * normB)
}
