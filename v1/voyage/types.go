package voyage

// InputType tags embedding inputs as queries or documents, which lets the
// model optimize the vector for retrieval. Empty means untagged.
type InputType string

const (
	InputTypeQuery    InputType = "query"
	InputTypeDocument InputType = "document"
)

// EncodingFormat selects the wire encoding for returned vectors.
type EncodingFormat string

const (
	// EncodingFloat returns embeddings as JSON arrays of numbers. This is
	// the default and the only format this client decodes.
	EncodingFloat EncodingFormat = "float"
)

// Known Voyage AI model identifiers. The API accepts any model string; these
// constants cover the documented models.
const (
	ModelVoyage3Large = "voyage-3-large"
	ModelVoyage35     = "voyage-3.5"
	ModelVoyage35Lite = "voyage-3.5-lite"
	ModelVoyageCode3  = "voyage-code-3"
	ModelRerank2      = "rerank-2"
	ModelRerank2Lite  = "rerank-2-lite"
	ModelRerank25     = "rerank-2.5"
	ModelRerank25Lite = "rerank-2.5-lite"

	DefaultEmbeddingModel = ModelVoyage3Large
	DefaultRerankModel    = ModelRerank2
)

// EmbeddingDimension returns the output vector size for known embedding
// models, or 0 for unknown models.
func EmbeddingDimension(model string) int {
	switch model {
	case ModelVoyage3Large:
		return 2048
	case ModelVoyage35, ModelVoyage35Lite, ModelVoyageCode3:
		return 1024
	default:
		return 0
	}
}

// ContextLength returns the maximum input length in tokens for known
// embedding models, or 0 for unknown models.
func ContextLength(model string) int {
	switch model {
	case ModelVoyage3Large, ModelVoyage35, ModelVoyage35Lite, ModelVoyageCode3:
		return 32000
	default:
		return 0
	}
}

// EmbeddingsRequest is the payload for the /embeddings endpoint. Construct
// it through EmbeddingsRequestBuilder; a built request is treated as
// immutable.
type EmbeddingsRequest struct {
	// Input is the ordered list of texts to embed.
	Input []string `json:"input"`

	// Model is the embedding model identifier.
	Model string `json:"model"`

	// InputType optionally tags the inputs as queries or documents.
	InputType InputType `json:"input_type,omitempty"`

	// Truncation controls whether over-length inputs are truncated by the
	// server instead of rejected. Nil leaves the server default.
	Truncation *bool `json:"truncation,omitempty"`

	// EncodingFormat selects the vector wire encoding.
	EncodingFormat EncodingFormat `json:"encoding_format,omitempty"`
}

// EmbeddingsResponse mirrors the /embeddings response body. Data preserves
// input order: Data[i] is the embedding of Input[i].
type EmbeddingsResponse struct {
	Object string          `json:"object"`
	Data   []EmbeddingData `json:"data"`
	Model  string          `json:"model"`
	Usage  Usage           `json:"usage"`
}

// Vectors returns the embedding vectors in input order.
func (r *EmbeddingsResponse) Vectors() [][]float64 {
	out := make([][]float64, len(r.Data))
	for i, d := range r.Data {
		out[i] = d.Embedding
	}
	return out
}

func (r *EmbeddingsResponse) usageTokens() int {
	return r.Usage.TotalTokens
}

// EmbeddingData is a single embedding vector with its position in the input.
type EmbeddingData struct {
	Object    string    `json:"object"`
	Embedding []float64 `json:"embedding"`
	Index     int       `json:"index"`
}

// Usage reports billed token counts for a request.
type Usage struct {
	TotalTokens int `json:"total_tokens"`
}

// Document is an immutable piece of text with an optional identifier.
type Document struct {
	// ID is an optional caller-assigned identifier carried through
	// reranking and search results.
	ID string

	// Text is the document content sent to the API.
	Text string
}

// RerankRequest asks the API to order Documents by relevance to Query.
// Construct it through RerankRequestBuilder; a built request is treated as
// immutable.
type RerankRequest struct {
	// Query is the text the documents are compared against.
	Query string

	// Documents is the ordered candidate list.
	Documents []Document

	// Model is the rerank model identifier.
	Model string

	// TopK limits the number of returned results; 0 returns all.
	TopK int
}

// RerankResponse is the parsed result of a rerank call. Results are sorted
// by non-increasing relevance.
type RerankResponse struct {
	Model   string
	Results []RerankResult
	Usage   Usage
}

// RerankResult ties a relevance score back to the originating document.
type RerankResult struct {
	// Index is the document's position in the request.
	Index int

	// RelevanceScore is the model-assigned similarity in [0.0, 1.0].
	RelevanceScore float64

	// Document is a copy of the originating document.
	Document Document
}

// DocumentSimilarity is one entry of a similarity ranking. Produced only as
// output and never mutated after creation.
type DocumentSimilarity struct {
	// Rank is the position in the ranking; 0 is the most similar.
	Rank int

	// Similarity is the relevance score in [0.0, 1.0]; higher is more
	// similar.
	Similarity float64

	// Document is a copy of the originating document.
	Document Document
}

// rerankBody is the wire payload for POST /rerank.
type rerankBody struct {
	Query     string   `json:"query"`
	Documents []string `json:"documents"`
	Model     string   `json:"model"`
	TopK      *int     `json:"top_k,omitempty"`
}

// rerankWireResponse is the wire shape of the /rerank response.
type rerankWireResponse struct {
	Object string           `json:"object"`
	Data   []rerankWireData `json:"data"`
	Model  string           `json:"model"`
	Usage  Usage            `json:"usage"`
}

func (r *rerankWireResponse) usageTokens() int {
	return r.Usage.TotalTokens
}

// rerankWireData is a single wire-level rerank result. The response carries
// no document text because the request never asks for it (return_documents
// stays off); results are tied back to the request's documents by Index.
type rerankWireData struct {
	Index          int     `json:"index"`
	RelevanceScore float64 `json:"relevance_score"`
}
