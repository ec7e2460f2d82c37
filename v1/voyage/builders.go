package voyage

import "fmt"

// EmbeddingsRequestBuilder accumulates the fields of an EmbeddingsRequest
// through chained calls. Build performs all validation; no network or side
// effects occur while building.
type EmbeddingsRequestBuilder struct {
	input          []string
	model          string
	inputType      InputType
	truncation     *bool
	encodingFormat EncodingFormat
}

// NewEmbeddingsRequestBuilder returns an empty builder.
func NewEmbeddingsRequestBuilder() *EmbeddingsRequestBuilder {
	return &EmbeddingsRequestBuilder{}
}

// Input appends one or more texts to embed.
func (b *EmbeddingsRequestBuilder) Input(texts ...string) *EmbeddingsRequestBuilder {
	b.input = append(b.input, texts...)
	return b
}

// Model sets the embedding model identifier.
func (b *EmbeddingsRequestBuilder) Model(model string) *EmbeddingsRequestBuilder {
	b.model = model
	return b
}

// InputType tags the inputs as queries or documents.
func (b *EmbeddingsRequestBuilder) InputType(t InputType) *EmbeddingsRequestBuilder {
	b.inputType = t
	return b
}

// Truncation controls server-side truncation of over-length inputs.
func (b *EmbeddingsRequestBuilder) Truncation(enabled bool) *EmbeddingsRequestBuilder {
	b.truncation = &enabled
	return b
}

// EncodingFormat selects the vector wire encoding.
func (b *EmbeddingsRequestBuilder) EncodingFormat(f EncodingFormat) *EmbeddingsRequestBuilder {
	b.encodingFormat = f
	return b
}

// Build validates the accumulated fields and produces an immutable request.
// It fails with a validation error when input texts or the model are
// missing.
func (b *EmbeddingsRequestBuilder) Build() (*EmbeddingsRequest, error) {
	if len(b.input) == 0 {
		return nil, fmt.Errorf("%w: input is required", ErrValidation)
	}
	if b.model == "" {
		return nil, fmt.Errorf("%w: model is required", ErrValidation)
	}

	// Copy the input so later builder reuse cannot mutate the request.
	input := make([]string, len(b.input))
	copy(input, b.input)

	return &EmbeddingsRequest{
		Input:          input,
		Model:          b.model,
		InputType:      b.inputType,
		Truncation:     b.truncation,
		EncodingFormat: b.encodingFormat,
	}, nil
}

// RerankRequestBuilder accumulates the fields of a RerankRequest through
// chained calls. Build performs all validation; no network or side effects
// occur while building.
type RerankRequestBuilder struct {
	query     string
	documents []Document
	model     string
	topK      int
}

// NewRerankRequestBuilder returns an empty builder.
func NewRerankRequestBuilder() *RerankRequestBuilder {
	return &RerankRequestBuilder{}
}

// Query sets the text the documents are compared against.
func (b *RerankRequestBuilder) Query(query string) *RerankRequestBuilder {
	b.query = query
	return b
}

// AddDocument appends a single document given as plain text.
func (b *RerankRequestBuilder) AddDocument(text string) *RerankRequestBuilder {
	b.documents = append(b.documents, Document{Text: text})
	return b
}

// AddDocuments appends multiple documents given as plain text.
func (b *RerankRequestBuilder) AddDocuments(texts ...string) *RerankRequestBuilder {
	for _, t := range texts {
		b.documents = append(b.documents, Document{Text: t})
	}
	return b
}

// AddDocumentValue appends a Document value, keeping its identifier.
func (b *RerankRequestBuilder) AddDocumentValue(doc Document) *RerankRequestBuilder {
	b.documents = append(b.documents, doc)
	return b
}

// Model sets the rerank model identifier.
func (b *RerankRequestBuilder) Model(model string) *RerankRequestBuilder {
	b.model = model
	return b
}

// TopK limits the number of returned results.
func (b *RerankRequestBuilder) TopK(k int) *RerankRequestBuilder {
	b.topK = k
	return b
}

// Build validates the accumulated fields and produces an immutable request.
// It fails with a validation error when the query, the documents or the
// model are missing.
func (b *RerankRequestBuilder) Build() (*RerankRequest, error) {
	if b.query == "" {
		return nil, fmt.Errorf("%w: query is required", ErrValidation)
	}
	if len(b.documents) == 0 {
		return nil, fmt.Errorf("%w: at least one document is required", ErrValidation)
	}
	if b.model == "" {
		return nil, fmt.Errorf("%w: model is required", ErrValidation)
	}
	if b.topK < 0 {
		return nil, fmt.Errorf("%w: top_k must not be negative", ErrValidation)
	}

	documents := make([]Document, len(b.documents))
	copy(documents, b.documents)

	return &RerankRequest{
		Query:     b.query,
		Documents: documents,
		Model:     b.model,
		TopK:      b.topK,
	}, nil
}
