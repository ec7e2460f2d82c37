package voyage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddingsRequestBuilder(t *testing.T) {
	req, err := NewEmbeddingsRequestBuilder().
		Input("first", "second").
		Model(ModelVoyage35).
		InputType(InputTypeDocument).
		Truncation(true).
		EncodingFormat(EncodingFloat).
		Build()
	require.NoError(t, err)

	assert.Equal(t, []string{"first", "second"}, req.Input)
	assert.Equal(t, ModelVoyage35, req.Model)
	assert.Equal(t, InputTypeDocument, req.InputType)
	require.NotNil(t, req.Truncation)
	assert.True(t, *req.Truncation)
	assert.Equal(t, EncodingFloat, req.EncodingFormat)
}

func TestEmbeddingsRequestBuilderValidation(t *testing.T) {
	cases := []struct {
		name    string
		builder *EmbeddingsRequestBuilder
	}{
		{"missing input", NewEmbeddingsRequestBuilder().Model(ModelVoyage35)},
		{"missing model", NewEmbeddingsRequestBuilder().Input("text")},
		{"empty builder", NewEmbeddingsRequestBuilder()},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.builder.Build()
			require.Error(t, err)
			assert.True(t, IsValidationError(err))
		})
	}
}

func TestEmbeddingsRequestBuilderCopiesInput(t *testing.T) {
	builder := NewEmbeddingsRequestBuilder().Input("a").Model(ModelVoyage35)

	first, err := builder.Build()
	require.NoError(t, err)

	builder.Input("b")
	second, err := builder.Build()
	require.NoError(t, err)

	assert.Equal(t, []string{"a"}, first.Input)
	assert.Equal(t, []string{"a", "b"}, second.Input)
}

func TestRerankRequestBuilder(t *testing.T) {
	req, err := NewRerankRequestBuilder().
		Query("which doc").
		AddDocument("plain").
		AddDocuments("one", "two").
		AddDocumentValue(Document{ID: "doc-4", Text: "tagged"}).
		Model(ModelRerank2).
		TopK(3).
		Build()
	require.NoError(t, err)

	assert.Equal(t, "which doc", req.Query)
	require.Len(t, req.Documents, 4)
	assert.Equal(t, "plain", req.Documents[0].Text)
	assert.Equal(t, "doc-4", req.Documents[3].ID)
	assert.Equal(t, ModelRerank2, req.Model)
	assert.Equal(t, 3, req.TopK)
}

func TestRerankRequestBuilderValidation(t *testing.T) {
	cases := []struct {
		name    string
		builder *RerankRequestBuilder
	}{
		{"missing query", NewRerankRequestBuilder().AddDocument("d").Model(ModelRerank2)},
		{"missing documents", NewRerankRequestBuilder().Query("q").Model(ModelRerank2)},
		{"missing model", NewRerankRequestBuilder().Query("q").AddDocument("d")},
		{"negative top_k", NewRerankRequestBuilder().Query("q").AddDocument("d").Model(ModelRerank2).TopK(-1)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.builder.Build()
			require.Error(t, err)
			assert.True(t, IsValidationError(err))
		})
	}
}
