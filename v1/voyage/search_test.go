package voyage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCosineSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, CosineSimilarity([]float64{1, 2, 3}, []float64{1, 2, 3}), 1e-9)
	assert.InDelta(t, 0.0, CosineSimilarity([]float64{1, 0}, []float64{0, 1}), 1e-9)
	assert.InDelta(t, -1.0, CosineSimilarity([]float64{1, 0}, []float64{-1, 0}), 1e-9)
	assert.InDelta(t, 1.0, CosineSimilarity([]float64{2, 0}, []float64{5, 0}), 1e-9)

	assert.Equal(t, 0.0, CosineSimilarity(nil, nil))
	assert.Equal(t, 0.0, CosineSimilarity([]float64{1}, []float64{1, 2}))
	assert.Equal(t, 0.0, CosineSimilarity([]float64{0, 0}, []float64{1, 1}))
}

func TestSearchRanksByCosineSimilarity(t *testing.T) {
	vectors := map[string][]float64{
		"the query":  {1, 0},
		"orthogonal": {0, 1},
		"identical":  {1, 0},
		"close":      {0.8, 0.6},
	}
	client, calls := newTestClient(t, Config{}, serveEmbeddings(t, func(text string) []float64 {
		return vectors[text]
	}))

	results, err := client.Search(context.Background(), &SearchRequest{
		Query: "the query",
		Documents: []Document{
			{ID: "0", Text: "orthogonal"},
			{ID: "1", Text: "identical"},
			{ID: "2", Text: "close"},
		},
	})
	require.NoError(t, err)

	// One call for the query, one for the documents.
	assert.Equal(t, int32(2), calls.Load())

	require.Len(t, results, 3)
	assert.Equal(t, "identical", results[0].Document.Text)
	assert.Equal(t, 1, results[0].Index)
	assert.InDelta(t, 1.0, results[0].Score, 1e-9)

	assert.Equal(t, "close", results[1].Document.Text)
	assert.InDelta(t, 0.8, results[1].Score, 1e-9)

	assert.Equal(t, "orthogonal", results[2].Document.Text)
	assert.InDelta(t, 0.0, results[2].Score, 1e-9)
}

func TestSearchTopK(t *testing.T) {
	vectors := map[string][]float64{
		"q": {1, 0},
		"a": {1, 0},
		"b": {0.8, 0.6},
		"c": {0, 1},
	}
	client, _ := newTestClient(t, Config{}, serveEmbeddings(t, func(text string) []float64 {
		return vectors[text]
	}))

	results, err := client.Search(context.Background(), &SearchRequest{
		Query: "q",
		Documents: []Document{
			{Text: "a"}, {Text: "b"}, {Text: "c"},
		},
		TopK: 2,
	})
	require.NoError(t, err)

	require.Len(t, results, 2)
	assert.Equal(t, "a", results[0].Document.Text)
	assert.Equal(t, "b", results[1].Document.Text)
}

func TestSearchValidation(t *testing.T) {
	client, calls := newTestClient(t, Config{}, serveEmbeddings(t, func(string) []float64 {
		return []float64{1}
	}))

	ctx := context.Background()

	_, err := client.Search(ctx, nil)
	assert.True(t, IsValidationError(err))

	_, err = client.Search(ctx, &SearchRequest{Query: "q"})
	assert.True(t, IsValidationError(err))

	_, err = client.Search(ctx, &SearchRequest{Query: "q", Documents: []Document{{Text: "d"}}, TopK: -1})
	assert.True(t, IsValidationError(err))

	assert.Equal(t, int32(0), calls.Load())
}
