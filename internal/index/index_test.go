package index

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rag_reply_bot/pkg"
)

// stubEmbedder maps text to a deterministic bag-of-letters vector, so
// identical texts embed identically and closer texts score higher.
type stubEmbedder struct {
	calls int
}

func (s *stubEmbedder) Embed(_ context.Context, text string) ([]float64, error) {
	s.calls++
	vec := make([]float64, 26)
	for _, r := range strings.ToLower(text) {
		if r >= 'a' && r <= 'z' {
			vec[r-'a']++
		}
	}
	return vec, nil
}

func TestSearchEmptyIndex(t *testing.T) {
	emb := &stubEmbedder{}
	idx := NewSimilarityIndex(emb, t.TempDir())

	results, err := idx.Search(context.Background(), "anything", 3)
	require.NoError(t, err)
	assert.Empty(t, results)
	// No embedding call for an empty index.
	assert.Equal(t, 0, emb.calls)
}

func TestAddOnEmptyIndex(t *testing.T) {
	ctx := context.Background()
	idx := NewSimilarityIndex(&stubEmbedder{}, t.TempDir())

	require.NoError(t, idx.Add(ctx, pkg.TrainingExample{Input: "hello", Reply: "hi!", Language: "en"}))
	assert.Equal(t, 1, idx.Count())

	results, err := idx.Search(ctx, "hello", 3)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "hi!", results[0].Reply)
}

func TestSearchOrdering(t *testing.T) {
	ctx := context.Background()
	idx := NewSimilarityIndex(&stubEmbedder{}, t.TempDir())

	require.NoError(t, idx.Rebuild(ctx, []pkg.TrainingExample{
		{Input: "good morning", Reply: "morning!"},
		{Input: "xyzzy quux", Reply: "???"},
		{Input: "good morning friend", Reply: "hello friend"},
	}))

	results, err := idx.Search(ctx, "good morning", 3)
	require.NoError(t, err)
	require.Len(t, results, 3)
	// Exact match first, near-match second.
	assert.Equal(t, "morning!", results[0].Reply)
	assert.Equal(t, "hello friend", results[1].Reply)
	assert.True(t, results[0].Score >= results[1].Score)
	assert.True(t, results[1].Score >= results[2].Score)
}

func TestSearchLimitsToK(t *testing.T) {
	ctx := context.Background()
	idx := NewSimilarityIndex(&stubEmbedder{}, t.TempDir())

	require.NoError(t, idx.Rebuild(ctx, []pkg.TrainingExample{
		{Input: "a", Reply: "1"},
		{Input: "b", Reply: "2"},
		{Input: "c", Reply: "3"},
	}))

	results, err := idx.Search(ctx, "a", 2)
	require.NoError(t, err)
	assert.Len(t, results, 2)
}

func TestIndexCountGrowsMonotonically(t *testing.T) {
	ctx := context.Background()
	idx := NewSimilarityIndex(&stubEmbedder{}, t.TempDir())

	for i, input := range []string{"one", "two", "three"} {
		require.NoError(t, idx.Add(ctx, pkg.TrainingExample{Input: input, Reply: input}))
		assert.Equal(t, i+1, idx.Count())
	}
}

func TestSnapshotReload(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	idx := NewSimilarityIndex(&stubEmbedder{}, dir)
	require.NoError(t, idx.Rebuild(ctx, []pkg.TrainingExample{
		{Input: "hello", Reply: "hi!"},
		{Input: "bye", Reply: "see you"},
	}))

	// A fresh index over the same dir picks up the snapshot without
	// re-embedding.
	emb := &stubEmbedder{}
	idx2 := NewSimilarityIndex(emb, dir)
	assert.Equal(t, 2, idx2.Count())
	assert.Equal(t, 0, emb.calls)

	results, err := idx2.Search(ctx, "hello", 1)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "hi!", results[0].Reply)
}

func TestCosineSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, cosineSimilarity([]float64{1, 2, 3}, []float64{1, 2, 3}), 1e-9)
	assert.InDelta(t, 0.0, cosineSimilarity([]float64{1, 0}, []float64{0, 1}), 1e-9)
	assert.Equal(t, 0.0, cosineSimilarity([]float64{1, 2}, []float64{1, 2, 3}))
	assert.Equal(t, 0.0, cosineSimilarity([]float64{0, 0}, []float64{1, 1}))
}
