package index

import (
	"context"
	"fmt"
	"math"
	"path/filepath"
	"sort"
	"sync"

	"github.com/bytedance/sonic"

	"rag_reply_bot/internal/logger"
	"rag_reply_bot/pkg"
)

// Embedder produces a fixed-length vector for a text, deterministic for a
// given model + input.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float64, error)
}

// indexEntry is a training example plus its embedding and corpus position.
// Entries are only appended, except on full rebuild.
type indexEntry struct {
	pkg.TrainingExample
	Embedding []float64 `json:"embedding"`
	Position  int       `json:"position"`
}

type snapshot struct {
	Entries []indexEntry `json:"entries"`
}

// SimilarityIndex ranks stored examples by cosine similarity of their
// embeddings against a query. The on-disk snapshot is fully regenerable
// from the example store, so losing it only costs a rebuild.
type SimilarityIndex struct {
	mu       sync.RWMutex
	embedder Embedder
	path     string
	entries  []indexEntry
}

// NewSimilarityIndex creates an index persisted under dir, loading a prior
// snapshot when one exists. A corrupt snapshot is discarded, not fatal.
func NewSimilarityIndex(embedder Embedder, dir string) *SimilarityIndex {
	idx := &SimilarityIndex{
		embedder: embedder,
		path:     filepath.Join(dir, "index.json"),
	}

	var snap snapshot
	if found, err := readSnapshot(idx.path, &snap); err != nil {
		logger.Warn().Err(err).Msg("Discarding unreadable index snapshot")
	} else if found {
		idx.entries = snap.Entries
		logger.Info().Int("entries", len(idx.entries)).Msg("🔍 Similarity index loaded")
	}
	return idx
}

// Count returns the number of indexed examples.
func (idx *SimilarityIndex) Count() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.entries)
}

// Search returns up to k examples most similar to the query, best first.
// An empty index returns an empty list without calling the embedder.
func (idx *SimilarityIndex) Search(ctx context.Context, query string, k int) ([]pkg.RetrievedExample, error) {
	if idx.Count() == 0 || k <= 0 {
		return []pkg.RetrievedExample{}, nil
	}

	// Embedding is the suspension point; keep it outside the lock.
	queryVec, err := idx.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	idx.mu.RLock()
	scored := make([]pkg.RetrievedExample, 0, len(idx.entries))
	for _, entry := range idx.entries {
		scored = append(scored, pkg.RetrievedExample{
			Input:    entry.Input,
			Reply:    entry.Reply,
			Language: entry.Language,
			Score:    cosineSimilarity(queryVec, entry.Embedding),
		})
	}
	idx.mu.RUnlock()

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	if len(scored) > k {
		scored = scored[:k]
	}
	return scored, nil
}

// Add embeds one example and appends it to the index.
func (idx *SimilarityIndex) Add(ctx context.Context, example pkg.TrainingExample) error {
	vec, err := idx.embedder.Embed(ctx, example.Input)
	if err != nil {
		return fmt.Errorf("failed to embed example: %w", err)
	}

	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.entries = append(idx.entries, indexEntry{
		TrainingExample: example,
		Embedding:       vec,
		Position:        len(idx.entries),
	})
	idx.saveLocked()
	return nil
}

// Rebuild replaces the index with entries for the given corpus, in order.
func (idx *SimilarityIndex) Rebuild(ctx context.Context, examples []pkg.TrainingExample) error {
	entries := make([]indexEntry, 0, len(examples))
	for i, example := range examples {
		vec, err := idx.embedder.Embed(ctx, example.Input)
		if err != nil {
			return fmt.Errorf("failed to embed example %d: %w", i, err)
		}
		entries = append(entries, indexEntry{
			TrainingExample: example,
			Embedding:       vec,
			Position:        i,
		})
	}

	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.entries = entries
	idx.saveLocked()
	logger.Info().Int("entries", len(entries)).Msg("🔄 Similarity index rebuilt")
	return nil
}

// saveLocked persists the snapshot best-effort; the in-memory index stays
// authoritative when the write fails. Callers must hold the write lock.
func (idx *SimilarityIndex) saveLocked() {
	if err := writeSnapshot(idx.path, snapshot{Entries: idx.entries}); err != nil {
		logger.Error().Err(err).Msg("Failed to persist index snapshot")
	}
}

// cosineSimilarity is the ranking metric. Mismatched or zero vectors score 0.
func cosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

func readSnapshot(path string, snap *snapshot) (bool, error) {
	data, err := readFile(path)
	if err != nil {
		return false, err
	}
	if data == nil {
		return false, nil
	}
	if err := sonic.Unmarshal(data, snap); err != nil {
		return true, fmt.Errorf("failed to parse index snapshot: %w", err)
	}
	return true, nil
}

func writeSnapshot(path string, snap snapshot) error {
	data, err := sonic.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to marshal index snapshot: %w", err)
	}
	return writeFile(path, data)
}
