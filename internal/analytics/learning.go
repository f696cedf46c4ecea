package analytics

import (
	"context"
	"fmt"
	"sync"
	"time"

	"rag_reply_bot/internal/index"
	"rag_reply_bot/internal/logger"
	"rag_reply_bot/internal/storage"
	"rag_reply_bot/pkg"
)

// CorrectionAck is returned to the user after a correction is absorbed.
const CorrectionAck = "Thanks! I've learned from your correction."

// LearningSystem closes the self-learning loop: runtime corrections become
// training examples, which are pushed into the similarity index so future
// retrieval sees them.
type LearningSystem struct {
	mu        sync.Mutex
	store     *storage.ExampleStore
	index     *index.SimilarityIndex
	analytics *Analytics
	pending   []pkg.Correction
}

// NewLearningSystem wires the correction loop to its stores.
func NewLearningSystem(store *storage.ExampleStore, idx *index.SimilarityIndex, a *Analytics) *LearningSystem {
	return &LearningSystem{store: store, index: idx, analytics: a}
}

// AddCorrection appends exactly one training example {query, corrected,
// "en"} to the example store and the similarity index, and records the
// correction. Empty fields are rejected before any state is mutated.
// Corrections always tag the new example as English, whatever language the
// query was detected in.
func (l *LearningSystem) AddCorrection(ctx context.Context, userID, query, original, corrected string) (string, error) {
	if query == "" || corrected == "" {
		return "", fmt.Errorf("correction query and corrected reply are required")
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	example := pkg.TrainingExample{Input: query, Reply: corrected, Language: "en"}

	// Index first: an embedding failure aborts the correction without
	// breaking the store/index count invariant.
	if err := l.index.Add(ctx, example); err != nil {
		return "", fmt.Errorf("failed to index correction: %w", err)
	}
	if err := l.store.Append(example); err != nil {
		logger.Error().Err(err).Msg("Correction kept in memory, training data save failed")
	}

	correction := pkg.Correction{
		UserID:    userID,
		Query:     query,
		Original:  original,
		Corrected: corrected,
		Timestamp: time.Now(),
	}
	l.pending = append(l.pending, correction)
	l.analytics.TrackCorrection(correction)

	logger.Info().Str("user_id", userID).Msg("📝 Correction absorbed into training data")
	return CorrectionAck, nil
}

// PendingCorrections returns the last 10 corrections recorded this process.
func (l *LearningSystem) PendingCorrections() []pkg.Correction {
	l.mu.Lock()
	defer l.mu.Unlock()

	pending := l.pending
	if len(pending) > 10 {
		pending = pending[len(pending)-10:]
	}
	out := make([]pkg.Correction, len(pending))
	copy(out, pending)
	return out
}
