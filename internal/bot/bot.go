package bot

import (
	"context"
	"fmt"
	"time"

	"rag_reply_bot/internal/analytics"
	"rag_reply_bot/internal/core"
	"rag_reply_bot/internal/detect"
	"rag_reply_bot/internal/generate"
	"rag_reply_bot/internal/index"
	"rag_reply_bot/internal/logger"
	"rag_reply_bot/internal/nodes"
	"rag_reply_bot/internal/personality"
	"rag_reply_bot/internal/storage"
	"rag_reply_bot/pkg"
)

// Options carries the injected stateful services. Every shared store is an
// explicit object so tests can swap in isolated instances.
type Options struct {
	Store         *storage.ExampleStore
	Index         *index.SimilarityIndex
	Conversations *storage.ConversationMemory
	Memory        *storage.LongTermMemory
	Analytics     *analytics.Analytics
	Personalities *personality.Registry
	Generator     *generate.ReplyGenerator
	MaxResults    int
	MinScore      float64
}

// Bot is the reply engine facade: one logical assistant process shared by
// many users identified by opaque user ids.
type Bot struct {
	store         *storage.ExampleStore
	index         *index.SimilarityIndex
	conversations *storage.ConversationMemory
	memory        *storage.LongTermMemory
	analytics     *analytics.Analytics
	personalities *personality.Registry
	learning      *analytics.LearningSystem
	pipeline      *core.Pipeline
}

// New wires the pipeline and ensures the similarity index is consistent
// with the example store: a non-empty store with a stale or missing index
// triggers a full rebuild before the first lookup.
func New(ctx context.Context, opts Options) (*Bot, error) {
	if opts.MaxResults <= 0 {
		opts.MaxResults = 3
	}

	if opts.Store.Count() > 0 && opts.Index.Count() != opts.Store.Count() {
		logger.Info().
			Int("store", opts.Store.Count()).
			Int("index", opts.Index.Count()).
			Msg("🔄 Index out of sync with training data, rebuilding")
		if err := opts.Index.Rebuild(ctx, opts.Store.All()); err != nil {
			return nil, fmt.Errorf("failed to rebuild similarity index: %w", err)
		}
	}

	pipeline := core.NewPipeline(
		nodes.NewLanguageNode(detect.NewLanguageDetector()),
		nodes.NewMoodNode(detect.NewMoodDetector()),
		nodes.NewContextNode(opts.Conversations, opts.Memory, opts.Personalities),
		nodes.NewRetrieveNode(opts.Index, opts.MaxResults, opts.MinScore),
		nodes.NewGenerateNode(opts.Generator),
		nodes.NewRecordNode(opts.Conversations, opts.Analytics),
	)

	return &Bot{
		store:         opts.Store,
		index:         opts.Index,
		conversations: opts.Conversations,
		memory:        opts.Memory,
		analytics:     opts.Analytics,
		personalities: opts.Personalities,
		learning:      analytics.NewLearningSystem(opts.Store, opts.Index, opts.Analytics),
		pipeline:      pipeline,
	}, nil
}

// Reply runs the full pipeline and returns the final request state.
func (b *Bot) Reply(ctx context.Context, message, userID string) (*core.ReplyState, error) {
	return b.pipeline.Execute(ctx, message, userID)
}

// GetReply runs the full pipeline and returns the reply text.
func (b *Bot) GetReply(ctx context.Context, message, userID string) (string, error) {
	state, err := b.Reply(ctx, message, userID)
	if err != nil {
		return "", err
	}
	return state.Reply, nil
}

// Train appends a training example to the corpus and the index.
func (b *Bot) Train(ctx context.Context, input, reply, language string) error {
	if input == "" || reply == "" {
		return fmt.Errorf("training input and reply are required")
	}
	example := pkg.TrainingExample{Input: input, Reply: reply, Language: language}

	// Index first so an embedding failure leaves the corpus untouched and
	// the store/index counts equal.
	if err := b.index.Add(ctx, example); err != nil {
		return err
	}
	return b.store.Append(example)
}

// Correct folds a corrected reply back into the training corpus and
// returns the acknowledgement string.
func (b *Bot) Correct(ctx context.Context, query, original, corrected, userID string) (string, error) {
	return b.learning.AddCorrection(ctx, userID, query, original, corrected)
}

// GetTrainingExamples returns the corpus in insertion order.
func (b *Bot) GetTrainingExamples() []pkg.TrainingExample {
	return b.store.All()
}

// GetStats returns the analytics snapshot.
func (b *Bot) GetStats() pkg.Stats {
	return b.analytics.GetStats()
}

// GetDailyStats returns message counts for the last `days` days.
func (b *Bot) GetDailyStats(days int) map[string]int {
	return b.analytics.GetDailyStats(days)
}

// PendingCorrections returns the last corrections recorded this process.
func (b *Bot) PendingCorrections() []pkg.Correction {
	return b.learning.PendingCorrections()
}

// TrackFeedback records user feedback on a reply.
func (b *Bot) TrackFeedback(userID, reply, feedbackType string) {
	b.analytics.TrackFeedback(pkg.Feedback{
		UserID:    userID,
		Reply:     reply,
		Type:      feedbackType,
		Timestamp: time.Now(),
	})
}

// SetPersonality switches the process-wide active personality.
func (b *Bot) SetPersonality(key string) error {
	return b.personalities.SetPersonality(key)
}

// ListPersonalities returns the available profiles.
func (b *Bot) ListPersonalities() []pkg.PersonalityProfile {
	return b.personalities.List()
}

// ClearConversation empties a user's conversation history.
func (b *Bot) ClearConversation(ctx context.Context, userID string) error {
	return b.conversations.ClearConversation(ctx, userID)
}

// AddMemory stores a long-term fact about a user.
func (b *Bot) AddMemory(userID, fact string) error {
	return b.memory.AddFact(userID, fact, "general")
}

// GetConversationSummary returns a readable summary of a user's history.
func (b *Bot) GetConversationSummary(ctx context.Context, userID string) (string, error) {
	return b.conversations.GetConversationSummary(ctx, userID)
}
