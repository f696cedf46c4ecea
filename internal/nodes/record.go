package nodes

import (
	"context"

	"rag_reply_bot/internal/analytics"
	"rag_reply_bot/internal/core"
	"rag_reply_bot/internal/logger"
	"rag_reply_bot/internal/storage"
)

// RecordNode applies the post-generation side effects: the user message
// and the generated reply go into conversation memory (user first, both
// stamped with the detected mood and language), and usage counters are
// incremented. Runs on the fallback branch too.
type RecordNode struct {
	conversations *storage.ConversationMemory
	analytics     *analytics.Analytics
}

// NewRecordNode creates the side-effect stage.
func NewRecordNode(conversations *storage.ConversationMemory, a *analytics.Analytics) *RecordNode {
	return &RecordNode{conversations: conversations, analytics: a}
}

func (n *RecordNode) GetName() string {
	return "record"
}

func (n *RecordNode) Execute(ctx context.Context, state *core.ReplyState) error {
	if err := n.conversations.AddMessage(ctx, state.UserID, "user", state.Query, state.Mood.Mood, state.Language); err != nil {
		logger.Error().Err(err).Msg("Failed to record user message")
	}
	if err := n.conversations.AddMessage(ctx, state.UserID, "assistant", state.Reply, state.Mood.Mood, state.Language); err != nil {
		logger.Error().Err(err).Msg("Failed to record assistant message")
	}

	n.analytics.TrackMessage(state.UserID, state.Mood.Mood, state.Language)
	return nil
}
