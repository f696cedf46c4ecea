package nodes

import (
	"context"

	"rag_reply_bot/internal/core"
	"rag_reply_bot/internal/personality"
	"rag_reply_bot/internal/storage"
)

// ContextNode assembles the read-only generation context: formatted
// conversation history, long-term memory summary and the active
// personality's system prompt.
type ContextNode struct {
	conversations *storage.ConversationMemory
	memory        *storage.LongTermMemory
	personalities *personality.Registry
}

// NewContextNode creates the context assembly stage.
func NewContextNode(conversations *storage.ConversationMemory, memory *storage.LongTermMemory, personalities *personality.Registry) *ContextNode {
	return &ContextNode{
		conversations: conversations,
		memory:        memory,
		personalities: personalities,
	}
}

func (n *ContextNode) GetName() string {
	return "assemble_context"
}

func (n *ContextNode) Execute(ctx context.Context, state *core.ReplyState) error {
	formatted, err := n.conversations.GetFormattedContext(ctx, state.UserID)
	if err != nil {
		return err
	}

	state.ConversationContext = formatted
	state.MemorySummary = n.memory.GetFormattedMemory(state.UserID)
	state.SystemPrompt = n.personalities.SystemPrompt()
	return nil
}
