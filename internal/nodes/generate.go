package nodes

import (
	"context"

	"rag_reply_bot/internal/core"
	"rag_reply_bot/internal/generate"
)

// GenerateNode produces the reply text: a single model call when
// candidates exist, a random fallback string otherwise.
type GenerateNode struct {
	generator *generate.ReplyGenerator
}

// NewGenerateNode creates the generation stage.
func NewGenerateNode(generator *generate.ReplyGenerator) *GenerateNode {
	return &GenerateNode{generator: generator}
}

func (n *GenerateNode) GetName() string {
	return "generate"
}

func (n *GenerateNode) Execute(ctx context.Context, state *core.ReplyState) error {
	reply, isFallback, err := n.generator.GenerateReply(
		ctx,
		state.Query,
		state.Candidates,
		state.ConversationContext,
		state.MemorySummary,
		state.SystemPrompt,
		state.MoodModifier,
	)
	if err != nil {
		return err
	}

	state.Reply = reply
	state.IsFallback = isFallback
	return nil
}
