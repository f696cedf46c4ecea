package nodes

import (
	"context"

	"rag_reply_bot/internal/core"
	"rag_reply_bot/internal/detect"
)

// LanguageNode sets the request language via the language detector. Pure.
type LanguageNode struct {
	detector *detect.LanguageDetector
}

// NewLanguageNode creates the language detection stage.
func NewLanguageNode(detector *detect.LanguageDetector) *LanguageNode {
	return &LanguageNode{detector: detector}
}

func (n *LanguageNode) GetName() string {
	return "detect_language"
}

func (n *LanguageNode) Execute(ctx context.Context, state *core.ReplyState) error {
	state.Language = n.detector.Detect(state.Query)
	return nil
}
