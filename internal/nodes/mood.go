package nodes

import (
	"context"

	"rag_reply_bot/internal/core"
	"rag_reply_bot/internal/detect"
)

// MoodNode sets the mood label, confidence and the mood-specific
// generation instruction. Pure.
type MoodNode struct {
	detector *detect.MoodDetector
}

// NewMoodNode creates the mood detection stage.
func NewMoodNode(detector *detect.MoodDetector) *MoodNode {
	return &MoodNode{detector: detector}
}

func (n *MoodNode) GetName() string {
	return "detect_mood"
}

func (n *MoodNode) Execute(ctx context.Context, state *core.ReplyState) error {
	state.Mood = n.detector.Detect(state.Query)
	state.MoodModifier = n.detector.GetResponseModifier(state.Mood)
	return nil
}
