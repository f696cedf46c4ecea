package core

import (
	"context"

	"rag_reply_bot/pkg"
)

// ReplyState is the request-scoped record threaded through the pipeline
// stages. All fields are declared upfront and populated incrementally; no
// global state is touched until generation has succeeded.
type ReplyState struct {
	// Inputs
	Query  string
	UserID string

	// DetectLanguage
	Language string

	// DetectMood
	Mood         pkg.MoodResult
	MoodModifier string

	// AssembleContext
	SystemPrompt        string
	ConversationContext string
	MemorySummary       string

	// Retrieve
	Candidates []pkg.RetrievedExample

	// Generate
	Reply      string
	IsFallback bool

	Metadata map[string]any
}

// Stage is one step of the reply pipeline.
type Stage interface {
	GetName() string
	Execute(ctx context.Context, state *ReplyState) error
}
