package pkg

import (
	"time"
)

// Core types shared across the reply engine.

// TrainingExample is a stored input -> reply pair used both as training
// data and as a retrieval candidate. Identity is positional.
type TrainingExample struct {
	Input    string `json:"input"`
	Reply    string `json:"reply"`
	Language string `json:"language,omitempty"`
}

// RetrievedExample is a similarity-search hit. Ordering (most similar
// first) is decided by the index.
type RetrievedExample struct {
	Input    string  `json:"input"`
	Reply    string  `json:"reply"`
	Language string  `json:"language"`
	Score    float64 `json:"score"`
}

// ConversationMessage represents a single turn in a user's conversation
// history.
type ConversationMessage struct {
	Role      string    `json:"role"` // user, assistant
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
	Mood      string    `json:"mood,omitempty"`
	Language  string    `json:"language,omitempty"`
}

// MemoryFact is a single long-term memory entry. Facts are append-only.
type MemoryFact struct {
	UserID    string    `json:"user_id"`
	Fact      string    `json:"fact"`
	Category  string    `json:"category"`
	Timestamp time.Time `json:"timestamp"`
}

// MoodResult is the outcome of mood classification. Derived, never persisted.
type MoodResult struct {
	Mood       string  `json:"mood"`
	Confidence float64 `json:"confidence"` // [0,1]
	Intensity  float64 `json:"intensity"`  // [0,1]
}

// PersonalityProfile is a named system-prompt profile.
type PersonalityProfile struct {
	Key          string `json:"key"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	SystemPrompt string `json:"system_prompt"`
}

// Correction is a user-supplied fix for a past reply. Applying one appends
// exactly one TrainingExample to the example store.
type Correction struct {
	UserID    string    `json:"user_id"`
	Query     string    `json:"query"`
	Original  string    `json:"original"`
	Corrected string    `json:"corrected"`
	Timestamp time.Time `json:"timestamp"`
}

// Feedback is a thumbs-up/down style record attached to a reply.
type Feedback struct {
	UserID    string    `json:"user_id"`
	Reply     string    `json:"reply"`
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
}

// Stats is the aggregate analytics snapshot returned to callers.
type Stats struct {
	TotalMessages          int            `json:"total_messages"`
	UniqueUsers            int            `json:"unique_users"`
	TopMoods               map[string]int `json:"top_moods"`
	TopLanguages           map[string]int `json:"top_languages"`
	RecentCorrectionsCount int            `json:"recent_corrections_count"`
}
