package storage

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"rag_reply_bot/pkg"
)

// ConversationRepository abstracts where per-user histories live.
type ConversationRepository interface {
	Load(ctx context.Context, userID string) ([]pkg.ConversationMessage, error)
	Save(ctx context.Context, userID string, messages []pkg.ConversationMessage) error
	Delete(ctx context.Context, userID string) error
}

// ConversationMemory keeps a bounded rolling history per user. Histories
// are created on first message, trimmed FIFO past maxTurns, and persisted
// synchronously on every mutation. The mutex serializes the
// read-modify-persist sequence across concurrent requests.
type ConversationMemory struct {
	mu       sync.Mutex
	repo     ConversationRepository
	maxTurns int
}

// NewConversationMemory creates a conversation memory bound to maxTurns
// messages per user.
func NewConversationMemory(repo ConversationRepository, maxTurns int) *ConversationMemory {
	return &ConversationMemory{repo: repo, maxTurns: maxTurns}
}

// AddMessage appends a message with the current timestamp, evicting the
// oldest entries past capacity.
func (m *ConversationMemory) AddMessage(ctx context.Context, userID, role, content, mood, language string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	messages, err := m.repo.Load(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to load conversation: %w", err)
	}

	messages = append(messages, pkg.ConversationMessage{
		Role:      role,
		Content:   content,
		Timestamp: time.Now(),
		Mood:      mood,
		Language:  language,
	})
	if len(messages) > m.maxTurns {
		messages = messages[len(messages)-m.maxTurns:]
	}

	return m.repo.Save(ctx, userID, messages)
}

// GetContext returns the user's history, oldest first. Unknown users get
// an empty list, never an error.
func (m *ConversationMemory) GetContext(ctx context.Context, userID string) ([]pkg.ConversationMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.repo.Load(ctx, userID)
}

// GetFormattedContext renders the history as "User: ..." / "Bot: ..." lines.
func (m *ConversationMemory) GetFormattedContext(ctx context.Context, userID string) (string, error) {
	messages, err := m.GetContext(ctx, userID)
	if err != nil {
		return "", err
	}
	if len(messages) == 0 {
		return "", nil
	}

	parts := make([]string, 0, len(messages))
	for _, msg := range messages {
		role := "Bot"
		if msg.Role == "user" {
			role = "User"
		}
		parts = append(parts, fmt.Sprintf("%s: %s", role, msg.Content))
	}
	return strings.Join(parts, "\n"), nil
}

// GetConversationSummary returns a human-readable summary of the history.
func (m *ConversationMemory) GetConversationSummary(ctx context.Context, userID string) (string, error) {
	messages, err := m.GetContext(ctx, userID)
	if err != nil {
		return "", err
	}
	if len(messages) == 0 {
		return "No conversation history.", nil
	}
	formatted, err := m.GetFormattedContext(ctx, userID)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Recent conversation (%d turns):\n%s", len(messages), formatted), nil
}

// ClearConversation empties the user's history.
func (m *ConversationMemory) ClearConversation(ctx context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.repo.Delete(ctx, userID)
}
