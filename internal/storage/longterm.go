package storage

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"rag_reply_bot/internal/logger"
	"rag_reply_bot/pkg"
)

// LongTermMemory is an unbounded per-user fact log, persisted as a flat
// JSON list. Facts are never deleted; retrieval surfaces the last 10 per
// user.
type LongTermMemory struct {
	mu    sync.Mutex
	path  string
	facts []pkg.MemoryFact
}

// NewLongTermMemory loads the fact log from path, starting empty when the
// file does not exist yet.
func NewLongTermMemory(path string) (*LongTermMemory, error) {
	m := &LongTermMemory{path: path}
	if _, err := readJSON(path, &m.facts); err != nil {
		return nil, fmt.Errorf("failed to load long-term memory: %w", err)
	}
	return m, nil
}

// AddFact appends a fact with the current timestamp and rewrites the log.
// Category defaults to "general".
func (m *LongTermMemory) AddFact(userID, fact, category string) error {
	if category == "" {
		category = "general"
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.facts = append(m.facts, pkg.MemoryFact{
		UserID:    userID,
		Fact:      fact,
		Category:  category,
		Timestamp: time.Now(),
	})

	if err := writeJSONAtomic(m.path, m.facts); err != nil {
		logger.Error().Err(err).Msg("Failed to persist long-term memory, keeping in-memory facts")
		return err
	}

	logger.Debug().Str("user_id", userID).Str("category", category).
		Msg("💾 Saved to long-term memory")
	return nil
}

// GetFacts returns the user's last 10 facts in insertion order.
func (m *LongTermMemory) GetFacts(userID string) []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	var facts []string
	for _, f := range m.facts {
		if f.UserID == userID {
			facts = append(facts, f.Fact)
		}
	}
	if len(facts) > 10 {
		facts = facts[len(facts)-10:]
	}
	return facts
}

// GetFormattedMemory renders the user's facts as a one-line summary, or an
// empty string when there are none.
func (m *LongTermMemory) GetFormattedMemory(userID string) string {
	facts := m.GetFacts(userID)
	if len(facts) == 0 {
		return ""
	}
	return "Things I remember about you: " + strings.Join(facts, "; ")
}
