package storage

import (
	"context"
	"fmt"
	"sync"

	"rag_reply_bot/pkg"
)

// FileConversationRepository keeps all histories in one JSON document
// mapping user id to an ordered message list. Used when Redis is not
// configured, and by tests.
type FileConversationRepository struct {
	mu            sync.Mutex
	path          string
	conversations map[string][]pkg.ConversationMessage
}

// NewFileConversationRepository loads the document at path, starting empty
// when it does not exist.
func NewFileConversationRepository(path string) (*FileConversationRepository, error) {
	r := &FileConversationRepository{
		path:          path,
		conversations: make(map[string][]pkg.ConversationMessage),
	}
	if _, err := readJSON(path, &r.conversations); err != nil {
		return nil, fmt.Errorf("failed to load conversations: %w", err)
	}
	return r, nil
}

func (r *FileConversationRepository) Load(ctx context.Context, userID string) ([]pkg.ConversationMessage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	messages := r.conversations[userID]
	out := make([]pkg.ConversationMessage, len(messages))
	copy(out, messages)
	return out, nil
}

func (r *FileConversationRepository) Save(ctx context.Context, userID string, messages []pkg.ConversationMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.conversations[userID] = messages
	return writeJSONAtomic(r.path, r.conversations)
}

func (r *FileConversationRepository) Delete(ctx context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.conversations, userID)
	return writeJSONAtomic(r.path, r.conversations)
}
