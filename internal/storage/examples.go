package storage

import (
	"fmt"
	"sync"

	"rag_reply_bot/internal/logger"
	"rag_reply_bot/pkg"
)

// trainingDocument is the on-disk layout of the example store:
// {language, examples:[{input, reply}]}.
type trainingDocument struct {
	Language string                `json:"language"`
	Examples []pkg.TrainingExample `json:"examples"`
}

// ExampleStore persists the full corpus of training pairs. The corpus is
// append-only through the public API; every mutation rewrites the whole
// document under the store mutex.
type ExampleStore struct {
	mu       sync.Mutex
	path     string
	language string
	examples []pkg.TrainingExample
}

// NewExampleStore loads the corpus from path, starting empty when the file
// does not exist yet.
func NewExampleStore(path string) (*ExampleStore, error) {
	s := &ExampleStore{path: path, language: "en"}

	var doc trainingDocument
	found, err := readJSON(path, &doc)
	if err != nil {
		return nil, fmt.Errorf("failed to load training data: %w", err)
	}
	if found {
		if doc.Language != "" {
			s.language = doc.Language
		}
		for _, ex := range doc.Examples {
			if ex.Language == "" {
				ex.Language = s.language
			}
			s.examples = append(s.examples, ex)
		}
	}

	logger.Info().Int("examples", len(s.examples)).Str("path", path).
		Msg("📚 Training data loaded")
	return s, nil
}

// Append adds one training example and rewrites the document. The
// in-memory corpus stays applied even when the save fails.
func (s *ExampleStore) Append(example pkg.TrainingExample) error {
	if example.Language == "" {
		example.Language = "en"
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.examples = append(s.examples, example)
	s.language = example.Language

	if err := s.save(); err != nil {
		logger.Error().Err(err).Msg("Failed to persist training data, keeping in-memory corpus")
		return err
	}
	return nil
}

// All returns a copy of the corpus in insertion order.
func (s *ExampleStore) All() []pkg.TrainingExample {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]pkg.TrainingExample, len(s.examples))
	copy(out, s.examples)
	return out
}

// Count returns the corpus size.
func (s *ExampleStore) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.examples)
}

// save rewrites the full document. Callers must hold the mutex.
func (s *ExampleStore) save() error {
	doc := trainingDocument{Language: s.language}
	for _, ex := range s.examples {
		doc.Examples = append(doc.Examples, pkg.TrainingExample{Input: ex.Input, Reply: ex.Reply})
	}
	return writeJSONAtomic(s.path, doc)
}
