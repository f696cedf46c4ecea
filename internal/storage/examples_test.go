package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rag_reply_bot/pkg"
)

func TestExampleStoreStartsEmpty(t *testing.T) {
	s, err := NewExampleStore(filepath.Join(t.TempDir(), "training_data.json"))
	require.NoError(t, err)
	assert.Equal(t, 0, s.Count())
	assert.Empty(t, s.All())
}

func TestExampleStoreAppendAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "training_data.json")

	s, err := NewExampleStore(path)
	require.NoError(t, err)
	require.NoError(t, s.Append(pkg.TrainingExample{Input: "hi", Reply: "hello!", Language: "en"}))
	require.NoError(t, s.Append(pkg.TrainingExample{Input: "bye", Reply: "see you"}))
	assert.Equal(t, 2, s.Count())

	s2, err := NewExampleStore(path)
	require.NoError(t, err)
	examples := s2.All()
	require.Len(t, examples, 2)
	assert.Equal(t, "hi", examples[0].Input)
	assert.Equal(t, "hello!", examples[0].Reply)
	assert.Equal(t, "bye", examples[1].Input)
}

func TestExampleStoreDocumentLayout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "training_data.json")

	s, err := NewExampleStore(path)
	require.NoError(t, err)
	require.NoError(t, s.Append(pkg.TrainingExample{Input: "hi", Reply: "hello!", Language: "en"}))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, sonic.Unmarshal(raw, &doc))
	assert.Equal(t, "en", doc["language"])
	examples, ok := doc["examples"].([]any)
	require.True(t, ok)
	require.Len(t, examples, 1)

	first := examples[0].(map[string]any)
	assert.Equal(t, "hi", first["input"])
	assert.Equal(t, "hello!", first["reply"])
}

func TestExampleStoreAllReturnsCopy(t *testing.T) {
	s, err := NewExampleStore(filepath.Join(t.TempDir(), "training_data.json"))
	require.NoError(t, err)
	require.NoError(t, s.Append(pkg.TrainingExample{Input: "hi", Reply: "hello!"}))

	examples := s.All()
	examples[0].Input = "mutated"
	assert.Equal(t, "hi", s.All()[0].Input)
}
