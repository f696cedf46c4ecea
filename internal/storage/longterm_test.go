package storage

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLongTermMemoryLastTen(t *testing.T) {
	m, err := NewLongTermMemory(filepath.Join(t.TempDir(), "memory.json"))
	require.NoError(t, err)

	for i := 1; i <= 12; i++ {
		require.NoError(t, m.AddFact("u1", fmt.Sprintf("fact %d", i), ""))
	}

	facts := m.GetFacts("u1")
	require.Len(t, facts, 10)
	assert.Equal(t, "fact 3", facts[0])
	assert.Equal(t, "fact 12", facts[9])
}

func TestLongTermMemoryPerUser(t *testing.T) {
	m, err := NewLongTermMemory(filepath.Join(t.TempDir(), "memory.json"))
	require.NoError(t, err)

	require.NoError(t, m.AddFact("u1", "likes coffee", ""))
	require.NoError(t, m.AddFact("u2", "likes tea", "preferences"))

	assert.Equal(t, []string{"likes coffee"}, m.GetFacts("u1"))
	assert.Equal(t, []string{"likes tea"}, m.GetFacts("u2"))
	assert.Empty(t, m.GetFacts("u3"))
}

func TestLongTermMemoryFormatted(t *testing.T) {
	m, err := NewLongTermMemory(filepath.Join(t.TempDir(), "memory.json"))
	require.NoError(t, err)

	assert.Equal(t, "", m.GetFormattedMemory("u1"))

	require.NoError(t, m.AddFact("u1", "likes coffee", ""))
	require.NoError(t, m.AddFact("u1", "lives in Pune", ""))
	assert.Equal(t, "Things I remember about you: likes coffee; lives in Pune", m.GetFormattedMemory("u1"))
}

func TestLongTermMemoryPersistsAcrossReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "memory.json")

	m, err := NewLongTermMemory(path)
	require.NoError(t, err)
	require.NoError(t, m.AddFact("u1", "likes coffee", ""))

	m2, err := NewLongTermMemory(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"likes coffee"}, m2.GetFacts("u1"))
}
