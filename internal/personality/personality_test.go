package personality

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSelection(t *testing.T) {
	r := NewRegistry()
	assert.Equal(t, "default", r.Current().Key)
	assert.NotEmpty(t, r.SystemPrompt())
}

func TestSetPersonality(t *testing.T) {
	r := NewRegistry()

	require.NoError(t, r.SetPersonality("professional"))
	assert.Equal(t, "professional", r.Current().Key)
}

func TestUnknownKeyRejected(t *testing.T) {
	r := NewRegistry()

	err := r.SetPersonality("pirate")
	assert.Error(t, err)
	// Selection unchanged.
	assert.Equal(t, "default", r.Current().Key)
}

func TestListOrder(t *testing.T) {
	r := NewRegistry()

	profiles := r.List()
	require.Len(t, profiles, 4)
	assert.Equal(t, "default", profiles[0].Key)
	for _, p := range profiles {
		assert.NotEmpty(t, p.Name)
		assert.NotEmpty(t, p.SystemPrompt)
	}
}
