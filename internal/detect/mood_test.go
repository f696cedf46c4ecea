package detect

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMoodEmojiPrecedence(t *testing.T) {
	d := NewMoodDetector()

	result := d.Detect("I am so happy today! 😊")
	assert.Equal(t, "happy", result.Mood)
	assert.Equal(t, 0.9, result.Confidence)
	assert.Equal(t, 1.0, result.Intensity)

	// Emoji wins even when the keywords disagree.
	result = d.Detect("I am sad and miserable 🚀")
	assert.Equal(t, "excited", result.Mood)
	assert.Equal(t, 0.9, result.Confidence)
}

func TestMoodNeutralDefault(t *testing.T) {
	d := NewMoodDetector()

	result := d.Detect("the quick brown fox")
	assert.Equal(t, "neutral", result.Mood)
	assert.Equal(t, 0.5, result.Confidence)
	assert.Equal(t, 0.3, result.Intensity)
}

func TestMoodKeywordScoring(t *testing.T) {
	d := NewMoodDetector()

	// One keyword: confidence 0.5 + 0.15, intensity 1/3.
	result := d.Detect("I feel happy")
	assert.Equal(t, "happy", result.Mood)
	assert.InDelta(t, 0.65, result.Confidence, 1e-9)
	assert.InDelta(t, 1.0/3.0, result.Intensity, 1e-9)

	// Three keywords cap intensity at 1.0.
	result = d.Detect("tired, sleepy and exhausted")
	assert.Equal(t, "tired", result.Mood)
	assert.InDelta(t, 0.95, result.Confidence, 1e-9)
	assert.Equal(t, 1.0, result.Intensity)
}

func TestMoodConfidenceCap(t *testing.T) {
	d := NewMoodDetector()

	// Four keywords would give 1.1 without the 0.95 cap.
	result := d.Detect("happy great awesome amazing")
	assert.Equal(t, "happy", result.Mood)
	assert.Equal(t, 0.95, result.Confidence)
}

func TestMoodTieBreakDeclarationOrder(t *testing.T) {
	d := NewMoodDetector()

	// One happy keyword and one sad keyword: happy is declared first.
	result := d.Detect("happy but lonely")
	assert.Equal(t, "happy", result.Mood)
}

func TestResponseModifier(t *testing.T) {
	d := NewMoodDetector()

	tests := []struct {
		mood     string
		modifier string
	}{
		{"happy", "Match the user's happy energy!"},
		{"sad", "Be gentle and supportive. The user might need comfort."},
		{"angry", "Stay calm and understanding. Don't take it personally."},
		{"excited", "Match the excitement! Be energetic!"},
		{"tired", "Be understanding and keep responses brief."},
		{"neutral", ""},
	}
	for _, tc := range tests {
		got := d.GetResponseModifier(pkgMood(tc.mood))
		assert.Equal(t, tc.modifier, got, "mood %s", tc.mood)
	}
}
