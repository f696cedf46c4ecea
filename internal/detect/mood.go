package detect

import (
	"strings"

	"rag_reply_bot/pkg"
)

// moodRule pairs a mood label with its keyword list. Rules are evaluated in
// declaration order and the order is also the tie-break when two moods score
// the same.
type moodRule struct {
	mood     string
	keywords []string
}

// moodRules is the fixed mood category table. Declaration order matters.
var moodRules = []moodRule{
	{"happy", []string{"happy", "great", "awesome", "amazing", "wonderful", "love", "yay", "glad", "fantastic"}},
	{"sad", []string{"sad", "unhappy", "depressed", "crying", "miserable", "lonely", "heartbroken", "down"}},
	{"angry", []string{"angry", "furious", "mad", "annoyed", "hate", "frustrated", "irritated"}},
	{"excited", []string{"excited", "thrilled", "can't wait", "cant wait", "pumped", "hyped", "stoked"}},
	{"tired", []string{"tired", "sleepy", "exhausted", "drained", "fatigued", "worn out"}},
}

// moodEmojis maps single emoji codepoints to moods. The first mapped emoji
// found in a left-to-right scan wins over keyword scoring.
var moodEmojis = map[rune]string{
	'😊': "happy", '😄': "happy", '🎉': "happy", '❤': "happy",
	'😢': "sad", '💔': "sad", '😭': "sad", '😞': "sad",
	'😠': "angry", '🤬': "angry", '😤': "angry",
	'🚀': "excited", '🎊': "excited", '⭐': "excited",
	'😴': "tired", '💤': "tired", '🥱': "tired",
}

// moodModifiers holds the generation instruction per mood. Neutral has none.
var moodModifiers = map[string]string{
	"happy":   "Match the user's happy energy!",
	"sad":     "Be gentle and supportive. The user might need comfort.",
	"angry":   "Stay calm and understanding. Don't take it personally.",
	"excited": "Match the excitement! Be energetic!",
	"tired":   "Be understanding and keep responses brief.",
}

// MoodDetector classifies raw text into a mood label. Stateless.
type MoodDetector struct{}

// NewMoodDetector creates a new mood detector
func NewMoodDetector() *MoodDetector {
	return &MoodDetector{}
}

// Detect returns the mood of the given text. A mapped emoji anywhere in the
// text overrides keyword scoring; otherwise the highest-scoring keyword
// category wins, with the rule table order breaking ties.
func (d *MoodDetector) Detect(text string) pkg.MoodResult {
	for _, r := range text {
		if mood, ok := moodEmojis[r]; ok {
			return pkg.MoodResult{Mood: mood, Confidence: 0.9, Intensity: 1.0}
		}
	}

	textLower := strings.ToLower(text)

	bestMood := ""
	bestScore := 0
	for _, rule := range moodRules {
		score := 0
		for _, keyword := range rule.keywords {
			if strings.Contains(textLower, keyword) {
				score++
			}
		}
		if score > bestScore {
			bestMood = rule.mood
			bestScore = score
		}
	}

	if bestScore == 0 {
		return pkg.MoodResult{Mood: "neutral", Confidence: 0.5, Intensity: 0.3}
	}

	confidence := 0.5 + float64(bestScore)*0.15
	if confidence > 0.95 {
		confidence = 0.95
	}
	intensity := float64(bestScore) / 3
	if intensity > 1.0 {
		intensity = 1.0
	}

	return pkg.MoodResult{Mood: bestMood, Confidence: confidence, Intensity: intensity}
}

// GetResponseModifier returns the generation instruction for a detected
// mood. Empty for neutral and unknown moods.
func (d *MoodDetector) GetResponseModifier(mood pkg.MoodResult) string {
	return moodModifiers[mood.Mood]
}
