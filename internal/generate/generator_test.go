package generate

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rag_reply_bot/pkg"
)

type stubChat struct {
	reply      string
	err        error
	calls      int
	lastSystem string
}

func (s *stubChat) Complete(_ context.Context, systemPrompt, _ string) (string, error) {
	s.calls++
	s.lastSystem = systemPrompt
	if s.err != nil {
		return "", s.err
	}
	return s.reply, nil
}

func TestFallbackWithoutCandidates(t *testing.T) {
	chat := &stubChat{reply: "unused"}
	g := NewReplyGenerator(chat, rand.New(rand.NewSource(7)))

	reply, isFallback, err := g.GenerateReply(context.Background(), "hi", nil, "", "", "", "")
	require.NoError(t, err)
	assert.True(t, isFallback)
	assert.Contains(t, FallbackResponses, reply)
	assert.Equal(t, 0, chat.calls)
}

func TestFallbackDeterministicWithSeed(t *testing.T) {
	a := NewReplyGenerator(&stubChat{}, rand.New(rand.NewSource(42)))
	b := NewReplyGenerator(&stubChat{}, rand.New(rand.NewSource(42)))

	for i := 0; i < 10; i++ {
		assert.Equal(t, a.FallbackResponse(), b.FallbackResponse())
	}
}

func TestPromptComposition(t *testing.T) {
	chat := &stubChat{reply: "sure"}
	g := NewReplyGenerator(chat, rand.New(rand.NewSource(1)))

	examples := []pkg.RetrievedExample{
		{Input: "hi", Reply: "hello!"},
		{Input: "hey", Reply: "yo"},
	}
	reply, isFallback, err := g.GenerateReply(
		context.Background(),
		"hi there",
		examples,
		"User: hi\nBot: hello!",
		"Things I remember about you: likes coffee",
		"You are a witty assistant.",
		"Match the user's happy energy!",
	)
	require.NoError(t, err)
	assert.False(t, isFallback)
	assert.Equal(t, "sure", reply)

	assert.Contains(t, chat.lastSystem, "You are a witty assistant.")
	assert.Contains(t, chat.lastSystem, "Match the user's happy energy!")
	assert.Contains(t, chat.lastSystem, "Things I remember about you: likes coffee")
	assert.Contains(t, chat.lastSystem, "Recent conversation:\nUser: hi\nBot: hello!")
	assert.Contains(t, chat.lastSystem, "Input: hi -> Reply: hello!\nInput: hey -> Reply: yo")
	assert.Contains(t, chat.lastSystem, "Now respond to: hi there")
}

func TestEmptySectionsOmitted(t *testing.T) {
	chat := &stubChat{reply: "sure"}
	g := NewReplyGenerator(chat, nil)

	_, _, err := g.GenerateReply(context.Background(), "hi", []pkg.RetrievedExample{{Input: "a", Reply: "b"}}, "", "", "", "")
	require.NoError(t, err)
	assert.Contains(t, chat.lastSystem, "You are a personal assistant")
	assert.NotContains(t, chat.lastSystem, "Recent conversation:")
}

func TestModelFailurePropagates(t *testing.T) {
	chat := &stubChat{err: errors.New("boom")}
	g := NewReplyGenerator(chat, nil)

	_, _, err := g.GenerateReply(context.Background(), "hi", []pkg.RetrievedExample{{Input: "a", Reply: "b"}}, "", "", "", "")
	assert.Error(t, err)
}
