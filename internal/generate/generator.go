package generate

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"rag_reply_bot/internal/provider"
	"rag_reply_bot/pkg"
)

// FallbackResponses is the fixed response set used when retrieval produced
// no candidates.
var FallbackResponses = []string{
	"I'm not sure how to respond to that.",
	"Could you rephrase that?",
	"I need more examples to learn from.",
}

const defaultSystemPrompt = "You are a personal assistant who responds exactly like the user would. " +
	"Based on the examples provided, generate a reply that matches the user's style and tone."

// ReplyGenerator turns a query plus retrieved examples, context, memory,
// personality prompt and mood modifier into reply text with a single model
// call. With zero candidates it picks a fallback uniformly at random and
// never calls the model.
type ReplyGenerator struct {
	chat provider.ChatCompleter

	mu  sync.Mutex
	rng *rand.Rand
}

// NewReplyGenerator creates a generator. A nil rng gets a time-seeded one;
// tests inject a fixed seed for determinism.
func NewReplyGenerator(chat provider.ChatCompleter, rng *rand.Rand) *ReplyGenerator {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &ReplyGenerator{chat: chat, rng: rng}
}

// GenerateReply returns (reply, isFallback, error). A model failure is
// propagated untouched; no partial reply is produced.
func (g *ReplyGenerator) GenerateReply(
	ctx context.Context,
	query string,
	examples []pkg.RetrievedExample,
	conversationContext string,
	memory string,
	systemPrompt string,
	moodModifier string,
) (string, bool, error) {
	if len(examples) == 0 {
		return g.FallbackResponse(), true, nil
	}

	var exampleLines []string
	for _, ex := range examples {
		exampleLines = append(exampleLines, fmt.Sprintf("Input: %s -> Reply: %s", ex.Input, ex.Reply))
	}

	systemMsg := systemPrompt
	if systemMsg == "" {
		systemMsg = defaultSystemPrompt
	}
	if moodModifier != "" {
		systemMsg += "\n\n" + moodModifier
	}
	if memory != "" {
		systemMsg += "\n\n" + memory
	}
	if conversationContext != "" {
		systemMsg += "\n\nRecent conversation:\n" + conversationContext
	}
	systemMsg += "\n\nExamples:\n" + strings.Join(exampleLines, "\n")
	systemMsg += "\n\nNow respond to: " + query

	reply, err := g.chat.Complete(ctx, systemMsg, query)
	if err != nil {
		return "", false, fmt.Errorf("generation failed: %w", err)
	}
	return reply, false, nil
}

// FallbackResponse picks one fallback string uniformly at random.
func (g *ReplyGenerator) FallbackResponse() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return FallbackResponses[g.rng.Intn(len(FallbackResponses))]
}
