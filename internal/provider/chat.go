package provider

import (
	"context"
	"fmt"
	"os"

	"github.com/cloudwego/eino-ext/components/model/ollama"
	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"rag_reply_bot/internal/config"
)

// ChatCompleter is the single-turn generation capability consumed by the
// reply pipeline. No streaming.
type ChatCompleter interface {
	Complete(ctx context.Context, systemPrompt, userQuery string) (string, error)
}

// EinoChatCompleter adapts an eino chat model to the ChatCompleter surface.
type EinoChatCompleter struct {
	model model.BaseChatModel
}

// NewChatCompleter builds the chat model named by llm.provider. Supported
// providers are ollama and openai.
func NewChatCompleter(ctx context.Context, cfg *config.YAMLConfig) (*EinoChatCompleter, error) {
	switch cfg.LLM.Provider {
	case "ollama":
		baseURL := os.Getenv("OLLAMA_BASE_URL")
		if baseURL == "" {
			baseURL = "http://localhost:11434"
		}
		chatModel, err := ollama.NewChatModel(ctx, &ollama.ChatModelConfig{
			BaseURL: baseURL,
			Model:   cfg.LLM.Model,
		})
		if err != nil {
			return nil, fmt.Errorf("error creating ollama chat model: %v", err)
		}
		return &EinoChatCompleter{model: chatModel}, nil

	case "openai":
		apiKey := os.Getenv("OPENAI_API_KEY")
		if apiKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY environment variable is required")
		}
		maxTokens := cfg.LLM.MaxTokens
		temperature := float32(cfg.LLM.Temperature)
		chatModel, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
			APIKey:      apiKey,
			Model:       cfg.LLM.Model,
			MaxTokens:   &maxTokens,
			Temperature: &temperature,
		})
		if err != nil {
			return nil, fmt.Errorf("error creating openai chat model: %v", err)
		}
		return &EinoChatCompleter{model: chatModel}, nil

	default:
		return nil, fmt.Errorf("unsupported llm provider: %s", cfg.LLM.Provider)
	}
}

// Complete runs one generation call and returns the raw reply text.
func (c *EinoChatCompleter) Complete(ctx context.Context, systemPrompt, userQuery string) (string, error) {
	messages := []*schema.Message{
		schema.SystemMessage(systemPrompt),
		schema.UserMessage(userQuery),
	}

	out, err := c.model.Generate(ctx, messages)
	if err != nil {
		return "", fmt.Errorf("error generating response: %v", err)
	}
	return out.Content, nil
}
