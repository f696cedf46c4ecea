package provider

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"os"

	"github.com/ollama/ollama/api"
)

// OllamaEmbedder produces embeddings through a local Ollama server.
type OllamaEmbedder struct {
	client *api.Client
	model  string
}

// NewOllamaEmbedder connects to OLLAMA_BASE_URL (default localhost:11434).
func NewOllamaEmbedder(model string) (*OllamaEmbedder, error) {
	baseURL := os.Getenv("OLLAMA_BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}

	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse OLLAMA_BASE_URL: %w", err)
	}

	return &OllamaEmbedder{
		client: api.NewClient(u, http.DefaultClient),
		model:  model,
	}, nil
}

// Embed returns the embedding vector for the text.
func (e *OllamaEmbedder) Embed(ctx context.Context, text string) ([]float64, error) {
	resp, err := e.client.Embeddings(ctx, &api.EmbeddingRequest{
		Model:  e.model,
		Prompt: text,
	})
	if err != nil {
		return nil, fmt.Errorf("embedding request failed: %w", err)
	}
	return resp.Embedding, nil
}
