package llm

import (
	"context"
	"fmt"

	"roommate/backend/pkg/config"
)

// Message is a single chat message
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatResponse is the result of a chat turn. The field names mirror the
// Ollama wire shape the web client already consumes (result.message.content).
type ChatResponse struct {
	Model   string  `json:"model"`
	Message Message `json:"message"`
}

// GenerateResponse is the result of a raw completion (result.response)
type GenerateResponse struct {
	Model    string `json:"model"`
	Response string `json:"response"`
}

// Provider abstracts the LLM runtime behind the three operations the
// gateway exposes
type Provider interface {
	Chat(ctx context.Context, prompt string) (*ChatResponse, error)
	Generate(ctx context.Context, prompt string) (*GenerateResponse, error)
	Embeddings(ctx context.Context, prompt string) ([]float64, error)
}

// NewProvider builds the configured LLM provider
func NewProvider(cfg *config.Config) (Provider, error) {
	switch cfg.LLMProvider {
	case "ollama":
		return NewOllamaProvider(cfg.OllamaURL, cfg.Model)
	case "openai":
		return NewOpenAIProvider(cfg.OpenAIBaseURL, cfg.OpenAIAPIKey, cfg.Model), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.LLMProvider)
	}
}
