package llm

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/ollama/ollama/api"

	"roommate/backend/pkg/errors"
)

// OllamaProvider talks to a local Ollama runtime through its native API
type OllamaProvider struct {
	client *api.Client
	model  string
}

// NewOllamaProvider creates a provider for the Ollama runtime at baseURL
func NewOllamaProvider(baseURL, model string) (*OllamaProvider, error) {
	if baseURL == "" {
		baseURL = "http://127.0.0.1:11434"
	}
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid Ollama URL: %w", err)
	}

	// Local model inference can be slow on first load
	httpClient := &http.Client{Timeout: 120 * time.Second}

	return &OllamaProvider{
		client: api.NewClient(parsed, httpClient),
		model:  model,
	}, nil
}

// Chat sends a single-message chat turn and returns the final response
func (p *OllamaProvider) Chat(ctx context.Context, prompt string) (*ChatResponse, error) {
	stream := false
	var result *api.ChatResponse

	err := p.client.Chat(ctx, &api.ChatRequest{
		Model:    p.model,
		Messages: []api.Message{{Role: "user", Content: prompt}},
		Stream:   &stream,
	}, func(resp api.ChatResponse) error {
		result = &resp
		return nil
	})
	if err != nil {
		return nil, errors.NewLLMRequestFailed("ollama", p.model, err)
	}
	if result == nil {
		return nil, errors.ErrLLMEmptyResponse
	}

	return &ChatResponse{
		Model: result.Model,
		Message: Message{
			Role:    result.Message.Role,
			Content: result.Message.Content,
		},
	}, nil
}

// Generate sends a raw completion request
func (p *OllamaProvider) Generate(ctx context.Context, prompt string) (*GenerateResponse, error) {
	stream := false
	var result *api.GenerateResponse

	err := p.client.Generate(ctx, &api.GenerateRequest{
		Model:  p.model,
		Prompt: prompt,
		Stream: &stream,
	}, func(resp api.GenerateResponse) error {
		result = &resp
		return nil
	})
	if err != nil {
		return nil, errors.NewLLMRequestFailed("ollama", p.model, err)
	}
	if result == nil {
		return nil, errors.ErrLLMEmptyResponse
	}

	return &GenerateResponse{
		Model:    result.Model,
		Response: result.Response,
	}, nil
}

// Embeddings returns the embedding vector for prompt
func (p *OllamaProvider) Embeddings(ctx context.Context, prompt string) ([]float64, error) {
	resp, err := p.client.Embeddings(ctx, &api.EmbeddingRequest{
		Model:  p.model,
		Prompt: prompt,
	})
	if err != nil {
		return nil, errors.NewLLMRequestFailed("ollama", p.model, err)
	}
	return resp.Embedding, nil
}
