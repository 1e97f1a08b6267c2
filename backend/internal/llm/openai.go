package llm

import (
	"context"

	"github.com/sashabaranov/go-openai"

	"roommate/backend/pkg/errors"
)

// OpenAIProvider talks to any OpenAI-compatible chat endpoint (OpenAI,
// LiteLLM, vLLM, an Ollama OpenAI shim)
type OpenAIProvider struct {
	client *openai.Client
	model  string
}

// NewOpenAIProvider creates an OpenAI-compatible provider. baseURL may be
// empty for the real OpenAI API; apiKey may be a placeholder for local
// gateways that don't check it.
func NewOpenAIProvider(baseURL, apiKey, model string) *OpenAIProvider {
	if apiKey == "" {
		apiKey = "dummy-key"
	}

	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL + "/v1"
	}

	return &OpenAIProvider{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

// Chat sends a single-message chat turn
func (p *OpenAIProvider) Chat(ctx context.Context, prompt string) (*ChatResponse, error) {
	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return nil, errors.NewLLMRequestFailed("openai", p.model, err)
	}
	if len(resp.Choices) == 0 {
		return nil, errors.ErrLLMEmptyResponse
	}

	return &ChatResponse{
		Model: resp.Model,
		Message: Message{
			Role:    resp.Choices[0].Message.Role,
			Content: resp.Choices[0].Message.Content,
		},
	}, nil
}

// Generate maps a raw completion onto a chat turn, since chat-tuned models
// no longer expose the completions endpoint
func (p *OpenAIProvider) Generate(ctx context.Context, prompt string) (*GenerateResponse, error) {
	chat, err := p.Chat(ctx, prompt)
	if err != nil {
		return nil, err
	}
	return &GenerateResponse{
		Model:    chat.Model,
		Response: chat.Message.Content,
	}, nil
}

// Embeddings returns the embedding vector for prompt
func (p *OpenAIProvider) Embeddings(ctx context.Context, prompt string) ([]float64, error) {
	resp, err := p.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: []string{prompt},
		Model: openai.AdaEmbeddingV2,
	})
	if err != nil {
		return nil, errors.NewLLMRequestFailed("openai", p.model, err)
	}
	if len(resp.Data) == 0 {
		return nil, errors.ErrLLMEmptyResponse
	}

	embedding := make([]float64, len(resp.Data[0].Embedding))
	for i, v := range resp.Data[0].Embedding {
		embedding[i] = float64(v)
	}
	return embedding, nil
}
