package utils

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/pgvector/pgvector-go"
)

const (
	ProviderGroq   = "groq"
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
	ProviderLocal  = "local"
)

// CompletionOptions carries per-request model parameters.
type CompletionOptions struct {
	SystemPrompt string
	Temperature  float32
	MaxTokens    int
	JSONOnly     bool
}

// ChatClientInterface is the hosted-LLM completion surface used by both apps.
type ChatClientInterface interface {
	Complete(ctx context.Context, prompt string, opts CompletionOptions) (string, error)
	Provider() string
}

// EmbeddingClientInterface turns text into a vector for similarity search.
type EmbeddingClientInterface interface {
	GetEmbedding(ctx context.Context, text string) (pgvector.Vector, error)
}

// NewChatClient creates a chat client for the configured provider.
// rps bounds outgoing request rate; rps <= 0 disables the limiter.
func NewChatClient(provider, apiKey, model string, rps float64) (ChatClientInterface, error) {
	switch strings.ToLower(provider) {
	case ProviderGroq:
		if model == "" {
			model = "gemma2-9b-it"
		}
		return NewGroqChatClient(apiKey, model, rps), nil
	case ProviderOpenAI:
		if model == "" {
			model = "gpt-3.5-turbo"
		}
		return NewOpenAIChatClient(apiKey, model, rps), nil
	case ProviderGemini:
		if model == "" {
			model = "gemini-1.5-flash"
		}
		return NewGeminiChatClient(apiKey, model, rps)
	default:
		return nil, fmt.Errorf("unsupported chat provider: %s. Use 'groq', 'openai' or 'gemini'", provider)
	}
}

// llmOutcome labels an already-mapped client error for metrics.
func llmOutcome(err error) string {
	switch {
	case errors.Is(err, ErrLLMAuth):
		return "auth_error"
	case errors.Is(err, ErrLLMRateLimited):
		return "rate_limited"
	default:
		return "error"
	}
}

// NewEmbeddingClient creates an embedding client for the configured provider.
// The local provider needs no key and stays deterministic, which also makes
// it the test double of choice.
func NewEmbeddingClient(provider, apiKey, model string) (EmbeddingClientInterface, error) {
	switch strings.ToLower(provider) {
	case ProviderOpenAI:
		if model == "" {
			model = "text-embedding-3-small"
		}
		return NewOpenAIEmbeddingClient(apiKey, model), nil
	case ProviderGemini:
		client, err := NewGeminiEmbeddingClient(apiKey, model)
		if err != nil {
			return nil, fmt.Errorf("failed to create Gemini client: %w", err)
		}
		return client, nil
	case ProviderLocal, "":
		return NewHashEmbeddingClient(), nil
	default:
		return nil, fmt.Errorf("unsupported embedding provider: %s. Use 'openai', 'gemini' or 'local'", provider)
	}
}
