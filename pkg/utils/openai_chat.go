package utils

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"golang.org/x/time/rate"

	"tripforge/pkg/observability"
)

const groqBaseURL = "https://api.groq.com/openai/v1"

// OpenAIChatClient talks to any OpenAI-compatible chat endpoint. Groq exposes
// the same wire format, so it reuses this client with a different base URL.
type OpenAIChatClient struct {
	client   *openai.Client
	provider string
	model    string
	limiter  *rate.Limiter
}

func NewOpenAIChatClient(apiKey, model string, rps float64) *OpenAIChatClient {
	return &OpenAIChatClient{
		client:   openai.NewClient(apiKey),
		provider: ProviderOpenAI,
		model:    model,
		limiter:  newLimiter(rps),
	}
}

func NewGroqChatClient(apiKey, model string, rps float64) *OpenAIChatClient {
	c := NewOpenAIChatClientWithBaseURL(apiKey, model, groqBaseURL, rps)
	c.provider = ProviderGroq
	return c
}

func NewOpenAIChatClientWithBaseURL(apiKey, model, baseURL string, rps float64) *OpenAIChatClient {
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = baseURL
	return &OpenAIChatClient{
		client:   openai.NewClientWithConfig(cfg),
		provider: ProviderOpenAI,
		model:    model,
		limiter:  newLimiter(rps),
	}
}

func (c *OpenAIChatClient) Provider() string { return c.provider }

func (c *OpenAIChatClient) Complete(ctx context.Context, prompt string, opts CompletionOptions) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("%w: %v", ErrLLMRequestFailed, err)
	}

	messages := make([]openai.ChatCompletionMessage, 0, 2)
	if opts.SystemPrompt != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: opts.SystemPrompt,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: prompt,
	})

	req := openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: opts.Temperature,
		MaxTokens:   opts.MaxTokens,
	}
	if opts.JSONOnly {
		req.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	start := time.Now()
	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		mapped := c.mapError(err)
		observability.ObserveLLMRequest(c.provider, c.model, llmOutcome(mapped), time.Since(start))
		return "", mapped
	}
	observability.ObserveLLMRequest(c.provider, c.model, "success", time.Since(start))

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: empty choice list", ErrLLMRequestFailed)
	}
	return resp.Choices[0].Message.Content, nil
}

func (c *OpenAIChatClient) mapError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.HTTPStatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return fmt.Errorf("%w: %v", ErrLLMAuth, err)
		case http.StatusTooManyRequests:
			return fmt.Errorf("%w: %v", ErrLLMRateLimited, err)
		}
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		switch reqErr.HTTPStatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return fmt.Errorf("%w: %v", ErrLLMAuth, err)
		case http.StatusTooManyRequests:
			return fmt.Errorf("%w: %v", ErrLLMRateLimited, err)
		}
	}
	return fmt.Errorf("%w: %v", ErrLLMRequestFailed, err)
}

func newLimiter(rps float64) *rate.Limiter {
	if rps <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Limit(rps), 1)
}
