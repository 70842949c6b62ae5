package utils

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/generative-ai-go/genai"
	"golang.org/x/time/rate"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"tripforge/pkg/observability"
)

// GeminiChatClient implements ChatClientInterface using Google's Gemini models.
type GeminiChatClient struct {
	client  *genai.Client
	model   string
	limiter *rate.Limiter
}

func NewGeminiChatClient(apiKey, model string, rps float64) (*GeminiChatClient, error) {
	if model == "" {
		model = "gemini-1.5-flash"
	}

	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiChatClient{
		client:  client,
		model:   model,
		limiter: newLimiter(rps),
	}, nil
}

func (c *GeminiChatClient) Provider() string { return ProviderGemini }

func (c *GeminiChatClient) Complete(ctx context.Context, prompt string, opts CompletionOptions) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("%w: %v", ErrLLMRequestFailed, err)
	}

	model := c.client.GenerativeModel(c.model)
	model.SetTemperature(opts.Temperature)
	if opts.MaxTokens > 0 {
		model.SetMaxOutputTokens(int32(opts.MaxTokens))
	}
	if opts.JSONOnly {
		model.ResponseMIMEType = "application/json"
	}
	if opts.SystemPrompt != "" {
		model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(opts.SystemPrompt)}}
	}

	start := time.Now()
	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		mapped := c.mapError(err)
		observability.ObserveLLMRequest(ProviderGemini, c.model, llmOutcome(mapped), time.Since(start))
		return "", mapped
	}
	observability.ObserveLLMRequest(ProviderGemini, c.model, "success", time.Since(start))

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("%w: no content generated", ErrLLMRequestFailed)
	}
	return fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0]), nil
}

func (c *GeminiChatClient) mapError(err error) error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		switch gerr.Code {
		case http.StatusUnauthorized, http.StatusForbidden:
			return fmt.Errorf("%w: %v", ErrLLMAuth, err)
		case http.StatusTooManyRequests:
			return fmt.Errorf("%w: %v", ErrLLMRateLimited, err)
		}
	}
	return fmt.Errorf("%w: %v", ErrLLMRequestFailed, err)
}

func (c *GeminiChatClient) Close() error {
	return c.client.Close()
}
