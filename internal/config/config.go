// Config loader with env defaults for HTTP, storage, cache, and model settings.
package config

import (
	"os"
	"strconv"
	"time"
)

type LLMConfig struct {
	Provider    string
	Model       string
	APIKey      string
	Temperature float64
	MaxTokens   int
	RateLimit   float64
	Timeout     time.Duration
}

type EmbeddingConfig struct {
	Provider string
	Model    string
	APIKey   string
}

type HolidayConfig struct {
	APIBase string
	Country string
}

type Config struct {
	Env           string
	Port          string
	QuickTripPort string
	MetricsAddr   string

	PostgresURL  string
	CacheBackend string
	RedisAddr    string
	CacheTTL     time.Duration

	LLM       LLMConfig
	Embedding EmbeddingConfig
	Holiday   HolidayConfig
}

func Load() *Config {
	cfg := &Config{
		Env:           envOrDefault("APP_ENV", "development"),
		Port:          envOrDefault("PORT", "8080"),
		QuickTripPort: envOrDefault("QUICKTRIP_PORT", "8081"),
		MetricsAddr:   os.Getenv("METRICS_ADDR"),

		PostgresURL:  os.Getenv("POSTGRES_URL"),
		CacheBackend: envOrDefault("CACHE_BACKEND", "memory"),
		RedisAddr:    envOrDefault("REDIS_ADDR", "localhost:6379"),
		CacheTTL:     envOrDefaultDuration("CACHE_TTL", time.Hour),

		LLM: LLMConfig{
			Provider:    envOrDefault("LLM_PROVIDER", "groq"),
			Model:       os.Getenv("LLM_MODEL"),
			Temperature: envOrDefaultFloat("LLM_TEMPERATURE", 0.2),
			MaxTokens:   envOrDefaultInt("LLM_MAX_TOKENS", 0),
			RateLimit:   envOrDefaultFloat("LLM_RATE_LIMIT", 2),
			Timeout:     envOrDefaultDuration("LLM_TIMEOUT", 60*time.Second),
		},
		Embedding: EmbeddingConfig{
			Provider: envOrDefault("EMBEDDING_PROVIDER", "local"),
			Model:    os.Getenv("EMBEDDING_MODEL"),
		},
		Holiday: HolidayConfig{
			APIBase: envOrDefault("HOLIDAY_API_BASE", "https://date.nager.at/api/v3"),
			Country: os.Getenv("HOLIDAY_COUNTRY"),
		},
	}

	cfg.LLM.APIKey = providerKey(cfg.LLM.Provider)
	cfg.Embedding.APIKey = providerKey(cfg.Embedding.Provider)
	return cfg
}

// QuickTripLoad mirrors Load with the defaults the quick planner shipped
// with: OpenAI gpt-3.5-turbo, short answers, a slightly higher temperature.
func QuickTripLoad() *Config {
	cfg := Load()
	cfg.LLM.Provider = envOrDefault("LLM_PROVIDER", "openai")
	cfg.LLM.Temperature = envOrDefaultFloat("LLM_TEMPERATURE", 0.7)
	cfg.LLM.MaxTokens = envOrDefaultInt("LLM_MAX_TOKENS", 600)
	cfg.LLM.APIKey = providerKey(cfg.LLM.Provider)
	return cfg
}

func providerKey(provider string) string {
	switch provider {
	case "groq":
		return os.Getenv("GROQ_API_KEY")
	case "openai":
		return os.Getenv("OPENAI_API_KEY")
	case "gemini":
		return os.Getenv("GEMINI_API_KEY")
	default:
		return ""
	}
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envOrDefaultInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envOrDefaultFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func envOrDefaultDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
