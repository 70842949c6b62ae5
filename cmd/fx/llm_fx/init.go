package llm_fx

import (
	"go.uber.org/fx"

	"tripforge/internal/config"
	"tripforge/pkg/utils"
)

var Module = fx.Provide(
	provideChatClient, provideEmbeddingClient)

func provideChatClient(cfg *config.Config) (utils.ChatClientInterface, error) {
	return utils.NewChatClient(cfg.LLM.Provider, cfg.LLM.APIKey, cfg.LLM.Model, cfg.LLM.RateLimit)
}

func provideEmbeddingClient(cfg *config.Config) (utils.EmbeddingClientInterface, error) {
	return utils.NewEmbeddingClient(cfg.Embedding.Provider, cfg.Embedding.APIKey, cfg.Embedding.Model)
}
