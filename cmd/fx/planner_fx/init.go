package planner_fx

import (
	"go.uber.org/fx"

	"tripforge/internal/api/controllers"
	"tripforge/internal/config"
	"tripforge/internal/repositories"
	"tripforge/internal/services"
	"tripforge/pkg/cache"
	"tripforge/pkg/utils"
)

var Module = fx.Provide(
	providePreferenceService, provideItineraryService, provideItineraryController)

func providePreferenceService(
	preferenceRepo repositories.IPreferenceRepository,
	embedder utils.EmbeddingClientInterface,
) services.PreferenceServiceInterface {
	return services.NewPreferenceService(preferenceRepo, embedder)
}

func provideItineraryService(
	cfg *config.Config,
	chat utils.ChatClientInterface,
	preferences services.PreferenceServiceInterface,
	store cache.Cache,
) services.ItineraryServiceInterface {
	return services.NewItineraryService(chat, preferences, store,
		cfg.CacheTTL, float32(cfg.LLM.Temperature), cfg.LLM.MaxTokens, cfg.LLM.Timeout)
}

func provideItineraryController(itineraryService services.ItineraryServiceInterface) *controllers.ItineraryController {
	return controllers.NewItineraryController(itineraryService)
}
