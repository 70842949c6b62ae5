package quicktrip_fx

import (
	"go.uber.org/fx"

	"tripforge/internal/api/controllers"
	"tripforge/internal/config"
	"tripforge/internal/services"
	"tripforge/pkg/utils"
)

var Module = fx.Provide(
	provideHolidayService, provideQuickTripService, provideQuickTripController)

func provideHolidayService(cfg *config.Config) services.HolidayServiceInterface {
	return services.NewHolidayService(cfg.Holiday.APIBase, cfg.Holiday.Country)
}

func provideQuickTripService(
	cfg *config.Config,
	chat utils.ChatClientInterface,
	holidays services.HolidayServiceInterface,
) services.QuickTripServiceInterface {
	return services.NewQuickTripService(chat, holidays,
		float32(cfg.LLM.Temperature), cfg.LLM.MaxTokens, cfg.LLM.Timeout)
}

func provideQuickTripController(quickTripService services.QuickTripServiceInterface) *controllers.QuickTripController {
	return controllers.NewQuickTripController(quickTripService)
}
