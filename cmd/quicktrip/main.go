package main

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"go.uber.org/fx"

	"tripforge/cmd/fx/llm_fx"
	"tripforge/cmd/fx/quicktrip_fx"
	"tripforge/internal/api/controllers"
	"tripforge/internal/config"
	"tripforge/pkg/middleware"
	"tripforge/pkg/observability"
	"tripforge/web"
)

func main() {
	_ = godotenv.Load()
	cfg := config.QuickTripLoad()
	log.Logger = observability.NewLogger(cfg.Env)

	app := fx.New(
		fx.Provide(func() *config.Config { return cfg }),
		llm_fx.Module,
		quicktrip_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine, cfg *config.Config) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			observability.Serve(cfg.MetricsAddr)
			go func() {
				log.Info().Str("port", cfg.QuickTripPort).Msg("starting quicktrip HTTP server")
				if err := engine.Run(":" + cfg.QuickTripPort); err != nil {
					log.Fatal().Err(err).Msg("failed to start server")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("stopping quicktrip HTTP server")
			return nil
		},
	})
}

func ProvideRouter(cfg *config.Config, quickTripController *controllers.QuickTripController) *gin.Engine {
	if cfg.Env != "development" && cfg.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	r.Use(middleware.TraceIDMiddleware())
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.MetricsMiddleware())
	r.SetHTMLTemplate(web.Templates())

	RegisterRoutes(r, quickTripController)

	return r
}

func RegisterRoutes(r *gin.Engine, quickTripController *controllers.QuickTripController) {
	r.GET("/", quickTripController.IndexHandler)
	r.POST("/plan", quickTripController.PlanFormHandler)
	r.GET("/healthz", controllers.HealthHandler)

	api := r.Group("/api/v1")
	api.POST("/quicktrips", quickTripController.PlanHandler)
}
