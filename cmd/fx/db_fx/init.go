package db_fx

import (
	"context"

	"go.uber.org/fx"
	"gorm.io/gorm"

	"tripforge/internal/config"
	"tripforge/internal/infra"
	"tripforge/internal/repositories"
)

var Module = fx.Provide(
	provideDB, providePreferenceRepo)

func provideDB(lc fx.Lifecycle, cfg *config.Config) (*gorm.DB, error) {
	db, err := infra.InitPostgresql(cfg.PostgresURL)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			infra.ClosePostgresql(db)
			return nil
		},
	})

	return db, nil
}

func providePreferenceRepo(db *gorm.DB) repositories.IPreferenceRepository {
	return repositories.NewPreferenceRepository(db)
}
