package infra

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"tripforge/internal/models/db_models"
)

// InitPostgresql opens the connection pool and prepares the schema. The
// pgvector extension must be installable by the connecting role.
func InitPostgresql(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS vector").Error; err != nil {
		return nil, fmt.Errorf("enable pgvector: %w", err)
	}

	if err := db.AutoMigrate(&db_models.PreferenceRecord{}); err != nil {
		return nil, fmt.Errorf("migrate preference records: %w", err)
	}

	return db, nil
}

func ClosePostgresql(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Error().Err(err).Msg("could not get database instance")
		return
	}

	if err := sqlDB.Close(); err != nil {
		log.Error().Err(err).Msg("could not close database connection")
		return
	}
	log.Info().Msg("postgres connection closed")
}
