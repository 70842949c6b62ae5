package repositories

import (
	"context"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"tripforge/internal/models/db_models"
)

// PreferenceMatch is a stored record plus the cosine similarity the query
// vector scored against it.
type PreferenceMatch struct {
	db_models.PreferenceRecord
	Similarity float64 `gorm:"column:similarity"`
}

type IPreferenceRepository interface {
	Upsert(ctx context.Context, record db_models.PreferenceRecord) error
	ListSimilarByVector(ctx context.Context, vector pgvector.Vector, userID string, k int) ([]PreferenceMatch, error)
	CountByUser(ctx context.Context, userID string) (int64, error)
}

type PreferenceRepository struct {
	db *gorm.DB
}

func NewPreferenceRepository(db *gorm.DB) IPreferenceRepository {
	return &PreferenceRepository{
		db: db,
	}
}

// Upsert inserts the record, replacing the stored itinerary and embedding
// when the same traveler repeats the same query.
func (p *PreferenceRepository) Upsert(ctx context.Context, record db_models.PreferenceRecord) error {
	return p.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "query_hash"}},
		DoUpdates: clause.AssignmentColumns([]string{"query", "terms", "itinerary", "embedding", "updated_at"}),
	}).Create(&record).Error
}

func (p *PreferenceRepository) ListSimilarByVector(ctx context.Context, vector pgvector.Vector, userID string, k int) ([]PreferenceMatch, error) {
	var results []PreferenceMatch

	vecStr := vector.String()

	query := `
        SELECT *, (1 - (embedding <=> $1)) as similarity
        FROM preference_records
        WHERE user_id = $2
        ORDER BY embedding <=> $1  -- Cosine distance (closer to 0 is better)
        LIMIT $3
    `

	err := p.db.WithContext(ctx).Raw(query, vecStr, userID, k).Scan(&results).Error

	if err != nil {
		return nil, err
	}
	return results, nil
}

func (p *PreferenceRepository) CountByUser(ctx context.Context, userID string) (int64, error) {
	var n int64
	err := p.db.WithContext(ctx).
		Model(&db_models.PreferenceRecord{}).
		Where("user_id = ?", userID).
		Count(&n).Error
	return n, err
}
