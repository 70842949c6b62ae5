package db_models

import (
	"github.com/lib/pq"
	"github.com/pgvector/pgvector-go"
)

// PreferenceRecord is one past trip query for a traveler: the query text,
// the terms pulled out of its free-text preferences, the structured
// itinerary it produced, and the embedding used for similarity lookups.
// Rows are written once; a repeated identical query upserts the same row.
type PreferenceRecord struct {
	BaseModel
	UserID    string          `gorm:"column:user_id;uniqueIndex:idx_pref_user_query"`
	QueryHash string          `gorm:"column:query_hash;uniqueIndex:idx_pref_user_query"`
	Query     string          `gorm:"column:query;type:text"`
	Terms     pq.StringArray  `gorm:"type:text[]"`
	Itinerary string          `gorm:"column:itinerary;type:jsonb"`
	Embedding pgvector.Vector `gorm:"type:vector(1536)"`
}
