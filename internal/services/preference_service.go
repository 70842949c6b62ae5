package services

import (
	"context"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"

	"tripforge/internal/models/db_models"
	"tripforge/internal/repositories"
	"tripforge/pkg/utils"
)

// noPriorPreferences is returned when a traveler has no usable history yet.
const noPriorPreferences = "No past preferences found."

type PreferenceServiceInterface interface {
	Record(ctx context.Context, userID, queryText, preferences, itineraryJSON string) error
	RetrieveSimilar(ctx context.Context, userID, queryText string, k int) ([]repositories.PreferenceMatch, error)
	RetrieveSimilarText(ctx context.Context, userID, queryText string, k int) (string, error)
}

type PreferenceService struct {
	preferenceRepo repositories.IPreferenceRepository
	embedder       utils.EmbeddingClientInterface
}

func NewPreferenceService(
	preferenceRepo repositories.IPreferenceRepository,
	embedder utils.EmbeddingClientInterface,
) PreferenceServiceInterface {
	return &PreferenceService{
		preferenceRepo: preferenceRepo,
		embedder:       embedder,
	}
}

// Record stores one planned trip as future planning context. Repeating the
// same query for the same traveler updates the row in place instead of
// piling up duplicates.
func (p *PreferenceService) Record(ctx context.Context, userID, queryText, preferences, itineraryJSON string) error {
	vector, err := p.embedder.GetEmbedding(ctx, queryText)
	if err != nil {
		return err
	}

	record := db_models.PreferenceRecord{
		UserID:    userID,
		QueryHash: utils.QueryHash(userID, queryText),
		Query:     queryText,
		Terms:     extractPreferenceTerms(preferences),
		Itinerary: itineraryJSON,
		Embedding: vector,
	}

	if err := p.preferenceRepo.Upsert(ctx, record); err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("failed to record trip preference")
		return utils.ErrDatabaseError
	}

	return nil
}

func (p *PreferenceService) RetrieveSimilar(ctx context.Context, userID, queryText string, k int) ([]repositories.PreferenceMatch, error) {
	if k <= 0 {
		k = 3
	}

	// First-time travelers have nothing to match against; skip the
	// embedding call and the vector scan entirely. A failed count only
	// degrades to the full lookup.
	if n, err := p.preferenceRepo.CountByUser(ctx, userID); err != nil {
		log.Warn().Err(err).Str("user_id", userID).Msg("preference count failed, attempting lookup anyway")
	} else if n == 0 {
		return nil, nil
	}

	vector, err := p.embedder.GetEmbedding(ctx, queryText)
	if err != nil {
		return nil, err
	}

	matches, err := p.preferenceRepo.ListSimilarByVector(ctx, vector, userID, k)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("similarity lookup failed")
		return nil, utils.ErrDatabaseError
	}

	// The query already orders by distance; re-sort on the computed score so
	// callers can rely on descending similarity regardless of the backend.
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Similarity > matches[j].Similarity
	})
	if len(matches) > k {
		matches = matches[:k]
	}

	return matches, nil
}

// RetrieveSimilarText flattens the nearest past queries into a single line
// ready to drop into a prompt.
func (p *PreferenceService) RetrieveSimilarText(ctx context.Context, userID, queryText string, k int) (string, error) {
	matches, err := p.RetrieveSimilar(ctx, userID, queryText, k)
	if err != nil {
		return "", err
	}

	if len(matches) == 0 {
		return noPriorPreferences, nil
	}

	parts := make([]string, 0, len(matches))
	for _, m := range matches {
		parts = append(parts, m.Query)
	}
	return strings.Join(parts, " | "), nil
}

// extractPreferenceTerms splits free-text preferences ("museums, street food
// and hiking") into lowercase terms for the text[] column.
func extractPreferenceTerms(preferences string) []string {
	if strings.TrimSpace(preferences) == "" {
		return nil
	}

	normalized := strings.ReplaceAll(strings.ToLower(preferences), " and ", ",")
	fields := strings.Split(normalized, ",")

	seen := make(map[string]bool)
	var terms []string
	for _, f := range fields {
		term := strings.TrimSpace(f)
		if term == "" || seen[term] {
			continue
		}
		seen[term] = true
		terms = append(terms, term)
	}

	return terms
}
