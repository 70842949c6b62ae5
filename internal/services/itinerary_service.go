package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"tripforge/internal/models/request_models"
	"tripforge/internal/models/response_models"
	"tripforge/internal/validation"
	"tripforge/pkg/cache"
	"tripforge/pkg/observability"
	"tripforge/pkg/utils"
)

const (
	maxPlanAttempts = 2
	maxTripDays     = 30
	priorContextK   = 3

	anonymousUserID = "anonymous"

	plannerSystemPrompt = "You are a professional travel planner who outputs structured itineraries with flight recommendations."

	degradedPlanWarning = "The travel model returned a plan that did not match the expected structure. Showing its raw answer instead."

	strictRetrySuffix = "\n\nYour previous answer was rejected because it did not match the schema. " +
		"Respond again with a single JSON object that conforms exactly to the schema above, " +
		"with every required field present. No markdown fences, no commentary."
)

// itineraryExampleJSON is embedded in the prompt so the model sees the exact
// shape the validator will enforce.
const itineraryExampleJSON = `{
  "name": "string",
  "day_plans": [
    {
      "date": "YYYY-MM-DD",
      "activities": [
        {
          "name": "string",
          "location": "string",
          "description": "string",
          "date": "YYYY-MM-DD",
          "cuisine": "string",
          "why_its_suitable": "string",
          "reviews": [],
          "rating": 4.5
        }
      ],
      "restaurants": ["string"],
      "flight": [
        {
          "airline": "string",
          "flight_number": "string",
          "departure": "YYYY-MM-DD HH:MM",
          "arrival": "YYYY-MM-DD HH:MM",
          "price": "string"
        }
      ]
    }
  ],
  "hotel": "string"
}`

type ItineraryServiceInterface interface {
	PlanTrip(ctx context.Context, req request_models.TripRequest) (*response_models.ItineraryResult, error)
}

type ItineraryService struct {
	chat        utils.ChatClientInterface
	preferences PreferenceServiceInterface
	store       cache.Cache
	cacheTTL    time.Duration
	temperature float32
	maxTokens   int
	timeout     time.Duration
}

func NewItineraryService(
	chat utils.ChatClientInterface,
	preferences PreferenceServiceInterface,
	store cache.Cache,
	cacheTTL time.Duration,
	temperature float32,
	maxTokens int,
	timeout time.Duration,
) ItineraryServiceInterface {
	return &ItineraryService{
		chat:        chat,
		preferences: preferences,
		store:       store,
		cacheTTL:    cacheTTL,
		temperature: temperature,
		maxTokens:   maxTokens,
		timeout:     timeout,
	}
}

// PlanTrip turns one trip submission into a validated itinerary. Identical
// submissions are served from cache; prior queries by the same traveler are
// folded into the prompt as extra context.
func (s *ItineraryService) PlanTrip(ctx context.Context, req request_models.TripRequest) (*response_models.ItineraryResult, error) {
	trip, err := normalizeTripRequest(req)
	if err != nil {
		return nil, err
	}

	// Gin's request context carries no deadline, so a stalled provider
	// connection would otherwise hang the handler forever.
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	queryText := fmt.Sprintf("%s to %s, %d days starting %s, prefs=%s",
		trip.origin, trip.destination, trip.days, trip.startDate, trip.preferences)

	key := utils.CacheKey("itinerary", trip.userID, trip.origin, trip.destination,
		strconv.Itoa(trip.days), trip.startDate, trip.preferences, strconv.FormatBool(trip.flights))

	var cached response_models.ItineraryResult
	if hit, cacheErr := s.store.Get(ctx, key, &cached); cacheErr == nil && hit {
		return &cached, nil
	}

	prior, err := s.preferences.RetrieveSimilarText(ctx, trip.userID, queryText, priorContextK)
	if err != nil {
		log.Warn().Err(err).Str("user_id", trip.userID).Msg("preference lookup failed, planning without history")
		prior = noPriorPreferences
	}

	prompt := BuildItineraryPrompt(trip.origin, trip.destination, trip.days, trip.startDate,
		prior+" | "+trip.preferences, trip.flights)

	it, raw, genErr := s.generatePlan(ctx, trip, prompt)
	if it == nil {
		if raw == "" {
			return nil, genErr
		}
		// The model kept answering off-schema. Hand back what it said
		// instead of failing the request; callers flag it for the user.
		return &response_models.ItineraryResult{
			Validated: false,
			RawText:   raw,
			Warning:   degradedPlanWarning,
		}, nil
	}

	if err := s.preferences.Record(ctx, trip.userID, queryText, trip.preferences, raw); err != nil {
		log.Warn().Err(err).Str("user_id", trip.userID).Msg("could not record trip preference")
	}

	result := &response_models.ItineraryResult{
		Itinerary: it,
		Markdown:  response_models.RenderMarkdown(it),
		Validated: true,
	}

	if s.cacheTTL > 0 {
		if err := s.store.Set(ctx, key, result, s.cacheTTL); err != nil {
			log.Warn().Err(err).Msg("could not cache itinerary")
		}
	}

	return result, nil
}

// generatePlan calls the model up to maxPlanAttempts times, tightening the
// prompt after a rejected answer. It returns the parsed itinerary and the
// cleaned JSON it came from, or (nil, lastRaw, lastErr) when every attempt
// failed; lastRaw is empty when the final attempt never produced text.
func (s *ItineraryService) generatePlan(ctx context.Context, trip normalizedTrip, prompt string) (*response_models.Itinerary, string, error) {
	opts := utils.CompletionOptions{
		SystemPrompt: plannerSystemPrompt,
		Temperature:  s.temperature,
		MaxTokens:    s.maxTokens,
		JSONOnly:     true,
	}

	var lastRaw string
	var lastErr error

	for attempt := 1; attempt <= maxPlanAttempts; attempt++ {
		p := prompt
		if attempt > 1 {
			p += strictRetrySuffix
		}

		raw, err := s.chat.Complete(ctx, p, opts)
		if err != nil {
			log.Warn().Err(err).Int("attempt", attempt).Msg("itinerary completion failed")
			lastErr = err
			lastRaw = ""
			continue
		}

		cleaned := utils.CleanModelJSON(raw)
		lastRaw = cleaned

		if err := validation.ValidateItineraryJSON(cleaned); err != nil {
			observability.ObserveValidationFailure("schema")
			log.Warn().Err(err).Int("attempt", attempt).Msg("itinerary rejected by schema")
			lastErr = err
			continue
		}

		it, err := validation.ParseItinerary(cleaned)
		if err != nil {
			observability.ObserveValidationFailure("schema")
			lastErr = err
			continue
		}

		if err := validation.CheckItineraryShape(it, trip.days, trip.flights); err != nil {
			observability.ObserveValidationFailure("shape")
			log.Warn().Err(err).Int("attempt", attempt).Msg("itinerary rejected by shape check")
			lastErr = err
			continue
		}

		return it, cleaned, nil
	}

	return nil, lastRaw, lastErr
}

// BuildItineraryPrompt assembles the planning prompt. Origin, destination
// and duration appear verbatim so the model cannot lose them.
func BuildItineraryPrompt(origin, destination string, days int, startDate, preferences string, flightsRequested bool) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Plan a detailed travel itinerary for a trip from %s to %s.\n\n", origin, destination))
	b.WriteString("Return ONLY valid JSON matching this schema:\n")
	b.WriteString(itineraryExampleJSON)
	b.WriteString("\n\nRules:\n")
	b.WriteString(fmt.Sprintf("- Cover exactly %d days.\n", days))
	b.WriteString(fmt.Sprintf("- Use %s as Day 1 and increment dates sequentially.\n", startDate))
	b.WriteString("- Each day must include at least 2 activities and 1 restaurant.\n")
	if flightsRequested {
		b.WriteString(fmt.Sprintf("- Day 1 MUST include at least 2 flight options from %s to %s.\n", origin, destination))
		b.WriteString(fmt.Sprintf("- The last day MUST include at least 2 flight options from %s to %s.\n", destination, origin))
		b.WriteString("- Make flights look realistic (major airlines, plausible times, sample prices).\n")
	} else {
		b.WriteString("- Do not include any flight options.\n")
	}
	b.WriteString(fmt.Sprintf("- Consider user preferences: %s.\n", preferences))
	b.WriteString("- Output JSON only (no markdown, no text).\n")

	return b.String()
}

type normalizedTrip struct {
	userID      string
	origin      string
	destination string
	days        int
	startDate   string
	preferences string
	flights     bool
}

func normalizeTripRequest(req request_models.TripRequest) (normalizedTrip, error) {
	trip := normalizedTrip{
		userID:      strings.TrimSpace(req.UserID),
		origin:      strings.TrimSpace(req.Origin),
		destination: strings.TrimSpace(req.Destination),
		preferences: strings.TrimSpace(req.Preferences),
		flights:     req.FlightsRequested(),
	}
	if trip.userID == "" {
		trip.userID = anonymousUserID
	}
	if trip.origin == "" || trip.destination == "" {
		return trip, utils.ErrInvalidTripRequest
	}

	switch {
	case req.DurationDays > 0:
		trip.days = req.DurationDays
		trip.startDate = strings.TrimSpace(req.StartDate)
		if trip.startDate == "" {
			trip.startDate = utils.FormatISODate(time.Now())
		} else if _, err := utils.ParseISODate(trip.startDate); err != nil {
			return trip, fmt.Errorf("%w: start_date must be YYYY-MM-DD", utils.ErrInvalidTripRequest)
		}
	case req.StartDate != "" && req.EndDate != "":
		start, err := utils.ParseISODate(strings.TrimSpace(req.StartDate))
		if err != nil {
			return trip, fmt.Errorf("%w: start_date must be YYYY-MM-DD", utils.ErrInvalidTripRequest)
		}
		end, err := utils.ParseISODate(strings.TrimSpace(req.EndDate))
		if err != nil {
			return trip, fmt.Errorf("%w: end_date must be YYYY-MM-DD", utils.ErrInvalidTripRequest)
		}
		if end.Before(start) {
			return trip, fmt.Errorf("%w: end_date is before start_date", utils.ErrInvalidTripRequest)
		}
		trip.days = utils.SpanDays(start, end)
		trip.startDate = utils.FormatISODate(start)
	default:
		return trip, utils.ErrInvalidTripRequest
	}

	// Long spans blow the model's output budget well before day 30.
	if trip.days > maxTripDays {
		trip.days = maxTripDays
	}

	return trip, nil
}
