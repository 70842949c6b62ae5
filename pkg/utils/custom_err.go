package utils

import "errors"

var (
	ErrInvalidTripRequest  = errors.New("invalid trip request")
	ErrUnparseableQuery    = errors.New("unparseable trip query")
	ErrItineraryValidation = errors.New("itinerary failed schema validation")
	ErrLLMAuth             = errors.New("llm provider rejected credentials")
	ErrLLMRateLimited      = errors.New("llm provider rate limited the request")
	ErrLLMRequestFailed    = errors.New("llm request failed")
	ErrEmbeddingFailed     = errors.New("embedding request failed")
	ErrDatabaseError       = errors.New("database error")
	ErrHolidayLookup       = errors.New("holiday lookup failed")
)
