package request_models

// QuickTripRequest is the single free-text line the quick planner accepts,
// e.g. "plan 5-day trip to Paris" or "plan Tokyo trip from April 1 to April 4".
type QuickTripRequest struct {
	Query string `json:"query" form:"query"`
}
