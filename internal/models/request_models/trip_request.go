package request_models

// TripRequest carries one planner submission. Either DurationDays or the
// StartDate/EndDate pair must be present; dates are ISO (2006-01-02).
// IncludeFlights defaults to true when omitted.
type TripRequest struct {
	UserID         string `json:"user_id" form:"user_id"`
	Origin         string `json:"origin" form:"origin"`
	Destination    string `json:"destination" form:"destination"`
	DurationDays   int    `json:"duration_days" form:"duration_days"`
	StartDate      string `json:"start_date" form:"start_date"`
	EndDate        string `json:"end_date" form:"end_date"`
	Preferences    string `json:"preferences" form:"preferences"`
	IncludeFlights *bool  `json:"include_flights" form:"include_flights"`
}

func (r TripRequest) FlightsRequested() bool {
	return r.IncludeFlights == nil || *r.IncludeFlights
}
