package response_models

// DaySlot is one entry in the quick planner's skeleton: a concrete date plus
// any holidays that fall on it.
type DaySlot struct {
	Date     string   `json:"date"`
	Holidays []string `json:"holidays,omitempty"`
}

type QuickTripResult struct {
	Destination   string    `json:"destination"`
	StartDate     string    `json:"start_date,omitempty"`
	EndDate       string    `json:"end_date,omitempty"`
	Days          []DaySlot `json:"days"`
	ItineraryText string    `json:"itinerary_text"`
	EventMentions []string  `json:"event_mentions,omitempty"`
}
