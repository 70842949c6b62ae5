package response_models

import (
	"fmt"
	"strings"
)

// AirlineOption is one flight suggestion inside a day plan. Price stays a
// string because models quote it in arbitrary currencies and formats.
type AirlineOption struct {
	Airline      string `json:"airline"`
	FlightNumber string `json:"flight_number"`
	Departure    string `json:"departure"`
	Arrival      string `json:"arrival"`
	Price        string `json:"price"`
}

type Activity struct {
	Name           string   `json:"name"`
	Location       string   `json:"location"`
	Description    string   `json:"description"`
	Date           string   `json:"date"`
	Cuisine        string   `json:"cuisine,omitempty"`
	WhyItsSuitable string   `json:"why_its_suitable"`
	Reviews        []string `json:"reviews,omitempty"`
	Rating         float64  `json:"rating,omitempty"`
}

type DayPlan struct {
	Date        string          `json:"date"`
	Activities  []Activity      `json:"activities"`
	Restaurants []string        `json:"restaurants"`
	Flights     []AirlineOption `json:"flight,omitempty"`
}

type Itinerary struct {
	Name     string    `json:"name"`
	DayPlans []DayPlan `json:"day_plans"`
	Hotel    string    `json:"hotel"`
}

// ItineraryResult is what the planner hands back. Validated=false means the
// model output failed schema validation twice; RawText then carries the
// cleaned but unvalidated response and Warning explains the downgrade.
type ItineraryResult struct {
	Itinerary *Itinerary `json:"itinerary,omitempty"`
	Markdown  string     `json:"markdown,omitempty"`
	Validated bool       `json:"validated"`
	RawText   string     `json:"raw_text,omitempty"`
	Warning   string     `json:"warning,omitempty"`
}

// RenderMarkdown flattens a validated itinerary into the markdown shape the
// UI and API expose alongside the structured data.
func RenderMarkdown(it *Itinerary) string {
	if it == nil {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", it.Name)
	fmt.Fprintf(&b, "**Hotel:** %s\n", it.Hotel)

	for i, day := range it.DayPlans {
		fmt.Fprintf(&b, "\n## Day %d - %s\n", i+1, day.Date)

		if len(day.Flights) > 0 {
			b.WriteString("\nFlights:\n")
			for _, f := range day.Flights {
				fmt.Fprintf(&b, "- %s %s: %s to %s (%s)\n", f.Airline, f.FlightNumber, f.Departure, f.Arrival, f.Price)
			}
		}

		if len(day.Activities) > 0 {
			b.WriteString("\nActivities:\n")
			for _, a := range day.Activities {
				fmt.Fprintf(&b, "- **%s** (%s): %s %s\n", a.Name, a.Location, a.Description, a.WhyItsSuitable)
			}
		}

		if len(day.Restaurants) > 0 {
			b.WriteString("\nRestaurants:\n")
			for _, r := range day.Restaurants {
				fmt.Fprintf(&b, "- %s\n", r)
			}
		}
	}

	return b.String()
}
