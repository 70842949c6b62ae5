// Declarative schema validation for model-produced itineraries.
package validation

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"tripforge/internal/models/response_models"
	"tripforge/pkg/utils"
)

const itinerarySchemaJSON = `{
  "type": "object",
  "required": ["name", "day_plans", "hotel"],
  "properties": {
    "name": {"type": "string"},
    "hotel": {"type": "string"},
    "day_plans": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "required": ["date", "activities", "restaurants"],
        "properties": {
          "date": {"type": "string"},
          "activities": {
            "type": "array",
            "minItems": 1,
            "items": {"$ref": "#/definitions/activity"}
          },
          "restaurants": {
            "type": "array",
            "minItems": 1,
            "items": {"type": "string"}
          },
          "flight": {
            "type": "array",
            "items": {"$ref": "#/definitions/airline_option"}
          }
        }
      }
    }
  },
  "definitions": {
    "activity": {
      "type": "object",
      "required": ["name", "location", "description", "date", "why_its_suitable"],
      "properties": {
        "name": {"type": "string"},
        "location": {"type": "string"},
        "description": {"type": "string"},
        "date": {"type": "string"},
        "cuisine": {"type": "string"},
        "why_its_suitable": {"type": "string"},
        "reviews": {"type": "array", "items": {"type": "string"}},
        "rating": {"type": "number"}
      }
    },
    "airline_option": {
      "type": "object",
      "required": ["airline", "flight_number", "departure", "arrival", "price"],
      "properties": {
        "airline": {"type": "string"},
        "flight_number": {"type": "string"},
        "departure": {"type": "string"},
        "arrival": {"type": "string"},
        "price": {"type": "string"}
      }
    }
  }
}`

var itinerarySchema = func() *gojsonschema.Schema {
	s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(itinerarySchemaJSON))
	if err != nil {
		panic(fmt.Sprintf("itinerary schema does not compile: %v", err))
	}
	return s
}()

// ValidateItineraryJSON checks a cleaned model response against the fixed
// itinerary schema. Violations come back joined into one error so the retry
// prompt can quote them.
func ValidateItineraryJSON(doc string) error {
	if !json.Valid([]byte(doc)) {
		return fmt.Errorf("%w: response is not valid JSON", utils.ErrItineraryValidation)
	}

	result, err := itinerarySchema.Validate(gojsonschema.NewStringLoader(doc))
	if err != nil {
		return fmt.Errorf("%w: %v", utils.ErrItineraryValidation, err)
	}
	if result.Valid() {
		return nil
	}

	msgs := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		msgs = append(msgs, desc.String())
	}
	return fmt.Errorf("%w: %s", utils.ErrItineraryValidation, strings.Join(msgs, "; "))
}

// ParseItinerary validates and unmarshals in one step.
func ParseItinerary(doc string) (*response_models.Itinerary, error) {
	if err := ValidateItineraryJSON(doc); err != nil {
		return nil, err
	}
	var it response_models.Itinerary
	if err := json.Unmarshal([]byte(doc), &it); err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrItineraryValidation, err)
	}
	return &it, nil
}

// CheckItineraryShape enforces what the schema alone cannot: the exact day
// count, an outbound flight on day 1 and a return flight on the final day
// when flights were requested.
func CheckItineraryShape(it *response_models.Itinerary, expectedDays int, flightsRequested bool) error {
	if it == nil {
		return fmt.Errorf("%w: empty itinerary", utils.ErrItineraryValidation)
	}
	if len(it.DayPlans) != expectedDays {
		return fmt.Errorf("%w: expected %d days, got %d", utils.ErrItineraryValidation, expectedDays, len(it.DayPlans))
	}
	if flightsRequested {
		if len(it.DayPlans[0].Flights) == 0 {
			return fmt.Errorf("%w: day 1 is missing an outbound flight", utils.ErrItineraryValidation)
		}
		if len(it.DayPlans[len(it.DayPlans)-1].Flights) == 0 {
			return fmt.Errorf("%w: final day is missing a return flight", utils.ErrItineraryValidation)
		}
	}
	return nil
}
