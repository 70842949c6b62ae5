package services

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"tripforge/internal/models/response_models"
	"tripforge/pkg/utils"
)

// The quick planner accepts exactly two query shapes:
//
//	plan 5-day trip to Paris
//	plan Paris trip from April 1 to April 5
var (
	dayTripPattern  = regexp.MustCompile(`(?i)^\s*plan (?:a )?(\d+)-day trip to (\w+)`)
	dateTripPattern = regexp.MustCompile(`(?i)^\s*plan (?:a )?(\w+) trip from (\w+ \d{1,2}) to (\w+ \d{1,2})`)
)

const quickTripSystemPrompt = "You are a helpful travel assistant."

type QuickTripServiceInterface interface {
	Plan(ctx context.Context, query string) (*response_models.QuickTripResult, error)
}

type QuickTripService struct {
	chat        utils.ChatClientInterface
	holidays    HolidayServiceInterface
	temperature float32
	maxTokens   int
	timeout     time.Duration
}

func NewQuickTripService(
	chat utils.ChatClientInterface,
	holidays HolidayServiceInterface,
	temperature float32,
	maxTokens int,
	timeout time.Duration,
) QuickTripServiceInterface {
	return &QuickTripService{
		chat:        chat,
		holidays:    holidays,
		temperature: temperature,
		maxTokens:   maxTokens,
		timeout:     timeout,
	}
}

// Plan answers one free-text query. The model call and the holiday lookup
// run concurrently; holiday data is best-effort and never fails the plan.
func (s *QuickTripService) Plan(ctx context.Context, query string) (*response_models.QuickTripResult, error) {
	trip, err := parseQuickTripQuery(query, time.Now())
	if err != nil {
		return nil, err
	}
	if trip.days > maxTripDays {
		trip.days = maxTripDays
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	prompt := BuildQuickTripPrompt(trip.destination, trip.days, trip.start, trip.end, trip.hasDates)
	dates := utils.DatesFrom(trip.start, trip.days)

	var (
		itineraryText string
		byDate        map[string][]string
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		text, err := s.chat.Complete(gctx, prompt, utils.CompletionOptions{
			SystemPrompt: quickTripSystemPrompt,
			Temperature:  s.temperature,
			MaxTokens:    s.maxTokens,
		})
		if err != nil {
			return err
		}
		itineraryText = strings.TrimSpace(text)
		return nil
	})
	g.Go(func() error {
		byDate = s.holidays.ForDates(gctx, dates)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	slots := make([]response_models.DaySlot, 0, len(dates))
	for _, d := range dates {
		iso := utils.FormatISODate(d)
		slots = append(slots, response_models.DaySlot{Date: iso, Holidays: byDate[iso]})
	}

	result := &response_models.QuickTripResult{
		Destination:   trip.destination,
		Days:          slots,
		ItineraryText: itineraryText,
		EventMentions: s.holidays.MentionsIn(itineraryText),
	}
	if len(slots) > 0 {
		result.StartDate = slots[0].Date
		result.EndDate = slots[len(slots)-1].Date
	}

	return result, nil
}

// BuildQuickTripPrompt mirrors the quick planner's request wording.
func BuildQuickTripPrompt(destination string, days int, start, end time.Time, hasDates bool) string {
	prompt := fmt.Sprintf("Create a detailed %d-day itinerary for a trip to %s. "+
		"Include popular tourist spots, activities, recommended restaurants for both lunch and dinner, "+
		"and any local holiday events that may be happening during the trip.", days, destination)
	if hasDates {
		prompt += fmt.Sprintf(" The trip is from %s to %s.", utils.FormatLongDate(start), utils.FormatLongDate(end))
	}
	return prompt
}

type parsedQuickTrip struct {
	destination string
	days        int
	start       time.Time
	end         time.Time
	hasDates    bool
}

// parseQuickTripQuery extracts the trip parameters from a query. Month-day
// spans carry no year, so the span is pinned to the first upcoming
// occurrence relative to now.
func parseQuickTripQuery(query string, now time.Time) (parsedQuickTrip, error) {
	if m := dayTripPattern.FindStringSubmatch(query); m != nil {
		days, err := strconv.Atoi(m[1])
		if err != nil || days < 1 {
			return parsedQuickTrip{}, utils.ErrUnparseableQuery
		}
		return parsedQuickTrip{
			destination: m[2],
			days:        days,
			start:       now,
		}, nil
	}

	if m := dateTripPattern.FindStringSubmatch(query); m != nil {
		start, err := utils.ParseMonthDay(m[2])
		if err != nil {
			return parsedQuickTrip{}, fmt.Errorf("%w: bad start date %q", utils.ErrUnparseableQuery, m[2])
		}
		end, err := utils.ParseMonthDay(m[3])
		if err != nil {
			return parsedQuickTrip{}, fmt.Errorf("%w: bad end date %q", utils.ErrUnparseableQuery, m[3])
		}
		start, end = utils.ResolveSpanYear(start, end, now)
		return parsedQuickTrip{
			destination: m[1],
			days:        utils.SpanDays(start, end),
			start:       start,
			end:         end,
			hasDates:    true,
		}, nil
	}

	return parsedQuickTrip{}, utils.ErrUnparseableQuery
}
