// utils/time_utils.go
package utils

import (
	"fmt"
	"strings"
	"time"
)

const isoDateLayout = "2006-01-02"

// ParseMonthDay parses inputs like "April 1" or "september 23". The returned
// time carries year 0; callers resolve the year with ResolveSpanYear.
func ParseMonthDay(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	parts := strings.Fields(s)
	if len(parts) == 2 && parts[0] != "" {
		month := strings.ToLower(parts[0])
		s = strings.ToUpper(month[:1]) + month[1:] + " " + parts[1]
	}
	t, err := time.Parse("January 2", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("unrecognized date %q: %w", s, err)
	}
	return t, nil
}

// ResolveSpanYear anchors a year-less start/end pair to a concrete year
// relative to now: the current year by default, the end rolled forward when
// the span crosses New Year, and the whole span pushed to next year when it
// already lies fully in the past.
func ResolveSpanYear(start, end, now time.Time) (time.Time, time.Time) {
	year := now.Year()
	s := time.Date(year, start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	e := time.Date(year, end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)

	if e.Before(s) {
		e = e.AddDate(1, 0, 0)
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if e.Before(today) {
		s = s.AddDate(1, 0, 0)
		e = e.AddDate(1, 0, 0)
	}

	return s, e
}

// SpanDays counts calendar days in [start, end] inclusive.
func SpanDays(start, end time.Time) int {
	s := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	e := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)
	if e.Before(s) {
		return 0
	}
	return int(e.Sub(s).Hours()/24) + 1
}

// DatesFrom returns n consecutive dates starting at start.
func DatesFrom(start time.Time, n int) []time.Time {
	if n <= 0 {
		return nil
	}
	dates := make([]time.Time, n)
	for i := 0; i < n; i++ {
		dates[i] = start.AddDate(0, 0, i)
	}
	return dates
}

func FormatISODate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(isoDateLayout)
}

func ParseISODate(s string) (time.Time, error) {
	return time.Parse(isoDateLayout, strings.TrimSpace(s))
}

// FormatLongDate renders "April 1, 2026" for prompts and UI copy.
func FormatLongDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("January 2, 2006")
}
