package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestParseMonthDay(t *testing.T) {
	tests := []struct {
		in        string
		wantMonth time.Month
		wantDay   int
		wantErr   bool
	}{
		{in: "April 1", wantMonth: time.April, wantDay: 1},
		{in: "april 1", wantMonth: time.April, wantDay: 1},
		{in: "SEPTEMBER 23", wantMonth: time.September, wantDay: 23},
		{in: "  December 31  ", wantMonth: time.December, wantDay: 31},
		{in: "", wantErr: true},
		{in: "Aprilis 1", wantErr: true},
		{in: "April", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMonthDay(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantMonth, got.Month())
			assert.Equal(t, tt.wantDay, got.Day())
		})
	}
}

func TestResolveSpanYear(t *testing.T) {
	now := date(2026, time.June, 15)

	t.Run("upcoming span stays in current year", func(t *testing.T) {
		s, e := ResolveSpanYear(date(0, time.July, 1), date(0, time.July, 5), now)
		assert.Equal(t, date(2026, time.July, 1), s)
		assert.Equal(t, date(2026, time.July, 5), e)
	})

	t.Run("past span rolls to next year", func(t *testing.T) {
		s, e := ResolveSpanYear(date(0, time.March, 1), date(0, time.March, 5), now)
		assert.Equal(t, date(2027, time.March, 1), s)
		assert.Equal(t, date(2027, time.March, 5), e)
	})

	t.Run("span crossing new year rolls only the end", func(t *testing.T) {
		s, e := ResolveSpanYear(date(0, time.December, 30), date(0, time.January, 2), now)
		assert.Equal(t, date(2026, time.December, 30), s)
		assert.Equal(t, date(2027, time.January, 2), e)
	})
}

func TestSpanDays(t *testing.T) {
	assert.Equal(t, 1, SpanDays(date(2026, time.April, 1), date(2026, time.April, 1)))
	assert.Equal(t, 5, SpanDays(date(2026, time.April, 1), date(2026, time.April, 5)))
	assert.Equal(t, 4, SpanDays(date(2026, time.December, 30), date(2027, time.January, 2)))
	assert.Equal(t, 0, SpanDays(date(2026, time.April, 5), date(2026, time.April, 1)))
}

func TestDatesFrom(t *testing.T) {
	got := DatesFrom(date(2026, time.April, 29), 3)
	require.Len(t, got, 3)
	assert.Equal(t, "2026-04-29", FormatISODate(got[0]))
	assert.Equal(t, "2026-04-30", FormatISODate(got[1]))
	assert.Equal(t, "2026-05-01", FormatISODate(got[2]))

	assert.Nil(t, DatesFrom(date(2026, time.April, 29), 0))
}

func TestFormatISODate_Zero(t *testing.T) {
	assert.Equal(t, "", FormatISODate(time.Time{}))
}
