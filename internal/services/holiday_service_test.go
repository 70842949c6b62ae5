package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHolidayService_SeedOnly(t *testing.T) {
	svc := NewHolidayService("", "")

	dates := []time.Time{
		time.Date(2026, time.July, 3, 0, 0, 0, 0, time.UTC),
		time.Date(2026, time.July, 4, 0, 0, 0, 0, time.UTC),
	}
	got := svc.ForDates(context.Background(), dates)

	assert.Empty(t, got["2026-07-03"])
	assert.Contains(t, got["2026-07-04"], "Independence Day")
}

func TestHolidayService_RemoteMergedWithSeed(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		require.Equal(t, "/PublicHolidays/2026/FR", r.URL.Path)
		_ = json.NewEncoder(w).Encode([]map[string]string{
			{"date": "2026-07-14", "localName": "Fête nationale", "name": "Bastille Day"},
			{"date": "2026-07-15", "localName": "Jour local", "name": ""},
		})
	}))
	defer srv.Close()

	svc := NewHolidayService(srv.URL, "fr")

	dates := []time.Time{
		time.Date(2026, time.July, 14, 0, 0, 0, 0, time.UTC),
		time.Date(2026, time.July, 15, 0, 0, 0, 0, time.UTC),
	}
	got := svc.ForDates(context.Background(), dates)

	// Seed and remote agree on July 14; the merge dedupes the name.
	assert.Equal(t, []string{"Bastille Day"}, got["2026-07-14"])
	// Empty remote names fall back to the local name.
	assert.Equal(t, []string{"Jour local"}, got["2026-07-15"])

	// Second lookup for the same year is served from the cache.
	svc.ForDates(context.Background(), dates)
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
}

func TestHolidayService_RemoteFailureDegradesToSeed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	svc := NewHolidayService(srv.URL, "US")

	dates := []time.Time{time.Date(2026, time.December, 25, 0, 0, 0, 0, time.UTC)}
	got := svc.ForDates(context.Background(), dates)

	assert.Contains(t, got["2026-12-25"], "Christmas Day")
}

func TestHolidayService_MentionsIn(t *testing.T) {
	svc := NewHolidayService("", "")

	mentions := svc.MentionsIn("Catch the Halloween parade, then a harvest festival; halloween fireworks too.")

	assert.Contains(t, mentions, "Halloween")
	assert.Contains(t, mentions, "parade")
	assert.Contains(t, mentions, "festival")
	// Dedupe across seed names and keywords.
	count := 0
	for _, m := range mentions {
		if m == "Halloween" {
			count++
		}
	}
	assert.Equal(t, 1, count)

	assert.Empty(t, svc.MentionsIn("Just museums and food."))
}
