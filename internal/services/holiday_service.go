package services

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
	"gopkg.in/yaml.v3"

	"tripforge/pkg/observability"
	"tripforge/pkg/utils"
)

//go:embed holiday_seed.yaml
var holidaySeedYAML []byte

type seedHoliday struct {
	Name  string `yaml:"name"`
	Month int    `yaml:"month"`
	Day   int    `yaml:"day"`
}

type holidaySeed struct {
	Holidays []seedHoliday `yaml:"holidays"`
}

// eventKeywords are generic signals scanned for in model text alongside the
// seed holiday names.
var eventKeywords = []string{"festival", "holiday", "celebration", "parade", "carnival"}

type HolidayServiceInterface interface {
	ForDates(ctx context.Context, dates []time.Time) map[string][]string
	MentionsIn(text string) []string
}

// --------- In-memory cache per (year, country) ---------

type yearCountryKey struct {
	Year    int
	Country string
}

type holidayCacheEntry struct {
	ByDate    map[string][]string
	ExpiresAt time.Time
}

type HolidayService struct {
	http     *http.Client
	apiBase  string
	country  string
	limiter  *rate.Limiter
	cacheTTL time.Duration

	mu     sync.RWMutex
	remote map[yearCountryKey]holidayCacheEntry

	seed []seedHoliday
}

// NewHolidayService builds the enricher. country is an ISO 3166-1 alpha-2
// code; when empty, only the embedded seed is consulted.
func NewHolidayService(apiBase, country string) HolidayServiceInterface {
	var seed holidaySeed
	if err := yaml.Unmarshal(holidaySeedYAML, &seed); err != nil {
		panic(fmt.Sprintf("holiday seed does not parse: %v", err))
	}

	return &HolidayService{
		http:     &http.Client{Timeout: 15 * time.Second},
		apiBase:  strings.TrimRight(apiBase, "/"),
		country:  strings.ToUpper(strings.TrimSpace(country)),
		limiter:  rate.NewLimiter(rate.Limit(1), 2),
		cacheTTL: 24 * time.Hour,
		remote:   make(map[yearCountryKey]holidayCacheEntry),
		seed:     seed.Holidays,
	}
}

// ForDates maps each date (ISO key) to the holidays falling on it. Remote
// lookups are best-effort; the embedded seed always applies.
func (h *HolidayService) ForDates(ctx context.Context, dates []time.Time) map[string][]string {
	remote := map[string][]string{}
	if h.country != "" {
		years := map[int]bool{}
		for _, d := range dates {
			years[d.Year()] = true
		}
		for year := range years {
			byDate, err := h.remoteHolidays(ctx, year)
			if err != nil {
				log.Warn().Err(err).Int("year", year).Str("country", h.country).
					Msg("holiday lookup failed, using seed only")
				continue
			}
			for date, names := range byDate {
				remote[date] = append(remote[date], names...)
			}
		}
	}

	out := make(map[string][]string, len(dates))
	for _, d := range dates {
		iso := utils.FormatISODate(d)
		var names []string
		for _, s := range h.seed {
			if int(d.Month()) == s.Month && d.Day() == s.Day {
				names = append(names, s.Name)
			}
		}
		names = append(names, remote[iso]...)
		out[iso] = dedupeStrings(names)
	}

	return out
}

// MentionsIn scans model text for seed holiday names and generic event words.
func (h *HolidayService) MentionsIn(text string) []string {
	lower := strings.ToLower(text)

	var found []string
	for _, s := range h.seed {
		if strings.Contains(lower, strings.ToLower(s.Name)) {
			found = append(found, s.Name)
		}
	}
	for _, kw := range eventKeywords {
		if strings.Contains(lower, kw) {
			found = append(found, kw)
		}
	}

	return dedupeStrings(found)
}

func (h *HolidayService) remoteHolidays(ctx context.Context, year int) (map[string][]string, error) {
	key := yearCountryKey{Year: year, Country: h.country}

	h.mu.RLock()
	entry, ok := h.remote[key]
	h.mu.RUnlock()
	if ok && time.Now().Before(entry.ExpiresAt) {
		return entry.ByDate, nil
	}

	if err := h.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/PublicHolidays/%d/%s", h.apiBase, year, h.country)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	resp, err := h.http.Do(req)
	if err != nil {
		observability.ObserveExternal("nager", "public_holidays", 0, time.Since(start))
		return nil, fmt.Errorf("%w: %v", utils.ErrHolidayLookup, err)
	}
	defer resp.Body.Close()

	observability.ObserveExternal("nager", "public_holidays", resp.StatusCode, time.Since(start))

	if resp.StatusCode/100 != 2 {
		return nil, fmt.Errorf("%w: status %s", utils.ErrHolidayLookup, resp.Status)
	}

	var payload []struct {
		Date      string `json:"date"`
		LocalName string `json:"localName"`
		Name      string `json:"name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", utils.ErrHolidayLookup, err)
	}

	byDate := make(map[string][]string, len(payload))
	for _, ph := range payload {
		name := ph.Name
		if name == "" {
			name = ph.LocalName
		}
		if name == "" {
			continue
		}
		byDate[ph.Date] = append(byDate[ph.Date], name)
	}

	h.mu.Lock()
	h.remote[key] = holidayCacheEntry{ByDate: byDate, ExpiresAt: time.Now().Add(h.cacheTTL)}
	h.mu.Unlock()

	return byDate, nil
}

func dedupeStrings(in []string) []string {
	if len(in) < 2 {
		return in
	}
	seen := make(map[string]bool, len(in))
	out := in[:0]
	for _, s := range in {
		if seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
