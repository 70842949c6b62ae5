package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripforge/internal/api/controllers"
	"tripforge/internal/models/request_models"
	"tripforge/internal/models/response_models"
	"tripforge/pkg/middleware"
	"tripforge/pkg/utils"
	"tripforge/web"
)

type stubItineraryService struct {
	result  *response_models.ItineraryResult
	err     error
	lastReq request_models.TripRequest
}

func (s *stubItineraryService) PlanTrip(_ context.Context, req request_models.TripRequest) (*response_models.ItineraryResult, error) {
	s.lastReq = req
	return s.result, s.err
}

func buildPlannerRouter(svc *stubItineraryService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.TraceIDMiddleware())
	r.SetHTMLTemplate(web.Templates())

	ctrl := controllers.NewItineraryController(svc)
	r.GET("/", ctrl.IndexHandler)
	r.POST("/plan", ctrl.PlanFormHandler)
	r.POST("/api/v1/itineraries", ctrl.PlanTripHandler)
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, json.NewEncoder(&buf).Encode(body))
	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) utils.APIResponse {
	t.Helper()
	var env utils.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func TestPlanTripHandler_Success(t *testing.T) {
	svc := &stubItineraryService{result: &response_models.ItineraryResult{
		Itinerary: &response_models.Itinerary{Name: "Paris Trip", Hotel: "Lutetia"},
		Validated: true,
	}}
	r := buildPlannerRouter(svc)

	w := postJSON(t, r, "/api/v1/itineraries", request_models.TripRequest{
		Origin: "NYC", Destination: "Paris", DurationDays: 3,
	})

	require.Equal(t, http.StatusOK, w.Code)
	env := decodeEnvelope(t, w)
	assert.Equal(t, "success", env.Status)
	assert.Equal(t, "Itinerary created successfully", env.Message)
	assert.NotEmpty(t, env.TraceID)
	assert.Equal(t, w.Header().Get("X-Trace-ID"), env.TraceID)
	assert.Equal(t, "Paris", svc.lastReq.Destination)
}

func TestPlanTripHandler_DegradedStillAnswers200(t *testing.T) {
	svc := &stubItineraryService{result: &response_models.ItineraryResult{
		Validated: false,
		RawText:   "some raw text",
		Warning:   "The travel model returned a plan that did not match the expected structure.",
	}}
	r := buildPlannerRouter(svc)

	w := postJSON(t, r, "/api/v1/itineraries", request_models.TripRequest{
		Origin: "NYC", Destination: "Paris", DurationDays: 3,
	})

	require.Equal(t, http.StatusOK, w.Code)
	env := decodeEnvelope(t, w)
	assert.Equal(t, "success", env.Status)
	assert.Contains(t, env.Message, "did not match the expected structure")
}

func TestPlanTripHandler_MalformedJSON(t *testing.T) {
	r := buildPlannerRouter(&stubItineraryService{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/itineraries", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	env := decodeEnvelope(t, w)
	assert.Equal(t, "error", env.Status)
}

func TestPlanTripHandler_ServiceErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{"invalid request", utils.ErrInvalidTripRequest, http.StatusBadRequest},
		{"rate limited", utils.ErrLLMRateLimited, http.StatusTooManyRequests},
		{"auth failure", utils.ErrLLMAuth, http.StatusBadGateway},
		{"model unavailable", utils.ErrLLMRequestFailed, http.StatusBadGateway},
		{"database", utils.ErrDatabaseError, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := buildPlannerRouter(&stubItineraryService{err: tt.err})
			w := postJSON(t, r, "/api/v1/itineraries", request_models.TripRequest{
				Origin: "NYC", Destination: "Paris", DurationDays: 3,
			})
			assert.Equal(t, tt.wantCode, w.Code)
			assert.Equal(t, "error", decodeEnvelope(t, w).Status)
		})
	}
}

func TestPlanFormHandler_RendersResult(t *testing.T) {
	svc := &stubItineraryService{result: &response_models.ItineraryResult{
		Itinerary: &response_models.Itinerary{
			Name:  "Paris Trip",
			Hotel: "Lutetia",
			DayPlans: []response_models.DayPlan{{
				Date:        "2026-05-01",
				Activities:  []response_models.Activity{{Name: "Louvre", Location: "Paris", Description: "Art", Date: "2026-05-01", WhyItsSuitable: "Museums"}},
				Restaurants: []string{"Le Comptoir"},
			}},
		},
		Validated: true,
	}}
	r := buildPlannerRouter(svc)

	form := url.Values{
		"origin":        {"NYC"},
		"destination":   {"Paris"},
		"duration_days": {"1"},
	}
	req := httptest.NewRequest(http.MethodPost, "/plan", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Paris Trip")
	assert.Contains(t, w.Body.String(), "Lutetia")
}

func TestPlanFormHandler_BindsDateRangeAndFlightOptOut(t *testing.T) {
	svc := &stubItineraryService{result: &response_models.ItineraryResult{
		Itinerary: &response_models.Itinerary{Name: "Trip", Hotel: "Hotel"},
		Validated: true,
	}}
	r := buildPlannerRouter(svc)

	// The checkbox is unchecked, so only the hidden false value is sent.
	form := url.Values{
		"origin":          {"NYC"},
		"destination":     {"Paris"},
		"start_date":      {"2026-05-01"},
		"end_date":        {"2026-05-05"},
		"include_flights": {"false"},
	}
	req := httptest.NewRequest(http.MethodPost, "/plan", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "2026-05-01", svc.lastReq.StartDate)
	assert.Equal(t, "2026-05-05", svc.lastReq.EndDate)
	assert.False(t, svc.lastReq.FlightsRequested())
}

func TestPlannerIndex_ServesForm(t *testing.T) {
	r := buildPlannerRouter(&stubItineraryService{})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "<form")
	for _, field := range []string{
		`name="origin"`, `name="destination"`, `name="duration_days"`,
		`name="start_date"`, `name="end_date"`, `name="include_flights"`,
	} {
		assert.Contains(t, w.Body.String(), field)
	}
	// Flights default to on, so the fresh form shows the box checked.
	assert.Contains(t, w.Body.String(), "checked")
}
