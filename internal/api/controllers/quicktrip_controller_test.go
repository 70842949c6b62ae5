package controllers_test

import (
	"context"
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

type stubQuickTripService struct {
	result    *response_models.QuickTripResult
	err       error
	lastQuery string
}

func (s *stubQuickTripService) Plan(_ context.Context, query string) (*response_models.QuickTripResult, error) {
	s.lastQuery = query
	return s.result, s.err
}

func buildQuickTripRouter(svc *stubQuickTripService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.TraceIDMiddleware())
	r.SetHTMLTemplate(web.Templates())

	ctrl := controllers.NewQuickTripController(svc)
	r.GET("/", ctrl.IndexHandler)
	r.POST("/plan", ctrl.PlanFormHandler)
	r.POST("/api/v1/quicktrips", ctrl.PlanHandler)
	return r
}

func TestQuickTripPlanHandler_Success(t *testing.T) {
	svc := &stubQuickTripService{result: &response_models.QuickTripResult{
		Destination:   "Paris",
		Days:          []response_models.DaySlot{{Date: "2026-07-14", Holidays: []string{"Bastille Day"}}},
		ItineraryText: "Day 1: Eiffel Tower",
	}}
	r := buildQuickTripRouter(svc)

	w := postJSON(t, r, "/api/v1/quicktrips", request_models.QuickTripRequest{Query: "plan 1-day trip to Paris"})

	require.Equal(t, http.StatusOK, w.Code)
	env := decodeEnvelope(t, w)
	assert.Equal(t, "success", env.Status)
	assert.Equal(t, "plan 1-day trip to Paris", svc.lastQuery)
}

func TestQuickTripPlanHandler_EmptyQuery(t *testing.T) {
	r := buildQuickTripRouter(&stubQuickTripService{})

	w := postJSON(t, r, "/api/v1/quicktrips", request_models.QuickTripRequest{Query: "   "})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "error", decodeEnvelope(t, w).Status)
}

func TestQuickTripPlanHandler_UnparseableQuery(t *testing.T) {
	r := buildQuickTripRouter(&stubQuickTripService{err: utils.ErrUnparseableQuery})

	w := postJSON(t, r, "/api/v1/quicktrips", request_models.QuickTripRequest{Query: "take me anywhere"})

	require.Equal(t, http.StatusBadRequest, w.Code)
	env := decodeEnvelope(t, w)
	assert.Equal(t, "Sorry, I couldn't understand your request.", env.Message)
}

func TestQuickTripPlanFormHandler_RendersResult(t *testing.T) {
	svc := &stubQuickTripService{result: &response_models.QuickTripResult{
		Destination:   "Tokyo",
		StartDate:     "2027-04-01",
		EndDate:       "2027-04-04",
		Days:          []response_models.DaySlot{{Date: "2027-04-01"}},
		ItineraryText: "Day 1: Senso-ji temple",
		EventMentions: []string{"festival"},
	}}
	r := buildQuickTripRouter(svc)

	form := url.Values{"query": {"plan Tokyo trip from April 1 to April 4"}}
	req := httptest.NewRequest(http.MethodPost, "/plan", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Tokyo")
	assert.Contains(t, w.Body.String(), "Senso-ji temple")
	assert.Contains(t, w.Body.String(), "festival")
}

func TestQuickTripPlanFormHandler_EmptyQuery(t *testing.T) {
	r := buildQuickTripRouter(&stubQuickTripService{})

	form := url.Values{"query": {"  "}}
	req := httptest.NewRequest(http.MethodPost, "/plan", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Enter a request first")
}
