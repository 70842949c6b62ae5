package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type APIResponse struct {
	Status  string      `json:"status"`
	Code    int         `json:"code"`
	Message string      `json:"message,omitempty"`
	TraceID string      `json:"trace_id,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func traceIDFrom(c *gin.Context) string {
	if v, ok := c.Get("trace_id"); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func RespondSuccess(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, APIResponse{
		Status:  "success",
		Code:    http.StatusOK,
		Message: message,
		TraceID: traceIDFrom(c),
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, message string) {
	c.JSON(code, APIResponse{
		Status:  "error",
		Code:    code,
		Message: message,
		TraceID: traceIDFrom(c),
	})
}

// ErrorStatusMessage maps a service error onto the HTTP status and the
// user-facing message for it. Shared by the JSON envelope and the form UI.
func ErrorStatusMessage(err error) (int, string) {
	switch {
	case errors.Is(err, ErrInvalidTripRequest):
		return http.StatusBadRequest, "Origin, destination and a duration or date range are required"
	case errors.Is(err, ErrUnparseableQuery):
		return http.StatusBadRequest, "Sorry, I couldn't understand your request."
	case errors.Is(err, ErrLLMRateLimited):
		return http.StatusTooManyRequests, "The travel model is busy, please retry shortly"
	case errors.Is(err, ErrLLMAuth), errors.Is(err, ErrLLMRequestFailed):
		return http.StatusBadGateway, "Travel model unavailable"
	case errors.Is(err, ErrEmbeddingFailed):
		return http.StatusBadGateway, "Personalization unavailable"
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}

func HandleServiceError(c *gin.Context, err error) {
	code, message := ErrorStatusMessage(err)
	if code >= http.StatusInternalServerError {
		log.Error().Err(err).Str("trace_id", traceIDFrom(c)).Msg("service call failed")
	}
	RespondError(c, code, message)
}
