package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"tripforge/internal/models/request_models"
	"tripforge/internal/services"
	"tripforge/pkg/utils"
)

type QuickTripController struct {
	quickTripService services.QuickTripServiceInterface
}

func NewQuickTripController(quickTripService services.QuickTripServiceInterface) *QuickTripController {
	return &QuickTripController{
		quickTripService: quickTripService,
	}
}

// PlanHandler serves POST /api/v1/quicktrips.
func (q *QuickTripController) PlanHandler(c *gin.Context) {
	var req request_models.QuickTripRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Query) == "" {
		utils.RespondError(c, http.StatusBadRequest, "query is required")
		return
	}

	result, err := q.quickTripService.Plan(c.Request.Context(), req.Query)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, result, "Trip planned successfully")
}

// IndexHandler serves the one-line planner form.
func (q *QuickTripController) IndexHandler(c *gin.Context) {
	c.HTML(http.StatusOK, "quicktrip_form.html", gin.H{
		"Query": "",
	})
}

func (q *QuickTripController) PlanFormHandler(c *gin.Context) {
	query := strings.TrimSpace(c.PostForm("query"))
	if query == "" {
		c.HTML(http.StatusBadRequest, "quicktrip_form.html", gin.H{
			"Query": query,
			"Error": "Enter a request first",
		})
		return
	}

	result, err := q.quickTripService.Plan(c.Request.Context(), query)
	if err != nil {
		code, message := utils.ErrorStatusMessage(err)
		c.HTML(code, "quicktrip_form.html", gin.H{
			"Query": query,
			"Error": message,
		})
		return
	}

	c.HTML(http.StatusOK, "quicktrip_form.html", gin.H{
		"Query":  query,
		"Result": result,
	})
}
