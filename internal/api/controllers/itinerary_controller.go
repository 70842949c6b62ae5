package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tripforge/internal/models/request_models"
	"tripforge/internal/services"
	"tripforge/pkg/utils"
)

type ItineraryController struct {
	itineraryService services.ItineraryServiceInterface
}

func NewItineraryController(itineraryService services.ItineraryServiceInterface) *ItineraryController {
	return &ItineraryController{
		itineraryService: itineraryService,
	}
}

// PlanTripHandler serves POST /api/v1/itineraries. A degraded plan still
// answers 200; its warning rides in the envelope message.
func (i *ItineraryController) PlanTripHandler(c *gin.Context) {
	var req request_models.TripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	result, err := i.itineraryService.PlanTrip(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	message := "Itinerary created successfully"
	if !result.Validated {
		message = result.Warning
	}
	utils.RespondSuccess(c, result, message)
}

// IndexHandler serves the planner form.
func (i *ItineraryController) IndexHandler(c *gin.Context) {
	c.HTML(http.StatusOK, "planner_form.html", gin.H{
		"Form": request_models.TripRequest{},
	})
}

// PlanFormHandler handles the form submission and re-renders the page with
// the result inline.
func (i *ItineraryController) PlanFormHandler(c *gin.Context) {
	var req request_models.TripRequest
	if err := c.ShouldBind(&req); err != nil {
		c.HTML(http.StatusBadRequest, "planner_form.html", gin.H{
			"Form":  req,
			"Error": "Invalid form input",
		})
		return
	}

	result, err := i.itineraryService.PlanTrip(c.Request.Context(), req)
	if err != nil {
		code, message := utils.ErrorStatusMessage(err)
		c.HTML(code, "planner_form.html", gin.H{
			"Form":  req,
			"Error": message,
		})
		return
	}

	c.HTML(http.StatusOK, "planner_form.html", gin.H{
		"Form":   req,
		"Result": result,
	})
}
