package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthHandler reports process liveness for probes.
func HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
