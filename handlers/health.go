package handlers

import (
	"net/http"

	"roadguard/utils"

	"github.com/gin-gonic/gin"
)

// HealthHandler reports the latest backend health snapshot. Unhealthy
// dependencies turn the status into 503.
func HealthHandler(c *gin.Context) {
	status := utils.GetHealthStatus()
	healthy := status.Store == "memory" || status.Mongo
	if status.Redis != nil && !*status.Redis {
		healthy = false
	}
	code := http.StatusOK
	if !healthy {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, gin.H{"success": healthy, "status": status, "message": "Hi, I'm RoadGuard"})
}
