package handlers

import (
	"net/http"

	"showdan/utils"

	"github.com/gin-gonic/gin"
)

// HealthHandler reports the last status recorded by the health monitor.
func HealthHandler(c *gin.Context) {
	status := utils.GetHealthStatus()
	code := http.StatusOK
	message := "Server is running"
	if !status.Healthy() {
		code = http.StatusServiceUnavailable
		message = "Server is degraded"
	}
	c.JSON(code, gin.H{"status": statusWord(code), "message": message, "checks": status})
}

func statusWord(code int) string {
	if code == http.StatusOK {
		return "ok"
	}
	return "degraded"
}
