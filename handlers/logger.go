package handlers

import (
	"net/http"
	"strconv"

	"showdan/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// getLogger retrieves a Zap logger from the Gin context or creates a new one.
func getLogger(c *gin.Context) *zap.Logger {
	if l, exists := c.Get("logger"); exists {
		if logger, ok := l.(*zap.Logger); ok {
			return logger
		}
	}
	logger, _ := zap.NewProduction()
	return logger
}

// respondError logs unexpected failures with the request logger, then writes err.
func respondError(c *gin.Context, err error) {
	if utils.HTTPStatus(err) == http.StatusInternalServerError {
		getLogger(c).Error("request failed",
			zap.String("path", c.FullPath()),
			zap.String("userID", c.GetString("userID")),
			zap.Error(err))
	}
	utils.RespondError(c, err)
}

// actorID returns the authenticated user id, aborting with 401 when missing.
func actorID(c *gin.Context) (string, bool) {
	id := c.GetString("userID")
	if id == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
		return "", false
	}
	return id, true
}

// queryInt parses an optional integer query parameter; malformed values read as 0.
func queryInt(c *gin.Context, key string) int {
	n, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return 0
	}
	return n
}
