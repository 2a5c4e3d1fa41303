package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RequestLogger stores a request-scoped logger under "logger" and logs each
// request once it completes.
func RequestLogger(base *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		logger := base.With(zap.String("requestID", requestID))
		c.Set("logger", logger)
		c.Header("X-Request-ID", requestID)

		start := time.Now()
		c.Next()

		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.String("ip", getClientIP(c)),
			zap.String("userID", c.GetString("userID")),
			zap.Duration("latency", time.Since(start)))
	}
}
