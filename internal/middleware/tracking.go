package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"tirewriter/backend/internal/logger"
)

// RequestTracking adds request ID and logging to all requests
func RequestTracking() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)

		start := time.Now()
		c.Next()

		duration := time.Since(start)
		statusCode := c.Writer.Status()

		fields := logger.Fields{
			"request_id":  requestID,
			"duration_ms": duration.Milliseconds(),
			"status_code": statusCode,
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"client_ip":   c.ClientIP(),
		}
		if sessionID := c.GetString(sessionIDKey); sessionID != "" {
			fields["session_id"] = sessionID
		}

		if statusCode >= http.StatusInternalServerError {
			logger.ErrorCtx(c, "Request failed with server error", nil, fields)
		} else if statusCode >= http.StatusBadRequest {
			logger.WarnCtx(c, "Request failed with client error", fields)
		} else {
			logger.InfoCtx(c, "Request completed", fields)
		}
	}
}
