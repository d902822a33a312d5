package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tirewriter/backend/internal/session"
)

// HealthHandler reports liveness and which session backend is in use.
type HealthHandler struct {
	sessions session.Store
	version  string
}

func NewHealthHandler(sessions session.Store, version string) *HealthHandler {
	return &HealthHandler{sessions: sessions, version: version}
}

// HealthCheck returns the health status of the API
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":        "healthy",
		"version":       h.version,
		"session_store": h.sessions.Backend(),
	})
}
