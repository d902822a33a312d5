package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tirewriter/backend/internal/features/environment/application"
	"tirewriter/backend/internal/logger"
	"tirewriter/backend/internal/middleware"
	"tirewriter/backend/internal/session"
)

// EnvironmentHandler serves the environment check and model loading page.
type EnvironmentHandler struct {
	environmentService application.EnvironmentService
	sessions           session.Store
}

// NewEnvironmentHandler creates a new EnvironmentHandler.
func NewEnvironmentHandler(environmentService application.EnvironmentService, sessions session.Store) *EnvironmentHandler {
	return &EnvironmentHandler{environmentService: environmentService, sessions: sessions}
}

// OverviewHandler returns the page content for the caller's session.
func (h *EnvironmentHandler) OverviewHandler(c *gin.Context) {
	st, ok := middleware.LoadState(c, h.sessions)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.environmentService.Overview(st))
}

// CheckHandler runs the simulated environment check.
func (h *EnvironmentHandler) CheckHandler(c *gin.Context) {
	checks, err := h.environmentService.CheckEnvironment(c.Request.Context())
	if err != nil {
		logger.WarnCtx(c, "Environment check interrupted", nil)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Environment check interrupted: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"checks": checks})
}

// LoadModelHandler runs the simulated model load. Only the loaded flag is
// written back, so changes other requests make during the wait survive.
func (h *EnvironmentHandler) LoadModelHandler(c *gin.Context) {
	st, ok := middleware.LoadState(c, h.sessions)
	if !ok {
		return
	}

	res, err := h.environmentService.LoadModel(c.Request.Context(), &st)
	if err != nil {
		logger.WarnCtx(c, "Model load interrupted", nil)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Model load interrupted: " + err.Error()})
		return
	}
	if _, ok := middleware.UpdateState(c, h.sessions, func(stored *session.State) {
		stored.ModelLoaded = st.ModelLoaded
	}); !ok {
		return
	}

	logger.InfoCtx(c, "Model marked as loaded", logger.Fields{"module": "environment"})
	c.JSON(http.StatusOK, res)
}
