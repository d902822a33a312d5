package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"tirewriter/backend/internal/features/dataset/application"
	"tirewriter/backend/internal/features/dataset/domain"
	"tirewriter/backend/internal/logger"
	"tirewriter/backend/internal/middleware"
	"tirewriter/backend/internal/session"
)

// DatasetHandler serves the case browser.
type DatasetHandler struct {
	datasetService application.DatasetService
	sessions       session.Store
}

// NewDatasetHandler creates a new DatasetHandler.
func NewDatasetHandler(datasetService application.DatasetService, sessions session.Store) *DatasetHandler {
	return &DatasetHandler{datasetService: datasetService, sessions: sessions}
}

// OverviewHandler returns the data-processing notes and the case keys.
func (h *DatasetHandler) OverviewHandler(c *gin.Context) {
	c.JSON(http.StatusOK, h.datasetService.Overview())
}

// ListCasesHandler returns every case in catalog order.
func (h *DatasetHandler) ListCasesHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"cases": h.datasetService.List()})
}

// CurrentCaseHandler returns the case last selected in this session.
func (h *DatasetHandler) CurrentCaseHandler(c *gin.Context) {
	st, ok := middleware.LoadState(c, h.sessions)
	if !ok {
		return
	}
	view, err := h.datasetService.Current(st)
	if err != nil {
		logger.ErrorCtx(c, "Stored case is not in the catalog", err, nil)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, view)
}

// SelectCaseHandler selects a case by key or ordinal and records it in the session.
func (h *DatasetHandler) SelectCaseHandler(c *gin.Context) {
	st, ok := middleware.LoadState(c, h.sessions)
	if !ok {
		return
	}

	view, err := h.datasetService.Select(&st, c.Param("ref"))
	if errors.Is(err, domain.ErrCaseNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if _, ok := middleware.UpdateState(c, h.sessions, func(stored *session.State) {
		stored.CurrentCase = st.CurrentCase
	}); !ok {
		return
	}
	c.JSON(http.StatusOK, view)
}
