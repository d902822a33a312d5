package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"tirewriter/backend/internal/features/evaluation/application"
	"tirewriter/backend/internal/features/evaluation/domain"
)

// EvaluationHandler serves the evaluation display.
type EvaluationHandler struct {
	evaluationService application.EvaluationService
}

// NewEvaluationHandler creates a new EvaluationHandler.
func NewEvaluationHandler(evaluationService application.EvaluationService) *EvaluationHandler {
	return &EvaluationHandler{evaluationService: evaluationService}
}

// OverviewHandler returns the notes and the selectable views.
func (h *EvaluationHandler) OverviewHandler(c *gin.Context) {
	c.JSON(http.StatusOK, h.evaluationService.Overview())
}

// ReportHandler returns one evaluation view.
func (h *EvaluationHandler) ReportHandler(c *gin.Context) {
	report, err := h.evaluationService.Report(c.Param("kind"))
	if errors.Is(err, domain.ErrUnknownKind) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, report)
}
