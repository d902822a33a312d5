package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tirewriter/backend/internal/features/instruction/application"
	"tirewriter/backend/internal/logger"
)

// ClassifyRequest carries the text to classify. The text is optional.
type ClassifyRequest struct {
	Text string `json:"text"`
}

// InstructionHandler serves the instruction-type page.
type InstructionHandler struct {
	instructionService application.InstructionService
}

// NewInstructionHandler creates a new InstructionHandler.
func NewInstructionHandler(instructionService application.InstructionService) *InstructionHandler {
	return &InstructionHandler{instructionService: instructionService}
}

// OverviewHandler returns the explanation and default input.
func (h *InstructionHandler) OverviewHandler(c *gin.Context) {
	c.JSON(http.StatusOK, h.instructionService.Overview())
}

// ClassifyHandler runs the simulated classification.
func (h *InstructionHandler) ClassifyHandler(c *gin.Context) {
	var req ClassifyRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	result, err := h.instructionService.Classify(c.Request.Context(), req.Text)
	if err != nil {
		logger.WarnCtx(c, "Classification interrupted", nil)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Classification interrupted: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}
