package http

import (
	"errors"
	"mime"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	openai "github.com/sashabaranov/go-openai"

	"tirewriter/backend/internal/features/output/application"
	"tirewriter/backend/internal/features/output/domain"
	"tirewriter/backend/internal/features/output/infrastructure"
	"tirewriter/backend/internal/logger"
	"tirewriter/backend/internal/middleware"
	"tirewriter/backend/internal/session"
)

// OptimizeRequest carries the text to optimise.
type OptimizeRequest struct {
	Text string `json:"text"`
}

// ReportRequest lists the report sections, in the order they should appear.
type ReportRequest struct {
	Options []string `json:"options"`
}

// TextOptimizationRequest is the body of the illustrated REST endpoint.
type TextOptimizationRequest struct {
	Text            string `json:"text"`
	InstructionType string `json:"instruction_type"`
}

// OutputHandler serves optimisation, reports, exports and the API demo.
type OutputHandler struct {
	outputService application.OutputService
	sessions      session.Store
}

// NewOutputHandler creates a new OutputHandler.
func NewOutputHandler(outputService application.OutputService, sessions session.Store) *OutputHandler {
	return &OutputHandler{outputService: outputService, sessions: sessions}
}

// OverviewHandler returns the notes, default inputs and option labels.
func (h *OutputHandler) OverviewHandler(c *gin.Context) {
	c.JSON(http.StatusOK, h.outputService.Overview())
}

// OptimizeHandler runs the simulated optimisation and remembers the result.
func (h *OutputHandler) OptimizeHandler(c *gin.Context) {
	var req OptimizeRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	st, ok := middleware.LoadState(c, h.sessions)
	if !ok {
		return
	}
	res, err := h.outputService.Optimize(c.Request.Context(), req.Text, &st)
	if err != nil {
		logger.WarnCtx(c, "Optimisation interrupted", nil)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Optimisation interrupted: " + err.Error()})
		return
	}
	if _, ok := middleware.UpdateState(c, h.sessions, func(stored *session.State) {
		stored.OptimizationResult = st.OptimizationResult
	}); !ok {
		return
	}
	c.JSON(http.StatusOK, res)
}

// LastOptimizationHandler returns the remembered result, if any.
func (h *OutputHandler) LastOptimizationHandler(c *gin.Context) {
	st, ok := middleware.LoadState(c, h.sessions)
	if !ok {
		return
	}
	if st.OptimizationResult == "" {
		c.JSON(http.StatusOK, gin.H{"optimization_result": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"optimization_result": st.OptimizationResult})
}

// ReportHandler assembles the report for the chosen sections.
func (h *OutputHandler) ReportHandler(c *gin.Context) {
	var req ReportRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	report, err := h.outputService.GenerateReport(c.Request.Context(), req.Options)
	if err != nil {
		logger.WarnCtx(c, "Report generation interrupted", nil)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Report generation interrupted: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, report)
}

// DownloadHandler serves a placeholder export as an attachment.
func (h *OutputHandler) DownloadHandler(c *gin.Context) {
	d, err := h.outputService.Download(c.Param("format"))
	if errors.Is(err, domain.ErrUnknownFormat) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": d.FileName}))
	c.Data(http.StatusOK, d.MIMEType, d.Data)
}

// TextOptimizationHandler is the REST endpoint shown in the API documentation block.
func (h *OutputHandler) TextOptimizationHandler(c *gin.Context) {
	var req TextOptimizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := h.outputService.CallAPI(c.Request.Context(), req.Text, req.InstructionType)
	if err != nil {
		logger.WarnCtx(c, "API demo interrupted", nil)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "API call interrupted: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, res)
}

// ChatCompletionsHandler answers OpenAI-style chat completion requests with
// the canned optimisation, so OpenAI client libraries can be pointed at the demo.
func (h *OutputHandler) ChatCompletionsHandler(c *gin.Context) {
	var req openai.ChatCompletionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"message": err.Error(), "type": "invalid_request_error"}})
		return
	}
	if req.Stream {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"message": "streaming is not supported", "type": "invalid_request_error"}})
		return
	}

	res, err := h.outputService.CallAPI(c.Request.Context(), infrastructure.LastUserMessage(req.Messages), "")
	if err != nil {
		logger.WarnCtx(c, "Chat completion interrupted", nil)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": gin.H{"message": err.Error(), "type": "server_error"}})
		return
	}
	c.JSON(http.StatusOK, infrastructure.NewChatCompletion(req, res.OptimizedText, time.Now()))
}
