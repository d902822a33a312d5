package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"tirewriter/backend/internal/features/finetune/application"
	"tirewriter/backend/internal/features/finetune/domain"
	"tirewriter/backend/internal/logger"
	"tirewriter/backend/internal/middleware"
	"tirewriter/backend/internal/session"
)

// FinetuneHandler serves the LoRA configuration and simulated training page.
type FinetuneHandler struct {
	finetuneService application.FinetuneService
	sessions        session.Store
}

// NewFinetuneHandler creates a new FinetuneHandler.
func NewFinetuneHandler(finetuneService application.FinetuneService, sessions session.Store) *FinetuneHandler {
	return &FinetuneHandler{finetuneService: finetuneService, sessions: sessions}
}

// OverviewHandler returns the notes, parameter schema and defaults.
func (h *FinetuneHandler) OverviewHandler(c *gin.Context) {
	c.JSON(http.StatusOK, h.finetuneService.Overview())
}

// ProgressHandler returns the last stored training counter.
func (h *FinetuneHandler) ProgressHandler(c *gin.Context) {
	st, ok := middleware.LoadState(c, h.sessions)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"training_progress": st.TrainingProgress})
}

// TrainHandler runs the simulated training. By default progress is streamed
// as server-sent events (init, progress, result); with ?stream=false only the
// final result is returned. Either way every tick is written to the session,
// so GET /progress follows a run in flight.
func (h *FinetuneHandler) TrainHandler(c *gin.Context) {
	var in domain.ParamsInput
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}
	params := h.finetuneService.Normalize(in)

	logger.InfoCtx(c, "Simulated training started", logger.Fields{"module": "finetune"})

	rec := &progressRecorder{
		ctx:      context.WithoutCancel(c.Request.Context()),
		sessions: h.sessions,
		id:       middleware.SessionID(c),
	}
	if c.Query("stream") == "false" {
		h.trainJSON(c, params, rec)
		return
	}
	h.trainStream(c, params, rec)
}

// progressRecorder writes the training counter into the stored session on
// every tick. It touches no other field. After the first failed write it
// stops writing and keeps the error.
type progressRecorder struct {
	ctx      context.Context
	sessions session.Store
	id       string
	err      error
}

func (r *progressRecorder) record(progress int) {
	if r.err != nil {
		return
	}
	_, r.err = r.sessions.Update(r.ctx, r.id, func(st *session.State) {
		st.TrainingProgress = progress
	})
}

func (h *FinetuneHandler) trainJSON(c *gin.Context, params domain.Params, rec *progressRecorder) {
	// st is the service's scratch copy; rec is what reaches the store.
	var st session.State
	result, err := h.finetuneService.Train(c.Request.Context(), params, &st,
		func(string) { rec.record(0) },
		func(p domain.Progress) { rec.record(p.Progress) },
	)
	if err != nil {
		logger.WarnCtx(c, "Simulated training interrupted", nil)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Training interrupted: " + err.Error()})
		return
	}
	if rec.err != nil {
		logger.ErrorCtx(c, "Failed to save session state", rec.err, nil)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save session: " + rec.err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *FinetuneHandler) trainStream(c *gin.Context, params domain.Params, rec *progressRecorder) {
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
	c.Status(http.StatusOK)

	emit := func(event string, data any) {
		c.SSEvent(event, data)
		c.Writer.Flush()
	}

	// Progress reached before a disconnect stays recorded.
	var st session.State
	result, err := h.finetuneService.Train(c.Request.Context(), params, &st,
		func(msg string) {
			rec.record(0)
			emit("init", gin.H{"message": msg})
		},
		func(p domain.Progress) {
			rec.record(p.Progress)
			emit("progress", p)
		},
	)
	if err != nil {
		logger.WarnCtx(c, "Simulated training interrupted", nil)
		emit("error", gin.H{"error": err.Error()})
		return
	}
	if rec.err != nil {
		logger.ErrorCtx(c, "Failed to save session state", rec.err, nil)
		emit("error", gin.H{"error": rec.err.Error()})
		return
	}

	emit("result", result)
}
