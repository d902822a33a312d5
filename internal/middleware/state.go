package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"tirewriter/backend/internal/logger"
	"tirewriter/backend/internal/session"
)

// LoadState fetches the caller's session state. On failure it writes a 500
// response and returns false.
func LoadState(c *gin.Context, store session.Store) (session.State, bool) {
	st, err := store.Load(c.Request.Context(), SessionID(c))
	if err != nil {
		logger.ErrorCtx(c, "Failed to load session state", err, nil)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load session: " + err.Error()})
		return session.State{}, false
	}
	return st, true
}

// UpdateState applies fn to the caller's stored session state and returns the
// result. The write is detached from the request context so a finished action
// is kept when the client disconnects. On failure it writes a 500 response and
// returns false.
func UpdateState(c *gin.Context, store session.Store, fn func(*session.State)) (session.State, bool) {
	st, err := store.Update(context.WithoutCancel(c.Request.Context()), SessionID(c), fn)
	if err != nil {
		logger.ErrorCtx(c, "Failed to save session state", err, nil)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save session: " + err.Error()})
		return session.State{}, false
	}
	return st, true
}
