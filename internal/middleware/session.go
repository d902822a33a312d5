package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/sessions"

	"tirewriter/backend/internal/logger"
)

const (
	sessionIDKey    = "session_id"
	sessionIDHeader = "X-Session-ID"
	cookieName      = "tirewriter_session"
)

// NewCookieStore returns the signed cookie store that carries the session ID.
func NewCookieStore(secret string, maxAgeSeconds int) *sessions.CookieStore {
	store := sessions.NewCookieStore([]byte(secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   maxAgeSeconds,
		HttpOnly: true,
	}
	return store
}

// Session resolves the caller's session ID. API clients may pass it in the
// X-Session-ID header; browsers get a signed cookie on first visit.
func Session(store sessions.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if id := c.GetHeader(sessionIDHeader); id != "" {
			c.Set(sessionIDKey, id)
			c.Header(sessionIDHeader, id)
			c.Next()
			return
		}

		sess, err := store.Get(c.Request, cookieName)
		if err != nil {
			// A cookie signed with an old secret decodes with an error but a
			// usable fresh session.
			logger.Debug("Discarding unreadable session cookie", logger.Fields{"error": err.Error()})
		}

		id, _ := sess.Values["id"].(string)
		if id == "" {
			id = uuid.New().String()
			sess.Values["id"] = id
			if err := sess.Save(c.Request, c.Writer); err != nil {
				logger.WarnCtx(c, "Failed to write session cookie", logger.Fields{"error": err.Error()})
			}
		}

		c.Set(sessionIDKey, id)
		c.Header(sessionIDHeader, id)
		c.Next()
	}
}

// SessionID returns the ID resolved by Session.
func SessionID(c *gin.Context) string {
	return c.GetString(sessionIDKey)
}
