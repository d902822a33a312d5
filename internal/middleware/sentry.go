package middleware

import (
	"time"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
)

const sentryFlushTimeout = 2 * time.Second

// SentryMiddleware attaches a Sentry hub to each request and reports panics.
// It re-panics, so an outer recovery middleware must produce the 500 response.
func SentryMiddleware() gin.HandlerFunc {
	return sentrygin.New(sentrygin.Options{
		Repanic:         true,
		WaitForDelivery: false,
		Timeout:         sentryFlushTimeout,
	})
}
