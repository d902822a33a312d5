package logger

import (
	"sort"
	"sync"

	"github.com/getsentry/sentry-go"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Fields represents structured log fields
type Fields map[string]interface{}

var (
	mu   sync.RWMutex
	base = zap.NewNop()
)

// Init builds the process logger from a level name ("debug", "info", ...).
// Unknown levels fall back to info.
func Init(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)

	l, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	SetLogger(l)
	return l, nil
}

// SetLogger replaces the process logger. Tests use zap.NewNop or an observer core.
func SetLogger(l *zap.Logger) {
	mu.Lock()
	defer mu.Unlock()
	base = l
}

// L returns the current zap logger.
func L() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return base
}

// Sync flushes buffered log entries.
func Sync() {
	_ = L().Sync()
}

// WithContext extracts request context for logging
func WithContext(c *gin.Context) Fields {
	fields := Fields{
		"request_id": c.GetString("request_id"),
		"method":     c.Request.Method,
		"path":       c.Request.URL.Path,
	}

	if sessionID := c.GetString("session_id"); sessionID != "" {
		fields["session_id"] = sessionID
	}

	return fields
}

// Info logs an informational message with structured fields
func Info(msg string, fields Fields) {
	L().Info(msg, toZap(fields)...)
	breadcrumb(sentry.CurrentHub(), "info", sentry.LevelInfo, msg, fields)
}

// Warn logs a warning message with structured fields
func Warn(msg string, fields Fields) {
	L().Warn(msg, toZap(fields)...)
	breadcrumb(sentry.CurrentHub(), "warning", sentry.LevelWarning, msg, fields)
}

// Debug logs a debug message with structured fields
func Debug(msg string, fields Fields) {
	L().Debug(msg, toZap(fields)...)
	breadcrumb(sentry.CurrentHub(), "debug", sentry.LevelDebug, msg, fields)
}

// Error logs an error message with structured fields and sends to Sentry
func Error(msg string, err error, fields Fields) {
	logError(sentry.CurrentHub(), msg, err, fields)
}

// InfoCtx logs with the request fields of c added to fields. The breadcrumb
// goes to the request's own Sentry hub.
func InfoCtx(c *gin.Context, msg string, fields Fields) {
	fields = merge(c, fields)
	L().Info(msg, toZap(fields)...)
	breadcrumb(HubFor(c), "info", sentry.LevelInfo, msg, fields)
}

// WarnCtx is Warn with the request fields and hub of c.
func WarnCtx(c *gin.Context, msg string, fields Fields) {
	fields = merge(c, fields)
	L().Warn(msg, toZap(fields)...)
	breadcrumb(HubFor(c), "warning", sentry.LevelWarning, msg, fields)
}

// ErrorCtx is Error with the request fields of c, captured on the request's hub.
func ErrorCtx(c *gin.Context, msg string, err error, fields Fields) {
	logError(HubFor(c), msg, err, merge(c, fields))
}

// HubFor returns the hub sentrygin bound to the request, or the process hub
// outside a request.
func HubFor(c *gin.Context) *sentry.Hub {
	if c != nil {
		if hub := sentrygin.GetHubFromContext(c); hub != nil {
			return hub
		}
	}
	return sentry.CurrentHub()
}

func merge(c *gin.Context, fields Fields) Fields {
	if c == nil || c.Request == nil {
		return fields
	}
	out := WithContext(c)
	for k, v := range fields {
		out[k] = v
	}
	return out
}

func logError(hub *sentry.Hub, msg string, err error, fields Fields) {
	zf := toZap(fields)
	if err != nil {
		zf = append(zf, zap.Error(err))
	}
	L().Error(msg, zf...)

	if hub.Client() != nil && err != nil {
		hub.WithScope(func(scope *sentry.Scope) {
			for key, value := range fields {
				scope.SetContext(key, map[string]interface{}{
					"value": value,
				})
			}
			if requestID, ok := fields["request_id"].(string); ok {
				scope.SetTag("request_id", requestID)
			}
			if module, ok := fields["module"].(string); ok {
				scope.SetTag("module", module)
			}
			hub.CaptureException(err)
		})
	}
}

func breadcrumb(hub *sentry.Hub, kind string, level sentry.Level, msg string, fields Fields) {
	if hub.Client() != nil {
		hub.AddBreadcrumb(&sentry.Breadcrumb{
			Type:     kind,
			Category: "log",
			Message:  msg,
			Data:     map[string]interface{}(fields),
			Level:    level,
		}, nil)
	}
}

// toZap converts Fields to zap fields in key order so output is stable.
func toZap(fields Fields) []zap.Field {
	if len(fields) == 0 {
		return nil
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]zap.Field, 0, len(keys))
	for _, k := range keys {
		out = append(out, zap.Any(k, fields[k]))
	}
	return out
}
