package middleware

import (
	"net/http"
	"runtime/debug"
	"time"

	"holo-api/pkg/response"

	"github.com/sirupsen/logrus"
)

type LoggingMiddleware struct {
	log *logrus.Logger
}

func NewLoggingMiddleware(log *logrus.Logger) *LoggingMiddleware {
	return &LoggingMiddleware{log: log}
}

// Handle logs one entry per request. 5xx responses are logged at error
// level and 4xx at warn.
func (m *LoggingMiddleware) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := newStatusRecorder(w)

		next.ServeHTTP(rec, r)

		fields := logrus.Fields{
			"method":      r.Method,
			"path":        r.URL.Path,
			"status":      rec.statusCode,
			"duration_ms": float64(time.Since(start).Microseconds()) / 1000,
			"remote_ip":   ClientIP(r, false),
		}
		if user, ok := CurrentUser(r.Context()); ok {
			fields["user_id"] = user.ID
		}

		entry := m.log.WithFields(fields)
		switch {
		case rec.statusCode >= http.StatusInternalServerError:
			entry.Error("http_request")
		case rec.statusCode >= http.StatusBadRequest:
			entry.Warn("http_request")
		default:
			entry.Info("http_request")
		}
	})
}

// Recover turns a panic into a 500 response.
func (m *LoggingMiddleware) Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				m.log.WithFields(logrus.Fields{
					"panic":  rec,
					"method": r.Method,
					"path":   r.URL.Path,
					"stack":  string(debug.Stack()),
				}).Error("panic recovered")
				response.InternalServerError(w, "")
			}
		}()
		next.ServeHTTP(w, r)
	})
}
