package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/utafrali/review-service/pkg/logger"
)

// CorrelationIDHeader carries the request's correlation id in both directions.
const CorrelationIDHeader = "X-Correlation-ID"

const maxCorrelationIDLen = 128

// correlationID returns the inbound id if it is usable, otherwise a new one.
func correlationID(r *http.Request) string {
	id := r.Header.Get(CorrelationIDHeader)
	if id == "" || len(id) > maxCorrelationIDLen {
		return uuid.NewString()
	}
	return id
}

// RequestLogging assigns a correlation id to the request and logs one line
// per request with its outcome.
func RequestLogging(l *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			id := correlationID(r)
			ctx := logger.WithCorrelationID(r.Context(), id)
			r = r.WithContext(ctx)
			w.Header().Set(CorrelationIDHeader, id)

			sw := newStatusWriter(w)
			next.ServeHTTP(sw, r)

			level := slog.LevelInfo
			if sw.status >= http.StatusInternalServerError {
				level = slog.LevelError
			}
			l.Log(ctx, level, "http request",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", sw.status),
				slog.Duration("duration", time.Since(start)),
				slog.Int("bytes", sw.bytes),
				slog.String("remote_addr", r.RemoteAddr),
				slog.String("user_agent", r.UserAgent()),
				slog.String("correlation_id", id),
			)
		})
	}
}
