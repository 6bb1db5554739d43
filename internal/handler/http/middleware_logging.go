package http

import (
	"net/http"
	"time"

	"github.com/ingib/site-auth/internal/logger"
)

// withLogging emits one access-log line per request once the downstream
// handler has returned, carrying the trace id injected by withTraceID.
func (h *Handler) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		method := r.Method
		path := r.URL.Path
		start := time.Now()

		lw := &responseWriter{ResponseWriter: w}
		next.ServeHTTP(lw, r)

		log.Info().
			Str("method", method).
			Str("path", path).
			Int("status", lw.status).
			Int("bytes", lw.size).
			Dur("elapsed", time.Since(start)).
			Msg("request served")
	})
}
