package middleware

import (
	"net/http"
	"time"

	"github.com/heartmarshall/doctrkr-backend/internal/metrics"
)

// Metrics records request count and latency per matched route. It must wrap
// the ServeMux directly so the matched pattern is visible after dispatch.
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(sw, r)

		route := r.Pattern
		if route == "" {
			route = "unmatched"
		}
		metrics.RecordHTTPRequest(r.Method, route, sw.status, time.Since(start))
	})
}
