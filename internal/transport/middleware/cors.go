package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/heartmarshall/doctrkr-backend/internal/config"
)

// CORS handles Cross-Origin Resource Sharing for the web client. Allowed
// origins are echoed back, never "*", so credentialed requests work with a
// wildcard configuration. Download headers are exposed so the browser can
// read attachment and routing-slip filenames.
func CORS(cfg config.CORSConfig) Middleware {
	origins := splitCSV(cfg.AllowedOrigins)
	wildcard := false
	for _, o := range origins {
		if o == "*" {
			wildcard = true
		}
	}
	maxAge := strconv.Itoa(cfg.MaxAge)

	allowed := func(origin string) bool {
		if wildcard {
			return true
		}
		for _, o := range origins {
			if strings.EqualFold(o, origin) {
				return true
			}
		}
		return false
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Add("Vary", "Origin")

			origin := r.Header.Get("Origin")
			if origin != "" && allowed(origin) {
				h.Set("Access-Control-Allow-Origin", origin)
				if cfg.AllowCredentials {
					h.Set("Access-Control-Allow-Credentials", "true")
				}
				if cfg.ExposedHeaders != "" {
					h.Set("Access-Control-Expose-Headers", cfg.ExposedHeaders)
				}
			}

			if r.Method == http.MethodOptions {
				h.Set("Access-Control-Allow-Methods", cfg.AllowedMethods)
				h.Set("Access-Control-Allow-Headers", cfg.AllowedHeaders)
				h.Set("Access-Control-Max-Age", maxAge)
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
