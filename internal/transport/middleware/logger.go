package middleware

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/heartmarshall/doctrkr-backend/pkg/ctxutil"
)

// healthPaths are logged at debug level so orchestrator polling does not
// drown the access log.
var healthPaths = map[string]bool{
	"/live":    true,
	"/ready":   true,
	"/health":  true,
	"/metrics": true,
}

type accessSlotKey struct{}

// accessSlot collects identity discovered by inner middleware. Auth runs
// inside Logger on a derived request, so it writes here instead of relying
// on the outer context.
type accessSlot struct {
	userID string
	role   string
}

func noteUser(ctx context.Context, userID, role string) {
	if s, ok := ctx.Value(accessSlotKey{}).(*accessSlot); ok {
		s.userID, s.role = userID, role
	}
}

// withAccessSlot returns r carrying a slot, reusing one installed further out.
func withAccessSlot(r *http.Request) (*http.Request, *accessSlot) {
	if s, ok := r.Context().Value(accessSlotKey{}).(*accessSlot); ok {
		return r, s
	}
	s := &accessSlot{}
	return r.WithContext(context.WithValue(r.Context(), accessSlotKey{}, s)), s
}

// Logger writes one access line per request. 5xx responses log at error,
// 4xx at warn.
func Logger(logger *slog.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			r, slot := withAccessSlot(r)
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(sw, r)

			attrs := []slog.Attr{
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("ip", ctxutil.ClientInfoFromCtx(r.Context()).IP),
				slog.Int("status", sw.status),
				slog.Int64("bytes", sw.bytes),
				slog.Duration("duration", time.Since(start)),
				slog.String("request_id", ctxutil.RequestIDFromCtx(r.Context())),
			}
			if slot.userID != "" {
				attrs = append(attrs, slog.String("user_id", slot.userID), slog.String("role", slot.role))
			}

			level := slog.LevelInfo
			switch {
			case sw.status >= 500:
				level = slog.LevelError
			case sw.status >= 400:
				level = slog.LevelWarn
			case healthPaths[r.URL.Path]:
				level = slog.LevelDebug
			}
			logger.LogAttrs(r.Context(), level, "http.request", attrs...)
		})
	}
}

// statusWriter records the status code and body size of a response.
type statusWriter struct {
	http.ResponseWriter
	status      int
	bytes       int64
	wroteHeader bool
}

func (w *statusWriter) WriteHeader(code int) {
	if !w.wroteHeader {
		w.status = code
		w.wroteHeader = true
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(p []byte) (int, error) {
	w.wroteHeader = true
	n, err := w.ResponseWriter.Write(p)
	w.bytes += int64(n)
	return n, err
}

// Flush keeps streamed PDF and attachment downloads flowing.
func (w *statusWriter) Flush() {
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Hijack lets websocket upgrades pass through the wrapper.
func (w *statusWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	h, ok := w.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, fmt.Errorf("response writer does not support hijacking")
	}
	w.wroteHeader = true
	w.status = http.StatusSwitchingProtocols
	return h.Hijack()
}
