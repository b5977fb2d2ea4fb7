package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/heartmarshall/doctrkr-backend/internal/metrics"
	"github.com/heartmarshall/doctrkr-backend/pkg/ctxutil"
)

// Recovery turns a handler panic into a 500 response and an error log line
// carrying the request and user ids. It runs outside Auth, so the user comes
// from the access slot Auth fills. http.ErrAbortHandler is re-raised so the
// server still aborts the connection silently.
func Recovery(logger *slog.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r, slot := withAccessSlot(r)
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if err, ok := rec.(error); ok && errors.Is(err, http.ErrAbortHandler) {
					panic(rec)
				}

				metrics.PanicsRecovered.Inc()

				ctx := r.Context()
				attrs := []any{
					slog.Any("panic", rec),
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
					slog.String("request_id", ctxutil.RequestIDFromCtx(ctx)),
					slog.String("stack", string(debug.Stack())),
				}
				if slot.userID != "" {
					attrs = append(attrs, slog.String("user_id", slot.userID), slog.String("role", slot.role))
				}
				logger.ErrorContext(ctx, "panic recovered", attrs...)

				writeError(w, http.StatusInternalServerError, "internal server error")
			}()
			next.ServeHTTP(w, r)
		})
	}
}
