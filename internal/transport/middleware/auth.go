package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/heartmarshall/doctrkr-backend/internal/domain"
	"github.com/heartmarshall/doctrkr-backend/pkg/ctxutil"
)

type authenticator interface {
	Authenticate(ctx context.Context, token string) (*domain.User, error)
}

// Auth rejects requests without a valid bearer token and stores the caller's
// identity in the request context. Only ErrUnauthorized maps to 401; any
// other Authenticate failure is logged and answered with 500.
func Auth(auth authenticator, logger *slog.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractBearerToken(r)
			if token == "" {
				writeError(w, http.StatusUnauthorized, "unauthorized")
				return
			}
			user, err := auth.Authenticate(r.Context(), token)
			if err != nil {
				if errors.Is(err, domain.ErrUnauthorized) {
					writeError(w, http.StatusUnauthorized, "unauthorized")
					return
				}
				logger.ErrorContext(r.Context(), "authenticate failed",
					slog.String("error", err.Error()),
					slog.String("path", r.URL.Path),
				)
				writeError(w, http.StatusInternalServerError, "internal server error")
				return
			}

			noteUser(r.Context(), user.ID.String(), user.Role.String())

			ctx := ctxutil.WithUserID(r.Context(), user.ID)
			ctx = ctxutil.WithUserRole(ctx, user.Role.String())
			if user.RecipientID != nil {
				ctx = ctxutil.WithRecipientID(ctx, *user.RecipientID)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func extractBearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
}
