package ctxutil

import (
	"context"

	"github.com/google/uuid"
)

type ctxKey string

const (
	userIDKey      ctxKey = "user_id"
	userRoleKey    ctxKey = "user_role"
	recipientIDKey ctxKey = "recipient_id"
	requestIDKey   ctxKey = "request_id"
	clientInfoKey  ctxKey = "client_info"
)

// WithUserID stores the user ID in the context.
func WithUserID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, userIDKey, id)
}

// UserIDFromCtx extracts the user ID from the context.
// Returns uuid.Nil and false if the value is missing, nil UUID, or wrong type.
func UserIDFromCtx(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(userIDKey).(uuid.UUID)
	if !ok || id == uuid.Nil {
		return uuid.Nil, false
	}
	return id, true
}

// WithUserRole stores the user's role in the context.
func WithUserRole(ctx context.Context, role string) context.Context {
	return context.WithValue(ctx, userRoleKey, role)
}

// UserRoleFromCtx returns the user's role, or an empty string if absent.
func UserRoleFromCtx(ctx context.Context) string {
	role, _ := ctx.Value(userRoleKey).(string)
	return role
}

// IsAdminCtx reports whether the context user is an admin or superadmin.
func IsAdminCtx(ctx context.Context) bool {
	role := UserRoleFromCtx(ctx)
	return role == "admin" || role == "superadmin"
}

// WithRecipientID stores the office the user belongs to.
func WithRecipientID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, recipientIDKey, id)
}

// RecipientIDFromCtx returns the user's office, if linked.
func RecipientIDFromCtx(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(recipientIDKey).(uuid.UUID)
	if !ok || id == uuid.Nil {
		return uuid.Nil, false
	}
	return id, true
}

// WithRequestID stores the request ID in the context.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromCtx extracts the request ID from the context.
// Returns an empty string if absent.
func RequestIDFromCtx(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// ClientInfo describes the remote client of the current request.
type ClientInfo struct {
	IP        string
	UserAgent string
}

// WithClientInfo stores the client's address and user agent.
func WithClientInfo(ctx context.Context, info ClientInfo) context.Context {
	return context.WithValue(ctx, clientInfoKey, info)
}

// ClientInfoFromCtx returns the stored client info, or a zero value.
func ClientInfoFromCtx(ctx context.Context) ClientInfo {
	info, _ := ctx.Value(clientInfoKey).(ClientInfo)
	return info
}
