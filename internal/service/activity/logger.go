// Package activity records and queries the audit trail.
package activity

import (
	"context"
	"log/slog"

	"github.com/heartmarshall/doctrkr-backend/internal/domain"
	"github.com/heartmarshall/doctrkr-backend/pkg/ctxutil"
)

// logWriter appends activity records.
type logWriter interface {
	Create(ctx context.Context, l domain.ActivityLog) (domain.ActivityLog, error)
}

// Entry is one auditable event. The acting user and client details are
// taken from the context.
type Entry struct {
	Action      string
	EntityType  domain.EntityType
	EntityID    string
	Description string
	Details     map[string]any
	Failed      bool
}

// Logger appends activity records on a best-effort basis: a failed write is
// logged and never returned to the caller.
type Logger struct {
	log  *slog.Logger
	repo logWriter
}

// NewLogger creates a Logger.
func NewLogger(logger *slog.Logger, repo logWriter) *Logger {
	return &Logger{
		log:  logger.With("service", "activity_logger"),
		repo: repo,
	}
}

// Log appends e.
func (l *Logger) Log(ctx context.Context, e Entry) {
	rec := domain.ActivityLog{
		Action:      e.Action,
		EntityType:  e.EntityType,
		Description: e.Description,
		Details:     e.Details,
		Status:      domain.ActivitySuccess,
	}
	if e.Failed {
		rec.Status = domain.ActivityFailure
	}
	if e.EntityID != "" {
		id := e.EntityID
		rec.EntityID = &id
	}
	if userID, ok := ctxutil.UserIDFromCtx(ctx); ok {
		rec.UserID = &userID
	}

	info := ctxutil.ClientInfoFromCtx(ctx)
	if info.IP != "" {
		rec.IPAddress = &info.IP
	}
	if info.UserAgent != "" {
		rec.UserAgent = &info.UserAgent
	}

	// The request may already be finished or its transaction rolled back.
	if _, err := l.repo.Create(context.WithoutCancel(ctx), rec); err != nil {
		l.log.WarnContext(ctx, "activity log write failed",
			slog.String("action", e.Action),
			slog.String("entity_type", e.EntityType.String()),
			slog.String("error", err.Error()),
		)
	}
}

func (l *Logger) LogTracker(ctx context.Context, action, entityID, description string, details map[string]any) {
	l.Log(ctx, Entry{Action: action, EntityType: domain.EntityTypeTracker, EntityID: entityID, Description: description, Details: details})
}

func (l *Logger) LogUser(ctx context.Context, action, entityID, description string, details map[string]any) {
	l.Log(ctx, Entry{Action: action, EntityType: domain.EntityTypeUser, EntityID: entityID, Description: description, Details: details})
}

func (l *Logger) LogRecipient(ctx context.Context, action, entityID, description string, details map[string]any) {
	l.Log(ctx, Entry{Action: action, EntityType: domain.EntityTypeRecipient, EntityID: entityID, Description: description, Details: details})
}

func (l *Logger) LogRouting(ctx context.Context, action, entityID, description string, details map[string]any) {
	l.Log(ctx, Entry{Action: action, EntityType: domain.EntityTypeRecipientTracker, EntityID: entityID, Description: description, Details: details})
}

// LogAuth records authentication events. failed marks rejected attempts.
func (l *Logger) LogAuth(ctx context.Context, action, entityID, description string, failed bool) {
	l.Log(ctx, Entry{Action: action, EntityType: domain.EntityTypeAuth, EntityID: entityID, Description: description, Failed: failed})
}
