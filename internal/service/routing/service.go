// Package routing moves routing legs through their status lifecycle and
// serves the per-office inbox.
package routing

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/doctrkr-backend/internal/domain"
)

type legRepo interface {
	Assign(ctx context.Context, trackerID uuid.UUID, recipientIDs []uuid.UUID, by *uuid.UUID) ([]domain.TrackerRecipient, error)
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.TrackerRecipient, error)
	GetByPairForUpdate(ctx context.Context, trackerID uuid.UUID, recipientID uuid.UUID) (*domain.TrackerRecipient, error)
	ListByTrackerForUpdate(ctx context.Context, trackerID uuid.UUID) ([]domain.TrackerRecipient, error)
	Update(ctx context.Context, leg *domain.TrackerRecipient) (*domain.TrackerRecipient, error)
	Inbox(ctx context.Context, f domain.InboxFilter) (domain.Page[domain.InboxItem], error)
	InboxAll(ctx context.Context, f domain.InboxFilter) ([]domain.InboxItem, error)
	InboxItem(ctx context.Context, recipientID uuid.UUID, trackerID uuid.UUID) (*domain.InboxItem, error)
}

type trackerReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Tracker, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type notifier interface {
	TrackerAssigned(ctx context.Context, t domain.Tracker, recipientIDs []uuid.UUID)
	StatusChanged(ctx context.Context, t domain.Tracker, leg domain.TrackerRecipient)
}

type activityLogger interface {
	LogRouting(ctx context.Context, action string, entityID string, description string, details map[string]any)
}

// Service implements routing leg transitions.
type Service struct {
	log      *slog.Logger
	legs     legRepo
	trackers trackerReader
	tx       txManager
	notify   notifier
	activity activityLogger
	now      func() time.Time
}

// NewService creates a new routing service instance.
func NewService(
	logger *slog.Logger,
	legs legRepo,
	trackers trackerReader,
	tx txManager,
	notify notifier,
	activity activityLogger,
) *Service {
	return &Service{
		log:      logger.With("service", "routing"),
		legs:     legs,
		trackers: trackers,
		tx:       tx,
		notify:   notify,
		activity: activity,
		now:      time.Now,
	}
}
