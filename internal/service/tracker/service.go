// Package tracker implements document intake, metadata, LCE decisions and
// recipient assignment.
package tracker

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/doctrkr-backend/internal/config"
	"github.com/heartmarshall/doctrkr-backend/internal/domain"
)

type trackerRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Tracker, error)
	Create(ctx context.Context, t *domain.Tracker) (*domain.Tracker, error)
	Update(ctx context.Context, t *domain.Tracker) (*domain.Tracker, error)
	SetArchived(ctx context.Context, id uuid.UUID, archived bool) (*domain.Tracker, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, f domain.TrackerFilter) (domain.Page[domain.Tracker], error)
}

type legRepo interface {
	Assign(ctx context.Context, trackerID uuid.UUID, recipientIDs []uuid.UUID, by *uuid.UUID) ([]domain.TrackerRecipient, error)
	ListByTracker(ctx context.Context, trackerID uuid.UUID) ([]domain.RoutingLeg, error)
	Remove(ctx context.Context, trackerID, recipientID uuid.UUID) error
}

type fileStore interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type notifier interface {
	TrackerAssigned(ctx context.Context, t domain.Tracker, recipientIDs []uuid.UUID)
}

type activityLogger interface {
	LogTracker(ctx context.Context, action, entityID, description string, details map[string]any)
}

// Service implements tracker operations.
type Service struct {
	log      *slog.Logger
	trackers trackerRepo
	legs     legRepo
	files    fileStore
	tx       txManager
	notify   notifier
	activity activityLogger
	cfg      config.StorageConfig
	now      func() time.Time
}

// NewService creates a new tracker service instance.
func NewService(
	logger *slog.Logger,
	trackers trackerRepo,
	legs legRepo,
	files fileStore,
	tx txManager,
	notify notifier,
	activity activityLogger,
	cfg config.StorageConfig,
) *Service {
	return &Service{
		log:      logger.With("service", "tracker"),
		trackers: trackers,
		legs:     legs,
		files:    files,
		tx:       tx,
		notify:   notify,
		activity: activity,
		cfg:      cfg,
		now:      time.Now,
	}
}
