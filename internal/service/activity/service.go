package activity

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/doctrkr-backend/internal/domain"
)

const defaultSummaryDays = 30

// logRepo is the read and retention side of the activity store.
type logRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (domain.ActivityLog, error)
	List(ctx context.Context, f domain.ActivityFilter) (domain.Page[domain.ActivityLog], error)
	Summary(ctx context.Context, since time.Time) (domain.ActivitySummary, error)
	CountOlderThan(ctx context.Context, before time.Time) (int, error)
	DeleteOlderThan(ctx context.Context, before time.Time) (int64, error)
}

// Service serves activity log queries and age-based cleanup.
type Service struct {
	log  *slog.Logger
	repo logRepo
	now  func() time.Time
}

// NewService creates a new activity service instance.
func NewService(logger *slog.Logger, repo logRepo) *Service {
	return &Service{
		log:  logger.With("service", "activity"),
		repo: repo,
		now:  time.Now,
	}
}

// List returns a filtered page of activity records, newest first.
func (s *Service) List(ctx context.Context, f domain.ActivityFilter) (domain.Page[domain.ActivityLog], error) {
	if f.EntityType != nil && !f.EntityType.IsValid() {
		return domain.Page[domain.ActivityLog]{}, domain.NewValidationError("entityType", "invalid value")
	}
	if f.Status != nil && !f.Status.IsValid() {
		return domain.Page[domain.ActivityLog]{}, domain.NewValidationError("status", "invalid value")
	}
	if f.DateFrom != nil && f.DateTo != nil && f.DateTo.Before(*f.DateFrom) {
		return domain.Page[domain.ActivityLog]{}, domain.NewValidationError("dateTo", "must not be before dateFrom")
	}

	page, err := s.repo.List(ctx, f)
	if err != nil {
		return domain.Page[domain.ActivityLog]{}, fmt.Errorf("activity.List: %w", err)
	}
	return page, nil
}

// Get returns one record.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (domain.ActivityLog, error) {
	l, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.ActivityLog{}, fmt.Errorf("activity.Get: %w", err)
	}
	return l, nil
}

// Summary aggregates the last days days. days <= 0 means 30.
func (s *Service) Summary(ctx context.Context, days int) (domain.ActivitySummary, error) {
	if days <= 0 {
		days = defaultSummaryDays
	}

	sum, err := s.repo.Summary(ctx, s.now().AddDate(0, 0, -days))
	if err != nil {
		return domain.ActivitySummary{}, fmt.Errorf("activity.Summary: %w", err)
	}
	return sum, nil
}

// Cleanup deletes records older than days days and returns how many were
// removed. With dryRun it only counts them.
func (s *Service) Cleanup(ctx context.Context, days int, dryRun bool) (int64, error) {
	if days < 1 {
		return 0, domain.NewValidationError("days", "must be at least 1")
	}
	before := s.now().AddDate(0, 0, -days)

	if dryRun {
		n, err := s.repo.CountOlderThan(ctx, before)
		if err != nil {
			return 0, fmt.Errorf("activity.Cleanup count: %w", err)
		}
		return int64(n), nil
	}

	n, err := s.repo.DeleteOlderThan(ctx, before)
	if err != nil {
		return 0, fmt.Errorf("activity.Cleanup: %w", err)
	}

	s.log.InfoContext(ctx, "activity logs cleaned up",
		slog.Int("days", days),
		slog.Int64("deleted", n),
	)
	return n, nil
}
