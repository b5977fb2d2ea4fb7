// Package analytics serves the dashboard aggregates.
package analytics

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/doctrkr-backend/internal/domain"
)

type statsRepo interface {
	SystemStats(ctx context.Context) (domain.SystemStats, error)
	RecipientSummary(ctx context.Context, recipientID uuid.UUID) (domain.RecipientSummary, error)
}

type recipientLookup interface {
	GetByCode(ctx context.Context, id uuid.UUID) (*domain.Recipient, error)
}

// Service reads aggregate statistics.
type Service struct {
	log        *slog.Logger
	stats      statsRepo
	recipients recipientLookup
}

// NewService creates a new analytics service instance.
func NewService(logger *slog.Logger, stats statsRepo, recipients recipientLookup) *Service {
	return &Service{
		log:        logger.With("service", "analytics"),
		stats:      stats,
		recipients: recipients,
	}
}

// SystemStats returns the system-wide dashboard. Slices are never nil.
func (s *Service) SystemStats(ctx context.Context) (domain.SystemStats, error) {
	st, err := s.stats.SystemStats(ctx)
	if err != nil {
		return domain.SystemStats{}, fmt.Errorf("analytics.SystemStats: %w", err)
	}

	st.UsersByRole = nonNil(st.UsersByRole)
	st.StatusCounts = nonNil(st.StatusCounts)
	st.TrackersByMonth = nonNil(st.TrackersByMonth)
	st.TopRecipients = nonNil(st.TopRecipients)
	st.ActionCounts = nonNil(st.ActionCounts)
	return st, nil
}

// RecipientSummary returns one office's status counts and averages.
func (s *Service) RecipientSummary(ctx context.Context, recipientID uuid.UUID) (domain.RecipientSummary, error) {
	if _, err := s.recipients.GetByCode(ctx, recipientID); err != nil {
		return domain.RecipientSummary{}, fmt.Errorf("analytics.RecipientSummary: %w", err)
	}

	sum, err := s.stats.RecipientSummary(ctx, recipientID)
	if err != nil {
		return domain.RecipientSummary{}, fmt.Errorf("analytics.RecipientSummary: %w", err)
	}
	sum.RecipientID = recipientID
	sum.StatusCounts = nonNil(sum.StatusCounts)
	return sum, nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
