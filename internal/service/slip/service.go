// Package slip builds the public routing slip of a tracker.
package slip

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/doctrkr-backend/internal/domain"
)

type trackerRepo interface {
	GetBySerial(ctx context.Context, serial string) (*domain.Tracker, error)
}

type legRepo interface {
	ListByTracker(ctx context.Context, trackerID uuid.UUID) ([]domain.RoutingLeg, error)
}

type renderer interface {
	Render(slip domain.RoutingSlip) ([]byte, error)
}

// Service serves routing slips without authentication.
type Service struct {
	log      *slog.Logger
	trackers trackerRepo
	legs     legRepo
	pdf      renderer
}

// NewService creates a new slip service instance.
func NewService(logger *slog.Logger, trackers trackerRepo, legs legRepo, pdf renderer) *Service {
	return &Service{
		log:      logger.With("service", "slip"),
		trackers: trackers,
		legs:     legs,
		pdf:      pdf,
	}
}

// RoutingSlip returns the public history of the tracker with the given
// serial number.
func (s *Service) RoutingSlip(ctx context.Context, serial string) (domain.RoutingSlip, error) {
	if serial == "" {
		return domain.RoutingSlip{}, domain.NewValidationError("serialNumber", "required")
	}

	t, err := s.trackers.GetBySerial(ctx, serial)
	if err != nil {
		return domain.RoutingSlip{}, fmt.Errorf("slip.RoutingSlip: %w", err)
	}
	legs, err := s.legs.ListByTracker(ctx, t.ID)
	if err != nil {
		return domain.RoutingSlip{}, fmt.Errorf("slip.RoutingSlip legs: %w", err)
	}
	return domain.NewRoutingSlip(*t, legs), nil
}

// RoutingSlipPDF renders the routing slip as a printable PDF.
func (s *Service) RoutingSlipPDF(ctx context.Context, serial string) ([]byte, error) {
	slip, err := s.RoutingSlip(ctx, serial)
	if err != nil {
		return nil, err
	}

	out, err := s.pdf.Render(slip)
	if err != nil {
		return nil, fmt.Errorf("slip.RoutingSlipPDF: %w", err)
	}
	s.log.DebugContext(ctx, "routing slip rendered", slog.String("serial_number", serial), slog.Int("bytes", len(out)))
	return out, nil
}
