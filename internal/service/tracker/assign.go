package tracker

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/heartmarshall/doctrkr-backend/internal/domain"
	"github.com/heartmarshall/doctrkr-backend/pkg/ctxutil"
)

// AssignRecipients routes an existing tracker to more offices. Offices that
// already hold a live leg keep their state. Returns the tracker's legs.
func (s *Service) AssignRecipients(ctx context.Context, id uuid.UUID, recipientIDs []uuid.UUID) ([]domain.RoutingLeg, error) {
	if len(recipientIDs) == 0 {
		return nil, domain.NewValidationError("recipientIds", "at least one recipient is required")
	}

	var by *uuid.UUID
	if userID, ok := ctxutil.UserIDFromCtx(ctx); ok {
		by = &userID
	}

	var (
		t     *domain.Tracker
		legs  []domain.RoutingLeg
		added []uuid.UUID
	)
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var err error
		t, err = s.trackers.GetByID(txCtx, id)
		if err != nil {
			return err
		}

		before, err := s.legs.ListByTracker(txCtx, id)
		if err != nil {
			return err
		}
		existing := make(map[uuid.UUID]struct{}, len(before))
		for _, l := range before {
			existing[l.RecipientID] = struct{}{}
		}

		if _, err := s.legs.Assign(txCtx, id, recipientIDs, by); err != nil {
			return err
		}
		for _, rid := range recipientIDs {
			if _, ok := existing[rid]; !ok {
				existing[rid] = struct{}{}
				added = append(added, rid)
			}
		}

		legs, err = s.legs.ListByTracker(txCtx, id)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("tracker.AssignRecipients: %w", err)
	}

	if len(added) > 0 {
		s.activity.LogTracker(ctx, "ASSIGN", id.String(),
			fmt.Sprintf("assigned %d recipient(s) to %s", len(added), t.SerialNumber),
			map[string]any{"recipientIds": added})
		s.notify.TrackerAssigned(ctx, *t, added)
	}
	return legs, nil
}

// RemoveRecipient soft-deletes one leg of a tracker.
func (s *Service) RemoveRecipient(ctx context.Context, id, recipientID uuid.UUID) error {
	if err := s.legs.Remove(ctx, id, recipientID); err != nil {
		return fmt.Errorf("tracker.RemoveRecipient: %w", err)
	}

	s.activity.LogTracker(ctx, "UNASSIGN", id.String(), "removed recipient from tracker",
		map[string]any{"recipientId": recipientID.String()})
	return nil
}
