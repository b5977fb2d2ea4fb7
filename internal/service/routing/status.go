package routing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/doctrkr-backend/internal/domain"
	"github.com/heartmarshall/doctrkr-backend/internal/metrics"
)

// change is the committed result of one transition.
type change struct {
	tracker   *domain.Tracker
	legs      []domain.TrackerRecipient
	forwarded []uuid.UUID
}

// UpdateStatus applies u to the leg with the given ID.
func (s *Service) UpdateStatus(ctx context.Context, legID uuid.UUID, u domain.StatusUpdate) (*domain.TrackerRecipient, error) {
	if err := u.Validate(); err != nil {
		return nil, err
	}

	c, err := s.transition(ctx, u, func(txCtx context.Context) (*domain.TrackerRecipient, error) {
		leg, err := s.legs.GetByIDForUpdate(txCtx, legID)
		if err != nil {
			return nil, err
		}
		if err := authorizeWrite(txCtx, leg.RecipientID); err != nil {
			return nil, err
		}
		return leg, nil
	})
	if err != nil {
		return nil, fmt.Errorf("routing.UpdateStatus: %w", err)
	}

	s.publish(ctx, c, "UPDATE_STATUS")
	return &c.legs[0], nil
}

// UpdateStatusByPair applies u to the leg of a tracker at a recipient office.
func (s *Service) UpdateStatusByPair(ctx context.Context, trackerID, recipientID uuid.UUID, u domain.StatusUpdate) (*domain.TrackerRecipient, error) {
	if err := u.Validate(); err != nil {
		return nil, err
	}
	if err := authorizeWrite(ctx, recipientID); err != nil {
		return nil, err
	}

	c, err := s.transition(ctx, u, func(txCtx context.Context) (*domain.TrackerRecipient, error) {
		return s.legs.GetByPairForUpdate(txCtx, trackerID, recipientID)
	})
	if err != nil {
		return nil, fmt.Errorf("routing.UpdateStatusByPair: %w", err)
	}

	s.publish(ctx, c, "UPDATE_STATUS")
	return &c.legs[0], nil
}

// RecordAction creates the leg when the office was never assigned, then
// applies u. Both steps share one transaction. Creating the leg takes a
// tracker editor.
func (s *Service) RecordAction(ctx context.Context, trackerID, recipientID uuid.UUID, u domain.StatusUpdate) (*domain.TrackerRecipient, error) {
	if err := u.Validate(); err != nil {
		return nil, err
	}
	if err := authorizeWrite(ctx, recipientID); err != nil {
		return nil, err
	}

	c, err := s.transition(ctx, u, func(txCtx context.Context) (*domain.TrackerRecipient, error) {
		leg, err := s.legs.GetByPairForUpdate(txCtx, trackerID, recipientID)
		if !errors.Is(err, domain.ErrNotFound) {
			return leg, err
		}
		if err := requireEditor(txCtx); err != nil {
			return nil, err
		}
		if _, err := s.legs.Assign(txCtx, trackerID, []uuid.UUID{recipientID}, callerID(txCtx)); err != nil {
			return nil, err
		}
		return s.legs.GetByPairForUpdate(txCtx, trackerID, recipientID)
	})
	if err != nil {
		return nil, fmt.Errorf("routing.RecordAction: %w", err)
	}

	s.publish(ctx, c, "RECORD_ACTION")
	return &c.legs[0], nil
}

// BulkUpdate applies u to every live leg of a tracker in one transaction.
func (s *Service) BulkUpdate(ctx context.Context, trackerID uuid.UUID, u domain.StatusUpdate) ([]domain.TrackerRecipient, error) {
	if err := u.Validate(); err != nil {
		return nil, err
	}
	if len(u.ForwardTo) > 0 {
		return nil, domain.NewValidationError("forwardTo", "not allowed in bulk updates")
	}
	if err := requireEditor(ctx); err != nil {
		return nil, err
	}

	c := change{}
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var err error
		c.tracker, err = s.trackers.GetByID(txCtx, trackerID)
		if err != nil {
			return err
		}

		legs, err := s.legs.ListByTrackerForUpdate(txCtx, trackerID)
		if err != nil {
			return err
		}

		now := s.now().UTC()
		for i := range legs {
			legs[i].ApplyStatus(u, now)
			legs[i].UpdatedBy = callerID(txCtx)
			updated, err := s.legs.Update(txCtx, &legs[i])
			if err != nil {
				return err
			}
			c.legs = append(c.legs, *updated)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("routing.BulkUpdate: %w", err)
	}

	s.publish(ctx, c, "BULK_UPDATE_STATUS")
	return c.legs, nil
}

// transition locks a leg with lock, applies u and persists it. Forwarding
// upserts pending legs for u.ForwardTo in the same transaction.
func (s *Service) transition(
	ctx context.Context,
	u domain.StatusUpdate,
	lock func(txCtx context.Context) (*domain.TrackerRecipient, error),
) (change, error) {
	c := change{}
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		// Step 1: Lock the leg
		leg, err := lock(txCtx)
		if err != nil {
			return err
		}
		c.tracker, err = s.trackers.GetByID(txCtx, leg.TrackerID)
		if err != nil {
			return err
		}

		// Step 2: Apply and persist
		leg.ApplyStatus(u, s.now().UTC())
		leg.UpdatedBy = callerID(txCtx)
		updated, err := s.legs.Update(txCtx, leg)
		if err != nil {
			return err
		}
		c.legs = []domain.TrackerRecipient{*updated}

		// Step 3: Forward
		if u.Status == domain.StatusForwarded && len(u.ForwardTo) > 0 {
			c.forwarded, err = s.forward(txCtx, leg.TrackerID, leg.RecipientID, u.ForwardTo)
			if err != nil {
				return err
			}
		}
		return nil
	})
	return c, err
}

// forward assigns the tracker to the given offices and returns those that
// did not already hold a live leg.
func (s *Service) forward(ctx context.Context, trackerID, from uuid.UUID, to []uuid.UUID) ([]uuid.UUID, error) {
	live, err := s.legs.ListByTrackerForUpdate(ctx, trackerID)
	if err != nil {
		return nil, err
	}
	held := make(map[uuid.UUID]struct{}, len(live)+1)
	for _, l := range live {
		held[l.RecipientID] = struct{}{}
	}
	held[from] = struct{}{}

	var added []uuid.UUID
	for _, rid := range to {
		if _, ok := held[rid]; ok {
			continue
		}
		held[rid] = struct{}{}
		added = append(added, rid)
	}
	if len(added) == 0 {
		return nil, nil
	}

	if _, err := s.legs.Assign(ctx, trackerID, added, callerID(ctx)); err != nil {
		return nil, err
	}
	return added, nil
}

// publish runs the post-commit side effects of a change.
func (s *Service) publish(ctx context.Context, c change, action string) {
	for _, leg := range c.legs {
		metrics.RecordStatusTransition(leg.Status.String())
		s.notify.StatusChanged(ctx, *c.tracker, leg)
		s.activity.LogRouting(ctx, action, leg.ID.String(),
			fmt.Sprintf("%s is %s at recipient %s", c.tracker.SerialNumber, leg.Status, leg.RecipientID),
			map[string]any{"trackerId": leg.TrackerID.String(), "recipientId": leg.RecipientID.String(), "status": leg.Status.String()})
	}

	if len(c.forwarded) > 0 {
		s.notify.TrackerAssigned(ctx, *c.tracker, c.forwarded)
		s.activity.LogRouting(ctx, "FORWARD", c.tracker.ID.String(),
			fmt.Sprintf("forwarded %s to %d recipient(s)", c.tracker.SerialNumber, len(c.forwarded)),
			map[string]any{"recipientIds": c.forwarded})
	}

	s.log.DebugContext(ctx, "routing updated",
		slog.String("action", action),
		slog.String("tracker_id", c.tracker.ID.String()),
		slog.Int("legs", len(c.legs)),
		slog.Int("forwarded", len(c.forwarded)),
	)
}
