package tracker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/doctrkr-backend/internal/domain"
	"github.com/heartmarshall/doctrkr-backend/internal/metrics"
	"github.com/heartmarshall/doctrkr-backend/pkg/ctxutil"
)

// List returns a page of trackers. Viewers never see confidential trackers.
func (s *Service) List(ctx context.Context, f domain.TrackerFilter) (domain.Page[domain.Tracker], error) {
	if f.LCEAction != nil && !f.LCEAction.IsValid() {
		return domain.Page[domain.Tracker]{}, domain.NewValidationError("lceAction", "invalid value")
	}
	if hidesConfidential(ctx) {
		no := false
		f.IsConfidential = &no
	}

	page, err := s.trackers.List(ctx, f)
	if err != nil {
		return domain.Page[domain.Tracker]{}, fmt.Errorf("tracker.List: %w", err)
	}
	return page, nil
}

// Get returns a tracker with its routing legs ordered by recipient name.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.TrackerDetail, error) {
	t, err := s.visible(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("tracker.Get: %w", err)
	}

	legs, err := s.legs.ListByTracker(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("tracker.Get legs: %w", err)
	}
	return &domain.TrackerDetail{Tracker: *t, Legs: legs}, nil
}

// Create registers a document and assigns it to the given recipients in one
// transaction. Files are written first and removed again if the transaction
// fails.
func (s *Service) Create(ctx context.Context, input CreateInput) (*domain.TrackerDetail, error) {
	input.normalize()

	// Step 1: Validate input
	if err := input.Validate(); err != nil {
		return nil, err
	}

	now := s.now()
	t := &domain.Tracker{
		ID:             uuid.New(),
		FromName:       input.FromName,
		DocumentTitle:  input.DocumentTitle,
		DateReceived:   input.DateReceived,
		IsConfidential: input.IsConfidential,
		LCEAction:      domain.LCEActionPending,
	}
	if input.SerialNumber != nil {
		t.SerialNumber = *input.SerialNumber
	} else {
		t.SerialNumber = generateSerial(now)
	}
	if t.DateReceived.IsZero() {
		t.DateReceived = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	}
	input.LCE.Apply(t)
	if userID, ok := ctxutil.UserIDFromCtx(ctx); ok {
		t.CreatedBy = &userID
	}

	// Step 2: Store uploads
	var stored []string
	if input.Attachment != nil {
		f, err := s.store(ctx, t.ID, KindAttachment, "attachment", input.Attachment)
		if err != nil {
			return nil, err
		}
		t.Attachment, t.AttachmentMimeType = &f.key, &f.contentType
		stored = append(stored, f.key)
	}
	if input.ReplySlip != nil {
		f, err := s.store(ctx, t.ID, KindReplySlip, "replySlipAttachment", input.ReplySlip)
		if err != nil {
			s.discard(ctx, stored...)
			return nil, err
		}
		t.ReplySlipAttachment, t.ReplySlipMimeType = &f.key, &f.contentType
		stored = append(stored, f.key)
	}

	// Step 3: Insert tracker and legs
	var created *domain.Tracker
	var legs []domain.RoutingLeg
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var err error
		created, err = s.trackers.Create(txCtx, t)
		if err != nil {
			return err
		}
		if len(input.RecipientIDs) > 0 {
			if _, err := s.legs.Assign(txCtx, created.ID, input.RecipientIDs, t.CreatedBy); err != nil {
				return err
			}
		}
		legs, err = s.legs.ListByTracker(txCtx, created.ID)
		return err
	})
	if err != nil {
		s.discard(ctx, stored...)
		return nil, fmt.Errorf("tracker.Create: %w", err)
	}

	// Step 4: Side effects after commit
	metrics.TrackersCreated.Inc()
	s.activity.LogTracker(ctx, "CREATE", created.ID.String(), "created tracker "+created.SerialNumber,
		map[string]any{"serialNumber": created.SerialNumber, "recipients": len(legs)})
	if len(legs) > 0 {
		s.notify.TrackerAssigned(ctx, *created, legRecipients(legs))
	}

	s.log.InfoContext(ctx, "tracker created",
		slog.String("tracker_id", created.ID.String()),
		slog.String("serial_number", created.SerialNumber),
		slog.Int("recipients", len(legs)),
	)

	return &domain.TrackerDetail{Tracker: *created, Legs: legs}, nil
}

// Update changes tracker metadata and optionally replaces stored files.
func (s *Service) Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*domain.Tracker, error) {
	input.normalize()
	if err := input.Validate(); err != nil {
		return nil, err
	}

	current, err := s.trackers.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("tracker.Update: %w", err)
	}
	input.apply(current)

	// Replaced files are removed only after the row points at the new ones.
	var stored, superseded []string
	if input.Attachment != nil {
		f, err := s.store(ctx, id, KindAttachment, "attachment", input.Attachment)
		if err != nil {
			return nil, err
		}
		if current.Attachment != nil {
			superseded = append(superseded, *current.Attachment)
		}
		current.Attachment, current.AttachmentMimeType = &f.key, &f.contentType
		stored = append(stored, f.key)
	}
	if input.ReplySlip != nil {
		f, err := s.store(ctx, id, KindReplySlip, "replySlipAttachment", input.ReplySlip)
		if err != nil {
			s.discard(ctx, stored...)
			return nil, err
		}
		if current.ReplySlipAttachment != nil {
			superseded = append(superseded, *current.ReplySlipAttachment)
		}
		current.ReplySlipAttachment, current.ReplySlipMimeType = &f.key, &f.contentType
		stored = append(stored, f.key)
	}

	updated, err := s.trackers.Update(ctx, current)
	if err != nil {
		s.discard(ctx, stored...)
		return nil, fmt.Errorf("tracker.Update: %w", err)
	}
	s.discard(ctx, superseded...)

	s.activity.LogTracker(ctx, "UPDATE", id.String(), "updated tracker "+updated.SerialNumber,
		map[string]any{"filesReplaced": len(stored)})
	return updated, nil
}

// UpdateLCE records the Local Chief Executive's action and reply.
func (s *Service) UpdateLCE(ctx context.Context, id uuid.UUID, u domain.LCEUpdate) (*domain.Tracker, error) {
	if err := u.Validate(); err != nil {
		return nil, err
	}

	var updated *domain.Tracker
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		current, err := s.trackers.GetByID(txCtx, id)
		if err != nil {
			return err
		}
		u.Apply(current)

		// The combined state must still satisfy the "others" rule.
		if err := (domain.LCEUpdate{
			Action: &current.LCEAction, KeyedInAction: current.LCEKeyedInAction,
			Reply: current.LCEReply, KeyedInReply: current.LCEKeyedInReply,
		}).Validate(); err != nil {
			return err
		}

		updated, err = s.trackers.Update(txCtx, current)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("tracker.UpdateLCE: %w", err)
	}

	details := map[string]any{"lceAction": updated.LCEAction.String()}
	if updated.LCEReply != nil {
		details["lceReply"] = updated.LCEReply.String()
	}
	s.activity.LogTracker(ctx, "UPDATE_LCE", id.String(), "updated LCE action on "+updated.SerialNumber, details)
	return updated, nil
}

// ToggleArchive flips the archived flag.
func (s *Service) ToggleArchive(ctx context.Context, id uuid.UUID) (*domain.Tracker, error) {
	current, err := s.trackers.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("tracker.ToggleArchive: %w", err)
	}

	updated, err := s.trackers.SetArchived(ctx, id, !current.IsArchived)
	if err != nil {
		return nil, fmt.Errorf("tracker.ToggleArchive: %w", err)
	}

	action := "ARCHIVE"
	if !updated.IsArchived {
		action = "UNARCHIVE"
	}
	s.activity.LogTracker(ctx, action, id.String(), action+" tracker "+updated.SerialNumber, nil)
	return updated, nil
}

// Delete soft-deletes a tracker and its legs. Stored files are kept.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.trackers.Delete(ctx, id); err != nil {
		return fmt.Errorf("tracker.Delete: %w", err)
	}

	s.activity.LogTracker(ctx, "DELETE", id.String(), "deleted tracker", nil)
	s.log.InfoContext(ctx, "tracker deleted", slog.String("tracker_id", id.String()))
	return nil
}

// visible loads a tracker, hiding confidential ones from viewers.
func (s *Service) visible(ctx context.Context, id uuid.UUID) (*domain.Tracker, error) {
	t, err := s.trackers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t.IsConfidential && hidesConfidential(ctx) {
		return nil, fmt.Errorf("tracker %s: %w", id, domain.ErrNotFound)
	}
	return t, nil
}

func hidesConfidential(ctx context.Context) bool {
	return ctxutil.UserRoleFromCtx(ctx) == domain.RoleViewer.String()
}

func legRecipients(legs []domain.RoutingLeg) []uuid.UUID {
	ids := make([]uuid.UUID, len(legs))
	for i, l := range legs {
		ids[i] = l.RecipientID
	}
	return ids
}
