// Package notify fans routing events out to websocket clients and browser push.
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/doctrkr-backend/internal/domain"
)

const pushTimeout = 10 * time.Second

type userDirectory interface {
	ListIDsByRecipient(ctx context.Context, recipientIDs []uuid.UUID) ([]uuid.UUID, error)
}

type liveHub interface {
	SendToUsers(userIDs []uuid.UUID, event any) int
}

type pusher interface {
	SendToUsers(ctx context.Context, userIDs []uuid.UUID, msg domain.PushMessage) int
}

// Service delivers routing events after the owning transaction commits.
// Delivery is best-effort: failures are logged and never returned.
type Service struct {
	log   *slog.Logger
	users userDirectory
	hub   liveHub
	push  pusher
	now   func() time.Time

	wg sync.WaitGroup
}

// NewService creates a new notify service instance.
func NewService(logger *slog.Logger, users userDirectory, hub liveHub, push pusher) *Service {
	return &Service{
		log:   logger.With("service", "notify"),
		users: users,
		hub:   hub,
		push:  push,
		now:   time.Now,
	}
}

// TrackerAssigned tells the users of each newly assigned office, and the
// tracker's creator, about t. Offices also get a browser push.
func (s *Service) TrackerAssigned(ctx context.Context, t domain.Tracker, recipientIDs []uuid.UUID) {
	var pushTo []uuid.UUID

	for _, rid := range recipientIDs {
		officeUsers, err := s.users.ListIDsByRecipient(ctx, []uuid.UUID{rid})
		if err != nil {
			s.log.WarnContext(ctx, "resolve office users", slog.String("recipient_id", rid.String()), slog.String("error", err.Error()))
			continue
		}

		s.hub.SendToUsers(withCreator(officeUsers, t.CreatedBy), domain.RoutingEvent{
			Type:         domain.EventTrackerAssigned,
			TrackerID:    t.ID,
			SerialNumber: t.SerialNumber,
			RecipientID:  rid,
			Status:       domain.StatusPending.String(),
			At:           s.now().UTC(),
		})
		pushTo = append(pushTo, officeUsers...)
	}

	if len(pushTo) == 0 {
		return
	}

	msg := domain.PushMessage{
		Title: "New document received",
		Body:  fmt.Sprintf("%s: %s", t.SerialNumber, titleFor(t)),
		URL:   "/trackers/" + t.ID.String(),
		Tag:   "tracker-" + t.ID.String(),
	}
	s.deliverPush(ctx, pushTo, msg)
}

// StatusChanged tells the office users and the tracker's creator that leg
// moved to a new status.
func (s *Service) StatusChanged(ctx context.Context, t domain.Tracker, leg domain.TrackerRecipient) {
	officeUsers, err := s.users.ListIDsByRecipient(ctx, []uuid.UUID{leg.RecipientID})
	if err != nil {
		s.log.WarnContext(ctx, "resolve office users", slog.String("recipient_id", leg.RecipientID.String()), slog.String("error", err.Error()))
	}

	s.hub.SendToUsers(withCreator(officeUsers, t.CreatedBy), domain.RoutingEvent{
		Type:         domain.EventRoutingStatusChanged,
		TrackerID:    t.ID,
		SerialNumber: t.SerialNumber,
		RecipientID:  leg.RecipientID,
		Status:       leg.Status.String(),
		At:           s.now().UTC(),
	})
}

// deliverPush sends in the background with a context detached from the request.
func (s *Service) deliverPush(ctx context.Context, userIDs []uuid.UUID, msg domain.PushMessage) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		pctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), pushTimeout)
		defer cancel()

		n := s.push.SendToUsers(pctx, userIDs, msg)
		s.log.DebugContext(pctx, "push delivered", slog.Int("sent", n), slog.String("tag", msg.Tag))
	}()
}

// Wait blocks until background deliveries finish.
func (s *Service) Wait() {
	s.wg.Wait()
}

func withCreator(ids []uuid.UUID, creator *uuid.UUID) []uuid.UUID {
	if creator == nil {
		return ids
	}
	out := make([]uuid.UUID, 0, len(ids)+1)
	out = append(out, ids...)
	return append(out, *creator)
}

func titleFor(t domain.Tracker) string {
	if t.IsConfidential {
		return domain.ConfidentialTitle
	}
	return t.DocumentTitle
}
