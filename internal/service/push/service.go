// Package push manages browser push subscriptions and delivers notifications.
package push

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/doctrkr-backend/internal/config"
	"github.com/heartmarshall/doctrkr-backend/internal/domain"
	"github.com/heartmarshall/doctrkr-backend/internal/metrics"
	"github.com/heartmarshall/doctrkr-backend/internal/service/activity"
	"github.com/heartmarshall/doctrkr-backend/pkg/ctxutil"
)

// ErrDisabled is returned when VAPID keys are not configured.
var ErrDisabled = errors.New("push notifications disabled")

type subscriptionRepo interface {
	Upsert(ctx context.Context, s domain.PushSubscription) (domain.PushSubscription, error)
	ListByUsers(ctx context.Context, userIDs []uuid.UUID) ([]domain.PushSubscription, error)
	DeleteByEndpoint(ctx context.Context, userID uuid.UUID, endpoint string) (bool, error)
}

type sender interface {
	Send(ctx context.Context, sub domain.PushSubscription, payload []byte) error
}

type activityLogger interface {
	Log(ctx context.Context, e activity.Entry)
}

// Service implements push subscription management and delivery.
type Service struct {
	log      *slog.Logger
	repo     subscriptionRepo
	sender   sender
	activity activityLogger
	cfg      config.PushConfig
}

// NewService creates a new push service instance.
func NewService(logger *slog.Logger, repo subscriptionRepo, sender sender, activity activityLogger, cfg config.PushConfig) *Service {
	return &Service{
		log:      logger.With("service", "push"),
		repo:     repo,
		sender:   sender,
		activity: activity,
		cfg:      cfg,
	}
}

// SubscribeInput is the browser PushSubscription JSON.
type SubscribeInput struct {
	Endpoint string
	P256dh   string
	Auth     string
}

// Validate validates the subscription.
func (i SubscribeInput) Validate() error {
	var errs []domain.FieldError

	if i.Endpoint == "" {
		errs = append(errs, domain.FieldError{Field: "endpoint", Message: "required"})
	} else if u, err := url.Parse(i.Endpoint); err != nil || (u.Scheme != "https" && u.Scheme != "http") || u.Host == "" {
		errs = append(errs, domain.FieldError{Field: "endpoint", Message: "must be an absolute URL"})
	}
	if i.P256dh == "" {
		errs = append(errs, domain.FieldError{Field: "keys.p256dh", Message: "required"})
	}
	if i.Auth == "" {
		errs = append(errs, domain.FieldError{Field: "keys.auth", Message: "required"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// Enabled reports whether VAPID keys are configured.
func (s *Service) Enabled() bool { return s.cfg.Enabled() }

// VAPIDPublicKey returns the application server key for the browser.
func (s *Service) VAPIDPublicKey() (string, error) {
	if !s.cfg.Enabled() {
		return "", ErrDisabled
	}
	return s.cfg.VAPIDPublicKey, nil
}

// Subscribe stores the caller's subscription. An endpoint already registered
// to someone else moves to the caller.
func (s *Service) Subscribe(ctx context.Context, input SubscribeInput) (domain.PushSubscription, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.PushSubscription{}, domain.ErrUnauthorized
	}

	input.Endpoint = strings.TrimSpace(input.Endpoint)
	if err := input.Validate(); err != nil {
		return domain.PushSubscription{}, err
	}

	sub, err := s.repo.Upsert(ctx, domain.PushSubscription{
		UserID:   userID,
		Endpoint: input.Endpoint,
		P256dh:   input.P256dh,
		Auth:     input.Auth,
	})
	if err != nil {
		return domain.PushSubscription{}, fmt.Errorf("push.Subscribe: %w", err)
	}

	s.activity.Log(ctx, activity.Entry{
		Action:      "SUBSCRIBE",
		EntityType:  domain.EntityTypePush,
		EntityID:    sub.ID.String(),
		Description: "push subscription registered",
	})
	return sub, nil
}

// Unsubscribe removes one of the caller's subscriptions.
func (s *Service) Unsubscribe(ctx context.Context, endpoint string) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}
	if strings.TrimSpace(endpoint) == "" {
		return domain.NewValidationError("endpoint", "required")
	}

	deleted, err := s.repo.DeleteByEndpoint(ctx, userID, strings.TrimSpace(endpoint))
	if err != nil {
		return fmt.Errorf("push.Unsubscribe: %w", err)
	}
	if !deleted {
		return fmt.Errorf("push.Unsubscribe: %w", domain.ErrNotFound)
	}

	s.activity.Log(ctx, activity.Entry{
		Action:      "UNSUBSCRIBE",
		EntityType:  domain.EntityTypePush,
		Description: "push subscription removed",
	})
	return nil
}

// SendTest sends a test message to every subscription of the caller and
// returns how many were delivered.
func (s *Service) SendTest(ctx context.Context) (int, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return 0, domain.ErrUnauthorized
	}
	if !s.cfg.Enabled() {
		return 0, ErrDisabled
	}

	return s.SendToUsers(ctx, []uuid.UUID{userID}, domain.PushMessage{
		Title: "Test notification",
		Body:  "Push notifications are working.",
		Tag:   "test",
	}), nil
}

// SendToUsers delivers msg to every subscription of the given users and
// returns the number delivered. Expired subscriptions are deleted. It is a
// no-op when push is disabled.
func (s *Service) SendToUsers(ctx context.Context, userIDs []uuid.UUID, msg domain.PushMessage) int {
	if !s.cfg.Enabled() || len(userIDs) == 0 {
		return 0
	}

	subs, err := s.repo.ListByUsers(ctx, userIDs)
	if err != nil {
		s.log.WarnContext(ctx, "list push subscriptions", slog.String("error", err.Error()))
		return 0
	}
	if len(subs) == 0 {
		return 0
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		s.log.ErrorContext(ctx, "marshal push payload", slog.String("error", err.Error()))
		return 0
	}

	sent := 0
	for _, sub := range subs {
		err := s.sender.Send(ctx, sub, payload)
		switch {
		case err == nil:
			sent++
			metrics.RecordPushDelivery("sent")

		case errors.Is(err, domain.ErrSubscriptionGone):
			metrics.RecordPushDelivery("gone")
			if _, derr := s.repo.DeleteByEndpoint(ctx, uuid.Nil, sub.Endpoint); derr != nil {
				s.log.WarnContext(ctx, "delete expired push subscription",
					slog.String("subscription_id", sub.ID.String()),
					slog.String("error", derr.Error()))
			} else {
				s.log.InfoContext(ctx, "removed expired push subscription",
					slog.String("subscription_id", sub.ID.String()))
			}

		default:
			metrics.RecordPushDelivery("failed")
			s.log.WarnContext(ctx, "push delivery failed",
				slog.String("subscription_id", sub.ID.String()),
				slog.String("error", err.Error()))
		}
	}
	return sent
}
