// Package webpush delivers VAPID-signed browser push messages.
package webpush

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	wp "github.com/SherClockHolmes/webpush-go"

	"github.com/heartmarshall/doctrkr-backend/internal/config"
	"github.com/heartmarshall/doctrkr-backend/internal/domain"
)

// Sender posts encrypted payloads to push service endpoints.
type Sender struct {
	publicKey  string
	privateKey string
	subject    string
	ttl        time.Duration
	client     *http.Client
}

// NewSender creates a Sender from the VAPID settings.
func NewSender(cfg config.PushConfig) *Sender {
	return &Sender{
		publicKey:  cfg.VAPIDPublicKey,
		privateKey: cfg.VAPIDPrivateKey,
		subject:    cfg.Subject,
		ttl:        cfg.TTL,
		client:     &http.Client{Timeout: 10 * time.Second},
	}
}

// Send delivers payload to one subscription. A 404 or 410 from the push
// service wraps domain.ErrSubscriptionGone.
func (s *Sender) Send(ctx context.Context, sub domain.PushSubscription, payload []byte) error {
	resp, err := wp.SendNotificationWithContext(ctx, payload, &wp.Subscription{
		Endpoint: sub.Endpoint,
		Keys:     wp.Keys{P256dh: sub.P256dh, Auth: sub.Auth},
	}, &wp.Options{
		HTTPClient:      s.client,
		Subscriber:      s.subject,
		VAPIDPublicKey:  s.publicKey,
		VAPIDPrivateKey: s.privateKey,
		TTL:             int(s.ttl.Seconds()),
		Urgency:         wp.UrgencyNormal,
	})
	if err != nil {
		return fmt.Errorf("webpush: send: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	switch {
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone:
		return fmt.Errorf("webpush: push service returned %d: %w", resp.StatusCode, domain.ErrSubscriptionGone)
	case resp.StatusCode >= 300:
		return fmt.Errorf("webpush: push service returned %d", resp.StatusCode)
	}
	return nil
}

// GenerateKeys returns a fresh VAPID key pair.
func GenerateKeys() (privateKey, publicKey string, err error) {
	return wp.GenerateVAPIDKeys()
}
