package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrSubscriptionGone is returned by a push sender when the push service
// reports the subscription as expired or unknown.
var ErrSubscriptionGone = errors.New("push subscription gone")

// PushSubscription is a browser push endpoint registered by a user.
type PushSubscription struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Endpoint  string
	P256dh    string
	Auth      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// PushMessage is the JSON payload delivered to the service worker.
type PushMessage struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	URL   string `json:"url,omitempty"`
	Tag   string `json:"tag,omitempty"`
}
