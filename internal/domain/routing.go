package domain

import (
	"time"

	"github.com/google/uuid"
)

// TrackerRecipient is one routing leg: the status of a tracker at a single
// recipient office. Exactly one leg exists per (TrackerID, RecipientID).
type TrackerRecipient struct {
	ID          uuid.UUID
	TrackerID   uuid.UUID
	RecipientID uuid.UUID
	Status      RoutingStatus

	// IsSeen and IsRead record whether the milestone was ever reached and
	// are never cleared when Status moves backwards.
	IsSeen bool
	IsRead bool

	SeenAt         *time.Time
	ReadAt         *time.Time
	AcknowledgedAt *time.Time
	CompletedAt    *time.Time

	Action    *string
	Remarks   *string
	DueDate   *time.Time
	UpdatedBy *uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}

// StatusUpdate is a requested status transition on a leg.
type StatusUpdate struct {
	Status  RoutingStatus
	Action  *string
	Remarks *string
	DueDate *time.Time
	// ForwardTo lists recipients that receive a new pending leg when Status is forwarded.
	ForwardTo []uuid.UUID
}

// Validate checks that the target status is known.
func (u StatusUpdate) Validate() error {
	var errs []FieldError

	if u.Status == "" {
		errs = append(errs, FieldError{Field: "status", Message: "required"})
	} else if !u.Status.IsValid() {
		errs = append(errs, FieldError{Field: "status", Message: "invalid value"})
	}
	if len(u.ForwardTo) > 0 && u.Status != StatusForwarded {
		errs = append(errs, FieldError{Field: "forwardTo", Message: "only allowed with status forwarded"})
	}

	if len(errs) > 0 {
		return NewValidationErrors(errs)
	}
	return nil
}

// ApplyStatus moves the leg to u.Status. Any status is accepted from any
// state. Milestone timestamps are filled the first time they are reached and
// never overwritten; reaching read back-fills seen.
func (tr *TrackerRecipient) ApplyStatus(u StatusUpdate, now time.Time) {
	tr.Status = u.Status

	switch u.Status {
	case StatusSeen:
		tr.markSeen(now)
	case StatusRead:
		tr.markSeen(now)
		if tr.ReadAt == nil {
			tr.ReadAt = timePtr(now)
		}
		tr.IsRead = true
	case StatusAcknowledged:
		if tr.AcknowledgedAt == nil {
			tr.AcknowledgedAt = timePtr(now)
		}
	case StatusCompleted:
		if tr.CompletedAt == nil {
			tr.CompletedAt = timePtr(now)
		}
	}

	if u.Action != nil {
		tr.Action = u.Action
	}
	if u.Remarks != nil {
		tr.Remarks = u.Remarks
	}
	if u.DueDate != nil {
		tr.DueDate = u.DueDate
	}
	tr.UpdatedAt = now
}

func (tr *TrackerRecipient) markSeen(now time.Time) {
	if tr.SeenAt == nil {
		tr.SeenAt = timePtr(now)
	}
	tr.IsSeen = true
}

// RoutingLeg is a leg joined with its recipient's display fields.
type RoutingLeg struct {
	TrackerRecipient
	RecipientName    string
	RecipientInitial *string
}

// InboxItem is a leg joined with its tracker, as seen from a recipient office.
type InboxItem struct {
	TrackerRecipient
	Tracker Tracker
}

// InboxFilter holds the recipient inbox query parameters.
type InboxFilter struct {
	RecipientID uuid.UUID
	Search      *string
	Status      *RoutingStatus
	DateFrom    *time.Time
	DateTo      *time.Time
	// SortBy is one of createdAt, updatedAt, dateReceived, serialNumber, status.
	SortBy    string
	SortOrder SortOrder
	Pagination
}

// RoutingEvent is published to live subscribers after a leg changes.
type RoutingEvent struct {
	Type         string    `json:"type"`
	TrackerID    uuid.UUID `json:"trackerId"`
	SerialNumber string    `json:"serialNumber"`
	RecipientID  uuid.UUID `json:"recipientId"`
	Status       string    `json:"status"`
	At           time.Time `json:"at"`
}

const (
	EventTrackerAssigned      = "tracker.assigned"
	EventRoutingStatusChanged = "routing.status_changed"
)

func timePtr(t time.Time) *time.Time { return &t }
