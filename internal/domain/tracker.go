package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Tracker is a received document and its top-level routing metadata.
type Tracker struct {
	ID                 uuid.UUID
	SerialNumber       string
	FromName           string
	DocumentTitle      string
	DateReceived       time.Time
	Attachment         *string
	AttachmentMimeType *string
	IsConfidential     bool
	IsArchived         bool

	LCEAction        LCEAction
	LCEKeyedInAction *string
	LCEActionDate    *time.Time
	LCERemarks       *string

	LCEReply            *LCEAction
	LCEKeyedInReply     *string
	LCEReplyDate        *time.Time
	ReplySlipAttachment *string
	ReplySlipMimeType   *string

	CreatedBy *uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TrackerDetail is a tracker together with its routing legs.
type TrackerDetail struct {
	Tracker
	Legs []RoutingLeg
}

// LCEUpdate carries changes to the LCE action and reply fields.
// Nil fields are left untouched.
type LCEUpdate struct {
	Action        *LCEAction
	KeyedInAction *string
	ActionDate    *time.Time
	Remarks       *string

	Reply        *LCEAction
	KeyedInReply *string
	ReplyDate    *time.Time
}

// Validate checks enum values and the "others" free-text requirement.
func (u LCEUpdate) Validate() error {
	var errs []FieldError

	if u.Action != nil {
		if !u.Action.IsValid() {
			errs = append(errs, FieldError{Field: "lceAction", Message: "invalid value"})
		} else if *u.Action == LCEActionOthers && isBlank(u.KeyedInAction) {
			errs = append(errs, FieldError{Field: "lceKeyedInAction", Message: "required when lceAction is others"})
		}
	}
	if u.Reply != nil {
		if !u.Reply.IsValid() {
			errs = append(errs, FieldError{Field: "lceReply", Message: "invalid value"})
		} else if *u.Reply == LCEActionOthers && isBlank(u.KeyedInReply) {
			errs = append(errs, FieldError{Field: "lceKeyedInReply", Message: "required when lceReply is others"})
		}
	}

	if len(errs) > 0 {
		return NewValidationErrors(errs)
	}
	return nil
}

// Apply writes the non-nil fields of u onto t.
func (u LCEUpdate) Apply(t *Tracker) {
	if u.Action != nil {
		t.LCEAction = *u.Action
	}
	if u.KeyedInAction != nil {
		t.LCEKeyedInAction = u.KeyedInAction
	}
	if u.ActionDate != nil {
		t.LCEActionDate = u.ActionDate
	}
	if u.Remarks != nil {
		t.LCERemarks = u.Remarks
	}
	if u.Reply != nil {
		reply := *u.Reply
		t.LCEReply = &reply
	}
	if u.KeyedInReply != nil {
		t.LCEKeyedInReply = u.KeyedInReply
	}
	if u.ReplyDate != nil {
		t.LCEReplyDate = u.ReplyDate
	}
}

// TrackerFilter holds listing parameters for trackers.
type TrackerFilter struct {
	Search         *string
	IsArchived     *bool
	IsConfidential *bool
	LCEAction      *LCEAction
	DateFrom       *time.Time
	DateTo         *time.Time
	// SortBy is one of createdAt, dateReceived, serialNumber, documentTitle.
	SortBy    string
	SortOrder SortOrder
	Pagination
}

func isBlank(s *string) bool {
	return s == nil || strings.TrimSpace(*s) == ""
}
