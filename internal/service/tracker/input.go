package tracker

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/heartmarshall/doctrkr-backend/internal/domain"
)

// CreateInput holds parameters for registering a received document.
type CreateInput struct {
	// SerialNumber is generated when nil or blank.
	SerialNumber   *string
	FromName       string
	DocumentTitle  string
	DateReceived   time.Time
	IsConfidential bool
	RecipientIDs   []uuid.UUID
	LCE            domain.LCEUpdate

	Attachment *Upload
	ReplySlip  *Upload
}

// Validate validates the create input.
func (i CreateInput) Validate() error {
	var errs []domain.FieldError

	if i.SerialNumber != nil {
		errs = append(errs, checkSerial(*i.SerialNumber)...)
	}
	errs = append(errs, checkText("fromName", i.FromName, 255)...)
	errs = append(errs, checkText("documentTitle", i.DocumentTitle, 500)...)
	for _, id := range i.RecipientIDs {
		if id == uuid.Nil {
			errs = append(errs, domain.FieldError{Field: "recipientIds", Message: "invalid recipient id"})
			break
		}
	}
	if err := i.LCE.Validate(); err != nil {
		var ve *domain.ValidationError
		if errors.As(err, &ve) {
			errs = append(errs, ve.Errors...)
		}
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

func (i *CreateInput) normalize() {
	if i.SerialNumber != nil {
		v := strings.TrimSpace(*i.SerialNumber)
		if v == "" {
			i.SerialNumber = nil
		} else {
			i.SerialNumber = &v
		}
	}
	i.FromName = strings.TrimSpace(i.FromName)
	i.DocumentTitle = strings.TrimSpace(i.DocumentTitle)
}

// UpdateInput holds editable tracker metadata. Nil fields are left unchanged.
// A new upload replaces the stored file.
type UpdateInput struct {
	SerialNumber   *string
	FromName       *string
	DocumentTitle  *string
	DateReceived   *time.Time
	IsConfidential *bool

	Attachment *Upload
	ReplySlip  *Upload
}

// Validate validates the update input.
func (i UpdateInput) Validate() error {
	var errs []domain.FieldError

	if i.SerialNumber != nil {
		errs = append(errs, checkSerial(*i.SerialNumber)...)
	}
	if i.FromName != nil {
		errs = append(errs, checkText("fromName", *i.FromName, 255)...)
	}
	if i.DocumentTitle != nil {
		errs = append(errs, checkText("documentTitle", *i.DocumentTitle, 500)...)
	}
	if i.DateReceived != nil && i.DateReceived.IsZero() {
		errs = append(errs, domain.FieldError{Field: "dateReceived", Message: "invalid date"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

func (i *UpdateInput) normalize() {
	trim := func(p *string) *string {
		if p == nil {
			return nil
		}
		v := strings.TrimSpace(*p)
		return &v
	}
	i.SerialNumber = trim(i.SerialNumber)
	i.FromName = trim(i.FromName)
	i.DocumentTitle = trim(i.DocumentTitle)
}

func (i UpdateInput) apply(t *domain.Tracker) {
	if i.SerialNumber != nil {
		t.SerialNumber = *i.SerialNumber
	}
	if i.FromName != nil {
		t.FromName = *i.FromName
	}
	if i.DocumentTitle != nil {
		t.DocumentTitle = *i.DocumentTitle
	}
	if i.DateReceived != nil {
		t.DateReceived = *i.DateReceived
	}
	if i.IsConfidential != nil {
		t.IsConfidential = *i.IsConfidential
	}
}

func checkSerial(s string) []domain.FieldError {
	if s == "" {
		return []domain.FieldError{{Field: "serialNumber", Message: "required"}}
	}
	if utf8.RuneCountInString(s) > 100 {
		return []domain.FieldError{{Field: "serialNumber", Message: "too long"}}
	}
	if strings.ContainsAny(s, "/?#") {
		return []domain.FieldError{{Field: "serialNumber", Message: "must not contain / ? or #"}}
	}
	return nil
}

func checkText(field, s string, max int) []domain.FieldError {
	if s == "" {
		return []domain.FieldError{{Field: field, Message: "required"}}
	}
	if utf8.RuneCountInString(s) > max {
		return []domain.FieldError{{Field: field, Message: "too long"}}
	}
	return nil
}
