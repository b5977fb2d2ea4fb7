package user

import (
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/heartmarshall/doctrkr-backend/internal/domain"
)

// CreateInput holds parameters for creating a user as an administrator.
type CreateInput struct {
	Username    string
	Email       string
	Fullname    string
	Password    string
	Role        domain.Role
	RecipientID *uuid.UUID
}

// Validate validates the create input.
func (i CreateInput) Validate() error {
	var errs []domain.FieldError

	errs = append(errs, checkUsername(i.Username)...)
	errs = append(errs, checkEmail(i.Email)...)
	errs = append(errs, checkFullname(i.Fullname)...)
	errs = append(errs, checkPassword(i.Password)...)

	if !i.Role.IsValid() {
		errs = append(errs, domain.FieldError{Field: "role", Message: "invalid value"})
	} else if i.Role == domain.RoleRecipient && i.RecipientID == nil {
		errs = append(errs, domain.FieldError{Field: "recipientId", Message: "required for recipient role"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// UpdateInput holds parameters for updating a user. Nil fields are left
// unchanged. A RecipientID of uuid.Nil unlinks the office.
type UpdateInput struct {
	Username    *string
	Email       *string
	Fullname    *string
	Password    *string
	Role        *domain.Role
	RecipientID *uuid.UUID
}

// Validate validates the update input.
func (i UpdateInput) Validate() error {
	var errs []domain.FieldError

	if i.Username != nil {
		errs = append(errs, checkUsername(*i.Username)...)
	}
	if i.Email != nil {
		errs = append(errs, checkEmail(*i.Email)...)
	}
	if i.Fullname != nil {
		errs = append(errs, checkFullname(*i.Fullname)...)
	}
	if i.Password != nil {
		errs = append(errs, checkPassword(*i.Password)...)
	}
	if i.Role != nil && !i.Role.IsValid() {
		errs = append(errs, domain.FieldError{Field: "role", Message: "invalid value"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// apply writes the non-nil fields onto u.
func (i UpdateInput) apply(u *domain.User) {
	if i.Username != nil {
		u.Username = *i.Username
	}
	if i.Email != nil {
		u.Email = *i.Email
	}
	if i.Fullname != nil {
		u.Fullname = *i.Fullname
	}
	if i.Role != nil {
		u.Role = *i.Role
	}
	if i.RecipientID != nil {
		if *i.RecipientID == uuid.Nil {
			u.RecipientID = nil
		} else {
			id := *i.RecipientID
			u.RecipientID = &id
		}
	}
}

func (i *UpdateInput) normalize() {
	if i.Username != nil {
		v := strings.TrimSpace(*i.Username)
		i.Username = &v
	}
	if i.Email != nil {
		v := strings.ToLower(strings.TrimSpace(*i.Email))
		i.Email = &v
	}
	if i.Fullname != nil {
		v := strings.TrimSpace(*i.Fullname)
		i.Fullname = &v
	}
}

func checkUsername(s string) []domain.FieldError {
	switch n := utf8.RuneCountInString(s); {
	case n == 0:
		return []domain.FieldError{{Field: "username", Message: "required"}}
	case n < 3:
		return []domain.FieldError{{Field: "username", Message: "must be at least 3 characters"}}
	case n > 50:
		return []domain.FieldError{{Field: "username", Message: "too long"}}
	}
	return nil
}

func checkEmail(s string) []domain.FieldError {
	if s == "" {
		return []domain.FieldError{{Field: "email", Message: "required"}}
	}
	if addr, err := mail.ParseAddress(s); err != nil || addr.Address != s {
		return []domain.FieldError{{Field: "email", Message: "invalid email"}}
	}
	return nil
}

func checkFullname(s string) []domain.FieldError {
	if s == "" {
		return []domain.FieldError{{Field: "fullname", Message: "required"}}
	}
	if utf8.RuneCountInString(s) > 255 {
		return []domain.FieldError{{Field: "fullname", Message: "too long"}}
	}
	return nil
}

func checkPassword(s string) []domain.FieldError {
	if len(s) < 8 {
		return []domain.FieldError{{Field: "password", Message: "must be at least 8 characters"}}
	}
	if len(s) > 72 {
		return []domain.FieldError{{Field: "password", Message: "too long"}}
	}
	return nil
}
