package auth

import (
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/heartmarshall/doctrkr-backend/internal/domain"
)

const (
	minPasswordLen = 8
	// bcrypt ignores everything past 72 bytes.
	maxPasswordLen = 72
)

// LoginInput holds parameters for the login operation.
type LoginInput struct {
	Username string
	Password string
}

// Validate validates the login input.
func (i LoginInput) Validate() error {
	var errs []domain.FieldError

	if i.Username == "" {
		errs = append(errs, domain.FieldError{Field: "username", Message: "required"})
	}
	if i.Password == "" {
		errs = append(errs, domain.FieldError{Field: "password", Message: "required"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// RegisterInput holds parameters for self-registration.
type RegisterInput struct {
	Username string
	Email    string
	Fullname string
	Password string
}

// Validate validates the register input.
func (i RegisterInput) Validate() error {
	var errs []domain.FieldError

	errs = append(errs, validateUsername(i.Username)...)
	errs = append(errs, validateEmail(i.Email)...)

	if i.Fullname == "" {
		errs = append(errs, domain.FieldError{Field: "fullname", Message: "required"})
	} else if utf8.RuneCountInString(i.Fullname) > 255 {
		errs = append(errs, domain.FieldError{Field: "fullname", Message: "too long"})
	}

	errs = append(errs, validatePassword("password", i.Password)...)

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// ChangePasswordInput holds parameters for a password change.
type ChangePasswordInput struct {
	CurrentPassword string
	NewPassword     string
}

// Validate validates the change password input.
func (i ChangePasswordInput) Validate() error {
	var errs []domain.FieldError

	if i.CurrentPassword == "" {
		errs = append(errs, domain.FieldError{Field: "currentPassword", Message: "required"})
	}
	errs = append(errs, validatePassword("newPassword", i.NewPassword)...)

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

func validateUsername(username string) []domain.FieldError {
	switch n := utf8.RuneCountInString(username); {
	case n == 0:
		return []domain.FieldError{{Field: "username", Message: "required"}}
	case n < 3:
		return []domain.FieldError{{Field: "username", Message: "must be at least 3 characters"}}
	case n > 50:
		return []domain.FieldError{{Field: "username", Message: "too long"}}
	case strings.ContainsAny(username, " \t\r\n"):
		return []domain.FieldError{{Field: "username", Message: "must not contain spaces"}}
	}
	return nil
}

func validateEmail(email string) []domain.FieldError {
	if email == "" {
		return []domain.FieldError{{Field: "email", Message: "required"}}
	}
	if len(email) > 254 {
		return []domain.FieldError{{Field: "email", Message: "too long"}}
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return []domain.FieldError{{Field: "email", Message: "invalid email"}}
	}
	return nil
}

func validatePassword(field, password string) []domain.FieldError {
	switch {
	case password == "":
		return []domain.FieldError{{Field: field, Message: "required"}}
	case len(password) < minPasswordLen:
		return []domain.FieldError{{Field: field, Message: "must be at least 8 characters"}}
	case len(password) > maxPasswordLen:
		return []domain.FieldError{{Field: field, Message: "too long"}}
	}
	return nil
}
