package domain

import (
	"time"

	"github.com/google/uuid"
)

// User represents an authenticated application user.
type User struct {
	ID           uuid.UUID
	Username     string
	Email        string
	Fullname     string
	PasswordHash string
	Role         Role
	// RecipientID links a recipient-role user to the office they act for.
	RecipientID *uuid.UUID
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CanActForRecipient reports whether the user may read or mutate the inbox
// of the given recipient office. Only recipient-role users are scoped.
func (u *User) CanActForRecipient(recipientID uuid.UUID) bool {
	if u.Role != RoleRecipient {
		return true
	}
	return u.RecipientID != nil && *u.RecipientID == recipientID
}

// UserFilter holds parameters for the admin user listing.
type UserFilter struct {
	Search *string
	Role   *Role
	Page   int
	Limit  int
}
