package domain

import (
	"time"

	"github.com/google/uuid"
)

// Recipient is an office or department that receives trackers.
type Recipient struct {
	// Code is the primary key.
	Code uuid.UUID
	// No is the legacy ordinal used by the listing cut-off.
	No        int
	Name      string
	Initial   *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// RecipientFilter holds listing parameters for recipients.
type RecipientFilter struct {
	Search *string
	// MaxNo excludes recipients whose ordinal is above it. Zero disables the cut-off.
	MaxNo int
	Pagination
}
