package domain

import (
	"time"

	"github.com/google/uuid"
)

// ActivityLog is an append-only audit record.
type ActivityLog struct {
	ID          uuid.UUID
	UserID      *uuid.UUID
	Action      string
	EntityType  EntityType
	EntityID    *string
	Description string
	Details     map[string]any
	IPAddress   *string
	UserAgent   *string
	Status      ActivityStatus
	CreatedAt   time.Time
}

// ActivityFilter holds listing parameters for activity logs.
type ActivityFilter struct {
	UserID     *uuid.UUID
	Action     *string
	EntityType *EntityType
	EntityID   *string
	Status     *ActivityStatus
	Search     *string
	DateFrom   *time.Time
	DateTo     *time.Time
	Pagination
}

// CountItem is a label with a row count.
type CountItem struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// ActiveUser is one row of the most-active-users breakdown.
type ActiveUser struct {
	UserID   uuid.UUID `json:"userId"`
	Username string    `json:"username"`
	Count    int       `json:"count"`
}

// ActivitySummary aggregates activity logs over a trailing window.
type ActivitySummary struct {
	Since        time.Time    `json:"since"`
	Total        int          `json:"total"`
	ByAction     []CountItem  `json:"byAction"`
	ByEntityType []CountItem  `json:"byEntityType"`
	ByStatus     []CountItem  `json:"byStatus"`
	TopUsers     []ActiveUser `json:"topUsers"`
}
