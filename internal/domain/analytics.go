package domain

import "github.com/google/uuid"

// SystemStats is the dashboard aggregate. Averages are nil when no row
// qualifies for them.
type SystemStats struct {
	TotalUsers      int
	TotalTrackers   int
	TotalRecipients int
	UsersByRole     []RoleCount
	StatusCounts    []StatusCount
	TrackersByMonth []MonthCount
	TopRecipients   []RecipientCount
	ActionCounts    []ActionCount
	Durations       StageDurations
}

// StageDurations holds average hours between routing milestones.
type StageDurations struct {
	AvgPendingHours         *float64
	AvgProcessingHours      *float64
	AvgTotalCompletionHours *float64
}

type RoleCount struct {
	Role  Role
	Count int
}

type StatusCount struct {
	Status RoutingStatus
	Count  int
}

// MonthCount is a count for a calendar month formatted as YYYY-MM.
type MonthCount struct {
	Month string
	Count int
}

type RecipientCount struct {
	RecipientID   uuid.UUID
	RecipientName string
	Initial       *string
	Count         int
}

type ActionCount struct {
	Action string
	Count  int
}

// RecipientSummary is the per-office breakdown.
type RecipientSummary struct {
	RecipientID  uuid.UUID
	Total        int
	StatusCounts []StatusCount
	Durations    StageDurations
}
