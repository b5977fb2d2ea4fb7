package domain

// Role is the authorization role of a user.
type Role string

const (
	RoleSuperAdmin Role = "superadmin"
	RoleAdmin      Role = "admin"
	RoleReceiving  Role = "receiving"
	RoleRecipient  Role = "recipient"
	RoleViewer     Role = "viewer"
	RoleMonitor    Role = "monitor"
	RoleStaff      Role = "staff"
	RoleLCEStaff   Role = "lcestaff"
	RoleLCE        Role = "lce"
)

func (r Role) String() string { return string(r) }

func (r Role) IsValid() bool {
	switch r {
	case RoleSuperAdmin, RoleAdmin, RoleReceiving, RoleRecipient, RoleViewer,
		RoleMonitor, RoleStaff, RoleLCEStaff, RoleLCE:
		return true
	}
	return false
}

// IsAdmin reports whether the role has administrative rights.
func (r Role) IsAdmin() bool {
	return r == RoleSuperAdmin || r == RoleAdmin
}

// CanEditTrackers reports whether the role may create trackers and assign
// offices to them.
func (r Role) CanEditTrackers() bool {
	switch r {
	case RoleSuperAdmin, RoleAdmin, RoleReceiving, RoleStaff:
		return true
	}
	return false
}

// CanUpdateRouting reports whether the role may change the status of a
// routing leg. Recipient users are further limited to their own office.
func (r Role) CanUpdateRouting() bool {
	return r.CanEditTrackers() || r == RoleRecipient
}

// RoutingStatus is the state of one routing leg.
type RoutingStatus string

const (
	StatusPending        RoutingStatus = "pending"
	StatusSeen           RoutingStatus = "seen"
	StatusRead           RoutingStatus = "read"
	StatusAcknowledged   RoutingStatus = "acknowledged"
	StatusActionRequired RoutingStatus = "action_required"
	StatusCompleted      RoutingStatus = "completed"
	StatusRejected       RoutingStatus = "rejected"
	StatusForwarded      RoutingStatus = "forwarded"
)

func (s RoutingStatus) String() string { return string(s) }

func (s RoutingStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusSeen, StatusRead, StatusAcknowledged,
		StatusActionRequired, StatusCompleted, StatusRejected, StatusForwarded:
		return true
	}
	return false
}

// LCEAction is the decision recorded by the Local Chief Executive on a tracker.
type LCEAction string

const (
	LCEActionPending          LCEAction = "pending"
	LCEActionApproved         LCEAction = "approved"
	LCEActionDisapproved      LCEAction = "disapproved"
	LCEActionForYourComments  LCEAction = "for-your-comments"
	LCEActionForReview        LCEAction = "for-review"
	LCEActionForDissemination LCEAction = "for-dissemination"
	LCEActionForCompliance    LCEAction = "for-compliance"
	LCEActionPlsFacilitate    LCEAction = "pls-facilitate"
	LCEActionNoted            LCEAction = "noted"
	LCEActionCheckFunds       LCEAction = "check-funds"
	LCEActionOthers           LCEAction = "others"
)

func (a LCEAction) String() string { return string(a) }

func (a LCEAction) IsValid() bool {
	switch a {
	case LCEActionPending, LCEActionApproved, LCEActionDisapproved, LCEActionForYourComments,
		LCEActionForReview, LCEActionForDissemination, LCEActionForCompliance,
		LCEActionPlsFacilitate, LCEActionNoted, LCEActionCheckFunds, LCEActionOthers:
		return true
	}
	return false
}

// EntityType tags an activity log entry with the area it belongs to.
type EntityType string

const (
	EntityTypeTracker          EntityType = "Tracker"
	EntityTypeUser             EntityType = "User"
	EntityTypeRecipient        EntityType = "Recipient"
	EntityTypeRecipientTracker EntityType = "RecipientTracker"
	EntityTypeAuth             EntityType = "Auth"
	EntityTypePush             EntityType = "Push"
)

func (e EntityType) String() string { return string(e) }

func (e EntityType) IsValid() bool {
	switch e {
	case EntityTypeTracker, EntityTypeUser, EntityTypeRecipient,
		EntityTypeRecipientTracker, EntityTypeAuth, EntityTypePush:
		return true
	}
	return false
}

// ActivityStatus is the outcome recorded on an activity log entry.
type ActivityStatus string

const (
	ActivitySuccess ActivityStatus = "success"
	ActivityFailure ActivityStatus = "failure"
)

func (s ActivityStatus) String() string { return string(s) }

func (s ActivityStatus) IsValid() bool {
	return s == ActivitySuccess || s == ActivityFailure
}
