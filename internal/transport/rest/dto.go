package rest

import (
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/doctrkr-backend/internal/domain"
)

type pageResponse[T any] struct {
	Data       []T `json:"data"`
	Total      int `json:"total"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"totalPages"`
}

func toPage[S, T any](p domain.Page[S], conv func(S) T) pageResponse[T] {
	return pageResponse[T]{
		Data:       mapSlice(p.Items, conv),
		Total:      p.Total,
		Page:       p.Page,
		Limit:      p.Limit,
		TotalPages: p.TotalPages(),
	}
}

func mapSlice[S, T any](in []S, conv func(S) T) []T {
	out := make([]T, len(in))
	for i, v := range in {
		out[i] = conv(v)
	}
	return out
}

func dateOnly(t time.Time) string {
	return t.Format(time.DateOnly)
}

func optDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := dateOnly(*t)
	return &s
}

// ---------------------------------------------------------------------------
// Users
// ---------------------------------------------------------------------------

type userResponse struct {
	ID          uuid.UUID  `json:"id"`
	Username    string     `json:"username"`
	Email       string     `json:"email"`
	Fullname    string     `json:"fullname"`
	Role        string     `json:"role"`
	RecipientID *uuid.UUID `json:"recipientId"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func toUserResponse(u domain.User) userResponse {
	return userResponse{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		Fullname:    u.Fullname,
		Role:        u.Role.String(),
		RecipientID: u.RecipientID,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

// ---------------------------------------------------------------------------
// Recipients
// ---------------------------------------------------------------------------

type recipientResponse struct {
	RecipientCode uuid.UUID `json:"recipientCode"`
	RecipientNo   int       `json:"recipientNo"`
	RecipientName string    `json:"recipientName"`
	Initial       *string   `json:"initial"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func toRecipientResponse(r domain.Recipient) recipientResponse {
	return recipientResponse{
		RecipientCode: r.Code,
		RecipientNo:   r.No,
		RecipientName: r.Name,
		Initial:       r.Initial,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

// ---------------------------------------------------------------------------
// Trackers and legs
// ---------------------------------------------------------------------------

type trackerResponse struct {
	ID                  uuid.UUID     `json:"id"`
	SerialNumber        string        `json:"serialNumber"`
	FromName            string        `json:"fromName"`
	DocumentTitle       string        `json:"documentTitle"`
	DateReceived        string        `json:"dateReceived"`
	Attachment          *string       `json:"attachment"`
	AttachmentMimeType  *string       `json:"attachmentMimeType"`
	IsConfidential      bool          `json:"isConfidential"`
	IsArchived          bool          `json:"isArchived"`
	LCEAction           string        `json:"lceAction"`
	LCEKeyedInAction    *string       `json:"lceKeyedInAction"`
	LCEActionDate       *string       `json:"lceActionDate"`
	LCERemarks          *string       `json:"lceRemarks"`
	LCEReply            *string       `json:"lceReply"`
	LCEKeyedInReply     *string       `json:"lceKeyedInReply"`
	LCEReplyDate        *string       `json:"lceReplyDate"`
	ReplySlipAttachment *string       `json:"replySlipAttachment"`
	ReplySlipMimeType   *string       `json:"replySlipMimeType"`
	CreatedBy           *uuid.UUID    `json:"createdBy"`
	CreatedAt           time.Time     `json:"createdAt"`
	UpdatedAt           time.Time     `json:"updatedAt"`
	Recipients          []legResponse `json:"recipients,omitempty"`
}

func toTrackerResponse(t domain.Tracker) trackerResponse {
	resp := trackerResponse{
		ID:                  t.ID,
		SerialNumber:        t.SerialNumber,
		FromName:            t.FromName,
		DocumentTitle:       t.DocumentTitle,
		DateReceived:        dateOnly(t.DateReceived),
		Attachment:          t.Attachment,
		AttachmentMimeType:  t.AttachmentMimeType,
		IsConfidential:      t.IsConfidential,
		IsArchived:          t.IsArchived,
		LCEAction:           t.LCEAction.String(),
		LCEKeyedInAction:    t.LCEKeyedInAction,
		LCEActionDate:       optDate(t.LCEActionDate),
		LCERemarks:          t.LCERemarks,
		LCEKeyedInReply:     t.LCEKeyedInReply,
		LCEReplyDate:        optDate(t.LCEReplyDate),
		ReplySlipAttachment: t.ReplySlipAttachment,
		ReplySlipMimeType:   t.ReplySlipMimeType,
		CreatedBy:           t.CreatedBy,
		CreatedAt:           t.CreatedAt,
		UpdatedAt:           t.UpdatedAt,
	}
	if t.LCEReply != nil {
		reply := t.LCEReply.String()
		resp.LCEReply = &reply
	}
	return resp
}

func toTrackerDetailResponse(d domain.TrackerDetail) trackerResponse {
	resp := toTrackerResponse(d.Tracker)
	resp.Recipients = mapSlice(d.Legs, toRoutingLegResponse)
	return resp
}

type legResponse struct {
	ID               uuid.UUID  `json:"id"`
	TrackerID        uuid.UUID  `json:"trackerId"`
	RecipientID      uuid.UUID  `json:"recipientId"`
	RecipientName    string     `json:"recipientName,omitempty"`
	RecipientInitial *string    `json:"recipientInitial,omitempty"`
	Status           string     `json:"status"`
	IsSeen           bool       `json:"isSeen"`
	IsRead           bool       `json:"isRead"`
	SeenAt           *time.Time `json:"seenAt"`
	ReadAt           *time.Time `json:"readAt"`
	AcknowledgedAt   *time.Time `json:"acknowledgedAt"`
	CompletedAt      *time.Time `json:"completedAt"`
	Action           *string    `json:"action"`
	Remarks          *string    `json:"remarks"`
	DueDate          *string    `json:"dueDate"`
	UpdatedBy        *uuid.UUID `json:"updatedBy"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

func toLegResponse(l domain.TrackerRecipient) legResponse {
	return legResponse{
		ID:             l.ID,
		TrackerID:      l.TrackerID,
		RecipientID:    l.RecipientID,
		Status:         l.Status.String(),
		IsSeen:         l.IsSeen,
		IsRead:         l.IsRead,
		SeenAt:         l.SeenAt,
		ReadAt:         l.ReadAt,
		AcknowledgedAt: l.AcknowledgedAt,
		CompletedAt:    l.CompletedAt,
		Action:         l.Action,
		Remarks:        l.Remarks,
		DueDate:        optDate(l.DueDate),
		UpdatedBy:      l.UpdatedBy,
		CreatedAt:      l.CreatedAt,
		UpdatedAt:      l.UpdatedAt,
	}
}

func toRoutingLegResponse(l domain.RoutingLeg) legResponse {
	resp := toLegResponse(l.TrackerRecipient)
	resp.RecipientName = l.RecipientName
	resp.RecipientInitial = l.RecipientInitial
	return resp
}

type inboxItemResponse struct {
	legResponse
	Tracker trackerResponse `json:"tracker"`
}

func toInboxItemResponse(it domain.InboxItem) inboxItemResponse {
	return inboxItemResponse{
		legResponse: toLegResponse(it.TrackerRecipient),
		Tracker:     toTrackerResponse(it.Tracker),
	}
}

// ---------------------------------------------------------------------------
// Activity
// ---------------------------------------------------------------------------

type activityResponse struct {
	ID          uuid.UUID      `json:"id"`
	UserID      *uuid.UUID     `json:"userId"`
	Action      string         `json:"action"`
	EntityType  string         `json:"entityType"`
	EntityID    *string        `json:"entityId"`
	Description string         `json:"description"`
	Details     map[string]any `json:"details"`
	IPAddress   *string        `json:"ipAddress"`
	UserAgent   *string        `json:"userAgent"`
	Status      string         `json:"status"`
	CreatedAt   time.Time      `json:"createdAt"`
}

func toActivityResponse(a domain.ActivityLog) activityResponse {
	return activityResponse{
		ID:          a.ID,
		UserID:      a.UserID,
		Action:      a.Action,
		EntityType:  a.EntityType.String(),
		EntityID:    a.EntityID,
		Description: a.Description,
		Details:     a.Details,
		IPAddress:   a.IPAddress,
		UserAgent:   a.UserAgent,
		Status:      a.Status.String(),
		CreatedAt:   a.CreatedAt,
	}
}

// ---------------------------------------------------------------------------
// Analytics
// ---------------------------------------------------------------------------

type roleCountResponse struct {
	Role  string `json:"role"`
	Count int    `json:"count"`
}

type statusCountResponse struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

type monthCountResponse struct {
	Month string `json:"month"`
	Count int    `json:"count"`
}

type recipientCountResponse struct {
	RecipientID   uuid.UUID `json:"recipientId"`
	RecipientName string    `json:"recipientName"`
	Initial       *string   `json:"initial"`
	Count         int       `json:"count"`
}

type actionCountResponse struct {
	Action string `json:"action"`
	Count  int    `json:"count"`
}

type systemStatsResponse struct {
	TotalUsers              int                      `json:"totalUsers"`
	TotalTrackers           int                      `json:"totalTrackers"`
	TotalRecipients         int                      `json:"totalRecipients"`
	UsersByRole             []roleCountResponse      `json:"usersByRole"`
	StatusCounts            []statusCountResponse    `json:"statusCounts"`
	TrackersByMonth         []monthCountResponse     `json:"trackersByMonth"`
	TopRecipients           []recipientCountResponse `json:"topRecipients"`
	ActionCounts            []actionCountResponse    `json:"actionCounts"`
	AvgPendingHours         *float64                 `json:"avgPendingHours"`
	AvgProcessingHours      *float64                 `json:"avgProcessingHours"`
	AvgTotalCompletionHours *float64                 `json:"avgTotalCompletionHours"`
}

func toStatusCount(c domain.StatusCount) statusCountResponse {
	return statusCountResponse{Status: c.Status.String(), Count: c.Count}
}

func toSystemStatsResponse(s domain.SystemStats) systemStatsResponse {
	return systemStatsResponse{
		TotalUsers:      s.TotalUsers,
		TotalTrackers:   s.TotalTrackers,
		TotalRecipients: s.TotalRecipients,
		UsersByRole: mapSlice(s.UsersByRole, func(c domain.RoleCount) roleCountResponse {
			return roleCountResponse{Role: c.Role.String(), Count: c.Count}
		}),
		StatusCounts: mapSlice(s.StatusCounts, toStatusCount),
		TrackersByMonth: mapSlice(s.TrackersByMonth, func(c domain.MonthCount) monthCountResponse {
			return monthCountResponse{Month: c.Month, Count: c.Count}
		}),
		TopRecipients: mapSlice(s.TopRecipients, func(c domain.RecipientCount) recipientCountResponse {
			return recipientCountResponse{RecipientID: c.RecipientID, RecipientName: c.RecipientName, Initial: c.Initial, Count: c.Count}
		}),
		ActionCounts: mapSlice(s.ActionCounts, func(c domain.ActionCount) actionCountResponse {
			return actionCountResponse{Action: c.Action, Count: c.Count}
		}),
		AvgPendingHours:         s.Durations.AvgPendingHours,
		AvgProcessingHours:      s.Durations.AvgProcessingHours,
		AvgTotalCompletionHours: s.Durations.AvgTotalCompletionHours,
	}
}

type recipientSummaryResponse struct {
	RecipientID             uuid.UUID             `json:"recipientId"`
	Total                   int                   `json:"total"`
	StatusCounts            []statusCountResponse `json:"statusCounts"`
	AvgPendingHours         *float64              `json:"avgPendingHours"`
	AvgProcessingHours      *float64              `json:"avgProcessingHours"`
	AvgTotalCompletionHours *float64              `json:"avgTotalCompletionHours"`
}

func toRecipientSummaryResponse(s domain.RecipientSummary) recipientSummaryResponse {
	return recipientSummaryResponse{
		RecipientID:             s.RecipientID,
		Total:                   s.Total,
		StatusCounts:            mapSlice(s.StatusCounts, toStatusCount),
		AvgPendingHours:         s.Durations.AvgPendingHours,
		AvgProcessingHours:      s.Durations.AvgProcessingHours,
		AvgTotalCompletionHours: s.Durations.AvgTotalCompletionHours,
	}
}

// ---------------------------------------------------------------------------
// Public routing slip
// ---------------------------------------------------------------------------

type slipLegResponse struct {
	RecipientName    string     `json:"recipientName"`
	RecipientInitial *string    `json:"recipientInitial"`
	Status           string     `json:"status"`
	SeenAt           *time.Time `json:"seenAt"`
	ReadAt           *time.Time `json:"readAt"`
	AcknowledgedAt   *time.Time `json:"acknowledgedAt"`
	CompletedAt      *time.Time `json:"completedAt"`
	Action           *string    `json:"action"`
	Remarks          *string    `json:"remarks,omitempty"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

type slipResponse struct {
	SerialNumber     string            `json:"serialNumber"`
	DocumentTitle    string            `json:"documentTitle"`
	FromName         string            `json:"fromName"`
	DateReceived     string            `json:"dateReceived"`
	IsConfidential   bool              `json:"isConfidential"`
	LCEAction        string            `json:"lceAction"`
	LCEKeyedInAction *string           `json:"lceKeyedInAction"`
	LCEActionDate    *string           `json:"lceActionDate"`
	LCEReply         *string           `json:"lceReply"`
	LCEKeyedInReply  *string           `json:"lceKeyedInReply"`
	LCEReplyDate     *string           `json:"lceReplyDate"`
	Recipients       []slipLegResponse `json:"recipients"`
}

func toSlipResponse(s domain.RoutingSlip) slipResponse {
	resp := slipResponse{
		SerialNumber:     s.SerialNumber,
		DocumentTitle:    s.DocumentTitle,
		FromName:         s.FromName,
		DateReceived:     dateOnly(s.DateReceived),
		IsConfidential:   s.IsConfidential,
		LCEAction:        s.LCEAction.String(),
		LCEKeyedInAction: s.LCEKeyedInAction,
		LCEActionDate:    optDate(s.LCEActionDate),
		LCEKeyedInReply:  s.LCEKeyedInReply,
		LCEReplyDate:     optDate(s.LCEReplyDate),
		Recipients: mapSlice(s.Legs, func(l domain.RoutingLeg) slipLegResponse {
			return slipLegResponse{
				RecipientName:    l.RecipientName,
				RecipientInitial: l.RecipientInitial,
				Status:           l.Status.String(),
				SeenAt:           l.SeenAt,
				ReadAt:           l.ReadAt,
				AcknowledgedAt:   l.AcknowledgedAt,
				CompletedAt:      l.CompletedAt,
				Action:           l.Action,
				Remarks:          l.Remarks,
				UpdatedAt:        l.UpdatedAt,
			}
		}),
	}
	if s.LCEReply != nil {
		reply := s.LCEReply.String()
		resp.LCEReply = &reply
	}
	return resp
}
