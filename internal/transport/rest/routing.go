package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/heartmarshall/doctrkr-backend/internal/domain"
)

type routingService interface {
	UpdateStatus(ctx context.Context, legID uuid.UUID, u domain.StatusUpdate) (*domain.TrackerRecipient, error)
	UpdateStatusByPair(ctx context.Context, trackerID, recipientID uuid.UUID, u domain.StatusUpdate) (*domain.TrackerRecipient, error)
	RecordAction(ctx context.Context, trackerID, recipientID uuid.UUID, u domain.StatusUpdate) (*domain.TrackerRecipient, error)
	BulkUpdate(ctx context.Context, trackerID uuid.UUID, u domain.StatusUpdate) ([]domain.TrackerRecipient, error)
	Inbox(ctx context.Context, f domain.InboxFilter) (domain.Page[domain.InboxItem], error)
	InboxAll(ctx context.Context, f domain.InboxFilter) ([]domain.InboxItem, error)
	OpenInboxItem(ctx context.Context, recipientID, trackerID uuid.UUID) (*domain.InboxItem, error)
}

// RoutingHandler serves routing leg status updates and the recipient inbox.
type RoutingHandler struct {
	svc routingService
	log *slog.Logger
}

// NewRoutingHandler creates a RoutingHandler.
func NewRoutingHandler(svc routingService, logger *slog.Logger) *RoutingHandler {
	return &RoutingHandler{svc: svc, log: logger.With("handler", "routing")}
}

type statusRequest struct {
	Status    string      `json:"status"`
	Action    *string     `json:"action"`
	Remarks   *string     `json:"remarks"`
	DueDate   *string     `json:"dueDate"`
	ForwardTo []uuid.UUID `json:"forwardTo"`
}

func (req statusRequest) toUpdate() (domain.StatusUpdate, error) {
	due, err := optParseDate(req.DueDate)
	if err != nil {
		return domain.StatusUpdate{}, domain.NewValidationError("dueDate", "invalid date")
	}
	return domain.StatusUpdate{
		Status:    domain.RoutingStatus(req.Status),
		Action:    req.Action,
		Remarks:   req.Remarks,
		DueDate:   due,
		ForwardTo: req.ForwardTo,
	}, nil
}

func (h *RoutingHandler) decodeStatus(w http.ResponseWriter, r *http.Request) (domain.StatusUpdate, error) {
	var req statusRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return domain.StatusUpdate{}, err
	}
	return req.toUpdate()
}

// UpdateLeg handles PATCH /tracker-recipients/{id}/status.
func (h *RoutingHandler) UpdateLeg(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}
	u, err := h.decodeStatus(w, r)
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}

	leg, err := h.svc.UpdateStatus(r.Context(), id, u)
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toLegResponse(*leg))
}

// UpdateByPair handles PUT /recipient-trackers/recipients/{recipientId}/trackers/{trackerId}.
func (h *RoutingHandler) UpdateByPair(w http.ResponseWriter, r *http.Request) {
	recipientID, trackerID, err := pairIDs(r)
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}
	u, err := h.decodeStatus(w, r)
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}

	leg, err := h.svc.UpdateStatusByPair(r.Context(), trackerID, recipientID, u)
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toLegResponse(*leg))
}

// RecordAction handles POST /trackers/{trackerId}/recipients/{recipientId}/action.
func (h *RoutingHandler) RecordAction(w http.ResponseWriter, r *http.Request) {
	recipientID, trackerID, err := pairIDs(r)
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}
	u, err := h.decodeStatus(w, r)
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}

	leg, err := h.svc.RecordAction(r.Context(), trackerID, recipientID, u)
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toLegResponse(*leg))
}

// BulkStatus handles PATCH /trackers/{id}/recipients/status.
func (h *RoutingHandler) BulkStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}
	u, err := h.decodeStatus(w, r)
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}

	legs, err := h.svc.BulkUpdate(r.Context(), id, u)
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapSlice(legs, toLegResponse))
}

func inboxFilter(r *http.Request) (domain.InboxFilter, error) {
	recipientID, err := pathID(r, "recipientId")
	if err != nil {
		return domain.InboxFilter{}, err
	}

	q := newQuery(r)
	f := domain.InboxFilter{
		RecipientID: recipientID,
		Search:      q.str("search"),
		DateFrom:    q.date("dateFrom"),
		DateTo:      q.date("dateTo"),
		SortBy:      q.get("sort"),
		SortOrder:   domain.ParseSortOrder(q.get("order"), domain.SortDesc),
		Pagination:  q.pagination(),
	}
	if s := q.str("status"); s != nil {
		status := domain.RoutingStatus(*s)
		f.Status = &status
	}
	return f, q.err()
}

// Inbox handles GET /recipient-trackers/recipients/{recipientId}/trackers.
func (h *RoutingHandler) Inbox(w http.ResponseWriter, r *http.Request) {
	f, err := inboxFilter(r)
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}

	page, err := h.svc.Inbox(r.Context(), f)
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toPage(page, toInboxItemResponse))
}

// InboxAll handles GET /recipient-trackers/recipients/{recipientId}/trackers/all.
func (h *RoutingHandler) InboxAll(w http.ResponseWriter, r *http.Request) {
	f, err := inboxFilter(r)
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}

	items, err := h.svc.InboxAll(r.Context(), f)
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapSlice(items, toInboxItemResponse))
}

// InboxItem handles GET /recipient-trackers/recipients/{recipientId}/trackers/{trackerId}.
func (h *RoutingHandler) InboxItem(w http.ResponseWriter, r *http.Request) {
	recipientID, trackerID, err := pairIDs(r)
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}

	item, err := h.svc.OpenInboxItem(r.Context(), recipientID, trackerID)
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toInboxItemResponse(*item))
}

func pairIDs(r *http.Request) (recipientID, trackerID uuid.UUID, err error) {
	if recipientID, err = pathID(r, "recipientId"); err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	if trackerID, err = pathID(r, "trackerId"); err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	return recipientID, trackerID, nil
}
