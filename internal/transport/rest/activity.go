package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/heartmarshall/doctrkr-backend/internal/domain"
)

type activityService interface {
	List(ctx context.Context, f domain.ActivityFilter) (domain.Page[domain.ActivityLog], error)
	Get(ctx context.Context, id uuid.UUID) (domain.ActivityLog, error)
	Summary(ctx context.Context, days int) (domain.ActivitySummary, error)
	Cleanup(ctx context.Context, days int, dryRun bool) (int64, error)
}

// ActivityHandler serves the activity log read side and retention cleanup.
type ActivityHandler struct {
	svc           activityService
	retentionDays int
	log           *slog.Logger
}

// NewActivityHandler creates an ActivityHandler. retentionDays is the
// cleanup default when the request does not name one.
func NewActivityHandler(svc activityService, retentionDays int, logger *slog.Logger) *ActivityHandler {
	return &ActivityHandler{
		svc:           svc,
		retentionDays: retentionDays,
		log:           logger.With("handler", "activity"),
	}
}

func activityFilter(q *query) domain.ActivityFilter {
	f := domain.ActivityFilter{
		UserID:     q.uuid("userId"),
		Action:     q.str("action"),
		EntityID:   q.str("entityId"),
		Search:     q.str("search"),
		DateFrom:   q.date("dateFrom"),
		DateTo:     q.date("dateTo"),
		Pagination: q.pagination(),
	}
	if s := q.str("entityType"); s != nil {
		et := domain.EntityType(*s)
		f.EntityType = &et
	}
	if s := q.str("status"); s != nil {
		st := domain.ActivityStatus(*s)
		f.Status = &st
	}
	return f
}

func (h *ActivityHandler) list(w http.ResponseWriter, r *http.Request, f domain.ActivityFilter) {
	page, err := h.svc.List(r.Context(), f)
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toPage(page, toActivityResponse))
}

// List handles GET /activity-logs.
func (h *ActivityHandler) List(w http.ResponseWriter, r *http.Request) {
	q := newQuery(r)
	f := activityFilter(q)
	if err := q.err(); err != nil {
		respondError(h.log, w, r, err)
		return
	}
	h.list(w, r, f)
}

// ByEntity handles GET /activity-logs/entity/{entityType}/{entityId}.
func (h *ActivityHandler) ByEntity(w http.ResponseWriter, r *http.Request) {
	q := newQuery(r)
	f := activityFilter(q)
	if err := q.err(); err != nil {
		respondError(h.log, w, r, err)
		return
	}

	et := domain.EntityType(r.PathValue("entityType"))
	entityID := r.PathValue("entityId")
	f.EntityType, f.EntityID = &et, &entityID
	h.list(w, r, f)
}

// ByUser handles GET /activity-logs/user/{userId}.
func (h *ActivityHandler) ByUser(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userId")
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}
	q := newQuery(r)
	f := activityFilter(q)
	if err := q.err(); err != nil {
		respondError(h.log, w, r, err)
		return
	}

	f.UserID = &userID
	h.list(w, r, f)
}

// Get handles GET /activity-logs/{id}.
func (h *ActivityHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}

	entry, err := h.svc.Get(r.Context(), id)
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toActivityResponse(entry))
}

// Summary handles GET /activity-logs/summary/statistics.
func (h *ActivityHandler) Summary(w http.ResponseWriter, r *http.Request) {
	q := newQuery(r)
	days := q.int("days", 0)
	if err := q.err(); err != nil {
		respondError(h.log, w, r, err)
		return
	}

	sum, err := h.svc.Summary(r.Context(), days)
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sum)
}

// Cleanup handles DELETE /activity-logs/cleanup/old.
func (h *ActivityHandler) Cleanup(w http.ResponseWriter, r *http.Request) {
	q := newQuery(r)
	days := q.int("days", h.retentionDays)
	if err := q.err(); err != nil {
		respondError(h.log, w, r, err)
		return
	}

	n, err := h.svc.Cleanup(r.Context(), days, false)
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"deleted": n})
}
