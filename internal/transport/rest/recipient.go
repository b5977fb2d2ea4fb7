package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/heartmarshall/doctrkr-backend/internal/domain"
	"github.com/heartmarshall/doctrkr-backend/internal/service/recipient"
)

type recipientService interface {
	List(ctx context.Context, f domain.RecipientFilter) (domain.Page[domain.Recipient], error)
	ListAll(ctx context.Context, search *string) ([]domain.Recipient, error)
	Get(ctx context.Context, code uuid.UUID) (*domain.Recipient, error)
	Create(ctx context.Context, input recipient.Input) (*domain.Recipient, error)
	Update(ctx context.Context, code uuid.UUID, input recipient.Input) (*domain.Recipient, error)
	Delete(ctx context.Context, code uuid.UUID) error
}

// RecipientHandler serves recipient office endpoints.
type RecipientHandler struct {
	svc recipientService
	log *slog.Logger
}

// NewRecipientHandler creates a RecipientHandler.
func NewRecipientHandler(svc recipientService, logger *slog.Logger) *RecipientHandler {
	return &RecipientHandler{svc: svc, log: logger.With("handler", "recipient")}
}

type recipientRequest struct {
	RecipientName string  `json:"recipientName"`
	Initial       *string `json:"initial"`
}

// List handles GET /recipients.
func (h *RecipientHandler) List(w http.ResponseWriter, r *http.Request) {
	q := newQuery(r)
	f := domain.RecipientFilter{Search: q.str("search"), Pagination: q.pagination()}
	if err := q.err(); err != nil {
		respondError(h.log, w, r, err)
		return
	}

	page, err := h.svc.List(r.Context(), f)
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toPage(page, toRecipientResponse))
}

// ListAll handles GET /recipients/all.
func (h *RecipientHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.ListAll(r.Context(), newQuery(r).str("search"))
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapSlice(items, toRecipientResponse))
}

// Get handles GET /recipients/{id}.
func (h *RecipientHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}

	rec, err := h.svc.Get(r.Context(), id)
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toRecipientResponse(*rec))
}

// Create handles POST /recipients.
func (h *RecipientHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req recipientRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(h.log, w, r, err)
		return
	}

	rec, err := h.svc.Create(r.Context(), recipient.Input{Name: req.RecipientName, Initial: req.Initial})
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toRecipientResponse(*rec))
}

// Update handles PUT /recipients/{id}.
func (h *RecipientHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}
	var req recipientRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(h.log, w, r, err)
		return
	}

	rec, err := h.svc.Update(r.Context(), id, recipient.Input{Name: req.RecipientName, Initial: req.Initial})
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toRecipientResponse(*rec))
}

// Delete handles DELETE /recipients/{id}.
func (h *RecipientHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}
	if err := h.svc.Delete(r.Context(), id); err != nil {
		respondError(h.log, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
