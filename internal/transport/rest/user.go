package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/heartmarshall/doctrkr-backend/internal/domain"
	"github.com/heartmarshall/doctrkr-backend/internal/service/user"
)

type userService interface {
	List(ctx context.Context, f domain.UserFilter) (domain.Page[domain.User], error)
	Get(ctx context.Context, id uuid.UUID) (*domain.User, error)
	Create(ctx context.Context, input user.CreateInput) (*domain.User, error)
	Update(ctx context.Context, id uuid.UUID, input user.UpdateInput) (*domain.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// UserHandler serves the admin user endpoints.
type UserHandler struct {
	svc userService
	log *slog.Logger
}

// NewUserHandler creates a UserHandler.
func NewUserHandler(svc userService, logger *slog.Logger) *UserHandler {
	return &UserHandler{svc: svc, log: logger.With("handler", "user")}
}

type userRequest struct {
	Username    *string      `json:"username"`
	Email       *string      `json:"email"`
	Fullname    *string      `json:"fullname"`
	Password    *string      `json:"password"`
	Role        *domain.Role `json:"role"`
	RecipientID *uuid.UUID   `json:"recipientId"`
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// List handles GET /users.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	q := newQuery(r)
	f := domain.UserFilter{Search: q.str("search")}
	if role := q.str("role"); role != nil {
		rl := domain.Role(*role)
		f.Role = &rl
	}
	p := q.pagination()
	f.Page, f.Limit = p.Page, p.Limit
	if err := q.err(); err != nil {
		respondError(h.log, w, r, err)
		return
	}

	page, err := h.svc.List(r.Context(), f)
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toPage(page, toUserResponse))
}

// Get handles GET /users/{id}.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}

	u, err := h.svc.Get(r.Context(), id)
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserResponse(*u))
}

// Create handles POST /users.
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req userRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(h.log, w, r, err)
		return
	}

	input := user.CreateInput{
		Username:    deref(req.Username),
		Email:       deref(req.Email),
		Fullname:    deref(req.Fullname),
		Password:    deref(req.Password),
		RecipientID: req.RecipientID,
	}
	if req.Role != nil {
		input.Role = *req.Role
	}

	u, err := h.svc.Create(r.Context(), input)
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toUserResponse(*u))
}

// Update handles PUT /users/{id}.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}
	var req userRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(h.log, w, r, err)
		return
	}

	u, err := h.svc.Update(r.Context(), id, user.UpdateInput{
		Username:    req.Username,
		Email:       req.Email,
		Fullname:    req.Fullname,
		Password:    req.Password,
		Role:        req.Role,
		RecipientID: req.RecipientID,
	})
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserResponse(*u))
}

// Delete handles DELETE /users/{id}.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
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
