package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/doctrkr-backend/internal/domain"
	"github.com/heartmarshall/doctrkr-backend/internal/service/push"
)

type pushService interface {
	VAPIDPublicKey() (string, error)
	Subscribe(ctx context.Context, input push.SubscribeInput) (domain.PushSubscription, error)
	Unsubscribe(ctx context.Context, endpoint string) error
	SendTest(ctx context.Context) (int, error)
}

// PushHandler serves web push subscription endpoints.
type PushHandler struct {
	svc pushService
	log *slog.Logger
}

// NewPushHandler creates a PushHandler.
func NewPushHandler(svc pushService, logger *slog.Logger) *PushHandler {
	return &PushHandler{svc: svc, log: logger.With("handler", "push")}
}

type subscribeRequest struct {
	Endpoint string `json:"endpoint"`
	Keys     struct {
		P256dh string `json:"p256dh"`
		Auth   string `json:"auth"`
	} `json:"keys"`
}

type unsubscribeRequest struct {
	Endpoint string `json:"endpoint"`
}

type subscriptionResponse struct {
	ID        uuid.UUID `json:"id"`
	Endpoint  string    `json:"endpoint"`
	CreatedAt time.Time `json:"createdAt"`
}

// VAPIDKey handles GET /push/vapid-key.
func (h *PushHandler) VAPIDKey(w http.ResponseWriter, r *http.Request) {
	key, err := h.svc.VAPIDPublicKey()
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"publicKey": key})
}

// Subscribe handles POST /push/subscribe.
func (h *PushHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	var req subscribeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(h.log, w, r, err)
		return
	}

	sub, err := h.svc.Subscribe(r.Context(), push.SubscribeInput{
		Endpoint: req.Endpoint,
		P256dh:   req.Keys.P256dh,
		Auth:     req.Keys.Auth,
	})
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, subscriptionResponse{
		ID:        sub.ID,
		Endpoint:  sub.Endpoint,
		CreatedAt: sub.CreatedAt,
	})
}

// Unsubscribe handles POST /push/unsubscribe.
func (h *PushHandler) Unsubscribe(w http.ResponseWriter, r *http.Request) {
	var req unsubscribeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(h.log, w, r, err)
		return
	}
	if err := h.svc.Unsubscribe(r.Context(), req.Endpoint); err != nil {
		respondError(h.log, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Test handles POST /push/test.
func (h *PushHandler) Test(w http.ResponseWriter, r *http.Request) {
	sent, err := h.svc.SendTest(r.Context())
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"sent": sent})
}
