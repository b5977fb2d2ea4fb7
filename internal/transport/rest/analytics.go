package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/heartmarshall/doctrkr-backend/internal/domain"
)

type analyticsService interface {
	SystemStats(ctx context.Context) (domain.SystemStats, error)
	RecipientSummary(ctx context.Context, recipientID uuid.UUID) (domain.RecipientSummary, error)
}

// AnalyticsHandler serves dashboard aggregates.
type AnalyticsHandler struct {
	svc analyticsService
	log *slog.Logger
}

// NewAnalyticsHandler creates an AnalyticsHandler.
func NewAnalyticsHandler(svc analyticsService, logger *slog.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{svc: svc, log: logger.With("handler", "analytics")}
}

// SystemStats handles GET /analytics/system-stats.
func (h *AnalyticsHandler) SystemStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.SystemStats(r.Context())
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toSystemStatsResponse(stats))
}

// RecipientSummary handles GET /analytics/recipients/{id}/summary.
func (h *AnalyticsHandler) RecipientSummary(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}

	sum, err := h.svc.RecipientSummary(r.Context(), id)
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toRecipientSummaryResponse(sum))
}
