package rest

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/heartmarshall/doctrkr-backend/internal/domain"
)

type slipService interface {
	RoutingSlip(ctx context.Context, serial string) (domain.RoutingSlip, error)
	RoutingSlipPDF(ctx context.Context, serial string) ([]byte, error)
}

// PublicHandler serves unauthenticated routing slip lookups.
type PublicHandler struct {
	svc slipService
	log *slog.Logger
}

// NewPublicHandler creates a PublicHandler.
func NewPublicHandler(svc slipService, logger *slog.Logger) *PublicHandler {
	return &PublicHandler{svc: svc, log: logger.With("handler", "public")}
}

// RoutingSlip handles GET /public/trackers/{serialNumber}/routing-slip.
func (h *PublicHandler) RoutingSlip(w http.ResponseWriter, r *http.Request) {
	slip, err := h.svc.RoutingSlip(r.Context(), r.PathValue("serialNumber"))
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toSlipResponse(slip))
}

// RoutingSlipPDF handles GET /public/trackers/{serialNumber}/routing-slip.pdf.
func (h *PublicHandler) RoutingSlipPDF(w http.ResponseWriter, r *http.Request) {
	serial := r.PathValue("serialNumber")

	pdf, err := h.svc.RoutingSlipPDF(r.Context(), serial)
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `inline; filename="routing-slip-`+serial+`.pdf"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(pdf)))
	w.WriteHeader(http.StatusOK)
	w.Write(pdf) //nolint:errcheck
}
