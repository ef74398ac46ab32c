package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/glkernel/internal/adapter/http/dto"
	"github.com/iho/glkernel/internal/domain"
	"github.com/iho/glkernel/internal/kernel"
	"github.com/iho/glkernel/internal/usecase"
)

// DerivationService defines the behavior needed by DerivationHandler.
type DerivationService interface {
	Derive(ctx context.Context, eventID string) (*usecase.DeriveOutput, error)
	Preview(ctx context.Context, in kernel.DerivationInput) (*domain.DerivationResult, error)
}

// DerivationHandler handles derivation requests.
type DerivationHandler struct {
	derivationUC DerivationService
}

// NewDerivationHandler creates a new DerivationHandler.
func NewDerivationHandler(derivationUC DerivationService) *DerivationHandler {
	return &DerivationHandler{derivationUC: derivationUC}
}

// Derive derives journal lines for a stored event and enqueues the commit.
func (h *DerivationHandler) Derive(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "eventId")
	if eventID == "" {
		writeError(w, http.StatusBadRequest, "missing event ID", "")
		return
	}

	out, err := h.derivationUC.Derive(r.Context(), eventID)
	if err != nil {
		writeDomainError(w, "failed to derive event", err)
		return
	}

	writeJSON(w, commandStatus(out.Duplicate), dto.DeriveFromUseCase(out))
}

// Preview derives journal lines from inline inputs without enqueueing anything.
func (h *DerivationHandler) Preview(w http.ResponseWriter, r *http.Request) {
	var req dto.PreviewDerivationRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	result, err := h.derivationUC.Preview(r.Context(), req.ToKernelInput())
	if err != nil {
		writeDomainError(w, "failed to preview derivation", err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}
