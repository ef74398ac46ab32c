package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/glkernel/internal/adapter/http/dto"
	"github.com/iho/glkernel/internal/domain"
	"github.com/iho/glkernel/internal/usecase"
)

// NumberingService defines the behavior needed by NumberingHandler.
type NumberingService interface {
	AllocateNumbers(ctx context.Context, sequenceID string, count int) (*usecase.AllocateNumbersOutput, error)
	ValidateDimensions(ctx context.Context, companyID string, lines []domain.DimensionedLine) error
}

// NumberingHandler handles document numbering and dimension checks.
type NumberingHandler struct {
	numberingUC NumberingService
}

// NewNumberingHandler creates a new NumberingHandler.
func NewNumberingHandler(numberingUC NumberingService) *NumberingHandler {
	return &NumberingHandler{numberingUC: numberingUC}
}

// Allocate reserves the next document numbers of a sequence.
func (h *NumberingHandler) Allocate(w http.ResponseWriter, r *http.Request) {
	var req dto.AllocateNumbersRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	out, err := h.numberingUC.AllocateNumbers(r.Context(), chi.URLParam(r, "sequenceId"), req.Count)
	if err != nil {
		writeDomainError(w, "failed to allocate numbers", err)
		return
	}

	writeJSON(w, http.StatusOK, out)
}

// ValidateDimensions checks journal lines against a company's dimensions.
func (h *NumberingHandler) ValidateDimensions(w http.ResponseWriter, r *http.Request) {
	var req dto.ValidateDimensionsRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	if err := h.numberingUC.ValidateDimensions(r.Context(), chi.URLParam(r, "companyId"), req.Lines); err != nil {
		writeDomainError(w, "dimension check failed", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.DimensionsResponse{Valid: true, LineCount: len(req.Lines)})
}
