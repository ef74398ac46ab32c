package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/glkernel/internal/adapter/http/dto"
	"github.com/iho/glkernel/internal/domain"
	"github.com/iho/glkernel/internal/usecase"
)

// PeriodService defines the behavior needed by PeriodHandler.
type PeriodService interface {
	OpenPeriod(ctx context.Context, input usecase.OpenPeriodInput) (*usecase.PeriodOutput, error)
	ClosePeriod(ctx context.Context, input usecase.ClosePeriodInput) (*usecase.PeriodOutput, error)
	ListPeriods(ctx context.Context, ledgerID string) ([]domain.PostingPeriod, error)
	CheckPosting(ctx context.Context, ledgerID, periodKey string) (*domain.PostingPeriod, error)
}

// PeriodHandler handles posting period requests.
type PeriodHandler struct {
	periodUC PeriodService
}

// NewPeriodHandler creates a new PeriodHandler.
func NewPeriodHandler(periodUC PeriodService) *PeriodHandler {
	return &PeriodHandler{periodUC: periodUC}
}

// Open opens a new posting period on a ledger.
func (h *PeriodHandler) Open(w http.ResponseWriter, r *http.Request) {
	var req dto.OpenPeriodRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	out, err := h.periodUC.OpenPeriod(r.Context(), req.ToUseCaseInput(chi.URLParam(r, "ledgerId")))
	if err != nil {
		writeDomainError(w, "failed to open period", err)
		return
	}

	writeJSON(w, commandStatus(out.Duplicate), dto.PeriodFromUseCase(out))
}

// Close soft- or hard-closes a posting period.
func (h *PeriodHandler) Close(w http.ResponseWriter, r *http.Request) {
	var req dto.ClosePeriodRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	input := req.ToUseCaseInput(chi.URLParam(r, "ledgerId"), chi.URLParam(r, "periodKey"))
	out, err := h.periodUC.ClosePeriod(r.Context(), input)
	if err != nil {
		writeDomainError(w, "failed to close period", err)
		return
	}

	writeJSON(w, commandStatus(out.Duplicate), dto.PeriodFromUseCase(out))
}

// List lists the periods of a ledger.
func (h *PeriodHandler) List(w http.ResponseWriter, r *http.Request) {
	periods, err := h.periodUC.ListPeriods(r.Context(), chi.URLParam(r, "ledgerId"))
	if err != nil {
		writeDomainError(w, "failed to list periods", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ListPeriodsResponse{Periods: periods, Total: len(periods)})
}

// CheckPosting reports whether a period currently accepts postings.
// A closed period is a normal answer, not an error.
func (h *PeriodHandler) CheckPosting(w http.ResponseWriter, r *http.Request) {
	period, err := h.periodUC.CheckPosting(r.Context(), chi.URLParam(r, "ledgerId"), chi.URLParam(r, "periodKey"))
	if err != nil {
		if errors.Is(err, domain.ErrPeriodNotOpen) {
			writeJSON(w, http.StatusOK, dto.PostingCheckResponse{Allowed: false, Reason: err.Error()})
			return
		}
		writeDomainError(w, "failed to check period", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.PostingCheckResponse{Allowed: true, Period: period})
}
