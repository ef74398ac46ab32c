package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/glkernel/internal/adapter/http/dto"
	"github.com/iho/glkernel/internal/usecase"
)

// JournalService defines the behavior needed by JournalHandler.
type JournalService interface {
	RunReclass(ctx context.Context, input usecase.ReclassInput) (*usecase.CommandResult, error)
	RunAllocation(ctx context.Context, input usecase.AllocationInput) (*usecase.AllocationOutput, error)
	RunAccrual(ctx context.Context, input usecase.AccrualInput) (*usecase.AccrualOutput, error)
}

// JournalHandler handles period-end journal runs.
type JournalHandler struct {
	journalUC JournalService
}

// NewJournalHandler creates a new JournalHandler.
func NewJournalHandler(journalUC JournalService) *JournalHandler {
	return &JournalHandler{journalUC: journalUC}
}

// Reclass enqueues a reclassification run.
func (h *JournalHandler) Reclass(w http.ResponseWriter, r *http.Request) {
	var req dto.ReclassRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	res, err := h.journalUC.RunReclass(r.Context(), req.ToUseCaseInput(chi.URLParam(r, "ledgerId")))
	if err != nil {
		writeDomainError(w, "failed to run reclass", err)
		return
	}

	writeJSON(w, commandStatus(res.Duplicate), dto.CommandResultFromUseCase(*res))
}

// Allocation enqueues an allocation run.
func (h *JournalHandler) Allocation(w http.ResponseWriter, r *http.Request) {
	var req dto.AllocationRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	out, err := h.journalUC.RunAllocation(r.Context(), req.ToUseCaseInput(chi.URLParam(r, "ledgerId")))
	if err != nil {
		writeDomainError(w, "failed to run allocation", err)
		return
	}

	writeJSON(w, commandStatus(out.Duplicate), dto.AllocationResponse{
		CommandResultResponse: dto.CommandResultFromUseCase(out.CommandResult),
		Shares:                out.Shares,
	})
}

// Accrual enqueues one period of an accrual schedule.
func (h *JournalHandler) Accrual(w http.ResponseWriter, r *http.Request) {
	var req dto.AccrualRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	out, err := h.journalUC.RunAccrual(r.Context(), req.ToUseCaseInput(chi.URLParam(r, "ledgerId")))
	if err != nil {
		writeDomainError(w, "failed to run accrual", err)
		return
	}

	writeJSON(w, commandStatus(out.Duplicate), dto.AccrualResponse{
		CommandResultResponse: dto.CommandResultFromUseCase(out.CommandResult),
		PeriodAmountMinor:     out.PeriodAmountMinor,
	})
}
