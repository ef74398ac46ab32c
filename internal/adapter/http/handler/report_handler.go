package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/glkernel/internal/usecase"
)

// ReportService defines the behavior needed by ReportHandler.
type ReportService interface {
	TrialBalance(ctx context.Context, ledgerID, asOf string) (*usecase.TrialBalance, error)
}

// ReportHandler serves ledger reports.
type ReportHandler struct {
	reportUC ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportUC ReportService) *ReportHandler {
	return &ReportHandler{reportUC: reportUC}
}

// TrialBalance aggregates posted lines per account up to ?asOf=.
func (h *ReportHandler) TrialBalance(w http.ResponseWriter, r *http.Request) {
	tb, err := h.reportUC.TrialBalance(r.Context(), chi.URLParam(r, "ledgerId"), r.URL.Query().Get("asOf"))
	if err != nil {
		writeDomainError(w, "failed to build trial balance", err)
		return
	}

	writeJSON(w, http.StatusOK, tb)
}
