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

// CoAService defines the behavior needed by CoAHandler.
type CoAService interface {
	Validate(ctx context.Context, companyID string) (*kernel.CoaReport, error)
	Publish(ctx context.Context, companyID string, accounts []domain.AccountNode) (*usecase.PublishCoAOutput, error)
	Ancestors(ctx context.Context, companyID, accountID string) ([]domain.AccountNode, error)
	Subtree(ctx context.Context, companyID, rootID string) ([]domain.AccountNode, error)
}

// CoAHandler handles chart of accounts requests.
type CoAHandler struct {
	coaUC CoAService
}

// NewCoAHandler creates a new CoAHandler.
func NewCoAHandler(coaUC CoAService) *CoAHandler {
	return &CoAHandler{coaUC: coaUC}
}

// Validate checks the stored chart of a company.
func (h *CoAHandler) Validate(w http.ResponseWriter, r *http.Request) {
	report, err := h.coaUC.Validate(r.Context(), chi.URLParam(r, "companyId"))
	if err != nil {
		writeDomainError(w, "chart of accounts is invalid", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.CoAResponse{Report: report})
}

// Publish replaces the chart of a company.
func (h *CoAHandler) Publish(w http.ResponseWriter, r *http.Request) {
	var req dto.PublishCoARequest
	if !decodeRequest(w, r, &req) {
		return
	}

	out, err := h.coaUC.Publish(r.Context(), chi.URLParam(r, "companyId"), req.Accounts)
	if err != nil {
		writeDomainError(w, "failed to publish chart of accounts", err)
		return
	}

	res := dto.CommandResultFromUseCase(out.CommandResult)
	writeJSON(w, commandStatus(out.Duplicate), dto.CoAResponse{Report: out.Report, CommandResultResponse: &res})
}

// Ancestors returns the chain from an account up to its root.
func (h *CoAHandler) Ancestors(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.coaUC.Ancestors(r.Context(), chi.URLParam(r, "companyId"), chi.URLParam(r, "accountId"))
	if err != nil {
		writeDomainError(w, "failed to resolve ancestors", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.AccountsResponse{Accounts: accounts, Total: len(accounts)})
}

// Subtree returns the descendants of ?root=, or every account when root is empty.
func (h *CoAHandler) Subtree(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.coaUC.Subtree(r.Context(), chi.URLParam(r, "companyId"), r.URL.Query().Get("root"))
	if err != nil {
		writeDomainError(w, "failed to resolve subtree", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.AccountsResponse{Accounts: accounts, Total: len(accounts)})
}
