package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/iho/glkernel/internal/adapter/http/dto"
	"github.com/iho/glkernel/internal/domain"
)

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, message, details string) {
	writeJSON(w, status, dto.ErrorResponse{
		Error:   message,
		Message: details,
	})
}

// writeDomainError maps err to a status and writes it. Validation failures
// carry their category and context.
func writeDomainError(w http.ResponseWriter, message string, err error) {
	resp := dto.ErrorResponse{Error: message, Message: err.Error()}
	if verr, ok := domain.AsValidationError(err); ok {
		resp.Category = string(verr.Category)
		resp.Context = verr.Context
	}
	writeJSON(w, mapDomainError(err), resp)
}

// mapDomainError maps domain errors to HTTP status codes.
// ErrPeriodNotOpen wraps a ValidationError, so it is checked first.
func mapDomainError(err error) int {
	switch {
	case errors.Is(err, domain.ErrPeriodNotOpen),
		errors.Is(err, domain.ErrLedgerInactive):
		return http.StatusConflict
	case errors.Is(err, domain.ErrValidationFailed):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrEventNotFound),
		errors.Is(err, domain.ErrMappingNotFound),
		errors.Is(err, domain.ErrLedgerNotFound),
		errors.Is(err, domain.ErrPeriodNotFound),
		errors.Is(err, domain.ErrCoANotFound),
		errors.Is(err, domain.ErrSequenceNotFound),
		errors.Is(err, domain.ErrCommandNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// decodeRequest decodes a JSON body into req and checks its struct tags.
func decodeRequest(w http.ResponseWriter, r *http.Request, req any) bool {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return false
	}
	if err := dto.Validate(req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request", err.Error())
		return false
	}
	return true
}

// commandStatus is 201 for a new command and 200 for a duplicate.
func commandStatus(duplicate bool) int {
	if duplicate {
		return http.StatusOK
	}
	return http.StatusCreated
}
