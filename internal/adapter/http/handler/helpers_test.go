package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/iho/glkernel/internal/adapter/http/dto"
	"github.com/iho/glkernel/internal/domain"
)

func TestMapDomainError(t *testing.T) {
	notOpen := fmt.Errorf("%w: %w", domain.ErrPeriodNotOpen,
		domain.NewValidationError(domain.CategoryOutOfRange, nil, "period is soft_close"))

	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"validation", domain.NewValidationError(domain.CategorySign, nil, "negative"), http.StatusUnprocessableEntity},
		{"period not open wins over validation", notOpen, http.StatusConflict},
		{"inactive ledger", fmt.Errorf("ledger l1: %w", domain.ErrLedgerInactive), http.StatusConflict},
		{"event not found", domain.ErrEventNotFound, http.StatusNotFound},
		{"mapping not found", domain.ErrMappingNotFound, http.StatusNotFound},
		{"sequence not found", fmt.Errorf("wrapped: %w", domain.ErrSequenceNotFound), http.StatusNotFound},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mapDomainError(tt.err); got != tt.expected {
				t.Fatalf("expected %d, got %d", tt.expected, got)
			}
		})
	}
}

func TestWriteDomainErrorCarriesCategory(t *testing.T) {
	rr := httptest.NewRecorder()
	err := domain.NewValidationError(domain.CategoryIdentity, map[string]any{"ruleIndex": float64(0)}, "same account")

	writeDomainError(rr, "failed", err)

	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rr.Code)
	}

	var resp dto.ErrorResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}
	if resp.Category != "identity" || resp.Context["ruleIndex"] != float64(0) {
		t.Fatalf("unexpected error response: %+v", resp)
	}
}

func TestWriteJSON(t *testing.T) {
	rr := httptest.NewRecorder()
	payload := map[string]string{"status": "ok"}

	writeJSON(rr, http.StatusCreated, payload)

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", rr.Code)
	}

	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("expected content-type application/json, got %s", ct)
	}

	var decoded map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if decoded["status"] != "ok" {
		t.Fatalf("expected payload to round-trip, got %+v", decoded)
	}
}

func TestWriteError(t *testing.T) {
	rr := httptest.NewRecorder()

	writeError(rr, http.StatusBadRequest, "bad request", "detail")

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}

	var resp dto.ErrorResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}

	if resp.Error != "bad request" {
		t.Fatalf("expected error message to propagate, got %+v", resp)
	}
}
