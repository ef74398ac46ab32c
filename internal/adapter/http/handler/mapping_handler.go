package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/glkernel/internal/adapter/http/dto"
	"github.com/iho/glkernel/internal/domain"
	"github.com/iho/glkernel/internal/usecase"
)

// MappingService defines the behavior needed by MappingHandler.
type MappingService interface {
	Publish(ctx context.Context, eventType string, rules []domain.MappingRule) (*usecase.PublishMappingOutput, error)
	Current(ctx context.Context, eventType string) (*domain.MappingVersion, error)
}

// MappingHandler handles mapping version requests.
type MappingHandler struct {
	mappingUC MappingService
}

// NewMappingHandler creates a new MappingHandler.
func NewMappingHandler(mappingUC MappingService) *MappingHandler {
	return &MappingHandler{mappingUC: mappingUC}
}

// Publish stores the next mapping version of an event type.
func (h *MappingHandler) Publish(w http.ResponseWriter, r *http.Request) {
	eventType := chi.URLParam(r, "eventType")

	var req dto.PublishMappingRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	out, err := h.mappingUC.Publish(r.Context(), eventType, req.ToDomain())
	if err != nil {
		writeDomainError(w, "failed to publish mapping", err)
		return
	}

	writeJSON(w, commandStatus(out.Duplicate), dto.MappingResponse{
		Version:               out.Version,
		CommandResultResponse: dto.CommandResultFromUseCase(out.CommandResult),
	})
}

// Current returns the current mapping version of an event type.
func (h *MappingHandler) Current(w http.ResponseWriter, r *http.Request) {
	version, err := h.mappingUC.Current(r.Context(), chi.URLParam(r, "eventType"))
	if err != nil {
		writeDomainError(w, "failed to get mapping", err)
		return
	}

	writeJSON(w, http.StatusOK, version)
}
