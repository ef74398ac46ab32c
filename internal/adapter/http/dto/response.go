package dto

import (
	"time"

	"github.com/iho/glkernel/internal/domain"
	"github.com/iho/glkernel/internal/kernel"
	"github.com/iho/glkernel/internal/usecase"
)

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error    string         `json:"error"`
	Message  string         `json:"message,omitempty"`
	Category string         `json:"category,omitempty"`
	Context  map[string]any `json:"context,omitempty"`
}

// CommandResponse represents an outbox command in API responses.
type CommandResponse struct {
	ID             string         `json:"id"`
	IdempotencyKey string         `json:"idempotencyKey"`
	Type           string         `json:"type"`
	AggregateType  string         `json:"aggregateType"`
	AggregateID    string         `json:"aggregateId"`
	Payload        map[string]any `json:"payload"`
	CreatedAt      time.Time      `json:"createdAt"`
	Published      bool           `json:"published"`
	PublishedAt    *time.Time     `json:"publishedAt,omitempty"`
}

// CommandFromDomain converts a domain command to response.
func CommandFromDomain(c *domain.Command) *CommandResponse {
	if c == nil {
		return nil
	}
	return &CommandResponse{
		ID:             c.ID,
		IdempotencyKey: c.IdempotencyKey,
		Type:           string(c.Type),
		AggregateType:  c.AggregateType,
		AggregateID:    c.AggregateID,
		Payload:        c.Payload,
		CreatedAt:      c.CreatedAt,
		Published:      c.Published,
		PublishedAt:    c.PublishedAt,
	}
}

// CommandResultResponse is an enqueued command and the lines it carries.
type CommandResultResponse struct {
	Command   *CommandResponse            `json:"command"`
	Duplicate bool                        `json:"duplicate"`
	Lines     []domain.DerivedJournalLine `json:"lines,omitempty"`
}

// CommandResultFromUseCase converts a use case command result to response.
func CommandResultFromUseCase(r usecase.CommandResult) CommandResultResponse {
	return CommandResultResponse{
		Command:   CommandFromDomain(r.Command),
		Duplicate: r.Duplicate,
		Lines:     r.Lines,
	}
}

// DeriveResponse is the outcome of deriving a stored event.
type DeriveResponse struct {
	Result         *domain.DerivationResult `json:"result"`
	EventType      string                   `json:"eventType"`
	MappingVersion int64                    `json:"mappingVersion"`
	Command        *CommandResponse         `json:"command"`
	Duplicate      bool                     `json:"duplicate"`
}

// DeriveFromUseCase converts derive output to response.
func DeriveFromUseCase(out *usecase.DeriveOutput) *DeriveResponse {
	return &DeriveResponse{
		Result:         out.Result,
		EventType:      out.EventType,
		MappingVersion: out.MappingVersion,
		Command:        CommandFromDomain(out.Command),
		Duplicate:      out.Duplicate,
	}
}

// MappingResponse is a published mapping version and its command.
type MappingResponse struct {
	Version *domain.MappingVersion `json:"version"`
	CommandResultResponse
}

// PeriodResponse is a period after a lifecycle operation.
type PeriodResponse struct {
	Period *domain.PostingPeriod `json:"period"`
	CommandResultResponse
}

// PeriodFromUseCase converts period output to response.
func PeriodFromUseCase(out *usecase.PeriodOutput) *PeriodResponse {
	return &PeriodResponse{
		Period:                out.Period,
		CommandResultResponse: CommandResultFromUseCase(out.CommandResult),
	}
}

// ListPeriodsResponse represents a list of posting periods.
type ListPeriodsResponse struct {
	Periods []domain.PostingPeriod `json:"periods"`
	Total   int                    `json:"total"`
}

// PostingCheckResponse reports whether a period accepts postings.
type PostingCheckResponse struct {
	Allowed bool                  `json:"allowed"`
	Period  *domain.PostingPeriod `json:"period,omitempty"`
	Reason  string                `json:"reason,omitempty"`
}

// AllocationResponse carries the computed shares next to the command.
type AllocationResponse struct {
	CommandResultResponse
	Shares []kernel.AllocationShare `json:"shares"`
}

// AccrualResponse carries the recognised amount next to the command.
type AccrualResponse struct {
	CommandResultResponse
	PeriodAmountMinor int64 `json:"periodAmountMinor"`
}

// CoAResponse is a validation report and, on publish, its command.
type CoAResponse struct {
	Report *kernel.CoaReport `json:"report"`
	*CommandResultResponse
}

// AccountsResponse represents a list of CoA nodes.
type AccountsResponse struct {
	Accounts []domain.AccountNode `json:"accounts"`
	Total    int                  `json:"total"`
}

// DimensionsResponse reports a successful dimension check.
type DimensionsResponse struct {
	Valid     bool `json:"valid"`
	LineCount int  `json:"lineCount"`
}
