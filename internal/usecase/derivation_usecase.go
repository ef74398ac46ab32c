package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/iho/glkernel/internal/domain"
	"github.com/iho/glkernel/internal/infrastructure/metrics"
	"github.com/iho/glkernel/internal/kernel"
)

// DerivationUseCase turns accounting events into derive.commit commands.
type DerivationUseCase struct {
	txManager TransactionManager
	events    EventReader
	mappings  MappingRepository
	commands  commandWriter
	observe   observer
	metrics   *metrics.Metrics
	retrier   Retrier
}

// NewDerivationUseCase creates a new DerivationUseCase.
func NewDerivationUseCase(
	txManager TransactionManager,
	events EventReader,
	mappings MappingRepository,
	outbox CommandOutbox,
	idGen IDGenerator,
	logger zerolog.Logger,
	m *metrics.Metrics,
) *DerivationUseCase {
	logger = logger.With().Str("usecase", "derivation").Logger()
	return &DerivationUseCase{
		txManager: txManager,
		events:    events,
		mappings:  mappings,
		commands:  commandWriter{outbox: outbox, idGen: idGen, metrics: m, logger: logger},
		observe:   observer{metrics: m, logger: logger},
		metrics:   m,
	}
}

// WithRetrier retries the enqueue transaction on transient database errors.
func (uc *DerivationUseCase) WithRetrier(r Retrier) *DerivationUseCase {
	uc.retrier = r
	return uc
}

// DeriveOutput is the derivation together with its outbox command.
type DeriveOutput struct {
	Result         *domain.DerivationResult `json:"result"`
	EventType      string                   `json:"eventType"`
	MappingVersion int64                    `json:"mappingVersion"`
	Command        *domain.Command          `json:"command"`
	Duplicate      bool                     `json:"duplicate"`
}

// Derive loads the event and the current mapping for its type, derives the
// journal and enqueues acct.derive.commit. Replaying the same event against
// the same mapping version reports Duplicate.
func (uc *DerivationUseCase) Derive(ctx context.Context, eventID string) (*DeriveOutput, error) {
	const op = "derive"
	defer uc.observe.time(op)()

	if err := domain.ValidateIdentifier("eventId", eventID); err != nil {
		return nil, uc.observe.fail(op, err)
	}

	event, err := uc.events.GetAccountingEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("load event %s: %w", eventID, err)
	}

	if err := domain.ValidateCurrency(event.CurrencyCode); err != nil {
		return nil, uc.observe.fail(op, err)
	}

	mapping, err := uc.mappings.GetCurrent(ctx, event.EventType)
	if err != nil {
		return nil, fmt.Errorf("load mapping for %s: %w", event.EventType, err)
	}

	result, err := kernel.Derive(kernel.DerivationInput{
		EventID:        event.EventID,
		AmountMinor:    event.AmountMinor,
		CurrencyCode:   event.CurrencyCode,
		MappingVersion: mapping.VersionNumber,
		Rules:          mapping.Rules,
	})
	if err != nil {
		return nil, uc.observe.fail(op, err)
	}

	draft := commandDraft{
		Type:          domain.CommandDeriveCommit,
		AggregateType: domain.AggregateTypeDerivation,
		AggregateID:   result.DerivationID,
		Identity:      map[string]any{"derivationId": result.DerivationID},
		Payload: map[string]any{
			"eventId":          event.EventID,
			"eventType":        event.EventType,
			"currencyCode":     event.CurrencyCode,
			"mappingVersion":   mapping.VersionNumber,
			"inputsHash":       result.InputsHash,
			"postingDate":      time.Now().UTC().Format(domain.DateLayout),
			"totalDebitMinor":  result.TotalDebitMinor,
			"totalCreditMinor": result.TotalCreditMinor,
			"lines":            linesPayload(result.JournalLines),
		},
	}

	var enqueued *CommandResult
	err = inTx(ctx, uc.txManager, uc.retrier, func(ctx context.Context, tx Transaction) error {
		enqueued, err = uc.commands.enqueue(ctx, tx, draft)
		return err
	})
	if err != nil {
		return nil, uc.observe.fail(op, err)
	}

	if uc.metrics != nil {
		outcome := "derived"
		if enqueued.Duplicate {
			outcome = "duplicate"
		}
		uc.metrics.Derivations.WithLabelValues(outcome).Inc()
		uc.metrics.SkippedRules.Add(float64(len(result.SkippedRules)))
		uc.metrics.DerivedLineAmount.Observe(float64(result.TotalDebitMinor))
	}

	return &DeriveOutput{
		Result:         result,
		EventType:      event.EventType,
		MappingVersion: mapping.VersionNumber,
		Command:        enqueued.Command,
		Duplicate:      enqueued.Duplicate,
	}, nil
}

// Preview runs the derivation without touching the outbox.
func (uc *DerivationUseCase) Preview(ctx context.Context, in kernel.DerivationInput) (*domain.DerivationResult, error) {
	const op = "derive_preview"
	defer uc.observe.time(op)()

	if in.CurrencyCode != "" {
		if err := domain.ValidateCurrency(in.CurrencyCode); err != nil {
			return nil, uc.observe.fail(op, err)
		}
	}

	result, err := kernel.Derive(in)
	if err != nil {
		return nil, uc.observe.fail(op, err)
	}
	return result, nil
}
