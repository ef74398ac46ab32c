package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/iho/glkernel/internal/domain"
	"github.com/iho/glkernel/internal/infrastructure/metrics"
	"github.com/iho/glkernel/internal/kernel"
	"github.com/iho/glkernel/internal/kernel/fingerprint"
)

// CommandResult is returned by operations that enqueue a command.
// Duplicate is true when an identical command was already in the outbox;
// Command is then the original record.
type CommandResult struct {
	Command   *domain.Command             `json:"command"`
	Duplicate bool                        `json:"duplicate"`
	Lines     []domain.DerivedJournalLine `json:"lines,omitempty"`
}

type commandDraft struct {
	Type          domain.CommandType
	AggregateType string
	AggregateID   string
	Identity      map[string]any
	Payload       map[string]any
}

// buildCommand derives the idempotency key from the draft identity. The
// identity fields are copied into the payload so consumers can read them.
func buildCommand(idGen IDGenerator, d commandDraft, now time.Time) (*domain.Command, error) {
	key, err := fingerprint.IdempotencyKey(string(d.Type), d.Identity)
	if err != nil {
		return nil, fmt.Errorf("idempotency key for %s: %w", d.Type, err)
	}

	payload := make(map[string]any, len(d.Identity)+len(d.Payload))
	for k, v := range d.Payload {
		payload[k] = v
	}
	for k, v := range d.Identity {
		payload[k] = v
	}

	return &domain.Command{
		ID:             idGen.Generate(),
		IdempotencyKey: key,
		Type:           d.Type,
		AggregateType:  d.AggregateType,
		AggregateID:    d.AggregateID,
		Payload:        payload,
		CreatedAt:      now,
	}, nil
}

// commandWriter enqueues commands and keeps the outbox metrics.
type commandWriter struct {
	outbox  CommandOutbox
	idGen   IDGenerator
	metrics *metrics.Metrics
	logger  zerolog.Logger
}

func (w commandWriter) enqueue(ctx context.Context, tx Transaction, d commandDraft) (*CommandResult, error) {
	cmd, err := buildCommand(w.idGen, d, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	inserted, err := w.outbox.Enqueue(ctx, tx, cmd)
	if err != nil {
		return nil, fmt.Errorf("enqueue %s: %w", cmd.Type, err)
	}

	if inserted {
		if w.metrics != nil {
			w.metrics.CommandsEnqueued.WithLabelValues(string(cmd.Type)).Inc()
		}
		w.logger.Info().
			Str("command_id", cmd.ID).
			Str("command_type", string(cmd.Type)).
			Str("idempotency_key", cmd.IdempotencyKey).
			Msg("command enqueued")
		return &CommandResult{Command: cmd}, nil
	}

	if w.metrics != nil {
		w.metrics.CommandsDuplicate.WithLabelValues(string(cmd.Type)).Inc()
	}
	w.logger.Info().
		Str("command_type", string(cmd.Type)).
		Str("idempotency_key", cmd.IdempotencyKey).
		Msg("duplicate command collapsed")

	if existing, err := w.outbox.GetByIdempotencyKey(ctx, cmd.IdempotencyKey); err == nil && existing != nil {
		cmd = existing
	}

	return &CommandResult{Command: cmd, Duplicate: true}, nil
}

// observer records validation failures and timings for a use case.
type observer struct {
	metrics *metrics.Metrics
	logger  zerolog.Logger
}

func (o observer) fail(operation string, err error) error {
	if verr, ok := domain.AsValidationError(err); ok {
		if o.metrics != nil {
			o.metrics.ValidationFailures.WithLabelValues(operation, string(verr.Category)).Inc()
		}
		o.logger.Debug().
			Str("operation", operation).
			Str("category", string(verr.Category)).
			Interface("context", verr.Context).
			Msg(verr.Message)
		return err
	}

	o.logger.Error().Err(err).Str("operation", operation).Msg("operation failed")
	return err
}

func (o observer) time(operation string) func() {
	start := time.Now()
	return func() {
		if o.metrics != nil {
			o.metrics.KernelDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
		}
	}
}

// inTx runs fn inside a transaction with the default timeout, retrying the
// whole unit when retrier is set.
func inTx(ctx context.Context, txManager TransactionManager, retrier Retrier, fn func(ctx context.Context, tx Transaction) error) error {
	attempt := func() error {
		txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
		defer cancel()

		tx, err := txManager.Begin(txCtx)
		if err != nil {
			return err
		}
		defer func() { _ = tx.Rollback(txCtx) }()

		if err := fn(txCtx, tx); err != nil {
			return err
		}

		return tx.Commit(txCtx)
	}

	if retrier == nil {
		return attempt()
	}
	return retrier.Retry(ctx, attempt)
}

func linesPayload(lines []domain.DerivedJournalLine) []any {
	out := make([]any, len(lines))
	for i, l := range lines {
		out[i] = map[string]any{
			"accountId":   l.AccountID,
			"side":        string(l.Side),
			"amountMinor": l.AmountMinor,
		}
	}
	return out
}

func rulesHash(rules []domain.MappingRule) (string, error) {
	items := make([]any, len(rules))
	for i, r := range rules {
		items[i] = map[string]any{
			"creditAccountId": r.CreditAccountID,
			"debitAccountId":  r.DebitAccountID,
			"description":     r.Description,
			"fraction":        r.Fraction,
		}
	}
	return fingerprint.HashValue(items)
}

func entriesHash(entries []kernel.ReclassEntry) (string, error) {
	items := make([]any, len(entries))
	for i, e := range entries {
		items[i] = map[string]any{
			"amountMinor":   e.AmountMinor,
			"fromAccountId": e.FromAccountID,
			"toAccountId":   e.ToAccountID,
		}
	}
	return fingerprint.HashValue(items)
}

func targetsHash(targets []kernel.AllocationTarget) (string, error) {
	items := make([]any, len(targets))
	for i, t := range targets {
		items[i] = map[string]any{
			"accountId": t.AccountID,
			"weight":    t.Weight,
		}
	}
	return fingerprint.HashValue(items)
}

func accountsHash(accounts []domain.AccountNode) (string, error) {
	items := make([]any, len(accounts))
	for i, a := range accounts {
		items[i] = map[string]any{
			"accountCode":     a.AccountCode,
			"accountType":     string(a.AccountType),
			"id":              a.ID,
			"isPostable":      a.IsPostable,
			"normalBalance":   string(a.NormalBalance),
			"parentAccountId": a.ParentAccountID,
		}
	}
	return fingerprint.HashValue(items)
}
