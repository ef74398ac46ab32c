package usecase

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/iho/glkernel/internal/domain"
	"github.com/iho/glkernel/internal/infrastructure/metrics"
	"github.com/iho/glkernel/internal/kernel"
)

// JournalUseCase runs reclassification, allocation and accrual journals
// into open periods.
type JournalUseCase struct {
	txManager TransactionManager
	ledgers   LedgerReader
	periods   PeriodRepository
	commands  commandWriter
	observe   observer
	retrier   Retrier
}

// NewJournalUseCase creates a new JournalUseCase.
func NewJournalUseCase(
	txManager TransactionManager,
	ledgers LedgerReader,
	periods PeriodRepository,
	outbox CommandOutbox,
	idGen IDGenerator,
	logger zerolog.Logger,
	m *metrics.Metrics,
) *JournalUseCase {
	logger = logger.With().Str("usecase", "journal").Logger()
	return &JournalUseCase{
		txManager: txManager,
		ledgers:   ledgers,
		periods:   periods,
		commands:  commandWriter{outbox: outbox, idGen: idGen, metrics: m, logger: logger},
		observe:   observer{metrics: m, logger: logger},
	}
}

// WithRetrier retries the enqueue transaction on transient database errors.
func (uc *JournalUseCase) WithRetrier(r Retrier) *JournalUseCase {
	uc.retrier = r
	return uc
}

// ReclassInput moves balances between accounts within one period.
type ReclassInput struct {
	LedgerID  string
	PeriodKey string
	Entries   []kernel.ReclassEntry
}

// RunReclass enqueues gl.reclass.run for the entries.
func (uc *JournalUseCase) RunReclass(ctx context.Context, input ReclassInput) (*CommandResult, error) {
	const op = "reclass_run"
	defer uc.observe.time(op)()

	period, err := openPeriod(ctx, uc.ledgers, uc.periods, input.LedgerID, input.PeriodKey)
	if err != nil {
		return nil, uc.observe.fail(op, err)
	}

	lines, err := kernel.ComputeReclassLines(input.Entries)
	if err != nil {
		return nil, uc.observe.fail(op, err)
	}

	hash, err := entriesHash(input.Entries)
	if err != nil {
		return nil, fmt.Errorf("hash reclass entries: %w", err)
	}

	return uc.run(ctx, op, period, lines, commandDraft{
		Type:          domain.CommandReclassRun,
		AggregateType: domain.AggregateTypeLedger,
		AggregateID:   input.LedgerID,
		Identity: map[string]any{
			"ledgerId":    input.LedgerID,
			"periodKey":   input.PeriodKey,
			"entriesHash": hash,
		},
		Payload: journalPayload(period, lines),
	})
}

// AllocationInput spreads a source balance over weighted targets.
type AllocationInput struct {
	LedgerID        string
	PeriodKey       string
	SourceAccountID string
	TotalMinor      int64
	Targets         []kernel.AllocationTarget
}

// AllocationOutput carries the computed shares next to the command.
type AllocationOutput struct {
	CommandResult
	Shares []kernel.AllocationShare `json:"shares"`
}

// RunAllocation enqueues gl.allocation.run for the allocation.
func (uc *JournalUseCase) RunAllocation(ctx context.Context, input AllocationInput) (*AllocationOutput, error) {
	const op = "allocation_run"
	defer uc.observe.time(op)()

	period, err := openPeriod(ctx, uc.ledgers, uc.periods, input.LedgerID, input.PeriodKey)
	if err != nil {
		return nil, uc.observe.fail(op, err)
	}

	lines, shares, err := kernel.AllocationLines(input.SourceAccountID, input.TotalMinor, input.Targets)
	if err != nil {
		return nil, uc.observe.fail(op, err)
	}

	hash, err := targetsHash(input.Targets)
	if err != nil {
		return nil, fmt.Errorf("hash allocation targets: %w", err)
	}

	res, err := uc.run(ctx, op, period, lines, commandDraft{
		Type:          domain.CommandAllocationRun,
		AggregateType: domain.AggregateTypeLedger,
		AggregateID:   input.LedgerID,
		Identity: map[string]any{
			"ledgerId":        input.LedgerID,
			"periodKey":       input.PeriodKey,
			"sourceAccountId": input.SourceAccountID,
			"totalMinor":      input.TotalMinor,
			"targetsHash":     hash,
		},
		Payload: journalPayload(period, lines),
	})
	if err != nil {
		return nil, err
	}

	return &AllocationOutput{CommandResult: *res, Shares: shares}, nil
}

// AccrualInput recognises one period of a straight-line accrual.
type AccrualInput struct {
	LedgerID  string
	PeriodKey string
	kernel.AccrualInput
}

// AccrualOutput carries the recognised amount next to the command.
type AccrualOutput struct {
	CommandResult
	PeriodAmountMinor int64 `json:"periodAmountMinor"`
}

// RunAccrual enqueues gl.accrual.run. A period whose share rounds to zero
// still enqueues a command, with no lines.
func (uc *JournalUseCase) RunAccrual(ctx context.Context, input AccrualInput) (*AccrualOutput, error) {
	const op = "accrual_run"
	defer uc.observe.time(op)()

	period, err := openPeriod(ctx, uc.ledgers, uc.periods, input.LedgerID, input.PeriodKey)
	if err != nil {
		return nil, uc.observe.fail(op, err)
	}

	accrual, err := kernel.ComputeAccrualLines(input.AccrualInput)
	if err != nil {
		return nil, uc.observe.fail(op, err)
	}

	payload := journalPayload(period, accrual.Lines)
	payload["periodAmountMinor"] = accrual.PeriodAmountMinor

	res, err := uc.run(ctx, op, period, accrual.Lines, commandDraft{
		Type:          domain.CommandAccrualRun,
		AggregateType: domain.AggregateTypeLedger,
		AggregateID:   input.LedgerID,
		Identity: map[string]any{
			"ledgerId":           input.LedgerID,
			"periodKey":          input.PeriodKey,
			"expenseAccountId":   input.ExpenseAccountID,
			"liabilityAccountId": input.LiabilityAccountID,
			"totalMinor":         input.TotalMinor,
			"totalPeriods":       input.TotalPeriods,
			"currentPeriod":      input.CurrentPeriod,
		},
		Payload: payload,
	})
	if err != nil {
		return nil, err
	}

	return &AccrualOutput{CommandResult: *res, PeriodAmountMinor: accrual.PeriodAmountMinor}, nil
}

// run enqueues the command while holding a share lock on the period row, so
// a close that commits first is seen here and a close that starts later
// waits for the enqueue.
func (uc *JournalUseCase) run(ctx context.Context, op string, period *domain.PostingPeriod, lines []domain.DerivedJournalLine, draft commandDraft) (*CommandResult, error) {
	var res *CommandResult
	err := inTx(ctx, uc.txManager, uc.retrier, func(ctx context.Context, tx Transaction) error {
		locked, err := uc.periods.GetPeriodForShare(ctx, tx, period.LedgerID, period.PeriodKey)
		if err != nil {
			return fmt.Errorf("lock period %s: %w", period.PeriodKey, err)
		}
		if err := kernel.CheckPostingAllowed(*locked); err != nil {
			return fmt.Errorf("%w: %w", domain.ErrPeriodNotOpen, err)
		}

		res, err = uc.commands.enqueue(ctx, tx, draft)
		return err
	})
	if err != nil {
		return nil, uc.observe.fail(op, err)
	}

	res.Lines = lines
	return res, nil
}

// journalPayload posts on the period end date.
func journalPayload(period *domain.PostingPeriod, lines []domain.DerivedJournalLine) map[string]any {
	debit, credit := domain.SumLines(lines)
	return map[string]any{
		"postingDate":      period.EndDate,
		"lines":            linesPayload(lines),
		"totalDebitMinor":  debit,
		"totalCreditMinor": credit,
	}
}
