package usecase

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/iho/glkernel/internal/domain"
	"github.com/iho/glkernel/internal/infrastructure/metrics"
	"github.com/iho/glkernel/internal/kernel"
)

// PeriodUseCase opens and closes posting periods.
type PeriodUseCase struct {
	txManager TransactionManager
	ledgers   LedgerReader
	periods   PeriodRepository
	commands  commandWriter
	observe   observer
	metrics   *metrics.Metrics
	retrier   Retrier
}

// NewPeriodUseCase creates a new PeriodUseCase.
func NewPeriodUseCase(
	txManager TransactionManager,
	ledgers LedgerReader,
	periods PeriodRepository,
	outbox CommandOutbox,
	idGen IDGenerator,
	logger zerolog.Logger,
	m *metrics.Metrics,
) *PeriodUseCase {
	logger = logger.With().Str("usecase", "period").Logger()
	return &PeriodUseCase{
		txManager: txManager,
		ledgers:   ledgers,
		periods:   periods,
		commands:  commandWriter{outbox: outbox, idGen: idGen, metrics: m, logger: logger},
		observe:   observer{metrics: m, logger: logger},
		metrics:   m,
	}
}

// WithRetrier retries period transactions on transient database errors.
func (uc *PeriodUseCase) WithRetrier(r Retrier) *PeriodUseCase {
	uc.retrier = r
	return uc
}

// OpenPeriodInput describes a period to open.
type OpenPeriodInput struct {
	LedgerID  string
	PeriodKey string
	StartDate string
	EndDate   string
}

// PeriodOutput is a period after a lifecycle operation.
type PeriodOutput struct {
	Period *domain.PostingPeriod `json:"period"`
	CommandResult
}

// OpenPeriod checks the proposed range against the ledger's existing periods
// and creates it. The check and insert run under a per-ledger lock in one
// transaction, so concurrent opens cannot both pass the overlap check.
func (uc *PeriodUseCase) OpenPeriod(ctx context.Context, input OpenPeriodInput) (*PeriodOutput, error) {
	const op = "period_open"
	defer uc.observe.time(op)()

	ledger, err := uc.activeLedger(ctx, input.LedgerID)
	if err != nil {
		return nil, uc.observe.fail(op, err)
	}

	proposed := domain.PostingPeriod{
		PeriodKey: input.PeriodKey,
		LedgerID:  ledger.LedgerID,
		CompanyID: ledger.CompanyID,
		StartDate: input.StartDate,
		EndDate:   input.EndDate,
		Status:    domain.PeriodStatusOpen,
	}

	var out *PeriodOutput
	err = inTx(ctx, uc.txManager, uc.retrier, func(ctx context.Context, tx Transaction) error {
		if err := uc.periods.LockLedger(ctx, tx, ledger.LedgerID, ledger.CompanyID); err != nil {
			return fmt.Errorf("lock ledger %s: %w", ledger.LedgerID, err)
		}

		existing, err := uc.periods.ListPeriodsTx(ctx, tx, ledger.LedgerID, ledger.CompanyID)
		if err != nil {
			return fmt.Errorf("list periods: %w", err)
		}

		if err := kernel.ValidatePeriodOverlap(proposed, existing); err != nil {
			return err
		}

		if err := uc.periods.Create(ctx, tx, &proposed); err != nil {
			return fmt.Errorf("create period %s: %w", proposed.PeriodKey, err)
		}

		res, err := uc.commands.enqueue(ctx, tx, commandDraft{
			Type:          domain.CommandPeriodOpen,
			AggregateType: domain.AggregateTypePeriod,
			AggregateID:   ledger.LedgerID + "/" + proposed.PeriodKey,
			Identity: map[string]any{
				"ledgerId":  ledger.LedgerID,
				"companyId": ledger.CompanyID,
				"periodKey": proposed.PeriodKey,
			},
			Payload: map[string]any{
				"startDate": proposed.StartDate,
				"endDate":   proposed.EndDate,
			},
		})
		if err != nil {
			return err
		}

		out = &PeriodOutput{Period: &proposed, CommandResult: *res}
		return nil
	})
	if err != nil {
		return nil, uc.observe.fail(op, err)
	}

	uc.recordTransition(domain.PeriodStatusOpen)
	return out, nil
}

// ClosePeriodInput selects a period and the close to apply.
type ClosePeriodInput struct {
	LedgerID  string
	PeriodKey string
	CloseType domain.CloseType
}

// ClosePeriod soft- or hard-closes a period. Status never moves backwards.
func (uc *PeriodUseCase) ClosePeriod(ctx context.Context, input ClosePeriodInput) (*PeriodOutput, error) {
	const op = "period_close"
	defer uc.observe.time(op)()

	if !input.CloseType.IsValid() {
		return nil, uc.observe.fail(op, domain.NewValidationError(domain.CategoryOutOfRange,
			map[string]any{"closeType": string(input.CloseType)},
			"unknown close type %q", input.CloseType))
	}

	ledger, err := uc.activeLedger(ctx, input.LedgerID)
	if err != nil {
		return nil, uc.observe.fail(op, err)
	}

	var out *PeriodOutput
	err = inTx(ctx, uc.txManager, uc.retrier, func(ctx context.Context, tx Transaction) error {
		current, err := uc.periods.GetPeriodForUpdate(ctx, tx, ledger.LedgerID, input.PeriodKey)
		if err != nil {
			return fmt.Errorf("load period %s: %w", input.PeriodKey, err)
		}

		closed, err := kernel.ClosePeriod(*current, input.CloseType)
		if err != nil {
			return err
		}

		if err := uc.periods.UpdateStatus(ctx, tx, ledger.LedgerID, input.PeriodKey, closed.Status); err != nil {
			return fmt.Errorf("update period %s: %w", input.PeriodKey, err)
		}

		res, err := uc.commands.enqueue(ctx, tx, commandDraft{
			Type:          domain.CommandPeriodClose,
			AggregateType: domain.AggregateTypePeriod,
			AggregateID:   ledger.LedgerID + "/" + input.PeriodKey,
			Identity: map[string]any{
				"ledgerId":  ledger.LedgerID,
				"companyId": ledger.CompanyID,
				"periodKey": input.PeriodKey,
				"closeType": string(input.CloseType),
			},
			Payload: map[string]any{
				"previousStatus": string(current.Status),
				"status":         string(closed.Status),
			},
		})
		if err != nil {
			return err
		}

		out = &PeriodOutput{Period: &closed, CommandResult: *res}
		return nil
	})
	if err != nil {
		return nil, uc.observe.fail(op, err)
	}

	uc.recordTransition(out.Period.Status)
	return out, nil
}

// ListPeriods returns the periods of a ledger ordered by start date.
func (uc *PeriodUseCase) ListPeriods(ctx context.Context, ledgerID string) ([]domain.PostingPeriod, error) {
	if err := domain.ValidateIdentifier("ledgerId", ledgerID); err != nil {
		return nil, err
	}
	return uc.periods.List(ctx, ledgerID)
}

// CheckPosting reports whether postings into periodKey are allowed.
func (uc *PeriodUseCase) CheckPosting(ctx context.Context, ledgerID, periodKey string) (*domain.PostingPeriod, error) {
	return openPeriod(ctx, uc.ledgers, uc.periods, ledgerID, periodKey)
}

func (uc *PeriodUseCase) activeLedger(ctx context.Context, ledgerID string) (*domain.Ledger, error) {
	return activeLedger(ctx, uc.ledgers, ledgerID)
}

func (uc *PeriodUseCase) recordTransition(status domain.PeriodStatus) {
	if uc.metrics != nil {
		uc.metrics.PeriodTransitions.WithLabelValues(string(status)).Inc()
	}
}

func activeLedger(ctx context.Context, ledgers LedgerReader, ledgerID string) (*domain.Ledger, error) {
	if err := domain.ValidateIdentifier("ledgerId", ledgerID); err != nil {
		return nil, err
	}

	ledger, err := ledgers.GetLedger(ctx, ledgerID)
	if err != nil {
		return nil, fmt.Errorf("load ledger %s: %w", ledgerID, err)
	}

	if !ledger.IsActive {
		return nil, fmt.Errorf("ledger %s: %w", ledgerID, domain.ErrLedgerInactive)
	}

	return ledger, nil
}

// openPeriod loads a period of an active ledger and fails unless it is open.
func openPeriod(ctx context.Context, ledgers LedgerReader, periods PeriodRepository, ledgerID, periodKey string) (*domain.PostingPeriod, error) {
	if _, err := activeLedger(ctx, ledgers, ledgerID); err != nil {
		return nil, err
	}

	if err := domain.ValidateIdentifier("periodKey", periodKey); err != nil {
		return nil, err
	}

	period, err := periods.GetPeriod(ctx, ledgerID, periodKey)
	if err != nil {
		return nil, fmt.Errorf("load period %s: %w", periodKey, err)
	}

	if err := kernel.CheckPostingAllowed(*period); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrPeriodNotOpen, err)
	}

	return period, nil
}
