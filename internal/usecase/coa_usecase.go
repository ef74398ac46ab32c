package usecase

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/iho/glkernel/internal/domain"
	"github.com/iho/glkernel/internal/infrastructure/metrics"
	"github.com/iho/glkernel/internal/kernel"
)

// CoAUseCase validates, publishes and navigates charts of accounts.
type CoAUseCase struct {
	txManager TransactionManager
	coa       CoARepository
	commands  commandWriter
	observe   observer
	retrier   Retrier
}

// NewCoAUseCase creates a new CoAUseCase.
func NewCoAUseCase(
	txManager TransactionManager,
	coa CoARepository,
	outbox CommandOutbox,
	idGen IDGenerator,
	logger zerolog.Logger,
	m *metrics.Metrics,
) *CoAUseCase {
	logger = logger.With().Str("usecase", "coa").Logger()
	return &CoAUseCase{
		txManager: txManager,
		coa:       coa,
		commands:  commandWriter{outbox: outbox, idGen: idGen, metrics: m, logger: logger},
		observe:   observer{metrics: m, logger: logger},
	}
}

// WithRetrier retries the publish transaction on transient database errors.
func (uc *CoAUseCase) WithRetrier(r Retrier) *CoAUseCase {
	uc.retrier = r
	return uc
}

// Validate checks the stored chart of accounts of a company.
func (uc *CoAUseCase) Validate(ctx context.Context, companyID string) (*kernel.CoaReport, error) {
	const op = "coa_validate"
	defer uc.observe.time(op)()

	accounts, err := uc.load(ctx, companyID)
	if err != nil {
		return nil, uc.observe.fail(op, err)
	}

	report, err := kernel.ValidateCoaIntegrity(accounts)
	if err != nil {
		return nil, uc.observe.fail(op, err)
	}
	return report, nil
}

// PublishCoAOutput is the validation report and the publish command.
type PublishCoAOutput struct {
	Report *kernel.CoaReport `json:"report"`
	CommandResult
}

// Publish validates accounts and replaces the company's chart with them.
func (uc *CoAUseCase) Publish(ctx context.Context, companyID string, accounts []domain.AccountNode) (*PublishCoAOutput, error) {
	const op = "coa_publish"
	defer uc.observe.time(op)()

	if err := domain.ValidateIdentifier("companyId", companyID); err != nil {
		return nil, uc.observe.fail(op, err)
	}

	for _, a := range accounts {
		if !a.AccountType.IsValid() {
			return nil, uc.observe.fail(op, domain.NewValidationError(domain.CategoryOutOfRange,
				map[string]any{"accountId": a.ID, "accountType": string(a.AccountType)},
				"account %s has unknown type %q", a.ID, a.AccountType))
		}
		if !a.NormalBalance.IsValid() {
			return nil, uc.observe.fail(op, domain.NewValidationError(domain.CategoryOutOfRange,
				map[string]any{"accountId": a.ID, "normalBalance": string(a.NormalBalance)},
				"account %s has unknown normal balance %q", a.ID, a.NormalBalance))
		}
	}

	report, err := kernel.ValidateCoaIntegrity(accounts)
	if err != nil {
		return nil, uc.observe.fail(op, err)
	}

	hash, err := accountsHash(accounts)
	if err != nil {
		return nil, fmt.Errorf("hash accounts: %w", err)
	}

	var out *PublishCoAOutput
	err = inTx(ctx, uc.txManager, uc.retrier, func(ctx context.Context, tx Transaction) error {
		if err := uc.coa.Replace(ctx, tx, companyID, accounts); err != nil {
			return fmt.Errorf("replace chart of accounts: %w", err)
		}

		res, err := uc.commands.enqueue(ctx, tx, commandDraft{
			Type:          domain.CommandCoAPublish,
			AggregateType: domain.AggregateTypeCoA,
			AggregateID:   companyID,
			Identity: map[string]any{
				"companyId":    companyID,
				"accountsHash": hash,
			},
			Payload: map[string]any{
				"accountCount":  report.AccountCount,
				"rootCount":     report.RootCount,
				"postableCount": report.PostableCount,
			},
		})
		if err != nil {
			return err
		}

		out = &PublishCoAOutput{Report: report, CommandResult: *res}
		return nil
	})
	if err != nil {
		return nil, uc.observe.fail(op, err)
	}

	return out, nil
}

// Ancestors returns the chain from accountID to its root.
func (uc *CoAUseCase) Ancestors(ctx context.Context, companyID, accountID string) ([]domain.AccountNode, error) {
	accounts, err := uc.load(ctx, companyID)
	if err != nil {
		return nil, err
	}
	return kernel.GetAncestors(accountID, accounts)
}

// Subtree returns the descendants of rootID, or the whole forest for "".
func (uc *CoAUseCase) Subtree(ctx context.Context, companyID, rootID string) ([]domain.AccountNode, error) {
	accounts, err := uc.load(ctx, companyID)
	if err != nil {
		return nil, err
	}
	return kernel.GetSubtree(rootID, accounts), nil
}

func (uc *CoAUseCase) load(ctx context.Context, companyID string) ([]domain.AccountNode, error) {
	if err := domain.ValidateIdentifier("companyId", companyID); err != nil {
		return nil, err
	}

	accounts, err := uc.coa.GetChartOfAccounts(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("load chart of accounts for %s: %w", companyID, err)
	}
	return accounts, nil
}
