package usecase

import (
	"context"
	"fmt"

	"github.com/iho/glkernel/internal/domain"
	"github.com/iho/glkernel/internal/kernel"
)

// ReportUseCase builds ledger reports from posted lines.
type ReportUseCase struct {
	ledgers LedgerReader
	lines   PostedLineReader
}

// NewReportUseCase creates a new ReportUseCase.
func NewReportUseCase(ledgers LedgerReader, lines PostedLineReader) *ReportUseCase {
	return &ReportUseCase{ledgers: ledgers, lines: lines}
}

// TrialBalance is the aggregated report for one ledger.
type TrialBalance struct {
	LedgerID         string                   `json:"ledgerId"`
	AsOf             string                   `json:"asOf,omitempty"`
	Rows             []domain.TrialBalanceRow `json:"rows"`
	TotalDebitMinor  int64                    `json:"totalDebitMinor"`
	TotalCreditMinor int64                    `json:"totalCreditMinor"`
	Balanced         bool                     `json:"balanced"`
}

// TrialBalance aggregates the ledger's posted lines up to asOf. An empty asOf
// includes every line.
func (uc *ReportUseCase) TrialBalance(ctx context.Context, ledgerID, asOf string) (*TrialBalance, error) {
	if err := domain.ValidateIdentifier("ledgerId", ledgerID); err != nil {
		return nil, err
	}

	if asOf != "" {
		if err := domain.ValidateDate("asOf", asOf); err != nil {
			return nil, err
		}
	}

	if _, err := uc.ledgers.GetLedger(ctx, ledgerID); err != nil {
		return nil, fmt.Errorf("load ledger %s: %w", ledgerID, err)
	}

	lines, err := uc.lines.ListPostedLines(ctx, ledgerID, asOf)
	if err != nil {
		return nil, fmt.Errorf("list posted lines: %w", err)
	}

	rows := kernel.AggregateTrialBalance(lines, asOf)
	debit, credit, balanced := kernel.TrialBalanceTotals(rows)

	return &TrialBalance{
		LedgerID:         ledgerID,
		AsOf:             asOf,
		Rows:             rows,
		TotalDebitMinor:  debit,
		TotalCreditMinor: credit,
		Balanced:         balanced,
	}, nil
}
