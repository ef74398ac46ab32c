package kernel

import (
	"github.com/shopspring/decimal"

	"github.com/iho/glkernel/internal/domain"
)

// AccrualInput describes one period of a straight-line accrual schedule.
type AccrualInput struct {
	ExpenseAccountID   string `json:"expenseAccountId"`
	LiabilityAccountID string `json:"liabilityAccountId"`
	TotalMinor         int64  `json:"totalMinor"`
	TotalPeriods       int    `json:"totalPeriods"`
	CurrentPeriod      int    `json:"currentPeriod"`
}

// AccrualResult is the amount recognised in the current period.
// Lines is empty when the period amount is zero. A negative amount on the
// final period reverses the over-accrual of the earlier periods.
type AccrualResult struct {
	CurrentPeriod     int                         `json:"currentPeriod"`
	PeriodAmountMinor int64                       `json:"periodAmountMinor"`
	Lines             []domain.DerivedJournalLine `json:"lines"`
}

// ComputeAccrualLines spreads TotalMinor evenly over TotalPeriods and returns
// the expense/liability pair for CurrentPeriod. The final period absorbs the
// rounding remainder, which is negative when the rounded per-period amount
// over-accrued; that period then posts the reversing pair.
func ComputeAccrualLines(in AccrualInput) (*AccrualResult, error) {
	if in.TotalPeriods <= 0 {
		return nil, domain.NewValidationError(domain.CategoryOutOfRange,
			map[string]any{"totalPeriods": in.TotalPeriods},
			"total periods %d must be positive", in.TotalPeriods)
	}

	if in.CurrentPeriod < 1 || in.CurrentPeriod > in.TotalPeriods {
		return nil, domain.NewValidationError(domain.CategoryOutOfRange,
			map[string]any{"currentPeriod": in.CurrentPeriod, "totalPeriods": in.TotalPeriods},
			"current period %d is outside 1..%d", in.CurrentPeriod, in.TotalPeriods)
	}

	if in.TotalMinor < 0 {
		return nil, domain.NewValidationError(domain.CategorySign,
			map[string]any{"totalMinor": in.TotalMinor},
			"accrual total %d must not be negative", in.TotalMinor)
	}

	if in.ExpenseAccountID == "" || in.LiabilityAccountID == "" {
		return nil, domain.NewValidationError(domain.CategoryEmptyInput, nil, "accrual requires expense and liability accounts")
	}

	if in.ExpenseAccountID == in.LiabilityAccountID {
		return nil, domain.NewValidationError(domain.CategoryIdentity,
			map[string]any{"accountId": in.ExpenseAccountID},
			"expense and liability account are both %s", in.ExpenseAccountID)
	}

	perPeriod := divRoundHalfUp(decimal.NewFromInt(in.TotalMinor), decimal.NewFromInt(int64(in.TotalPeriods)))

	amount := perPeriod
	if in.CurrentPeriod == in.TotalPeriods {
		amount = in.TotalMinor - perPeriod*int64(in.TotalPeriods-1)
	}

	result := &AccrualResult{
		CurrentPeriod:     in.CurrentPeriod,
		PeriodAmountMinor: amount,
		Lines:             []domain.DerivedJournalLine{},
	}

	switch {
	case amount > 0:
		result.Lines = append(result.Lines,
			domain.DerivedJournalLine{AccountID: in.ExpenseAccountID, Side: domain.SideDebit, AmountMinor: amount},
			domain.DerivedJournalLine{AccountID: in.LiabilityAccountID, Side: domain.SideCredit, AmountMinor: amount},
		)
	case amount < 0:
		result.Lines = append(result.Lines,
			domain.DerivedJournalLine{AccountID: in.LiabilityAccountID, Side: domain.SideDebit, AmountMinor: -amount},
			domain.DerivedJournalLine{AccountID: in.ExpenseAccountID, Side: domain.SideCredit, AmountMinor: -amount},
		)
	}

	return result, nil
}
