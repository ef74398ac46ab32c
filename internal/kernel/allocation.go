package kernel

import (
	"github.com/shopspring/decimal"

	"github.com/iho/glkernel/internal/domain"
)

// AllocationTarget is one weighted recipient of an allocation.
type AllocationTarget struct {
	AccountID string          `json:"accountId"`
	Weight    decimal.Decimal `json:"weight"`
}

// AllocationShare is the amount assigned to one target.
type AllocationShare struct {
	AccountID   string `json:"accountId"`
	AmountMinor int64  `json:"amountMinor"`
}

// Allocate splits totalMinor across targets in proportion to their weights.
// The last target, in the order given, absorbs the rounding remainder so the
// shares always sum to totalMinor.
func Allocate(totalMinor int64, targets []AllocationTarget) ([]AllocationShare, error) {
	if len(targets) == 0 {
		return nil, domain.NewValidationError(domain.CategoryEmptyInput, nil, "allocation requires at least one target")
	}

	if totalMinor < 0 {
		return nil, domain.NewValidationError(domain.CategorySign,
			map[string]any{"totalMinor": totalMinor},
			"allocation total %d must not be negative", totalMinor)
	}

	totalWeight := decimal.Zero
	for i, target := range targets {
		if target.Weight.IsNegative() {
			return nil, domain.NewValidationError(domain.CategorySign,
				map[string]any{"targetIndex": i, "accountId": target.AccountID, "weight": target.Weight.String()},
				"target %s weight %s must not be negative", target.AccountID, target.Weight.String())
		}
		totalWeight = totalWeight.Add(target.Weight)
	}

	if !totalWeight.IsPositive() {
		return nil, domain.NewValidationError(domain.CategoryOutOfRange,
			map[string]any{"targetCount": len(targets)},
			"sum of allocation weights must be positive")
	}

	total := decimal.NewFromInt(totalMinor)
	shares := make([]AllocationShare, len(targets))

	var allocated int64
	last := len(targets) - 1
	for i, target := range targets[:last] {
		share := divRoundHalfUp(total.Mul(target.Weight), totalWeight)
		shares[i] = AllocationShare{AccountID: target.AccountID, AmountMinor: share}
		allocated += share
	}

	remainder := totalMinor - allocated
	shares[last] = AllocationShare{AccountID: targets[last].AccountID, AmountMinor: remainder}

	return shares, nil
}

// AllocationLines credits the source account for the total and debits each
// target with its non-zero share. A negative last share is posted as a credit
// to that target so every line amount stays positive.
func AllocationLines(sourceAccountID string, totalMinor int64, targets []AllocationTarget) ([]domain.DerivedJournalLine, []AllocationShare, error) {
	if sourceAccountID == "" {
		return nil, nil, domain.NewValidationError(domain.CategoryEmptyInput, nil, "allocation source account is required")
	}

	for i, target := range targets {
		if target.AccountID == sourceAccountID {
			return nil, nil, domain.NewValidationError(domain.CategoryIdentity,
				map[string]any{"targetIndex": i, "accountId": sourceAccountID},
				"allocation target %s is the source account", sourceAccountID)
		}
	}

	shares, err := Allocate(totalMinor, targets)
	if err != nil {
		return nil, nil, err
	}

	lines := make([]domain.DerivedJournalLine, 0, len(shares)+1)
	if totalMinor > 0 {
		lines = append(lines, domain.DerivedJournalLine{AccountID: sourceAccountID, Side: domain.SideCredit, AmountMinor: totalMinor})
	}
	for _, share := range shares {
		if share.AmountMinor == 0 {
			continue
		}
		if share.AmountMinor < 0 {
			lines = append(lines, domain.DerivedJournalLine{AccountID: share.AccountID, Side: domain.SideCredit, AmountMinor: -share.AmountMinor})
			continue
		}
		lines = append(lines, domain.DerivedJournalLine{AccountID: share.AccountID, Side: domain.SideDebit, AmountMinor: share.AmountMinor})
	}

	return lines, shares, nil
}
