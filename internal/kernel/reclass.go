package kernel

import "github.com/iho/glkernel/internal/domain"

// ReclassEntry moves AmountMinor from one account to another.
type ReclassEntry struct {
	FromAccountID string `json:"fromAccountId"`
	ToAccountID   string `json:"toAccountId"`
	AmountMinor   int64  `json:"amountMinor"`
	Memo          string `json:"memo,omitempty"`
}

// ComputeReclassLines credits each source and debits each destination.
// Every entry is validated before any line is built.
func ComputeReclassLines(entries []ReclassEntry) ([]domain.DerivedJournalLine, error) {
	if len(entries) == 0 {
		return nil, domain.NewValidationError(domain.CategoryEmptyInput, nil, "reclassification requires at least one entry")
	}

	for i, e := range entries {
		if e.FromAccountID == "" || e.ToAccountID == "" {
			return nil, domain.NewValidationError(domain.CategoryEmptyInput,
				map[string]any{"entryIndex": i},
				"reclass entry %d must name both accounts", i)
		}

		if e.AmountMinor <= 0 {
			return nil, domain.NewValidationError(domain.CategorySign,
				map[string]any{"entryIndex": i, "fromAccountId": e.FromAccountID, "amountMinor": e.AmountMinor},
				"reclass entry %d from %s has non-positive amount %d", i, e.FromAccountID, e.AmountMinor)
		}

		if e.FromAccountID == e.ToAccountID {
			return nil, domain.NewValidationError(domain.CategoryIdentity,
				map[string]any{"entryIndex": i, "accountId": e.FromAccountID},
				"reclass entry %d moves %d from %s to itself", i, e.AmountMinor, e.FromAccountID)
		}
	}

	lines := make([]domain.DerivedJournalLine, 0, len(entries)*2)
	for _, e := range entries {
		lines = append(lines,
			domain.DerivedJournalLine{AccountID: e.FromAccountID, Side: domain.SideCredit, AmountMinor: e.AmountMinor},
			domain.DerivedJournalLine{AccountID: e.ToAccountID, Side: domain.SideDebit, AmountMinor: e.AmountMinor},
		)
	}

	return lines, nil
}
