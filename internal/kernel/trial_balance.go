package kernel

import (
	"sort"

	"github.com/iho/glkernel/internal/domain"
)

// AggregateTrialBalance groups posted lines by account, sorted by account id.
// Lines dated after asOf are excluded; undated lines and an empty asOf
// include everything.
func AggregateTrialBalance(lines []domain.PostedLine, asOf string) []domain.TrialBalanceRow {
	byAccount := make(map[string]*domain.TrialBalanceRow)

	for _, line := range lines {
		if asOf != "" && line.PostingDate != "" && line.PostingDate > asOf {
			continue
		}

		row, ok := byAccount[line.AccountID]
		if !ok {
			row = &domain.TrialBalanceRow{AccountID: line.AccountID}
			byAccount[line.AccountID] = row
		}

		switch line.Side {
		case domain.SideDebit:
			row.DebitMinor += line.AmountMinor
		case domain.SideCredit:
			row.CreditMinor += line.AmountMinor
		}
	}

	rows := make([]domain.TrialBalanceRow, 0, len(byAccount))
	for _, row := range byAccount {
		row.NetMinor = row.DebitMinor - row.CreditMinor
		rows = append(rows, *row)
	}

	sort.Slice(rows, func(i, j int) bool {
		return rows[i].AccountID < rows[j].AccountID
	})

	return rows
}

// TrialBalanceTotals sums the rows and reports whether debits equal credits.
func TrialBalanceTotals(rows []domain.TrialBalanceRow) (debitMinor, creditMinor int64, balanced bool) {
	for _, row := range rows {
		debitMinor += row.DebitMinor
		creditMinor += row.CreditMinor
	}
	return debitMinor, creditMinor, debitMinor == creditMinor
}
