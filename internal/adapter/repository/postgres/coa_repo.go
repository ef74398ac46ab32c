package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/glkernel/internal/domain"
	"github.com/iho/glkernel/internal/usecase"
)

const (
	queryListAccounts = `
		SELECT id, account_code, account_type, parent_account_id, is_postable, normal_balance
		FROM accounts
		WHERE company_id = $1
		ORDER BY account_code, id`

	queryDeleteAccounts = `DELETE FROM accounts WHERE company_id = $1`
)

var accountCopyColumns = []string{
	"company_id",
	"id",
	"account_code",
	"account_type",
	"parent_account_id",
	"is_postable",
	"normal_balance",
}

// CoARepository implements usecase.CoARepository.
type CoARepository struct {
	db querier
}

// NewCoARepository creates a new CoARepository.
func NewCoARepository(pool *pgxpool.Pool) *CoARepository {
	return &CoARepository{db: pool}
}

// GetChartOfAccounts returns every account of a company.
func (r *CoARepository) GetChartOfAccounts(ctx context.Context, companyID string) ([]domain.AccountNode, error) {
	rows, err := r.db.Query(ctx, queryListAccounts, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []domain.AccountNode
	for rows.Next() {
		var (
			a             domain.AccountNode
			accountType   string
			normalBalance string
		)
		if err := rows.Scan(&a.ID, &a.AccountCode, &accountType, &a.ParentAccountID, &a.IsPostable, &normalBalance); err != nil {
			return nil, err
		}
		a.AccountType = domain.AccountType(accountType)
		a.NormalBalance = domain.Side(normalBalance)
		accounts = append(accounts, a)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(accounts) == 0 {
		return nil, domain.ErrCoANotFound
	}

	return accounts, nil
}

// Replace swaps the company's chart for accounts.
func (r *CoARepository) Replace(ctx context.Context, tx usecase.Transaction, companyID string, accounts []domain.AccountNode) error {
	q, err := pgxTx(tx)
	if err != nil {
		return err
	}

	if _, err := q.Exec(ctx, queryDeleteAccounts, companyID); err != nil {
		return fmt.Errorf("clear accounts of %s: %w", companyID, err)
	}

	copied, err := q.CopyFrom(ctx,
		pgx.Identifier{"accounts"},
		accountCopyColumns,
		pgx.CopyFromSlice(len(accounts), func(i int) ([]any, error) {
			a := accounts[i]
			return []any{companyID, a.ID, a.AccountCode, string(a.AccountType), a.ParentAccountID, a.IsPostable, string(a.NormalBalance)}, nil
		}),
	)
	if err != nil {
		return fmt.Errorf("copy accounts of %s: %w", companyID, err)
	}

	if copied != int64(len(accounts)) {
		return fmt.Errorf("copied %d of %d accounts", copied, len(accounts))
	}

	return nil
}
