package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/glkernel/internal/domain"
)

const queryGetLedger = `
	SELECT ledger_id, ledger_type, company_id, base_currency, is_active
	FROM ledgers
	WHERE ledger_id = $1`

// LedgerRepository implements usecase.LedgerReader.
type LedgerRepository struct {
	db querier
}

// NewLedgerRepository creates a new LedgerRepository.
func NewLedgerRepository(pool *pgxpool.Pool) *LedgerRepository {
	return &LedgerRepository{db: pool}
}

// GetLedger loads a ledger by ID.
func (r *LedgerRepository) GetLedger(ctx context.Context, ledgerID string) (*domain.Ledger, error) {
	var (
		ledger     domain.Ledger
		ledgerType string
	)

	err := r.db.QueryRow(ctx, queryGetLedger, ledgerID).Scan(
		&ledger.LedgerID,
		&ledgerType,
		&ledger.CompanyID,
		&ledger.BaseCurrency,
		&ledger.IsActive,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrLedgerNotFound
		}
		return nil, err
	}

	ledger.LedgerType = domain.LedgerType(ledgerType)
	return &ledger, nil
}
