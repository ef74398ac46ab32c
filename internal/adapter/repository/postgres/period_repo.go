package postgres

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/glkernel/internal/domain"
	"github.com/iho/glkernel/internal/usecase"
)

var periodColumns = []string{
	"period_key",
	"ledger_id",
	"company_id",
	"to_char(start_date, 'YYYY-MM-DD')",
	"to_char(end_date, 'YYYY-MM-DD')",
	"status",
}

const (
	queryLockLedger = `SELECT pg_advisory_xact_lock(hashtext('period:' || $1 || '/' || $2))`

	queryInsertPeriod = `
		INSERT INTO posting_periods (ledger_id, period_key, company_id, start_date, end_date, status)
		VALUES ($1, $2, $3, $4::date, $5::date, $6)`

	queryUpdatePeriodStatus = `
		UPDATE posting_periods SET status = $3
		WHERE ledger_id = $1 AND period_key = $2`
)

// PeriodRepository implements usecase.PeriodRepository.
type PeriodRepository struct {
	db querier
}

// NewPeriodRepository creates a new PeriodRepository.
func NewPeriodRepository(pool *pgxpool.Pool) *PeriodRepository {
	return &PeriodRepository{db: pool}
}

func selectPeriods() sq.SelectBuilder {
	return sq.StatementBuilder.PlaceholderFormat(sq.Dollar).
		Select(periodColumns...).
		From("posting_periods")
}

// GetPeriod loads one period.
func (r *PeriodRepository) GetPeriod(ctx context.Context, ledgerID, periodKey string) (*domain.PostingPeriod, error) {
	return r.getPeriod(ctx, r.db, ledgerID, periodKey, "")
}

// GetPeriodForUpdate loads one period and locks its row.
func (r *PeriodRepository) GetPeriodForUpdate(ctx context.Context, tx usecase.Transaction, ledgerID, periodKey string) (*domain.PostingPeriod, error) {
	q, err := pgxTx(tx)
	if err != nil {
		return nil, err
	}
	return r.getPeriod(ctx, q, ledgerID, periodKey, "FOR UPDATE")
}

// GetPeriodForShare loads one period and holds a share lock on its row, so a
// concurrent status change waits for tx to finish.
func (r *PeriodRepository) GetPeriodForShare(ctx context.Context, tx usecase.Transaction, ledgerID, periodKey string) (*domain.PostingPeriod, error) {
	q, err := pgxTx(tx)
	if err != nil {
		return nil, err
	}
	return r.getPeriod(ctx, q, ledgerID, periodKey, "FOR SHARE")
}

func (r *PeriodRepository) getPeriod(ctx context.Context, q querier, ledgerID, periodKey, lock string) (*domain.PostingPeriod, error) {
	query := selectPeriods().Where(sq.Eq{"ledger_id": ledgerID, "period_key": periodKey})
	if lock != "" {
		query = query.Suffix(lock)
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	period, err := scanPeriod(q.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPeriodNotFound
		}
		return nil, err
	}

	return period, nil
}

// LockLedger serializes period changes of one (ledger, company) pair until
// the transaction ends.
func (r *PeriodRepository) LockLedger(ctx context.Context, tx usecase.Transaction, ledgerID, companyID string) error {
	q, err := pgxTx(tx)
	if err != nil {
		return err
	}

	if _, err := q.Exec(ctx, queryLockLedger, ledgerID, companyID); err != nil {
		return fmt.Errorf("lock ledger %s: %w", ledgerID, err)
	}
	return nil
}

// ListPeriodsTx lists the periods of a ledger and company inside tx.
func (r *PeriodRepository) ListPeriodsTx(ctx context.Context, tx usecase.Transaction, ledgerID, companyID string) ([]domain.PostingPeriod, error) {
	q, err := pgxTx(tx)
	if err != nil {
		return nil, err
	}
	return r.list(ctx, q, sq.Eq{"ledger_id": ledgerID, "company_id": companyID})
}

// List lists the periods of a ledger ordered by start date.
func (r *PeriodRepository) List(ctx context.Context, ledgerID string) ([]domain.PostingPeriod, error) {
	return r.list(ctx, r.db, sq.Eq{"ledger_id": ledgerID})
}

func (r *PeriodRepository) list(ctx context.Context, q querier, where sq.Eq) ([]domain.PostingPeriod, error) {
	sql, args, err := selectPeriods().Where(where).OrderBy("start_date", "period_key").ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	periods := []domain.PostingPeriod{}
	for rows.Next() {
		p, err := scanPeriod(rows)
		if err != nil {
			return nil, err
		}
		periods = append(periods, *p)
	}

	return periods, rows.Err()
}

// Create inserts a new period.
func (r *PeriodRepository) Create(ctx context.Context, tx usecase.Transaction, period *domain.PostingPeriod) error {
	q, err := pgxTx(tx)
	if err != nil {
		return err
	}

	_, err = q.Exec(ctx, queryInsertPeriod,
		period.LedgerID,
		period.PeriodKey,
		period.CompanyID,
		period.StartDate,
		period.EndDate,
		string(period.Status),
	)
	if isUniqueViolation(err) {
		return domain.NewValidationError(domain.CategoryIdentity,
			map[string]any{"ledgerId": period.LedgerID, "periodKey": period.PeriodKey},
			"period %s already exists for ledger %s", period.PeriodKey, period.LedgerID)
	}
	return err
}

// UpdateStatus sets the status of an existing period.
func (r *PeriodRepository) UpdateStatus(ctx context.Context, tx usecase.Transaction, ledgerID, periodKey string, status domain.PeriodStatus) error {
	q, err := pgxTx(tx)
	if err != nil {
		return err
	}

	tag, err := q.Exec(ctx, queryUpdatePeriodStatus, ledgerID, periodKey, string(status))
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrPeriodNotFound
	}

	return nil
}

func scanPeriod(row pgx.Row) (*domain.PostingPeriod, error) {
	var (
		p      domain.PostingPeriod
		status string
	)

	if err := row.Scan(&p.PeriodKey, &p.LedgerID, &p.CompanyID, &p.StartDate, &p.EndDate, &status); err != nil {
		return nil, err
	}

	p.Status = domain.PeriodStatus(status)
	return &p, nil
}
