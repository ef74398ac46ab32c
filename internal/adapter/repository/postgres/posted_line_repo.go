package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/glkernel/internal/domain"
	"github.com/iho/glkernel/internal/usecase"
)

const queryInsertPosting = `
	INSERT INTO journal_postings (command_id, ledger_id, posting_date)
	VALUES ($1, $2, $3::date)
	ON CONFLICT (command_id) DO NOTHING`

var postedLineCopyColumns = []string{"command_id", "ledger_id", "account_id", "side", "amount_minor", "posting_date"}

// PostedLineRepository reads and writes the posted journal lines.
type PostedLineRepository struct {
	db querier
}

// NewPostedLineRepository creates a new PostedLineRepository.
func NewPostedLineRepository(pool *pgxpool.Pool) *PostedLineRepository {
	return &PostedLineRepository{db: pool}
}

// ListPostedLines returns the lines of a ledger dated on or before asOf.
// An empty asOf returns every line.
func (r *PostedLineRepository) ListPostedLines(ctx context.Context, ledgerID, asOf string) ([]domain.PostedLine, error) {
	query := sq.StatementBuilder.PlaceholderFormat(sq.Dollar).
		Select("account_id", "side", "amount_minor", "to_char(posting_date, 'YYYY-MM-DD')").
		From("posted_lines").
		Where(sq.Eq{"ledger_id": ledgerID})

	if asOf != "" {
		query = query.Where(sq.LtOrEq{"posting_date": asOf})
	}

	sql, args, err := query.OrderBy("id").ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	lines := []domain.PostedLine{}
	for rows.Next() {
		var (
			l    domain.PostedLine
			side string
		)
		if err := rows.Scan(&l.AccountID, &side, &l.AmountMinor, &l.PostingDate); err != nil {
			return nil, err
		}
		l.Side = domain.Side(side)
		lines = append(lines, l)
	}

	return lines, rows.Err()
}

// PostLines records the lines of one command. It returns false without
// writing when the command was already posted.
func (r *PostedLineRepository) PostLines(ctx context.Context, tx usecase.Transaction, commandID, ledgerID, postingDate string, lines []domain.DerivedJournalLine) (bool, error) {
	date, err := time.Parse(domain.DateLayout, postingDate)
	if err != nil {
		return false, fmt.Errorf("posting date of %s: %w", commandID, err)
	}

	q, err := pgxTx(tx)
	if err != nil {
		return false, err
	}

	tag, err := q.Exec(ctx, queryInsertPosting, commandID, ledgerID, postingDate)
	if err != nil {
		return false, fmt.Errorf("record posting %s: %w", commandID, err)
	}

	if tag.RowsAffected() == 0 {
		return false, nil
	}

	if len(lines) == 0 {
		return true, nil
	}

	_, err = q.CopyFrom(ctx,
		pgx.Identifier{"posted_lines"},
		postedLineCopyColumns,
		pgx.CopyFromSlice(len(lines), func(i int) ([]any, error) {
			l := lines[i]
			if !l.Side.IsValid() || l.AmountMinor <= 0 {
				return nil, errors.New("invalid journal line for " + l.AccountID)
			}
			return []any{commandID, ledgerID, l.AccountID, string(l.Side), l.AmountMinor, date}, nil
		}),
	)
	if err != nil {
		return false, fmt.Errorf("copy lines of %s: %w", commandID, err)
	}

	return true, nil
}
