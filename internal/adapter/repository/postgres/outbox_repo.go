package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/glkernel/internal/domain"
	"github.com/iho/glkernel/internal/usecase"
)

var commandColumns = []string{
	"id",
	"idempotency_key",
	"command_type",
	"aggregate_type",
	"aggregate_id",
	"payload",
	"created_at",
	"published",
	"published_at",
}

const (
	queryEnqueueCommand = `
		INSERT INTO command_outbox (id, idempotency_key, command_type, aggregate_type, aggregate_id, payload, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (idempotency_key) DO NOTHING`

	queryMarkCommandPublished = `
		UPDATE command_outbox SET published = TRUE, published_at = $2
		WHERE id = $1`

	queryDeletePublishedCommands = `
		DELETE FROM command_outbox
		WHERE published AND published_at < $1`
)

// OutboxRepository implements usecase.CommandOutbox.
type OutboxRepository struct {
	db querier
}

// NewOutboxRepository creates a new OutboxRepository.
func NewOutboxRepository(pool *pgxpool.Pool) *OutboxRepository {
	return &OutboxRepository{db: pool}
}

func selectCommands() sq.SelectBuilder {
	return sq.StatementBuilder.PlaceholderFormat(sq.Dollar).
		Select(commandColumns...).
		From("command_outbox")
}

// Enqueue inserts cmd within tx. A command whose idempotency key is already
// stored is not inserted and inserted is false.
func (r *OutboxRepository) Enqueue(ctx context.Context, tx usecase.Transaction, cmd *domain.Command) (bool, error) {
	payload, err := json.Marshal(cmd.Payload)
	if err != nil {
		return false, fmt.Errorf("encode payload: %w", err)
	}

	q, err := pgxTx(tx)
	if err != nil {
		return false, err
	}

	tag, err := q.Exec(ctx, queryEnqueueCommand,
		cmd.ID,
		cmd.IdempotencyKey,
		string(cmd.Type),
		cmd.AggregateType,
		cmd.AggregateID,
		payload,
		cmd.CreatedAt,
	)
	if err != nil {
		return false, err
	}

	return tag.RowsAffected() == 1, nil
}

// GetByIdempotencyKey loads the command stored under key.
func (r *OutboxRepository) GetByIdempotencyKey(ctx context.Context, key string) (*domain.Command, error) {
	sql, args, err := selectCommands().Where(sq.Eq{"idempotency_key": key}).ToSql()
	if err != nil {
		return nil, err
	}

	cmd, err := scanCommand(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCommandNotFound
		}
		return nil, err
	}

	return cmd, nil
}

// GetUnpublished returns up to limit commands in enqueue order.
func (r *OutboxRepository) GetUnpublished(ctx context.Context, limit int) ([]*domain.Command, error) {
	sql, args, err := selectCommands().
		Where(sq.Eq{"published": false}).
		OrderBy("created_at", "id").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var commands []*domain.Command
	for rows.Next() {
		cmd, err := scanCommand(rows)
		if err != nil {
			return nil, err
		}
		commands = append(commands, cmd)
	}

	return commands, rows.Err()
}

// MarkPublished marks a command as dispatched.
func (r *OutboxRepository) MarkPublished(ctx context.Context, id string, publishedAt time.Time) error {
	_, err := r.db.Exec(ctx, queryMarkCommandPublished, id, publishedAt)
	return err
}

// DeletePublished removes commands dispatched before the given time.
func (r *OutboxRepository) DeletePublished(ctx context.Context, before time.Time) error {
	_, err := r.db.Exec(ctx, queryDeletePublishedCommands, before)
	return err
}

func scanCommand(row pgx.Row) (*domain.Command, error) {
	var (
		cmd         domain.Command
		commandType string
		payload     []byte
	)

	err := row.Scan(
		&cmd.ID,
		&cmd.IdempotencyKey,
		&commandType,
		&cmd.AggregateType,
		&cmd.AggregateID,
		&payload,
		&cmd.CreatedAt,
		&cmd.Published,
		&cmd.PublishedAt,
	)
	if err != nil {
		return nil, err
	}

	cmd.Type = domain.CommandType(commandType)
	if len(payload) > 0 {
		if err := json.Unmarshal(payload, &cmd.Payload); err != nil {
			return nil, fmt.Errorf("decode payload of %s: %w", cmd.ID, err)
		}
	}

	return &cmd, nil
}
