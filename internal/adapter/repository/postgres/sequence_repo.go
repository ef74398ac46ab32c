package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/glkernel/internal/domain"
	"github.com/iho/glkernel/internal/usecase"
)

const (
	queryGetSequenceForUpdate = `
		SELECT sequence_id, prefix, pad_width, last_number
		FROM document_sequences
		WHERE sequence_id = $1
		FOR UPDATE`

	queryUpdateSequence = `
		UPDATE document_sequences SET last_number = $2
		WHERE sequence_id = $1 AND last_number <= $2`
)

// SequenceRepository implements usecase.SequenceRepository.
type SequenceRepository struct {
	db querier
}

// NewSequenceRepository creates a new SequenceRepository.
func NewSequenceRepository(pool *pgxpool.Pool) *SequenceRepository {
	return &SequenceRepository{db: pool}
}

// GetForUpdate loads a sequence and locks its row until the transaction ends.
func (r *SequenceRepository) GetForUpdate(ctx context.Context, tx usecase.Transaction, sequenceID string) (*domain.DocumentSequence, error) {
	q, err := pgxTx(tx)
	if err != nil {
		return nil, err
	}

	var seq domain.DocumentSequence
	err = q.QueryRow(ctx, queryGetSequenceForUpdate, sequenceID).Scan(
		&seq.SequenceID,
		&seq.Prefix,
		&seq.PadWidth,
		&seq.LastNumber,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSequenceNotFound
		}
		return nil, err
	}

	return &seq, nil
}

// UpdateLastNumber advances a sequence. It never moves a sequence backwards.
func (r *SequenceRepository) UpdateLastNumber(ctx context.Context, tx usecase.Transaction, sequenceID string, lastNumber int64) error {
	q, err := pgxTx(tx)
	if err != nil {
		return err
	}

	tag, err := q.Exec(ctx, queryUpdateSequence, sequenceID, lastNumber)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrSequenceNotFound
	}

	return nil
}
