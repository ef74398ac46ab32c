package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/glkernel/internal/domain"
	"github.com/iho/glkernel/internal/usecase"
)

const (
	queryGetCurrentMapping = `
		SELECT version_number, rules
		FROM mapping_versions
		WHERE event_type = $1 AND is_current`

	queryLockEventType = `SELECT pg_advisory_xact_lock(hashtext('mapping:' || $1))`

	queryMaxMappingVersion = `
		SELECT COALESCE(MAX(version_number), 0)
		FROM mapping_versions
		WHERE event_type = $1`

	queryRetireMapping = `
		UPDATE mapping_versions SET is_current = FALSE
		WHERE event_type = $1 AND is_current`

	queryInsertMapping = `
		INSERT INTO mapping_versions (event_type, version_number, rules, is_current)
		VALUES ($1, $2, $3, $4)`
)

// MappingRepository implements usecase.MappingRepository.
type MappingRepository struct {
	db querier
}

// NewMappingRepository creates a new MappingRepository.
func NewMappingRepository(pool *pgxpool.Pool) *MappingRepository {
	return &MappingRepository{db: pool}
}

// GetCurrent returns the current mapping version of eventType.
func (r *MappingRepository) GetCurrent(ctx context.Context, eventType string) (*domain.MappingVersion, error) {
	var (
		version int64
		raw     []byte
	)

	if err := r.db.QueryRow(ctx, queryGetCurrentMapping, eventType).Scan(&version, &raw); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrMappingNotFound
		}
		return nil, err
	}

	var rules []domain.MappingRule
	if err := json.Unmarshal(raw, &rules); err != nil {
		return nil, fmt.Errorf("decode rules of %s v%d: %w", eventType, version, err)
	}

	return &domain.MappingVersion{
		EventType:     eventType,
		VersionNumber: version,
		Rules:         rules,
		IsCurrent:     true,
	}, nil
}

// CurrentVersionForUpdate takes a transaction-scoped advisory lock on
// eventType and returns its highest version number.
func (r *MappingRepository) CurrentVersionForUpdate(ctx context.Context, tx usecase.Transaction, eventType string) (int64, error) {
	q, err := pgxTx(tx)
	if err != nil {
		return 0, err
	}

	if _, err := q.Exec(ctx, queryLockEventType, eventType); err != nil {
		return 0, fmt.Errorf("lock event type %s: %w", eventType, err)
	}

	var current int64
	if err := q.QueryRow(ctx, queryMaxMappingVersion, eventType).Scan(&current); err != nil {
		return 0, err
	}

	return current, nil
}

// Publish retires the current version and stores the new one.
func (r *MappingRepository) Publish(ctx context.Context, tx usecase.Transaction, version *domain.MappingVersion) error {
	q, err := pgxTx(tx)
	if err != nil {
		return err
	}

	rules, err := json.Marshal(version.Rules)
	if err != nil {
		return fmt.Errorf("encode rules: %w", err)
	}

	if version.IsCurrent {
		if _, err := q.Exec(ctx, queryRetireMapping, version.EventType); err != nil {
			return err
		}
	}

	_, err = q.Exec(ctx, queryInsertMapping, version.EventType, version.VersionNumber, rules, version.IsCurrent)
	return err
}
