package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/glkernel/internal/domain"
)

const queryGetAccountingEvent = `
	SELECT event_id, event_type, amount_minor, currency_code, payload
	FROM accounting_events
	WHERE event_id = $1`

// EventRepository implements usecase.EventReader.
type EventRepository struct {
	db querier
}

// NewEventRepository creates a new EventRepository.
func NewEventRepository(pool *pgxpool.Pool) *EventRepository {
	return &EventRepository{db: pool}
}

// GetAccountingEvent loads one accounting event by ID.
func (r *EventRepository) GetAccountingEvent(ctx context.Context, eventID string) (*domain.AccountingEvent, error) {
	var (
		event   domain.AccountingEvent
		payload []byte
	)

	err := r.db.QueryRow(ctx, queryGetAccountingEvent, eventID).Scan(
		&event.EventID,
		&event.EventType,
		&event.AmountMinor,
		&event.CurrencyCode,
		&payload,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrEventNotFound
		}
		return nil, err
	}

	event.Payload = payload
	return &event, nil
}
