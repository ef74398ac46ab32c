package dispatcher

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog"

	"github.com/iho/glkernel/internal/domain"
)

// LogPublisher logs every command.
type LogPublisher struct {
	logger zerolog.Logger
}

// NewLogPublisher creates a new LogPublisher.
func NewLogPublisher(logger zerolog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

// Publish logs the command.
func (p *LogPublisher) Publish(ctx context.Context, cmd *domain.Command) error {
	payload, err := json.Marshal(cmd.Payload)
	if err != nil {
		return err
	}

	p.logger.Info().
		Str("command_id", cmd.ID).
		Str("command_type", string(cmd.Type)).
		Str("aggregate_type", cmd.AggregateType).
		Str("aggregate_id", cmd.AggregateID).
		Str("idempotency_key", cmd.IdempotencyKey).
		RawJSON("payload", payload).
		Msg("command published")

	return nil
}

// Chain publishes to each publisher in order and stops at the first error.
type Chain []Publisher

// Publish implements Publisher.
func (c Chain) Publish(ctx context.Context, cmd *domain.Command) error {
	for _, p := range c {
		if err := p.Publish(ctx, cmd); err != nil {
			return err
		}
	}
	return nil
}
