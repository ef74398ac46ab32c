package dispatcher

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"

	"github.com/iho/glkernel/internal/domain"
	"github.com/iho/glkernel/internal/infrastructure/metrics"
	"github.com/iho/glkernel/internal/usecase"
)

// Publisher applies a command to a downstream system.
type Publisher interface {
	Publish(ctx context.Context, cmd *domain.Command) error
}

// Deduper records which idempotency keys were applied. Claim takes a short
// lease, Confirm turns it into a durable applied marker after a successful
// publish and Release drops it after a failed one.
type Deduper interface {
	Claim(ctx context.Context, key, commandID string) (domain.DedupeState, error)
	Confirm(ctx context.Context, key, commandID string) error
	Release(ctx context.Context, key string) error
}

// Config for Dispatcher.
type Config struct {
	Outbox    usecase.CommandOutbox
	Publisher Publisher
	Dedupe    Deduper // optional
	Logger    zerolog.Logger
	Metrics   *metrics.Metrics
	BatchSize int           // Number of commands to fetch per batch
	Interval  time.Duration // Polling interval
	Retention time.Duration // Published commands older than this are deleted; 0 keeps them
	// MaxRetries bounds publish attempts per command and tick.
	MaxRetries      uint64
	InitialInterval time.Duration
}

// Dispatcher drains the command outbox into a Publisher.
type Dispatcher struct {
	outbox          usecase.CommandOutbox
	publisher       Publisher
	dedupe          Deduper
	logger          zerolog.Logger
	metrics         *metrics.Metrics
	batchSize       int
	interval        time.Duration
	retention       time.Duration
	maxRetries      uint64
	initialInterval time.Duration
	now             func() time.Time
}

// New creates a Dispatcher.
func New(cfg Config) *Dispatcher {
	if cfg.BatchSize == 0 {
		cfg.BatchSize = 100
	}
	if cfg.Interval == 0 {
		cfg.Interval = 5 * time.Second
	}
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = 3
	}
	if cfg.InitialInterval == 0 {
		cfg.InitialInterval = 100 * time.Millisecond
	}

	return &Dispatcher{
		outbox:          cfg.Outbox,
		publisher:       cfg.Publisher,
		dedupe:          cfg.Dedupe,
		logger:          cfg.Logger.With().Str("component", "dispatcher").Logger(),
		metrics:         cfg.Metrics,
		batchSize:       cfg.BatchSize,
		interval:        cfg.Interval,
		retention:       cfg.Retention,
		maxRetries:      cfg.MaxRetries,
		initialInterval: cfg.InitialInterval,
		now:             time.Now,
	}
}

// Start runs the dispatcher until ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) error {
	d.logger.Info().
		Int("batch_size", d.batchSize).
		Dur("interval", d.interval).
		Msg("command dispatcher started")

	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	d.tick(ctx)

	for {
		select {
		case <-ctx.Done():
			d.logger.Info().Msg("command dispatcher shutting down")
			return ctx.Err()
		case <-ticker.C:
			d.tick(ctx)
		}
	}
}

func (d *Dispatcher) tick(ctx context.Context) {
	if err := d.processCommands(ctx); err != nil {
		d.logger.Error().Err(err).Msg("error processing commands")
	}

	if err := d.cleanup(ctx); err != nil {
		d.logger.Error().Err(err).Msg("error deleting published commands")
	}
}

// processCommands dispatches one batch. A failing command does not stop the batch.
func (d *Dispatcher) processCommands(ctx context.Context) error {
	commands, err := d.outbox.GetUnpublished(ctx, d.batchSize)
	if err != nil {
		return fmt.Errorf("load unpublished commands: %w", err)
	}

	if d.metrics != nil {
		d.metrics.CommandDispatchBacklog.Set(float64(len(commands)))
	}

	if len(commands) == 0 {
		return nil
	}

	d.logger.Debug().Int("count", len(commands)).Msg("processing commands")

	for _, cmd := range commands {
		if err := d.dispatch(ctx, cmd); err != nil {
			if d.metrics != nil {
				d.metrics.CommandDispatchErrors.WithLabelValues(string(cmd.Type)).Inc()
			}
			d.logger.Error().
				Err(err).
				Str("command_id", cmd.ID).
				Str("command_type", string(cmd.Type)).
				Msg("failed to dispatch command")
		}
	}

	return nil
}

func (d *Dispatcher) dispatch(ctx context.Context, cmd *domain.Command) error {
	if d.dedupe != nil {
		state, err := d.dedupe.Claim(ctx, cmd.IdempotencyKey, cmd.ID)
		if err != nil {
			return fmt.Errorf("claim %s: %w", cmd.IdempotencyKey, err)
		}
		switch state {
		case domain.DedupeApplied:
			d.logger.Info().
				Str("command_id", cmd.ID).
				Str("idempotency_key", cmd.IdempotencyKey).
				Msg("command already applied, marking published")
			return d.markPublished(ctx, cmd)
		case domain.DedupeInFlight:
			// left pending; retried once the holder confirms or its lease expires
			d.logger.Debug().
				Str("command_id", cmd.ID).
				Str("idempotency_key", cmd.IdempotencyKey).
				Msg("idempotency key in flight, skipping")
			return nil
		}
	}

	if err := d.publish(ctx, cmd); err != nil {
		if d.dedupe != nil {
			if rerr := d.dedupe.Release(ctx, cmd.IdempotencyKey); rerr != nil {
				d.logger.Warn().Err(rerr).Str("idempotency_key", cmd.IdempotencyKey).Msg("failed to release dedupe key")
			}
		}
		return err
	}

	if d.dedupe != nil {
		// a lost confirm lets a later duplicate of this key through once the lease expires
		if err := d.dedupe.Confirm(ctx, cmd.IdempotencyKey, cmd.ID); err != nil {
			d.logger.Warn().Err(err).Str("idempotency_key", cmd.IdempotencyKey).Msg("failed to confirm dedupe key")
		}
	}

	if d.metrics != nil {
		d.metrics.CommandsDispatched.WithLabelValues(string(cmd.Type)).Inc()
	}

	d.logger.Info().
		Str("command_id", cmd.ID).
		Str("command_type", string(cmd.Type)).
		Msg("command dispatched")

	return d.markPublished(ctx, cmd)
}

func (d *Dispatcher) publish(ctx context.Context, cmd *domain.Command) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = d.initialInterval

	attempt := 0
	return backoff.Retry(func() error {
		attempt++
		err := d.publisher.Publish(ctx, cmd)
		if err != nil {
			d.logger.Warn().
				Err(err).
				Int("attempt", attempt).
				Str("command_id", cmd.ID).
				Msg("publish failed")
		}
		return err
	}, backoff.WithContext(backoff.WithMaxRetries(b, d.maxRetries), ctx))
}

func (d *Dispatcher) markPublished(ctx context.Context, cmd *domain.Command) error {
	if err := d.outbox.MarkPublished(ctx, cmd.ID, d.now().UTC()); err != nil {
		return fmt.Errorf("mark %s published: %w", cmd.ID, err)
	}
	return nil
}

func (d *Dispatcher) cleanup(ctx context.Context) error {
	if d.retention <= 0 {
		return nil
	}
	return d.outbox.DeletePublished(ctx, d.now().UTC().Add(-d.retention))
}
