package redis

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/iho/glkernel/internal/domain"
	"github.com/iho/glkernel/internal/infrastructure/metrics"
)

const (
	dedupeInFlight = "inflight:"
	dedupeApplied  = "applied:"
)

// CommandDedupe tracks command idempotency keys in two steps: a short lease
// while a command is being published, then a long-lived applied marker once
// publishing succeeded. A worker that dies mid-publish only blocks the key
// until its lease expires.
type CommandDedupe struct {
	client  redis.Cmdable
	prefix  string
	ttl     time.Duration
	lease   time.Duration
	metrics *metrics.Metrics
}

// NewCommandDedupe creates a CommandDedupe that holds in-flight leases for
// lease and forgets applied keys after ttl.
func NewCommandDedupe(client redis.Cmdable, ttl, lease time.Duration, m *metrics.Metrics) *CommandDedupe {
	return &CommandDedupe{
		client:  client,
		prefix:  "command:dedupe:",
		ttl:     ttl,
		lease:   lease,
		metrics: m,
	}
}

// Claim takes the in-flight lease on key, or reports who holds it.
func (d *CommandDedupe) Claim(ctx context.Context, key, commandID string) (domain.DedupeState, error) {
	claimed, err := d.client.SetNX(ctx, d.prefix+key, dedupeInFlight+commandID, d.lease).Result()
	observe(d.metrics, "dedupe_claim", err)
	if err != nil {
		return domain.DedupeInFlight, err
	}
	if claimed {
		return domain.DedupeClaimed, nil
	}

	value, err := d.client.Get(ctx, d.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		// lease expired between the two calls; the next tick claims it
		return domain.DedupeInFlight, nil
	}
	observe(d.metrics, "dedupe_get", err)
	if err != nil {
		return domain.DedupeInFlight, err
	}

	if strings.HasPrefix(value, dedupeApplied) {
		return domain.DedupeApplied, nil
	}
	return domain.DedupeInFlight, nil
}

// Confirm replaces the lease with the applied marker.
func (d *CommandDedupe) Confirm(ctx context.Context, key, commandID string) error {
	err := d.client.Set(ctx, d.prefix+key, dedupeApplied+commandID, d.ttl).Err()
	observe(d.metrics, "dedupe_confirm", err)
	return err
}

// Release forgets key so that a failed command can be applied again.
func (d *CommandDedupe) Release(ctx context.Context, key string) error {
	err := d.client.Del(ctx, d.prefix+key).Err()
	observe(d.metrics, "dedupe_release", err)
	return err
}
