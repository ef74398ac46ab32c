package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/iho/glkernel/internal/domain"
	"github.com/iho/glkernel/internal/infrastructure/metrics"
	"github.com/iho/glkernel/internal/usecase"
)

// MappingCache caches current mapping versions in front of a
// usecase.MappingRepository. Publishing evicts the event type; ttl bounds
// how long a reader can see a version that was replaced concurrently.
type MappingCache struct {
	usecase.MappingRepository

	client  redis.Cmdable
	prefix  string
	ttl     time.Duration
	logger  zerolog.Logger
	metrics *metrics.Metrics
}

// NewMappingCache wraps next with a Redis cache.
func NewMappingCache(next usecase.MappingRepository, client redis.Cmdable, ttl time.Duration, logger zerolog.Logger, m *metrics.Metrics) *MappingCache {
	return &MappingCache{
		MappingRepository: next,
		client:            client,
		prefix:            "mapping:current:",
		ttl:               ttl,
		logger:            logger.With().Str("component", "mapping_cache").Logger(),
		metrics:           m,
	}
}

// GetCurrent serves the current version from Redis, loading it on a miss.
// Redis failures fall back to the repository.
func (c *MappingCache) GetCurrent(ctx context.Context, eventType string) (*domain.MappingVersion, error) {
	key := c.prefix + eventType

	raw, err := c.client.Get(ctx, key).Bytes()
	observe(c.metrics, "mapping_get", err)
	if err == nil {
		var version domain.MappingVersion
		if err := json.Unmarshal(raw, &version); err == nil {
			return &version, nil
		}
		c.logger.Warn().Str("event_type", eventType).Msg("discarding undecodable cached mapping")
	} else if !errors.Is(err, redis.Nil) {
		c.logger.Warn().Err(err).Str("event_type", eventType).Msg("mapping cache unavailable")
	}

	version, err := c.MappingRepository.GetCurrent(ctx, eventType)
	if err != nil {
		return nil, err
	}

	if encoded, err := json.Marshal(version); err == nil {
		err = c.client.Set(ctx, key, encoded, c.ttl).Err()
		observe(c.metrics, "mapping_set", err)
	}

	return version, nil
}

// Publish stores version and evicts the cached entry of its event type once
// tx commits. Evicting earlier would let a concurrent reader refill the
// cache with the version being replaced.
func (c *MappingCache) Publish(ctx context.Context, tx usecase.Transaction, version *domain.MappingVersion) error {
	if err := c.MappingRepository.Publish(ctx, tx, version); err != nil {
		return err
	}

	if hooks, ok := tx.(usecase.AfterCommitter); ok {
		hooks.AfterCommit(func(ctx context.Context) {
			c.evict(ctx, version.EventType)
		})
		return nil
	}

	// no commit hook; ttl bounds the stale window
	c.evict(ctx, version.EventType)
	return nil
}

func (c *MappingCache) evict(ctx context.Context, eventType string) {
	err := c.client.Del(ctx, c.prefix+eventType).Err()
	observe(c.metrics, "mapping_evict", err)
	if err != nil {
		c.logger.Warn().Err(err).Str("event_type", eventType).Msg("mapping cache eviction failed")
	}
}
