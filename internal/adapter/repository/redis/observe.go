package redis

import (
	"errors"

	"github.com/redis/go-redis/v9"

	"github.com/iho/glkernel/internal/infrastructure/metrics"
)

// observe counts a Redis call. A cache miss is not an error.
func observe(m *metrics.Metrics, operation string, err error) {
	if m == nil {
		return
	}

	m.RedisOperations.WithLabelValues(operation).Inc()
	if err != nil && !errors.Is(err, redis.Nil) {
		m.RedisErrors.WithLabelValues(operation).Inc()
	}
}
