package usecase

import "time"

const (
	// DefaultTransactionTimeout is the maximum duration for a database transaction
	// This prevents long-running transactions from blocking tables
	DefaultTransactionTimeout = 10 * time.Second

	// IdempotencyKeyTTL is how long HTTP idempotency keys are cached
	IdempotencyKeyTTL = 24 * time.Hour
)

// IdempotencyPending is stored under an idempotency key while its request runs.
const IdempotencyPending = "processing"
