package usecase

import (
	"context"
	"time"

	"github.com/iho/glkernel/internal/domain"
)

// EventReader loads accounting events from the upstream read model.
type EventReader interface {
	GetAccountingEvent(ctx context.Context, eventID string) (*domain.AccountingEvent, error)
}

// MappingRepository reads and publishes mapping rule versions.
type MappingRepository interface {
	GetCurrent(ctx context.Context, eventType string) (*domain.MappingVersion, error)
	// CurrentVersionForUpdate serializes publishers of eventType and returns
	// the current version number, or 0 when none exists.
	CurrentVersionForUpdate(ctx context.Context, tx Transaction, eventType string) (int64, error)
	Publish(ctx context.Context, tx Transaction, version *domain.MappingVersion) error
}

// LedgerReader loads ledgers.
type LedgerReader interface {
	GetLedger(ctx context.Context, ledgerID string) (*domain.Ledger, error)
}

// PeriodRepository defines data access for posting periods.
type PeriodRepository interface {
	GetPeriod(ctx context.Context, ledgerID, periodKey string) (*domain.PostingPeriod, error)
	// LockLedger takes a transaction-scoped lock on the (ledger, company)
	// pair so that overlap checks and inserts cannot interleave.
	LockLedger(ctx context.Context, tx Transaction, ledgerID, companyID string) error
	ListPeriodsTx(ctx context.Context, tx Transaction, ledgerID, companyID string) ([]domain.PostingPeriod, error)
	GetPeriodForUpdate(ctx context.Context, tx Transaction, ledgerID, periodKey string) (*domain.PostingPeriod, error)
	// GetPeriodForShare blocks status changes of the period until tx ends.
	GetPeriodForShare(ctx context.Context, tx Transaction, ledgerID, periodKey string) (*domain.PostingPeriod, error)
	Create(ctx context.Context, tx Transaction, period *domain.PostingPeriod) error
	UpdateStatus(ctx context.Context, tx Transaction, ledgerID, periodKey string, status domain.PeriodStatus) error
	List(ctx context.Context, ledgerID string) ([]domain.PostingPeriod, error)
}

// CoARepository reads and replaces a company's chart of accounts.
type CoARepository interface {
	GetChartOfAccounts(ctx context.Context, companyID string) ([]domain.AccountNode, error)
	Replace(ctx context.Context, tx Transaction, companyID string, accounts []domain.AccountNode) error
}

// PostedLineReader reads journal lines already posted to a ledger.
type PostedLineReader interface {
	ListPostedLines(ctx context.Context, ledgerID, asOf string) ([]domain.PostedLine, error)
}

// SequenceRepository locks and advances document sequences.
type SequenceRepository interface {
	GetForUpdate(ctx context.Context, tx Transaction, sequenceID string) (*domain.DocumentSequence, error)
	UpdateLastNumber(ctx context.Context, tx Transaction, sequenceID string, lastNumber int64) error
}

// DimensionReader loads the dimension definitions of a company.
type DimensionReader interface {
	ListDimensions(ctx context.Context, companyID string) ([]domain.DimensionDefinition, error)
}

// CommandOutbox stores commands for the dispatcher.
type CommandOutbox interface {
	// Enqueue inserts cmd unless a command with the same idempotency key
	// exists. inserted is false for a duplicate.
	Enqueue(ctx context.Context, tx Transaction, cmd *domain.Command) (inserted bool, err error)
	GetByIdempotencyKey(ctx context.Context, key string) (*domain.Command, error)
	GetUnpublished(ctx context.Context, limit int) ([]*domain.Command, error)
	MarkPublished(ctx context.Context, id string, publishedAt time.Time) error
	DeletePublished(ctx context.Context, before time.Time) error
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// AfterCommitter is implemented by transactions that can defer work until
// they have committed. Hooks do not run on rollback.
type AfterCommitter interface {
	AfterCommit(fn func(ctx context.Context))
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// Retrier retries an operation on transient storage errors.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
	// Release drops a key whose request failed so that it can be retried.
	Release(ctx context.Context, key string) error
}
