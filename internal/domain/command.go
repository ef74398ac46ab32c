package domain

import "time"

// CommandType names an intent emitted for the write path.
type CommandType string

const (
	CommandDeriveCommit   CommandType = "acct.derive.commit"
	CommandMappingPublish CommandType = "acct.mapping.publish"
	CommandReclassRun     CommandType = "gl.reclass.run"
	CommandAllocationRun  CommandType = "gl.allocation.run"
	CommandAccrualRun     CommandType = "gl.accrual.run"
	CommandPeriodOpen     CommandType = "gl.period.open"
	CommandPeriodClose    CommandType = "gl.period.close"
	CommandCoAPublish     CommandType = "gl.coa.publish"
)

// Aggregate types a command applies to.
const (
	AggregateTypeDerivation = "derivation"
	AggregateTypeMapping    = "mapping"
	AggregateTypeLedger     = "ledger"
	AggregateTypePeriod     = "period"
	AggregateTypeCoA        = "coa"
)

// Command is an outbox record. IdempotencyKey is identical for identical
// semantic intent; the dispatcher applies each key at most once.
type Command struct {
	ID             string
	IdempotencyKey string
	Type           CommandType
	AggregateType  string
	AggregateID    string
	Payload        map[string]any
	CreatedAt      time.Time
	PublishedAt    *time.Time
	Published      bool
}

// DedupeState is the dispatcher's view of an idempotency key.
type DedupeState int

const (
	// DedupeClaimed means the caller now holds a short in-flight lease on the key.
	DedupeClaimed DedupeState = iota
	// DedupeInFlight means another dispatch holds the lease; it expires if that worker dies.
	DedupeInFlight
	// DedupeApplied means a command with the key was published and confirmed.
	DedupeApplied
)
