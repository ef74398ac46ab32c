package domain

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// AccountingEvent is the kernel-owned shape of an upstream business event.
// Payload stays opaque; adapters decode it before it reaches the kernel.
type AccountingEvent struct {
	EventID      string          `json:"eventId"`
	EventType    string          `json:"eventType"`
	AmountMinor  int64           `json:"amountMinor"`
	CurrencyCode string          `json:"currencyCode"`
	Payload      json.RawMessage `json:"payload,omitempty"`
}

// MappingRule routes a fraction of an event amount to a debit/credit pair.
type MappingRule struct {
	DebitAccountID  string          `json:"debitAccountId"`
	CreditAccountID string          `json:"creditAccountId"`
	Fraction        decimal.Decimal `json:"fraction"`
	Description     string          `json:"description,omitempty"`
}

// MappingVersion is an immutable, published set of rules for one event type.
type MappingVersion struct {
	EventType     string        `json:"eventType"`
	VersionNumber int64         `json:"versionNumber"`
	Rules         []MappingRule `json:"rules"`
	IsCurrent     bool          `json:"isCurrent"`
}
