package domain

// LedgerType distinguishes the primary book from adjustment books.
type LedgerType string

const (
	LedgerTypePrimary    LedgerType = "primary"
	LedgerTypeAdjustment LedgerType = "adjustment"
)

// Ledger is a book owned by a company. Each ledger owns its own periods.
type Ledger struct {
	LedgerID     string     `json:"ledgerId"`
	LedgerType   LedgerType `json:"ledgerType"`
	CompanyID    string     `json:"companyId"`
	BaseCurrency string     `json:"baseCurrency"`
	IsActive     bool       `json:"isActive"`
}
