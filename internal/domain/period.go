package domain

import "fmt"

// PeriodStatus is the lifecycle state of a posting period.
type PeriodStatus string

const (
	PeriodStatusOpen      PeriodStatus = "open"
	PeriodStatusSoftClose PeriodStatus = "soft_close"
	PeriodStatusHardClose PeriodStatus = "hard_close"
)

var periodStatusRank = map[PeriodStatus]int{
	PeriodStatusOpen:      0,
	PeriodStatusSoftClose: 1,
	PeriodStatusHardClose: 2,
}

// IsValid checks if the status is known.
func (s PeriodStatus) IsValid() bool {
	_, ok := periodStatusRank[s]
	return ok
}

// Rank orders statuses along the lifecycle; higher is later.
func (s PeriodStatus) Rank() int {
	return periodStatusRank[s]
}

// CloseType selects the target of a period close.
type CloseType string

const (
	CloseTypeSoft CloseType = "soft"
	CloseTypeHard CloseType = "hard"
)

// IsValid checks if the close type is known.
func (c CloseType) IsValid() bool {
	return c == CloseTypeSoft || c == CloseTypeHard
}

// DateLayout is the ISO calendar date format used by periods and postings.
const DateLayout = "2006-01-02"

// PostingPeriod is a named, inclusive date range of a ledger.
type PostingPeriod struct {
	PeriodKey string       `json:"periodKey"`
	LedgerID  string       `json:"ledgerId"`
	CompanyID string       `json:"companyId"`
	StartDate string       `json:"startDate"`
	EndDate   string       `json:"endDate"`
	Status    PeriodStatus `json:"status"`
}

// PeriodKey builds the fiscal-year + period-number composite key, e.g. FY2026-P01.
func PeriodKey(fiscalYear, periodNumber int) string {
	return fmt.Sprintf("FY%04d-P%02d", fiscalYear, periodNumber)
}

// Contains reports whether date (YYYY-MM-DD) falls inside the period.
func (p PostingPeriod) Contains(date string) bool {
	return p.StartDate <= date && date <= p.EndDate
}
