package domain

// Side is the debit or credit side of a journal line.
type Side string

const (
	SideDebit  Side = "debit"
	SideCredit Side = "credit"
)

// IsValid reports whether s is debit or credit.
func (s Side) IsValid() bool {
	return s == SideDebit || s == SideCredit
}

// DerivedJournalLine is one side of a balanced entry. AmountMinor is always positive.
type DerivedJournalLine struct {
	AccountID   string `json:"accountId"`
	Side        Side   `json:"side"`
	AmountMinor int64  `json:"amountMinor"`
}

// SkipReasonZeroAmount marks a rule whose rounded amount was zero.
const SkipReasonZeroAmount = "zero_amount"

// SkippedRule records a rule that contributed no lines.
type SkippedRule struct {
	RuleIndex int         `json:"ruleIndex"`
	Rule      MappingRule `json:"rule"`
	Reason    string      `json:"reason"`
}

// DerivationResult is the balanced output of one derivation.
type DerivationResult struct {
	DerivationID     string               `json:"derivationId"`
	InputsHash       string               `json:"inputsHash"`
	JournalLines     []DerivedJournalLine `json:"journalLines"`
	TotalDebitMinor  int64                `json:"totalDebitMinor"`
	TotalCreditMinor int64                `json:"totalCreditMinor"`
	SkippedRules     []SkippedRule        `json:"skippedRules"`
}

// SumLines returns debit and credit totals of lines.
func SumLines(lines []DerivedJournalLine) (debit, credit int64) {
	for _, l := range lines {
		switch l.Side {
		case SideDebit:
			debit += l.AmountMinor
		case SideCredit:
			credit += l.AmountMinor
		}
	}
	return debit, credit
}

// PostedLine is a journal line already on the ledger, as read for reporting.
type PostedLine struct {
	AccountID   string `json:"accountId"`
	Side        Side   `json:"side"`
	AmountMinor int64  `json:"amountMinor"`
	PostingDate string `json:"postingDate,omitempty"`
}
