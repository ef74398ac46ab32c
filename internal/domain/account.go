package domain

// AccountType is the top-level classification of a CoA node.
type AccountType string

const (
	AccountTypeAsset     AccountType = "asset"
	AccountTypeLiability AccountType = "liability"
	AccountTypeEquity    AccountType = "equity"
	AccountTypeRevenue   AccountType = "revenue"
	AccountTypeExpense   AccountType = "expense"
)

var validAccountTypes = map[AccountType]bool{
	AccountTypeAsset:     true,
	AccountTypeLiability: true,
	AccountTypeEquity:    true,
	AccountTypeRevenue:   true,
	AccountTypeExpense:   true,
}

// IsValid checks if the account type is known.
func (t AccountType) IsValid() bool {
	return validAccountTypes[t]
}

// AccountNode is one node of a chart of accounts forest.
// An empty ParentAccountID marks a root.
type AccountNode struct {
	ID              string      `json:"id"`
	AccountCode     string      `json:"accountCode"`
	AccountType     AccountType `json:"accountType"`
	ParentAccountID string      `json:"parentAccountId,omitempty"`
	IsPostable      bool        `json:"isPostable"`
	NormalBalance   Side        `json:"normalBalance"`
}

// IsRoot reports whether the node has no parent.
func (a AccountNode) IsRoot() bool {
	return a.ParentAccountID == ""
}
