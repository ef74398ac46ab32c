package domain

// TrialBalanceRow is a per-account aggregate. It is derived, never stored.
type TrialBalanceRow struct {
	AccountID   string `json:"accountId"`
	DebitMinor  int64  `json:"debitMinor"`
	CreditMinor int64  `json:"creditMinor"`
	NetMinor    int64  `json:"netMinor"`
}
