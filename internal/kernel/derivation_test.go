package kernel

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/glkernel/internal/domain"
)

func saleRules() []domain.MappingRule {
	return []domain.MappingRule{
		{DebitAccountID: "1100", CreditAccountID: "4000", Fraction: decimal.RequireFromString("0.6"), Description: "revenue"},
		{DebitAccountID: "1100", CreditAccountID: "2200", Fraction: decimal.RequireFromString("0.4"), Description: "tax payable"},
	}
}

func saleInput() DerivationInput {
	return DerivationInput{
		EventID:        "evt-1",
		AmountMinor:    1000,
		CurrencyCode:   "USD",
		MappingVersion: 3,
		Rules:          saleRules(),
	}
}

func TestDerive_BalancedLines(t *testing.T) {
	result, err := Derive(saleInput())
	require.NoError(t, err)

	assert.Equal(t, []domain.DerivedJournalLine{
		{AccountID: "1100", Side: domain.SideDebit, AmountMinor: 600},
		{AccountID: "4000", Side: domain.SideCredit, AmountMinor: 600},
		{AccountID: "1100", Side: domain.SideDebit, AmountMinor: 400},
		{AccountID: "2200", Side: domain.SideCredit, AmountMinor: 400},
	}, result.JournalLines)
	assert.Equal(t, int64(1000), result.TotalDebitMinor)
	assert.Equal(t, result.TotalDebitMinor, result.TotalCreditMinor)
	assert.Empty(t, result.SkippedRules)

	debit, credit := domain.SumLines(result.JournalLines)
	assert.Equal(t, result.TotalDebitMinor, debit)
	assert.Equal(t, result.TotalCreditMinor, credit)
}

func TestDerive_BalanceHoldsAcrossAmounts(t *testing.T) {
	rules := []domain.MappingRule{
		{DebitAccountID: "A", CreditAccountID: "B", Fraction: decimal.RequireFromString("0.333")},
		{DebitAccountID: "C", CreditAccountID: "D", Fraction: decimal.RequireFromString("0.0005")},
		{DebitAccountID: "E", CreditAccountID: "F", Fraction: decimal.NewFromInt(1)},
	}

	for _, amount := range []int64{0, 1, 7, 999, 1000, 123457, 99999999} {
		result, err := Derive(DerivationInput{EventID: "evt", AmountMinor: amount, CurrencyCode: "EUR", MappingVersion: 1, Rules: rules})
		require.NoError(t, err)

		var expected int64
		for _, rule := range rules {
			expected += decimal.NewFromInt(amount).Mul(rule.Fraction).Round(0).IntPart()
		}
		assert.Equal(t, result.TotalDebitMinor, result.TotalCreditMinor, "amount %d", amount)
		assert.Equal(t, expected, result.TotalDebitMinor, "amount %d", amount)
		for _, line := range result.JournalLines {
			assert.Positive(t, line.AmountMinor)
		}
	}
}

func TestDerive_SkipsZeroAmountRules(t *testing.T) {
	in := saleInput()
	in.AmountMinor = 1
	in.Rules = []domain.MappingRule{
		{DebitAccountID: "1100", CreditAccountID: "4000", Fraction: decimal.RequireFromString("0.4")},
		{DebitAccountID: "1100", CreditAccountID: "4100", Fraction: decimal.RequireFromString("0.5")},
	}

	result, err := Derive(in)
	require.NoError(t, err)

	require.Len(t, result.SkippedRules, 1)
	assert.Equal(t, 0, result.SkippedRules[0].RuleIndex)
	assert.Equal(t, domain.SkipReasonZeroAmount, result.SkippedRules[0].Reason)
	// 0.5 rounds half up to 1.
	assert.Equal(t, int64(1), result.TotalDebitMinor)
	assert.Len(t, result.JournalLines, 2)
}

func TestDerive_Deterministic(t *testing.T) {
	first, err := Derive(saleInput())
	require.NoError(t, err)
	second, err := Derive(saleInput())
	require.NoError(t, err)

	assert.Equal(t, first.DerivationID, second.DerivationID)
	assert.Equal(t, first.InputsHash, second.InputsHash)
	assert.Regexp(t, `^deriv-[0-9a-f]{64}$`, first.DerivationID)
}

func TestDerive_IdentityDiverges(t *testing.T) {
	base, err := Derive(saleInput())
	require.NoError(t, err)

	tests := []struct {
		name   string
		mutate func(*DerivationInput)
	}{
		{"event id", func(in *DerivationInput) { in.EventID = "evt-2" }},
		{"mapping version", func(in *DerivationInput) { in.MappingVersion = 4 }},
		{"amount", func(in *DerivationInput) { in.AmountMinor = 1001 }},
		{"currency", func(in *DerivationInput) { in.CurrencyCode = "EUR" }},
		{"rule count", func(in *DerivationInput) { in.Rules = in.Rules[:1] }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := saleInput()
			tt.mutate(&in)
			got, err := Derive(in)
			require.NoError(t, err)
			assert.NotEqual(t, base.DerivationID, got.DerivationID)
			assert.NotEqual(t, base.InputsHash, got.InputsHash)
		})
	}
}

func TestDerive_Rejects(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*DerivationInput)
		category domain.ValidationCategory
	}{
		{"no rules", func(in *DerivationInput) { in.Rules = nil }, domain.CategoryEmptyInput},
		{"negative amount", func(in *DerivationInput) { in.AmountMinor = -1 }, domain.CategorySign},
		{"zero fraction", func(in *DerivationInput) { in.Rules[1].Fraction = decimal.Zero }, domain.CategoryOutOfRange},
		{"fraction above one", func(in *DerivationInput) { in.Rules[0].Fraction = decimal.RequireFromString("1.01") }, domain.CategoryOutOfRange},
		{"same account both sides", func(in *DerivationInput) { in.Rules[0].CreditAccountID = "1100" }, domain.CategoryIdentity},
		{"missing account", func(in *DerivationInput) { in.Rules[1].DebitAccountID = "" }, domain.CategoryEmptyInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := saleInput()
			tt.mutate(&in)

			result, err := Derive(in)
			require.Error(t, err)
			assert.Nil(t, result)
			assert.True(t, errors.Is(err, domain.ErrValidationFailed))

			verr, ok := domain.AsValidationError(err)
			require.True(t, ok)
			assert.Equal(t, tt.category, verr.Category)
		})
	}
}

func TestCheckBalanced(t *testing.T) {
	balanced := &domain.DerivationResult{
		JournalLines: []domain.DerivedJournalLine{
			{AccountID: "1100", Side: domain.SideDebit, AmountMinor: 60},
			{AccountID: "4000", Side: domain.SideCredit, AmountMinor: 60},
		},
		TotalDebitMinor:  60,
		TotalCreditMinor: 60,
	}
	require.NoError(t, checkBalanced(balanced))

	lopsided := *balanced
	lopsided.JournalLines = append([]domain.DerivedJournalLine(nil), balanced.JournalLines...)
	lopsided.JournalLines[1].AmountMinor = 59
	assert.ErrorIs(t, checkBalanced(&lopsided), domain.ErrUnbalanced)

	wrongTotals := *balanced
	wrongTotals.TotalCreditMinor = 61
	err := checkBalanced(&wrongTotals)
	assert.ErrorIs(t, err, domain.ErrUnbalanced)
	assert.False(t, errors.Is(err, domain.ErrValidationFailed))
}
