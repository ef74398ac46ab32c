package kernel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/glkernel/internal/domain"
)

func accrual(total int64, periods, current int) AccrualInput {
	return AccrualInput{
		ExpenseAccountID:   "6100",
		LiabilityAccountID: "2100",
		TotalMinor:         total,
		TotalPeriods:       periods,
		CurrentPeriod:      current,
	}
}

func TestComputeAccrualLines_FinalPeriodAbsorbsRemainder(t *testing.T) {
	var amounts []int64
	for p := 1; p <= 3; p++ {
		result, err := ComputeAccrualLines(accrual(10000, 3, p))
		require.NoError(t, err)
		amounts = append(amounts, result.PeriodAmountMinor)

		require.Len(t, result.Lines, 2)
		assert.Equal(t, domain.DerivedJournalLine{AccountID: "6100", Side: domain.SideDebit, AmountMinor: result.PeriodAmountMinor}, result.Lines[0])
		assert.Equal(t, domain.DerivedJournalLine{AccountID: "2100", Side: domain.SideCredit, AmountMinor: result.PeriodAmountMinor}, result.Lines[1])
	}
	assert.Equal(t, []int64{3333, 3333, 3334}, amounts)
}

func TestComputeAccrualLines_SumsToTotal(t *testing.T) {
	for _, tc := range []struct {
		total   int64
		periods int
	}{{10000, 3}, {1, 1}, {100, 7}, {99999, 12}, {5, 4}, {2, 4}, {7, 10}, {3, 5}} {
		var sum int64
		for p := 1; p <= tc.periods; p++ {
			result, err := ComputeAccrualLines(accrual(tc.total, tc.periods, p))
			require.NoError(t, err)
			sum += result.PeriodAmountMinor
		}
		assert.Equal(t, tc.total, sum, "total %d over %d", tc.total, tc.periods)
	}
}

func TestComputeAccrualLines_FinalPeriodReversesOverAccrual(t *testing.T) {
	// 2 / 4 rounds up to 1 per period, so periods 1-3 accrue 3 in total.
	for p := 1; p <= 3; p++ {
		result, err := ComputeAccrualLines(accrual(2, 4, p))
		require.NoError(t, err)
		assert.Equal(t, int64(1), result.PeriodAmountMinor)
	}

	result, err := ComputeAccrualLines(accrual(2, 4, 4))
	require.NoError(t, err)
	assert.Equal(t, int64(-1), result.PeriodAmountMinor)
	assert.Equal(t, []domain.DerivedJournalLine{
		{AccountID: "2100", Side: domain.SideDebit, AmountMinor: 1},
		{AccountID: "6100", Side: domain.SideCredit, AmountMinor: 1},
	}, result.Lines)
}

func TestComputeAccrualLines_ZeroAmountPeriodHasNoLines(t *testing.T) {
	result, err := ComputeAccrualLines(accrual(1, 4, 1))
	require.NoError(t, err)
	assert.Equal(t, int64(0), result.PeriodAmountMinor)
	assert.Empty(t, result.Lines)
}

func TestComputeAccrualLines_Rejects(t *testing.T) {
	same := accrual(100, 2, 1)
	same.LiabilityAccountID = same.ExpenseAccountID

	tests := []struct {
		name     string
		in       AccrualInput
		category domain.ValidationCategory
	}{
		{"zero periods", accrual(100, 0, 1), domain.CategoryOutOfRange},
		{"period zero", accrual(100, 3, 0), domain.CategoryOutOfRange},
		{"period past end", accrual(100, 3, 4), domain.CategoryOutOfRange},
		{"negative total", accrual(-100, 3, 1), domain.CategorySign},
		{"same accounts", same, domain.CategoryIdentity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ComputeAccrualLines(tt.in)
			require.ErrorIs(t, err, domain.ErrValidationFailed)
			assert.Nil(t, result)
			verr, _ := domain.AsValidationError(err)
			assert.Equal(t, tt.category, verr.Category)
		})
	}
}
