package kernel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/glkernel/internal/domain"
)

func period(key, start, end string) domain.PostingPeriod {
	return domain.PostingPeriod{
		PeriodKey: key,
		LedgerID:  "L1",
		CompanyID: "C1",
		StartDate: start,
		EndDate:   end,
		Status:    domain.PeriodStatusOpen,
	}
}

func TestValidatePeriodOverlap(t *testing.T) {
	existing := []domain.PostingPeriod{period("FY2026-P01", "2026-01-01", "2026-01-31")}

	err := ValidatePeriodOverlap(period("FY2026-PX", "2026-01-15", "2026-02-15"), existing)
	require.ErrorIs(t, err, domain.ErrValidationFailed)
	assert.Contains(t, err.Error(), "FY2026-PX")
	assert.Contains(t, err.Error(), "FY2026-P01")

	assert.NoError(t, ValidatePeriodOverlap(period("FY2026-P02", "2026-02-01", "2026-02-28"), existing))
}

func TestValidatePeriodOverlap_InclusiveBoundaries(t *testing.T) {
	existing := []domain.PostingPeriod{period("FY2026-P01", "2026-01-01", "2026-01-31")}

	err := ValidatePeriodOverlap(period("FY2026-P02", "2026-01-31", "2026-02-28"), existing)
	assert.ErrorIs(t, err, domain.ErrValidationFailed)
}

func TestValidatePeriodOverlap_OtherLedgerIgnored(t *testing.T) {
	other := period("FY2026-P01", "2026-01-01", "2026-01-31")
	other.LedgerID = "L2"

	assert.NoError(t, ValidatePeriodOverlap(period("FY2026-P01", "2026-01-01", "2026-01-31"), []domain.PostingPeriod{other}))
}

func TestValidatePeriodOverlap_Rejects(t *testing.T) {
	existing := []domain.PostingPeriod{period("FY2026-P01", "2026-01-01", "2026-01-31")}

	tests := []struct {
		name     string
		proposed domain.PostingPeriod
		category domain.ValidationCategory
	}{
		{"duplicate key", period("FY2026-P01", "2026-03-01", "2026-03-31"), domain.CategoryIdentity},
		{"bad start", period("FY2026-P03", "2026-3-01", "2026-03-31"), domain.CategoryOutOfRange},
		{"bad end", period("FY2026-P03", "2026-03-01", "2026-02-30"), domain.CategoryOutOfRange},
		{"end before start", period("FY2026-P03", "2026-03-31", "2026-03-01"), domain.CategoryOutOfRange},
		{"blank key", period("", "2026-03-01", "2026-03-31"), domain.CategoryEmptyInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePeriodOverlap(tt.proposed, existing)
			verr, ok := domain.AsValidationError(err)
			require.True(t, ok, "expected validation error, got %v", err)
			assert.Equal(t, tt.category, verr.Category)
		})
	}
}

func TestPeriodTransitions(t *testing.T) {
	open := period("FY2026-P01", "2026-01-01", "2026-01-31")

	soft, err := SoftClose(open)
	require.NoError(t, err)
	assert.Equal(t, domain.PeriodStatusSoftClose, soft.Status)

	hard, err := HardClose(soft)
	require.NoError(t, err)
	assert.Equal(t, domain.PeriodStatusHardClose, hard.Status)

	direct, err := HardClose(open)
	require.NoError(t, err)
	assert.Equal(t, domain.PeriodStatusHardClose, direct.Status)

	_, err = SoftClose(soft)
	assert.ErrorIs(t, err, domain.ErrValidationFailed)
	_, err = SoftClose(hard)
	assert.ErrorIs(t, err, domain.ErrValidationFailed)
	_, err = HardClose(hard)
	assert.ErrorIs(t, err, domain.ErrValidationFailed)

	_, err = ClosePeriod(open, domain.CloseType("final"))
	assert.ErrorIs(t, err, domain.ErrValidationFailed)

	closed, err := ClosePeriod(open, domain.CloseTypeSoft)
	require.NoError(t, err)
	assert.Equal(t, domain.PeriodStatusSoftClose, closed.Status)
	assert.Equal(t, domain.PeriodStatusOpen, open.Status)
}

func TestCheckPostingAllowed(t *testing.T) {
	p := period("FY2026-P01", "2026-01-01", "2026-01-31")
	assert.NoError(t, CheckPostingAllowed(p))

	p.Status = domain.PeriodStatusSoftClose
	assert.ErrorIs(t, CheckPostingAllowed(p), domain.ErrValidationFailed)
}
