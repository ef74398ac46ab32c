package kernel

import (
	"time"

	"github.com/iho/glkernel/internal/domain"
)

// ValidatePeriodOverlap rejects a proposed period whose dates are malformed,
// whose key is already used, or whose range intersects an existing period of
// the same ledger and company. Ranges are inclusive on both ends.
func ValidatePeriodOverlap(proposed domain.PostingPeriod, existing []domain.PostingPeriod) error {
	if err := validatePeriodDates(proposed); err != nil {
		return err
	}

	for _, other := range existing {
		if other.LedgerID != proposed.LedgerID || other.CompanyID != proposed.CompanyID {
			continue
		}

		if other.PeriodKey == proposed.PeriodKey {
			return domain.NewValidationError(domain.CategoryIdentity,
				map[string]any{"periodKey": proposed.PeriodKey, "ledgerId": proposed.LedgerID, "companyId": proposed.CompanyID},
				"period %s already exists for ledger %s", proposed.PeriodKey, proposed.LedgerID)
		}

		if proposed.StartDate <= other.EndDate && proposed.EndDate >= other.StartDate {
			return domain.NewValidationError(domain.CategoryOutOfRange,
				map[string]any{
					"periodKey":         proposed.PeriodKey,
					"conflictPeriodKey": other.PeriodKey,
					"ledgerId":          proposed.LedgerID,
				},
				"period %s [%s, %s] overlaps %s [%s, %s]",
				proposed.PeriodKey, proposed.StartDate, proposed.EndDate,
				other.PeriodKey, other.StartDate, other.EndDate)
		}
	}

	return nil
}

func validatePeriodDates(p domain.PostingPeriod) error {
	if err := domain.ValidateIdentifier("periodKey", p.PeriodKey); err != nil {
		return err
	}

	start, err := time.Parse(domain.DateLayout, p.StartDate)
	if err != nil {
		return domain.NewValidationError(domain.CategoryOutOfRange,
			map[string]any{"periodKey": p.PeriodKey, "startDate": p.StartDate},
			"period %s start date %q is not YYYY-MM-DD", p.PeriodKey, p.StartDate)
	}

	end, err := time.Parse(domain.DateLayout, p.EndDate)
	if err != nil {
		return domain.NewValidationError(domain.CategoryOutOfRange,
			map[string]any{"periodKey": p.PeriodKey, "endDate": p.EndDate},
			"period %s end date %q is not YYYY-MM-DD", p.PeriodKey, p.EndDate)
	}

	if end.Before(start) {
		return domain.NewValidationError(domain.CategoryOutOfRange,
			map[string]any{"periodKey": p.PeriodKey, "startDate": p.StartDate, "endDate": p.EndDate},
			"period %s ends %s before it starts %s", p.PeriodKey, p.EndDate, p.StartDate)
	}

	return nil
}

// SoftClose moves an open period to soft_close.
func SoftClose(p domain.PostingPeriod) (domain.PostingPeriod, error) {
	if p.Status != domain.PeriodStatusOpen {
		return p, domain.NewValidationError(domain.CategoryOutOfRange,
			map[string]any{"periodKey": p.PeriodKey, "status": string(p.Status)},
			"period %s cannot be soft closed from status %s", p.PeriodKey, p.Status)
	}
	p.Status = domain.PeriodStatusSoftClose
	return p, nil
}

// HardClose moves an open or soft-closed period to hard_close.
func HardClose(p domain.PostingPeriod) (domain.PostingPeriod, error) {
	if !p.Status.IsValid() || p.Status == domain.PeriodStatusHardClose {
		return p, domain.NewValidationError(domain.CategoryOutOfRange,
			map[string]any{"periodKey": p.PeriodKey, "status": string(p.Status)},
			"period %s cannot be hard closed from status %s", p.PeriodKey, p.Status)
	}
	p.Status = domain.PeriodStatusHardClose
	return p, nil
}

// ClosePeriod applies the transition named by closeType.
func ClosePeriod(p domain.PostingPeriod, closeType domain.CloseType) (domain.PostingPeriod, error) {
	switch closeType {
	case domain.CloseTypeSoft:
		return SoftClose(p)
	case domain.CloseTypeHard:
		return HardClose(p)
	default:
		return p, domain.NewValidationError(domain.CategoryOutOfRange,
			map[string]any{"closeType": string(closeType)},
			"unknown close type %q", closeType)
	}
}

// CheckPostingAllowed fails unless the period is open.
func CheckPostingAllowed(p domain.PostingPeriod) error {
	if p.Status != domain.PeriodStatusOpen {
		return domain.NewValidationError(domain.CategoryOutOfRange,
			map[string]any{"periodKey": p.PeriodKey, "status": string(p.Status)},
			"period %s is %s; postings are not allowed", p.PeriodKey, p.Status)
	}
	return nil
}
