package dto

import (
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/iho/glkernel/internal/domain"
	"github.com/iho/glkernel/internal/kernel"
	"github.com/iho/glkernel/internal/usecase"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the struct tags of a decoded request. Amount and range
// rules are left to the kernel so that they fail with a categorized error.
func Validate(req any) error {
	return validate.Struct(req)
}

// PreviewDerivationRequest runs a derivation over inline inputs.
type PreviewDerivationRequest struct {
	EventID        string               `json:"eventId"        validate:"required"`
	AmountMinor    int64                `json:"amountMinor"`
	CurrencyCode   string               `json:"currencyCode"`
	MappingVersion int64                `json:"mappingVersion"`
	Rules          []MappingRuleRequest `json:"rules"          validate:"dive"`
}

// ToKernelInput converts to kernel input.
func (r *PreviewDerivationRequest) ToKernelInput() kernel.DerivationInput {
	return kernel.DerivationInput{
		EventID:        r.EventID,
		AmountMinor:    r.AmountMinor,
		CurrencyCode:   r.CurrencyCode,
		MappingVersion: r.MappingVersion,
		Rules:          mappingRules(r.Rules),
	}
}

// MappingRuleRequest is one debit/credit split of an event amount.
type MappingRuleRequest struct {
	DebitAccountID  string          `json:"debitAccountId"  validate:"required"`
	CreditAccountID string          `json:"creditAccountId" validate:"required"`
	Fraction        decimal.Decimal `json:"fraction"`
	Description     string          `json:"description,omitempty"`
}

// PublishMappingRequest publishes the next mapping version of an event type.
type PublishMappingRequest struct {
	Rules []MappingRuleRequest `json:"rules" validate:"dive"`
}

// ToDomain converts to domain rules.
func (r *PublishMappingRequest) ToDomain() []domain.MappingRule {
	return mappingRules(r.Rules)
}

func mappingRules(in []MappingRuleRequest) []domain.MappingRule {
	rules := make([]domain.MappingRule, len(in))
	for i, rule := range in {
		rules[i] = domain.MappingRule{
			DebitAccountID:  rule.DebitAccountID,
			CreditAccountID: rule.CreditAccountID,
			Fraction:        rule.Fraction,
			Description:     rule.Description,
		}
	}
	return rules
}

// OpenPeriodRequest represents a request to open a posting period.
type OpenPeriodRequest struct {
	PeriodKey string `json:"periodKey" validate:"required"`
	StartDate string `json:"startDate" validate:"required"`
	EndDate   string `json:"endDate"   validate:"required"`
}

// ToUseCaseInput converts to use case input.
func (r *OpenPeriodRequest) ToUseCaseInput(ledgerID string) usecase.OpenPeriodInput {
	return usecase.OpenPeriodInput{
		LedgerID:  ledgerID,
		PeriodKey: r.PeriodKey,
		StartDate: r.StartDate,
		EndDate:   r.EndDate,
	}
}

// ClosePeriodRequest represents a request to close a posting period.
type ClosePeriodRequest struct {
	CloseType string `json:"closeType" validate:"required"`
}

// ToUseCaseInput converts to use case input.
func (r *ClosePeriodRequest) ToUseCaseInput(ledgerID, periodKey string) usecase.ClosePeriodInput {
	return usecase.ClosePeriodInput{
		LedgerID:  ledgerID,
		PeriodKey: periodKey,
		CloseType: domain.CloseType(r.CloseType),
	}
}

// ReclassRequest moves balances between accounts inside one period.
type ReclassRequest struct {
	PeriodKey string                `json:"periodKey" validate:"required"`
	Entries   []kernel.ReclassEntry `json:"entries"`
}

// ToUseCaseInput converts to use case input.
func (r *ReclassRequest) ToUseCaseInput(ledgerID string) usecase.ReclassInput {
	return usecase.ReclassInput{
		LedgerID:  ledgerID,
		PeriodKey: r.PeriodKey,
		Entries:   r.Entries,
	}
}

// AllocationRequest splits a source balance across weighted targets.
type AllocationRequest struct {
	PeriodKey       string                    `json:"periodKey"       validate:"required"`
	SourceAccountID string                    `json:"sourceAccountId" validate:"required"`
	TotalMinor      int64                     `json:"totalMinor"`
	Targets         []kernel.AllocationTarget `json:"targets"`
}

// ToUseCaseInput converts to use case input.
func (r *AllocationRequest) ToUseCaseInput(ledgerID string) usecase.AllocationInput {
	return usecase.AllocationInput{
		LedgerID:        ledgerID,
		PeriodKey:       r.PeriodKey,
		SourceAccountID: r.SourceAccountID,
		TotalMinor:      r.TotalMinor,
		Targets:         r.Targets,
	}
}

// AccrualRequest recognises one period of a straight-line accrual.
type AccrualRequest struct {
	PeriodKey string `json:"periodKey" validate:"required"`
	kernel.AccrualInput
}

// ToUseCaseInput converts to use case input.
func (r *AccrualRequest) ToUseCaseInput(ledgerID string) usecase.AccrualInput {
	return usecase.AccrualInput{
		LedgerID:     ledgerID,
		PeriodKey:    r.PeriodKey,
		AccrualInput: r.AccrualInput,
	}
}

// PublishCoARequest replaces a company's chart of accounts.
type PublishCoARequest struct {
	Accounts []domain.AccountNode `json:"accounts"`
}

// AllocateNumbersRequest reserves the next document numbers of a sequence.
type AllocateNumbersRequest struct {
	Count int `json:"count" validate:"required,min=1,max=10000"`
}

// ValidateDimensionsRequest checks journal lines against dimension rules.
type ValidateDimensionsRequest struct {
	Lines []domain.DimensionedLine `json:"lines"`
}
