package kernel

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/iho/glkernel/internal/domain"
	"github.com/iho/glkernel/internal/kernel/fingerprint"
)

// DerivationIDPrefix prefixes every derivation identity.
const DerivationIDPrefix = "deriv-"

var fractionCeiling = decimal.NewFromInt(1)

// DerivationInput is one event amount plus the mapping version to apply.
type DerivationInput struct {
	EventID        string               `json:"eventId"`
	AmountMinor    int64                `json:"amountMinor"`
	CurrencyCode   string               `json:"currencyCode"`
	MappingVersion int64                `json:"mappingVersion"`
	Rules          []domain.MappingRule `json:"rules"`
}

// Derive turns an event amount into balanced journal lines.
// Either every rule is processed or an error is returned and no lines exist.
func Derive(in DerivationInput) (*domain.DerivationResult, error) {
	if err := validateDerivationInput(in); err != nil {
		return nil, err
	}

	derivationID, inputsHash, err := DerivationIdentity(in)
	if err != nil {
		return nil, err
	}

	result := &domain.DerivationResult{
		DerivationID: derivationID,
		InputsHash:   inputsHash,
		JournalLines: make([]domain.DerivedJournalLine, 0, len(in.Rules)*2),
		SkippedRules: []domain.SkippedRule{},
	}

	for i, rule := range in.Rules {
		amount := mulRoundHalfUp(in.AmountMinor, rule.Fraction)
		if amount == 0 {
			result.SkippedRules = append(result.SkippedRules, domain.SkippedRule{
				RuleIndex: i,
				Rule:      rule,
				Reason:    domain.SkipReasonZeroAmount,
			})
			continue
		}

		result.JournalLines = append(result.JournalLines,
			domain.DerivedJournalLine{AccountID: rule.DebitAccountID, Side: domain.SideDebit, AmountMinor: amount},
			domain.DerivedJournalLine{AccountID: rule.CreditAccountID, Side: domain.SideCredit, AmountMinor: amount},
		)
		result.TotalDebitMinor += amount
		result.TotalCreditMinor += amount
	}

	if err := checkBalanced(result); err != nil {
		return nil, err
	}

	return result, nil
}

// checkBalanced verifies that the lines net to zero and match the totals.
func checkBalanced(result *domain.DerivationResult) error {
	debit, credit := domain.SumLines(result.JournalLines)
	if debit != credit || debit != result.TotalDebitMinor || credit != result.TotalCreditMinor {
		return fmt.Errorf("%w: lines %d/%d, totals %d/%d", domain.ErrUnbalanced,
			debit, credit, result.TotalDebitMinor, result.TotalCreditMinor)
	}
	return nil
}

// DerivationIdentity computes the two-hash identity of a derivation:
// inputsHash over the canonical fingerprint of the semantic inputs, and
// derivationId over {eventId, inputsHash, mappingVersion}.
func DerivationIdentity(in DerivationInput) (derivationID, inputsHash string, err error) {
	inputsHash, err = fingerprint.HashValue(map[string]any{
		"amountMinor":    in.AmountMinor,
		"currencyCode":   in.CurrencyCode,
		"eventId":        in.EventID,
		"mappingVersion": in.MappingVersion,
		"ruleCount":      len(in.Rules),
	})
	if err != nil {
		return "", "", fmt.Errorf("derivation fingerprint: %w", err)
	}

	idHash, err := fingerprint.HashValue(map[string]any{
		"eventId":        in.EventID,
		"inputsHash":     inputsHash,
		"mappingVersion": in.MappingVersion,
	})
	if err != nil {
		return "", "", fmt.Errorf("derivation id: %w", err)
	}

	return DerivationIDPrefix + idHash, inputsHash, nil
}

func validateDerivationInput(in DerivationInput) error {
	if len(in.Rules) == 0 {
		return domain.NewValidationError(domain.CategoryEmptyInput,
			map[string]any{"eventId": in.EventID, "mappingVersion": in.MappingVersion},
			"no mapping rules for event %s (mapping version %d)", in.EventID, in.MappingVersion)
	}

	if in.AmountMinor < 0 {
		return domain.NewValidationError(domain.CategorySign,
			map[string]any{"eventId": in.EventID, "amountMinor": in.AmountMinor},
			"event %s amount %d must not be negative", in.EventID, in.AmountMinor)
	}

	for i, rule := range in.Rules {
		if err := ValidateMappingRule(i, rule); err != nil {
			return err
		}
	}

	return nil
}

// ValidateMappingRule checks that a rule names both accounts and has a fraction in (0, 1].
func ValidateMappingRule(index int, rule domain.MappingRule) error {
	if rule.DebitAccountID == "" || rule.CreditAccountID == "" {
		return domain.NewValidationError(domain.CategoryEmptyInput,
			map[string]any{"ruleIndex": index},
			"rule %d must name both a debit and a credit account", index)
	}

	if rule.DebitAccountID == rule.CreditAccountID {
		return domain.NewValidationError(domain.CategoryIdentity,
			map[string]any{"ruleIndex": index, "accountId": rule.DebitAccountID},
			"rule %d debits and credits the same account %s", index, rule.DebitAccountID)
	}

	if !rule.Fraction.IsPositive() || rule.Fraction.GreaterThan(fractionCeiling) {
		return domain.NewValidationError(domain.CategoryOutOfRange,
			map[string]any{"ruleIndex": index, "fraction": rule.Fraction.String()},
			"rule %d fraction %s must be in (0, 1]", index, rule.Fraction.String())
	}

	return nil
}
