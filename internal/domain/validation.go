package domain

import (
	"regexp"
	"strings"
	"time"
)

// Valid currency codes (ISO 4217)
var validCurrencies = map[string]bool{
	"USD": true, "EUR": true, "GBP": true, "JPY": true,
	"CNY": true, "AUD": true, "CAD": true, "CHF": true,
	"SEK": true, "NZD": true, "KRW": true, "SGD": true,
	"NOK": true, "MXN": true, "INR": true, "BRL": true,
	"ZAR": true, "RUB": true, "TRY": true, "HKD": true,
	"IDR": true, "MYR": true, "PHP": true, "THB": true,
}

var currencyPattern = regexp.MustCompile(`^[A-Z]{3}$`)

// ValidateCurrency validates an ISO 4217 currency code. Codes must already be upper case.
func ValidateCurrency(currency string) error {
	if !currencyPattern.MatchString(currency) || !validCurrencies[currency] {
		return NewValidationError(CategoryOutOfRange,
			map[string]any{"currencyCode": currency},
			"%q is not a valid ISO 4217 currency code", currency)
	}
	return nil
}

// ValidateDate checks a zero-padded YYYY-MM-DD calendar date.
func ValidateDate(field, value string) error {
	if _, err := time.Parse(DateLayout, value); err != nil {
		return NewValidationError(CategoryOutOfRange,
			map[string]any{field: value},
			"%s %q is not a YYYY-MM-DD date", field, value)
	}
	return nil
}

// ValidateIdentifier rejects blank identifiers.
func ValidateIdentifier(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return NewValidationError(CategoryEmptyInput, map[string]any{"field": field}, "%s is required", field)
	}
	return nil
}
