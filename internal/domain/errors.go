package domain

import (
	"errors"
	"fmt"
)

// ErrValidationFailed is matched by every ValidationError via errors.Is.
var ErrValidationFailed = errors.New("validation failed")

var (
	// Read model errors
	ErrEventNotFound    = errors.New("accounting event not found")
	ErrMappingNotFound  = errors.New("no current mapping version for event type")
	ErrLedgerNotFound   = errors.New("ledger not found")
	ErrPeriodNotFound   = errors.New("posting period not found")
	ErrCoANotFound      = errors.New("chart of accounts not found")
	ErrSequenceNotFound = errors.New("document sequence not found")
	ErrCommandNotFound  = errors.New("command not found")

	// Write path gating errors
	ErrLedgerInactive = errors.New("ledger is not active")
	ErrPeriodNotOpen  = errors.New("posting period is not open")

	// ErrUnbalanced means computed lines do not net to zero; it signals a bug,
	// not bad input.
	ErrUnbalanced = errors.New("journal lines are unbalanced")
)

// ValidationCategory classifies a ValidationError.
type ValidationCategory string

const (
	CategoryEmptyInput ValidationCategory = "empty_input"
	CategoryOutOfRange ValidationCategory = "out_of_range"
	CategorySign       ValidationCategory = "sign"
	CategoryIdentity   ValidationCategory = "identity"
	CategoryStructural ValidationCategory = "structural"
)

// ValidationError is the single failure type produced by the kernel.
type ValidationError struct {
	Category ValidationCategory
	Message  string
	Context  map[string]any
}

// NewValidationError builds a ValidationError with a formatted message.
func NewValidationError(category ValidationCategory, context map[string]any, format string, args ...any) *ValidationError {
	return &ValidationError{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
		Context:  context,
	}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", ErrValidationFailed.Error(), e.Message)
}

// Is reports whether target is ErrValidationFailed.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidationFailed
}

// AsValidationError unwraps err into a *ValidationError.
func AsValidationError(err error) (*ValidationError, bool) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr, true
	}
	return nil, false
}
