package common

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// The four error kinds every stock-mutating operation can surface. They
// propagate unchanged up to the handlers, which translate them into HTTP
// responses; nothing below the handler layer swallows them or substitutes
// defaults.

// ValidationError reports a structurally invalid entity or argument,
// detected before any mutation.
type ValidationError struct {
	Field string
	Rule  string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Rule)
}

// NewValidationError builds a ValidationError for a field and the rule it broke.
func NewValidationError(field, rule string) *ValidationError {
	return &ValidationError{Field: field, Rule: rule}
}

// InvalidAdjustmentError reports a quantity change that would drive a stock
// quantity negative. The prior quantity is left untouched.
type InvalidAdjustmentError struct {
	Requested decimal.Decimal // attempted reduction, positive
	Available decimal.Decimal
}

func (e *InvalidAdjustmentError) Error() string {
	return fmt.Sprintf("insufficient stock: requested %s, available %s", e.Requested, e.Available)
}

// ExceedsOrderedError reports a receipt or pick that would push the recorded
// quantity past the ordered quantity. Rejected before mutation.
type ExceedsOrderedError struct {
	Ordered   decimal.Decimal
	Recorded  decimal.Decimal // already received or picked
	Requested decimal.Decimal
}

func (e *ExceedsOrderedError) Error() string {
	return fmt.Sprintf("quantity %s exceeds ordered: %s of %s already recorded", e.Requested, e.Recorded, e.Ordered)
}

// NotFoundError reports a referenced entity that does not exist when required.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

// NewNotFoundError builds a NotFoundError for a resource and its identifier.
func NewNotFoundError(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// IsNotFound reports whether err is (or wraps) a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
