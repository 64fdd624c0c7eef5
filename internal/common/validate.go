package common

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	MaxNameLength  = 255
	MaxNotesLength = 2000
)

// ValidateRequiredString checks that a required string field is non-empty
// after trimming.
func ValidateRequiredString(value, fieldName string) error {
	if strings.TrimSpace(value) == "" {
		return NewValidationError(fieldName, "is required")
	}
	if len(value) > MaxNameLength {
		return NewValidationError(fieldName, "exceeds maximum length")
	}
	return nil
}

// ValidateOptionalString caps the length of an optional string field and
// trims it in place.
func ValidateOptionalString(value *string, fieldName string, maxLength int) error {
	if value == nil {
		return nil
	}
	*value = strings.TrimSpace(*value)
	if len(*value) > maxLength {
		return NewValidationError(fieldName, "exceeds maximum length")
	}
	return nil
}

// ValidatePositiveDecimal checks value > 0.
func ValidatePositiveDecimal(value decimal.Decimal, fieldName string) error {
	if value.LessThanOrEqual(decimal.Zero) {
		return NewValidationError(fieldName, "must be positive")
	}
	return nil
}

// ValidateNonNegativeDecimal checks value >= 0.
func ValidateNonNegativeDecimal(value decimal.Decimal, fieldName string) error {
	if value.IsNegative() {
		return NewValidationError(fieldName, "must not be negative")
	}
	return nil
}

// ValidateExactlyOneRef checks a pair of mutually exclusive references:
// exactly one of the two must be set, not both, not neither.
func ValidateExactlyOneRef(a, b *uuid.UUID, aField, bField string) error {
	if a != nil && b != nil {
		return NewValidationError(aField+"/"+bField, "exactly one reference must be set, not both")
	}
	if a == nil && b == nil {
		return NewValidationError(aField+"/"+bField, "exactly one reference must be set")
	}
	return nil
}

// ValidateUUIDParam parses a path or query UUID, returning a ValidationError
// on malformed input.
func ValidateUUIDParam(idStr, fieldName string) (uuid.UUID, error) {
	idStr = strings.TrimSpace(idStr)
	if idStr == "" {
		return uuid.Nil, NewValidationError(fieldName, "is required")
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return uuid.Nil, NewValidationError(fieldName, "is not a valid UUID")
	}
	return id, nil
}
