// internal/util/errors.go
package util

import (
	"errors"
	"fmt"
)

// Common application-specific errors.
var (
	ErrNotFound         = errors.New("transaction not found")
	ErrInvalidInput     = errors.New("invalid input provided")
	ErrInvalidSelection = errors.New("invalid transaction selection")
	ErrPersistence      = errors.New("database operation failed")
	ErrConnection       = errors.New("failed to connect to database")
)

// ValidationError describes a rejected user-supplied field value.
// It matches ErrInvalidInput and its underlying cause with errors.Is.
type ValidationError struct {
	Field string
	Value string
	Err   error
}

// NewValidationError creates a ValidationError for field with the given cause.
func NewValidationError(field, value string, cause error) *ValidationError {
	return &ValidationError{Field: field, Value: value, Err: cause}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %q: %v", e.Field, e.Value, e.Err)
}

func (e *ValidationError) Unwrap() []error {
	return []error{ErrInvalidInput, e.Err}
}

// Reason returns the human readable cause without the field prefix.
func (e *ValidationError) Reason() string {
	if e.Err == nil {
		return ErrInvalidInput.Error()
	}
	return e.Err.Error()
}
