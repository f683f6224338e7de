package model

import (
	"errors"
	"fmt"
)

// ErrValidation is the sentinel behind every rejected analysis input. Callers
// match it with errors.Is and surface the message verbatim.
var ErrValidation = errors.New("validation failed")

// ValidationError reports which input field was rejected and why. Reason is a
// user-facing message.
type ValidationError struct {
	Field  string
	Reason string
}

// Error returns the user-facing reason.
func (e *ValidationError) Error() string { return e.Reason }

// Unwrap links the error to ErrValidation.
func (e *ValidationError) Unwrap() error { return ErrValidation }

func invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}
