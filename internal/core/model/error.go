package model

import "fmt"

// ValidationError reports a record (or request) rejected because of its
// content.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}

func NewValidationErrorf(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

type intField struct {
	Name  string
	Value int
}

func validateNonNegative(fields ...intField) error {
	for _, f := range fields {
		if f.Value < 0 {
			return NewValidationErrorf("%s must not be negative", f.Name)
		}
	}
	return nil
}
