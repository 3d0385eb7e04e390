package workflow

import (
	"fmt"
	"strings"
)

// CompensationError is returned when a step failed and at least one
// compensation failed too.
type CompensationError struct {
	executionErr     error
	compensationErrs []error
}

func (e *CompensationError) ExecutionError() error {
	return e.executionErr
}

func (e *CompensationError) CompensationErrors() []error {
	return e.compensationErrs
}

func (e *CompensationError) Error() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "execution error '%s' could not be compensated: ", e.executionErr)

	for idx, err := range e.compensationErrs {
		if idx > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "[%d] %s", idx, err)
	}

	return sb.String()
}

// Unwrap exposes the execution error and the compensation errors to
// errors.Is and errors.As.
func (e *CompensationError) Unwrap() []error {
	return append([]error{e.executionErr}, e.compensationErrs...)
}

func NewCompensationError(executionErr error, compensationErrs ...error) *CompensationError {
	return &CompensationError{
		executionErr:     executionErr,
		compensationErrs: compensationErrs,
	}
}

var _ error = &CompensationError{}
