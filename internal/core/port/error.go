package port

import "errors"

var (
	// ErrNotFound is returned when a record or a task does not exist.
	ErrNotFound = errors.New("not found")
	// ErrCanceled is returned when a task was canceled, or could not be
	// because it already finished.
	ErrCanceled = errors.New("canceled")
)
