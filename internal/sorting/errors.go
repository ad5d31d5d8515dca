package sorting

import (
	"errors"
	"fmt"
)

// Errors for sort operations.
var (
	// ErrInvalidMode is raised when a comparator mode is neither Less nor Greater.
	ErrInvalidMode = errors.New("invalid comparator mode")

	// ErrUnknownAlgorithm is returned when parsing an unrecognized algorithm name.
	ErrUnknownAlgorithm = errors.New("unknown sort algorithm")

	// ErrUnknownDirection is returned when parsing an unrecognized direction.
	ErrUnknownDirection = errors.New("unknown sort direction")
)

// InvariantError reports a programming defect inside the sort engine.
// It is raised with panic and is never expected through the public surface.
type InvariantError struct {
	// Op is the operation that detected the violation.
	Op string
	// Value is the offending value.
	Value any
	// Err is the underlying sentinel.
	Err error
}

// Error implements the error interface.
func (e *InvariantError) Error() string {
	return fmt.Sprintf("sorting: %s: %v (value: %v)", e.Op, e.Err, e.Value)
}

// Unwrap returns the underlying error.
func (e *InvariantError) Unwrap() error {
	return e.Err
}
