package config

import (
	"errors"
	"fmt"
)

// Errors returned by configuration operations.
var (
	// ErrInvalidValue indicates a setting holds a value of the wrong type
	// or outside its allowed range.
	ErrInvalidValue = errors.New("invalid value")

	// ErrUnknownReference indicates a setting names a column or format
	// that is not declared.
	ErrUnknownReference = errors.New("unknown reference")

	// ErrDuplicate indicates a name declared more than once.
	ErrDuplicate = errors.New("duplicate name")
)

// ValidationErrorCode categorizes validation errors.
type ValidationErrorCode int

const (
	// CodeRange indicates a value out of range.
	CodeRange ValidationErrorCode = iota + 1
	// CodeEnum indicates a value not in the allowed set.
	CodeEnum
	// CodeRequired indicates a missing required value.
	CodeRequired
	// CodeReference indicates a dangling reference.
	CodeReference
	// CodeDuplicate indicates a repeated name.
	CodeDuplicate
	// CodeType indicates a value of the wrong type.
	CodeType
)

// String returns the code name.
func (c ValidationErrorCode) String() string {
	switch c {
	case CodeRange:
		return "range"
	case CodeEnum:
		return "enum"
	case CodeRequired:
		return "required"
	case CodeReference:
		return "reference"
	case CodeDuplicate:
		return "duplicate"
	case CodeType:
		return "type"
	default:
		return "unknown"
	}
}

// ValidationError describes a validation failure for a setting.
type ValidationError struct {
	// Path is the setting path that failed validation.
	Path string
	// Message describes the validation error.
	Message string
	// Value is the invalid value.
	Value any
	// Code categorizes the validation error.
	Code ValidationErrorCode
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("validation error for %s: %s (got %v)", e.Path, e.Message, e.Value)
	}
	return fmt.Sprintf("validation error for %s: %s", e.Path, e.Message)
}

// Unwrap maps the code onto a sentinel.
func (e *ValidationError) Unwrap() error {
	switch e.Code {
	case CodeReference:
		return ErrUnknownReference
	case CodeDuplicate:
		return ErrDuplicate
	default:
		return ErrInvalidValue
	}
}
