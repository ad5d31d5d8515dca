package schema

import (
	"errors"
	"fmt"
)

// Errors returned by schema construction.
var (
	// ErrNoProperties indicates a schema with no columns.
	ErrNoProperties = errors.New("schema has no properties")

	// ErrEmptyProperty indicates a blank property name.
	ErrEmptyProperty = errors.New("empty property name")

	// ErrDuplicateProperty indicates a property declared twice.
	ErrDuplicateProperty = errors.New("duplicate property")

	// ErrUnknownProperty indicates a reference to an undeclared property.
	ErrUnknownProperty = errors.New("unknown property")

	// ErrHeaderMismatch indicates the header map is not a bijection onto the properties.
	ErrHeaderMismatch = errors.New("header map is not a bijection")
)

// ValidationError describes a schema validation failure.
type ValidationError struct {
	// Section is the part of the schema that failed ("properties", "headers", "sortOrder").
	Section string
	// Name is the offending property or title.
	Name string
	// Err is the underlying sentinel error.
	Err error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("schema %s: %q: %v", e.Section, e.Name, e.Err)
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}
