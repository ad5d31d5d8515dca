package table

import "errors"

// Errors returned by table operations.
var (
	// ErrNilSchema indicates a table constructed without a schema.
	ErrNilSchema = errors.New("table: schema is required")

	// ErrNilRecord indicates a nil entry in the record list.
	ErrNilRecord = errors.New("table: nil record")

	// ErrInvalidWindowLength indicates a non-positive window length.
	ErrInvalidWindowLength = errors.New("table: window length must be positive")
)
