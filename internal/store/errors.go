package store

import "github.com/pkg/errors"

var (
	// ErrNotFound means no row has the requested id.
	ErrNotFound = errors.New("patient not found")
	// ErrNoValidFields means filtering the payload against the live schema left nothing to insert.
	ErrNoValidFields = errors.New("no valid fields to insert")
	// ErrInvalidValue means a known field carried a value that cannot be stored.
	ErrInvalidValue = errors.New("invalid field value")
	// ErrColumnUnavailable means an optional column is missing from the live schema.
	ErrColumnUnavailable = errors.New("column unavailable in current schema")
)

// IsValidation reports whether err is caused by the caller's input.
func IsValidation(err error) bool {
	return errors.Is(err, ErrNoValidFields) || errors.Is(err, ErrInvalidValue)
}
