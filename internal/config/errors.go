package config

import (
	"errors"
	"fmt"
)

// ErrNotFound is matched by every *NotFoundError.
var ErrNotFound = errors.New("configuration not found")

// NotFoundError reports a configuration path that does not exist, is not a
// regular file, or cannot be read. It is returned before any parsing happens.
type NotFoundError struct {
	// Path is the configuration path that was requested.
	Path string
	// Reason says which precondition failed.
	Reason string
	// Err is the underlying error, if any.
	Err error
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("configuration %s: %s", e.Path, e.Reason)
}

// Unwrap returns the underlying error.
func (e *NotFoundError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrNotFound) hold for every NotFoundError.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// ParseError reports a configuration document that is not well-formed.
type ParseError struct {
	// Path is the file that failed to parse; empty for in-memory sources.
	Path string
	// Err is the decoder failure.
	Err error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("invalid configuration: %v", e.Err)
	}
	return fmt.Sprintf("invalid configuration %s: %v", e.Path, e.Err)
}

// Unwrap returns the decoder failure.
func (e *ParseError) Unwrap() error {
	return e.Err
}
