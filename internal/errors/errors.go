// Package errors provides domain-specific error types and sentinel errors
// for the chat pipeline. Every failure class maps to a user-facing reply in
// the chat handler; use errors.Is() to branch on these.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for the request failure taxonomy.
var (
	// ErrEmptyMessage indicates the inbound message was empty or whitespace.
	// Handled before classification; the classifier is never invoked.
	ErrEmptyMessage = errors.New("empty message")

	// ErrNoIdentifier indicates a person lookup where the extractor yielded
	// no usable identifier.
	ErrNoIdentifier = errors.New("no person identifier extractable")

	// ErrMissingParameter indicates a timetable or location query missing a
	// required field (batch name or day). Wrap with MissingParameter so the
	// reply can name the field.
	ErrMissingParameter = errors.New("missing required parameter")

	// ErrNoClasses indicates the resolved day has no timetable slot
	// (Sunday: the six-day week encoding has no bit for it).
	ErrNoClasses = errors.New("no classes on this day")

	// ErrDataAccess indicates the query dispatcher failed (connection,
	// timeout, bad query). The full cause is logged; users get a short
	// apology.
	ErrDataAccess = errors.New("data access failure")

	// ErrRenderUnavailable indicates the external text-generation call
	// failed and the deterministic fallback formatter was used instead.
	ErrRenderUnavailable = errors.New("narrative rendering unavailable")

	// ErrTimeout indicates an operation exceeded its request-scoped budget.
	ErrTimeout = errors.New("operation timed out")

	// ErrRateLimitExceeded indicates a client exceeded its request budget.
	ErrRateLimitExceeded = errors.New("rate limit exceeded")
)

// MissingParameter wraps ErrMissingParameter with the name of the field the
// user must supply ("batch name", "day").
func MissingParameter(field string) error {
	return &ParameterError{Field: field}
}

// ParameterError reports a missing query parameter by name.
type ParameterError struct {
	Field string
}

func (e *ParameterError) Error() string {
	return fmt.Sprintf("missing required parameter: %s", e.Field)
}

// Unwrap makes errors.Is(err, ErrMissingParameter) hold.
func (e *ParameterError) Unwrap() error {
	return ErrMissingParameter
}

// DataAccessError wraps a storage failure with the operation that failed.
type DataAccessError struct {
	Operation string
	Cause     error
}

func (e *DataAccessError) Error() string {
	return fmt.Sprintf("data access failure in %s: %v", e.Operation, e.Cause)
}

// Unwrap makes errors.Is(err, ErrDataAccess) hold while preserving a cause
// for the message.
func (e *DataAccessError) Unwrap() error {
	return ErrDataAccess
}

// NewDataAccessError wraps a storage failure. Returns nil if cause is nil.
func NewDataAccessError(operation string, cause error) error {
	if cause == nil {
		return nil
	}
	return &DataAccessError{Operation: operation, Cause: cause}
}
