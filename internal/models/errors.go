package models

import (
	"errors"
	"fmt"
)

// Common error types
var (
	ErrNotFound = errors.New("resource not found")
)

// ValidationError carries per-field messages for a rejected form submission,
// plus a summary message for the whole form.
type ValidationError struct {
	FieldErrors map[string][]string
	Message     string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// PersistenceError is a storage failure collapsed to a single user-facing
// message. The underlying cause is kept for logging only and is never
// surfaced to the caller.
type PersistenceError struct {
	Message string
	Err     error
}

func (e *PersistenceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// ErrNotFoundWithMsg creates a not found error with custom message
func ErrNotFoundWithMsg(message string) error {
	return fmt.Errorf("%s: %w", message, ErrNotFound)
}
