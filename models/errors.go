package models

import (
	"errors"
	"fmt"
)

// ValidationError reports malformed or out-of-policy input. Never retried.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Reason)
}

func NewValidationError(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// OverbookedError signals exhausted capacity for at least one date in the
// requested range. Date names the first failing date so the client can offer
// alternatives. Retrying the same range unchanged will fail identically.
type OverbookedError struct {
	ListingID string
	Date      string
}

func (e *OverbookedError) Error() string {
	return fmt.Sprintf("no remaining capacity for listing %s on %s", e.ListingID, e.Date)
}

// NotFoundError reports a missing listing or booking.
type NotFoundError struct {
	Kind string // "listing" or "booking"
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Kind, e.ID)
}

// StateTransitionError reports a lifecycle transition attempted from a state
// that disallows it. The booking is left unchanged.
type StateTransitionError struct {
	BookingID string
	From      string
	Event     string
}

func (e *StateTransitionError) Error() string {
	return fmt.Sprintf("booking %s: cannot %s from status %q", e.BookingID, e.Event, e.From)
}

// ErrStorage is the generic retryable failure surfaced for transient
// persistence errors. Internal detail stays out of client responses.
var ErrStorage = errors.New("storage temporarily unavailable")

// StorageError wraps a transient persistence failure.
// errors.Is(err, ErrStorage) holds for every StorageError.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage failure during %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return ErrStorage }
