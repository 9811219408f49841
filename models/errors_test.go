package models

import (
	"errors"
	"testing"
)

func TestStorageErrorUnwrapsToSentinel(t *testing.T) {
	t.Parallel()
	err := &StorageError{Op: "reserve slots", Err: errors.New("connection reset")}
	if !errors.Is(err, ErrStorage) {
		t.Error("StorageError does not match ErrStorage")
	}
}

func TestErrorTypeDiscrimination(t *testing.T) {
	t.Parallel()

	var overbooked *OverbookedError
	err := error(&OverbookedError{ListingID: "listing-1", Date: "2026-03-11"})
	if !errors.As(err, &overbooked) || overbooked.Date != "2026-03-11" {
		t.Errorf("OverbookedError lost its date through errors.As: %v", err)
	}

	var transition *StateTransitionError
	err = &StateTransitionError{BookingID: "booking-1", From: BookingStatusCancelled, Event: "confirm"}
	if !errors.As(err, &transition) || transition.From != BookingStatusCancelled {
		t.Errorf("StateTransitionError lost its observed status: %v", err)
	}
}
