package slotRepo

import (
	"context"

	"stayhub/models"
)

// Store owns per-(listing, date) capacity counters. It is the only component
// allowed to mutate reserved counts; everything else reads through it.
type Store interface {
	// GetSlots returns one Slot per date in the range, in date order. Dates
	// without a stored slot are synthesized with capacity 0.
	GetSlots(ctx context.Context, listingID string, r models.DateRange) ([]models.Slot, error)

	// Reserve atomically checks reserved+units <= capacity for every date in
	// the range and increments reserved by units only if the check holds for
	// all of them. On failure no date is mutated and a models.OverbookedError
	// names the first failing date.
	Reserve(ctx context.Context, listingID string, r models.DateRange, units int) error

	// Release decrements reserved by units for each date, floored at zero.
	// Idempotency against double release is the caller's responsibility: the
	// ledger gates Release behind its cancelled-status transition.
	Release(ctx context.Context, listingID string, r models.DateRange, units int) error

	// UpsertSlots creates or replaces capacity records, preserving any
	// existing reserved counts.
	UpsertSlots(ctx context.Context, listingID string, slots []models.Slot) error

	// SetBlocked marks a single date blocked or unblocked.
	SetBlocked(ctx context.Context, listingID, date string, blocked bool, reason string) error
}

// fillMissing merges fetched slots onto the full date range, synthesizing
// capacity-0 slots for dates with no stored record.
func fillMissing(listingID string, r models.DateRange, found []models.Slot) []models.Slot {
	byDate := make(map[string]models.Slot, len(found))
	for _, s := range found {
		byDate[s.Date] = s
	}
	dates := r.Dates()
	out := make([]models.Slot, 0, len(dates))
	for _, d := range dates {
		if s, ok := byDate[d]; ok {
			out = append(out, s)
			continue
		}
		out = append(out, models.Slot{ListingID: listingID, Date: d, Capacity: 0})
	}
	return out
}
