package slotRepo

import (
	"context"
	"errors"
	"sync"
	"testing"

	"stayhub/models"
)

func seedStore(t *testing.T, capacity int, dates ...string) *MemorySlotStore {
	t.Helper()
	store := NewMemorySlotStore()
	slots := make([]models.Slot, 0, len(dates))
	for _, d := range dates {
		slots = append(slots, models.Slot{Date: d, Capacity: capacity})
	}
	if err := store.UpsertSlots(context.Background(), "listing-1", slots); err != nil {
		t.Fatalf("UpsertSlots: %v", err)
	}
	return store
}

func storeRange(t *testing.T, start, end string) models.DateRange {
	t.Helper()
	r, err := models.ParseDateRange(start, end)
	if err != nil {
		t.Fatalf("ParseDateRange: %v", err)
	}
	return r
}

func TestMemoryStoreReserveAllOrNothing(t *testing.T) {
	t.Parallel()
	// Only the first two dates have stock; the third is missing entirely.
	store := seedStore(t, 2, "2026-03-10", "2026-03-11")
	r := storeRange(t, "2026-03-10", "2026-03-13")

	err := store.Reserve(context.Background(), "listing-1", r, 1)
	var overbooked *models.OverbookedError
	if !errors.As(err, &overbooked) {
		t.Fatalf("err = %v, want OverbookedError", err)
	}
	if overbooked.Date != "2026-03-12" {
		t.Errorf("failing date = %s, want 2026-03-12", overbooked.Date)
	}

	// Nothing was incremented on the dates that would have succeeded.
	slots, err := store.GetSlots(context.Background(), "listing-1", storeRange(t, "2026-03-10", "2026-03-12"))
	if err != nil {
		t.Fatalf("GetSlots: %v", err)
	}
	for _, s := range slots {
		if s.Reserved != 0 {
			t.Errorf("reserved on %s = %d, want 0", s.Date, s.Reserved)
		}
	}
}

func TestMemoryStoreReserveRespectsCapacity(t *testing.T) {
	t.Parallel()
	store := seedStore(t, 2, "2026-03-10")
	r := storeRange(t, "2026-03-10", "2026-03-11")
	ctx := context.Background()

	if err := store.Reserve(ctx, "listing-1", r, 1); err != nil {
		t.Fatalf("first reserve: %v", err)
	}
	if err := store.Reserve(ctx, "listing-1", r, 1); err != nil {
		t.Fatalf("second reserve: %v", err)
	}

	err := store.Reserve(ctx, "listing-1", r, 1)
	var overbooked *models.OverbookedError
	if !errors.As(err, &overbooked) {
		t.Fatalf("third reserve err = %v, want OverbookedError", err)
	}
}

func TestMemoryStoreReserveBlockedDate(t *testing.T) {
	t.Parallel()
	store := seedStore(t, 2, "2026-03-10")
	ctx := context.Background()

	if err := store.SetBlocked(ctx, "listing-1", "2026-03-10", true, "maintenance"); err != nil {
		t.Fatalf("SetBlocked: %v", err)
	}

	err := store.Reserve(ctx, "listing-1", storeRange(t, "2026-03-10", "2026-03-11"), 1)
	var overbooked *models.OverbookedError
	if !errors.As(err, &overbooked) {
		t.Fatalf("err = %v, want OverbookedError for blocked date", err)
	}
}

func TestMemoryStoreReleaseFloorsAtZero(t *testing.T) {
	t.Parallel()
	store := seedStore(t, 2, "2026-03-10")
	r := storeRange(t, "2026-03-10", "2026-03-11")
	ctx := context.Background()

	if err := store.Reserve(ctx, "listing-1", r, 1); err != nil {
		t.Fatalf("Reserve: %v", err)
	}
	if err := store.Release(ctx, "listing-1", r, 1); err != nil {
		t.Fatalf("Release: %v", err)
	}
	if err := store.Release(ctx, "listing-1", r, 1); err != nil {
		t.Fatalf("second Release: %v", err)
	}

	slots, err := store.GetSlots(ctx, "listing-1", r)
	if err != nil {
		t.Fatalf("GetSlots: %v", err)
	}
	if slots[0].Reserved != 0 {
		t.Errorf("reserved = %d, want 0 (never negative)", slots[0].Reserved)
	}
}

func TestMemoryStoreGetSlotsSynthesizesMissing(t *testing.T) {
	t.Parallel()
	store := seedStore(t, 2, "2026-03-11")
	r := storeRange(t, "2026-03-10", "2026-03-12")

	slots, err := store.GetSlots(context.Background(), "listing-1", r)
	if err != nil {
		t.Fatalf("GetSlots: %v", err)
	}
	if len(slots) != 2 {
		t.Fatalf("len(slots) = %d, want 2", len(slots))
	}
	if slots[0].Date != "2026-03-10" || slots[0].Capacity != 0 {
		t.Errorf("missing date slot = %+v, want synthesized capacity 0", slots[0])
	}
	if slots[1].Date != "2026-03-11" || slots[1].Capacity != 2 {
		t.Errorf("stored slot = %+v, want capacity 2", slots[1])
	}
}

func TestMemoryStoreUpsertPreservesReserved(t *testing.T) {
	t.Parallel()
	store := seedStore(t, 2, "2026-03-10")
	r := storeRange(t, "2026-03-10", "2026-03-11")
	ctx := context.Background()

	if err := store.Reserve(ctx, "listing-1", r, 1); err != nil {
		t.Fatalf("Reserve: %v", err)
	}
	if err := store.UpsertSlots(ctx, "listing-1", []models.Slot{{Date: "2026-03-10", Capacity: 5, BasePrice: 120}}); err != nil {
		t.Fatalf("UpsertSlots: %v", err)
	}

	slots, err := store.GetSlots(ctx, "listing-1", r)
	if err != nil {
		t.Fatalf("GetSlots: %v", err)
	}
	if slots[0].Capacity != 5 || slots[0].BasePrice != 120 {
		t.Errorf("slot = %+v, want updated capacity and price", slots[0])
	}
	if slots[0].Reserved != 1 {
		t.Errorf("reserved = %d, want 1 preserved across upsert", slots[0].Reserved)
	}
}

func TestMemoryStoreSetBlockedUnknownDate(t *testing.T) {
	t.Parallel()
	store := NewMemorySlotStore()

	err := store.SetBlocked(context.Background(), "listing-1", "2026-03-10", true, "")
	var notFound *models.NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("err = %v, want NotFoundError", err)
	}
}

func TestMemoryStoreConcurrentReserve(t *testing.T) {
	t.Parallel()
	const capacity = 3
	store := seedStore(t, capacity, "2026-03-10")
	r := storeRange(t, "2026-03-10", "2026-03-11")

	const attempts = 10
	var wg sync.WaitGroup
	errs := make(chan error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- store.Reserve(context.Background(), "listing-1", r, 1)
		}()
	}
	wg.Wait()
	close(errs)

	wins := 0
	for err := range errs {
		if err == nil {
			wins++
		}
	}
	if wins != capacity {
		t.Errorf("winners = %d, want %d", wins, capacity)
	}

	slots, err := store.GetSlots(context.Background(), "listing-1", r)
	if err != nil {
		t.Fatalf("GetSlots: %v", err)
	}
	if slots[0].Reserved != capacity {
		t.Errorf("reserved = %d, want %d", slots[0].Reserved, capacity)
	}
}
