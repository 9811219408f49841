package slotRepo

import (
	"context"
	"sync"

	"stayhub/models"
)

// MemorySlotStore implements Store with an in-process map guarded by a single
// mutex. Suitable for tests and single-node deployments; the mutex is the
// critical section that gives Reserve its at-most-one-winner guarantee.
type MemorySlotStore struct {
	mu    sync.Mutex
	slots map[string]*models.Slot // key: listingID + "|" + date
}

func NewMemorySlotStore() *MemorySlotStore {
	return &MemorySlotStore{slots: make(map[string]*models.Slot)}
}

func slotKey(listingID, date string) string {
	return listingID + "|" + date
}

func (repo *MemorySlotStore) GetSlots(_ context.Context, listingID string, r models.DateRange) ([]models.Slot, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	var found []models.Slot
	for _, date := range r.Dates() {
		if s, ok := repo.slots[slotKey(listingID, date)]; ok {
			found = append(found, *s)
		}
	}
	return fillMissing(listingID, r, found), nil
}

// Reserve checks every date before mutating any, so a failed range leaves all
// counters untouched.
func (repo *MemorySlotStore) Reserve(_ context.Context, listingID string, r models.DateRange, units int) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	dates := r.Dates()
	for _, date := range dates {
		s, ok := repo.slots[slotKey(listingID, date)]
		if !ok || s.Blocked || s.Reserved+units > s.Capacity {
			return &models.OverbookedError{ListingID: listingID, Date: date}
		}
	}
	for _, date := range dates {
		repo.slots[slotKey(listingID, date)].Reserved += units
	}
	return nil
}

func (repo *MemorySlotStore) Release(_ context.Context, listingID string, r models.DateRange, units int) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	for _, date := range r.Dates() {
		if s, ok := repo.slots[slotKey(listingID, date)]; ok {
			s.Reserved -= units
			if s.Reserved < 0 {
				s.Reserved = 0
			}
		}
	}
	return nil
}

func (repo *MemorySlotStore) UpsertSlots(_ context.Context, listingID string, slots []models.Slot) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	for _, s := range slots {
		key := slotKey(listingID, s.Date)
		if existing, ok := repo.slots[key]; ok {
			s.Reserved = existing.Reserved
		}
		s.ListingID = listingID
		stored := s
		repo.slots[key] = &stored
	}
	return nil
}

func (repo *MemorySlotStore) SetBlocked(_ context.Context, listingID, date string, blocked bool, reason string) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	s, ok := repo.slots[slotKey(listingID, date)]
	if !ok {
		return &models.NotFoundError{Kind: "slot", ID: listingID + "/" + date}
	}
	s.Blocked = blocked
	s.BlockReason = reason
	return nil
}
