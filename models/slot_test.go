package models

import "testing"

func TestSlotEffectivePrice(t *testing.T) {
	t.Parallel()
	s := Slot{BasePrice: 150}
	if got := s.EffectivePrice(100); got != 150 {
		t.Errorf("override price = %v, want 150", got)
	}
	s.BasePrice = 0
	if got := s.EffectivePrice(100); got != 100 {
		t.Errorf("default price = %v, want 100", got)
	}
}

func TestSlotRemaining(t *testing.T) {
	t.Parallel()
	cases := []struct {
		capacity, reserved, want int
	}{
		{2, 0, 2},
		{2, 1, 1},
		{2, 2, 0},
		{2, 3, 0}, // never negative
		{0, 0, 0},
	}
	for _, tc := range cases {
		s := Slot{Capacity: tc.capacity, Reserved: tc.reserved}
		if got := s.Remaining(); got != tc.want {
			t.Errorf("Remaining with %d/%d = %d, want %d", tc.reserved, tc.capacity, got, tc.want)
		}
	}
}
