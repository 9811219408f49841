package models

import (
	"reflect"
	"testing"
)

func TestParseDateRange(t *testing.T) {
	t.Parallel()

	t.Run("valid range", func(t *testing.T) {
		t.Parallel()
		r, err := ParseDateRange("2026-03-10", "2026-03-13")
		if err != nil {
			t.Fatalf("ParseDateRange: %v", err)
		}
		if r.Nights() != 3 {
			t.Errorf("nights = %d, want 3", r.Nights())
		}
		want := []string{"2026-03-10", "2026-03-11", "2026-03-12"}
		if !reflect.DeepEqual(r.Dates(), want) {
			t.Errorf("dates = %v, want %v", r.Dates(), want)
		}
	})

	t.Run("start must be before end", func(t *testing.T) {
		t.Parallel()
		if _, err := ParseDateRange("2026-03-13", "2026-03-10"); err == nil {
			t.Error("reversed range accepted")
		}
		if _, err := ParseDateRange("2026-03-10", "2026-03-10"); err == nil {
			t.Error("empty range accepted")
		}
	})

	t.Run("malformed dates are rejected", func(t *testing.T) {
		t.Parallel()
		if _, err := ParseDateRange("03/10/2026", "2026-03-13"); err == nil {
			t.Error("malformed start accepted")
		}
		if _, err := ParseDateRange("2026-03-10", "not-a-date"); err == nil {
			t.Error("malformed end accepted")
		}
	})

	t.Run("range crossing a month boundary", func(t *testing.T) {
		t.Parallel()
		r, err := ParseDateRange("2026-02-27", "2026-03-02")
		if err != nil {
			t.Fatalf("ParseDateRange: %v", err)
		}
		want := []string{"2026-02-27", "2026-02-28", "2026-03-01"}
		if !reflect.DeepEqual(r.Dates(), want) {
			t.Errorf("dates = %v, want %v", r.Dates(), want)
		}
	})
}
