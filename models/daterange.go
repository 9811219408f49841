package models

import (
	"fmt"
	"time"
)

// DateLayout is the calendar-date format used at every API and storage boundary.
const DateLayout = "2006-01-02"

// DateRange is a half-open span of calendar days: Start inclusive, End exclusive.
// Both bounds are UTC midnights with no time component.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// ParseDateRange builds a DateRange from "YYYY-MM-DD" strings and validates start < end.
func ParseDateRange(start, end string) (DateRange, error) {
	s, err := time.ParseInLocation(DateLayout, start, time.UTC)
	if err != nil {
		return DateRange{}, fmt.Errorf("invalid start date %q: %w", start, err)
	}
	e, err := time.ParseInLocation(DateLayout, end, time.UTC)
	if err != nil {
		return DateRange{}, fmt.Errorf("invalid end date %q: %w", end, err)
	}
	if !s.Before(e) {
		return DateRange{}, fmt.Errorf("start date %s must be before end date %s", start, end)
	}
	return DateRange{Start: s, End: e}, nil
}

// Nights returns the number of calendar days covered by the range.
func (r DateRange) Nights() int {
	return int(r.End.Sub(r.Start).Hours() / 24)
}

// Dates returns every date in the range, in order, formatted with DateLayout.
func (r DateRange) Dates() []string {
	dates := make([]string, 0, r.Nights())
	for d := r.Start; d.Before(r.End); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d.Format(DateLayout))
	}
	return dates
}

func (r DateRange) String() string {
	return r.Start.Format(DateLayout) + "/" + r.End.Format(DateLayout)
}
