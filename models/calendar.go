package models

// Day statuses, in derivation priority order.
const (
	DayStatusUnavailable = "unavailable" // no slot, zero capacity, or blocked
	DayStatusBooked      = "booked"      // reserved >= capacity
	DayStatusPartial     = "partial"     // 0 < reserved < capacity
	DayStatusAvailable   = "available"   // reserved == 0 and capacity > 0
)

// CalendarDay is one date in an availability calendar.
type CalendarDay struct {
	Date   string  `json:"date"` // "YYYY-MM-DD"
	Status string  `json:"status"`
	Price  float64 `json:"price"` // effective nightly price for the date
}
