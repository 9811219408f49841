package reservation

import (
	"stayhub/models"
)

// GenerateCalendarDays derives the day-by-day availability for a range from a
// slot snapshot. It is pure: same inputs always yield the same output, and no
// state is read or written.
//
// Status priority per date, top to bottom:
//  1. unavailable - no slot, zero capacity, or the date is blocked
//  2. booked      - reserved >= capacity
//  3. partial     - 0 < reserved < capacity
//  4. available   - reserved == 0 and capacity > 0
func GenerateCalendarDays(r models.DateRange, slots []models.Slot, listing models.Listing) []models.CalendarDay {
	byDate := make(map[string]models.Slot, len(slots))
	for _, s := range slots {
		byDate[s.Date] = s
	}

	dates := r.Dates()
	days := make([]models.CalendarDay, 0, len(dates))
	for _, date := range dates {
		slot, ok := byDate[date]
		day := models.CalendarDay{
			Date:  date,
			Price: listing.BasePrice,
		}
		if ok {
			day.Price = slot.EffectivePrice(listing.BasePrice)
		}

		switch {
		case !ok, slot.Capacity == 0, slot.Blocked:
			day.Status = models.DayStatusUnavailable
		case slot.Reserved >= slot.Capacity:
			day.Status = models.DayStatusBooked
		case slot.Reserved > 0:
			day.Status = models.DayStatusPartial
		default:
			day.Status = models.DayStatusAvailable
		}
		days = append(days, day)
	}
	return days
}
