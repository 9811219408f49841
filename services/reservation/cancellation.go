package reservation

import (
	"time"

	"stayhub/models"
	"stayhub/utils"

	"go.uber.org/zap"
)

// ComputeRefund applies the listing's cancellation policy to a booking:
// full refund at least FullRefundDays before the stay starts, the partial
// rate at least PartialRefundDays before, zero inside that window, once the
// stay has begun, or for a no-show.
//
// Refund math fails closed: if the booking's stored dates cannot be parsed the
// refund is zero and the anomaly is logged, but no error is returned. Capacity
// release takes priority over refund precision, so cancellation must never be
// blocked by broken refund inputs.
func ComputeRefund(booking *models.Booking, policy models.CancellationPolicy, now time.Time) float64 {
	if booking.Status == models.BookingStatusNoShow {
		return 0
	}

	r, err := booking.Range()
	if err != nil {
		utils.GetLogger().Warn("refund computation failed closed",
			zap.String("bookingID", booking.ID),
			zap.String("startDate", booking.StartDate),
			zap.String("endDate", booking.EndDate),
			zap.Error(err))
		return 0
	}

	if !now.Before(r.Start) {
		return 0
	}

	daysUntilStart := r.Start.Sub(now).Hours() / 24
	switch {
	case daysUntilStart >= float64(policy.FullRefundDays):
		return booking.Pricing.Total
	case daysUntilStart >= float64(policy.PartialRefundDays):
		return roundToMinorUnit(booking.Pricing.Total*policy.PartialRefundRate, booking.Currency)
	default:
		return 0
	}
}

// EffectivePolicy returns the listing's cancellation policy, falling back to
// the given defaults when the listing carries none.
func EffectivePolicy(listing *models.Listing, fallback models.CancellationPolicy) models.CancellationPolicy {
	p := listing.CancellationPolicy
	if p.FullRefundDays == 0 && p.PartialRefundDays == 0 && p.PartialRefundRate == 0 {
		return fallback
	}
	return p
}
