package reservation

import (
	"context"
	"fmt"
	"time"

	"stayhub/models"
	"stayhub/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AvailabilityCalendar resolves the day-by-day status sequence for a listing,
// serving from the Redis cache when a fresh snapshot exists.
func (l *DefaultLedger) AvailabilityCalendar(ctx context.Context, listingID string, r models.DateRange) ([]models.CalendarDay, error) {
	listing, err := l.Listings.GetByID(ctx, listingID)
	if err != nil {
		return nil, err
	}

	if days, ok := l.cachedCalendar(ctx, listingID, r); ok {
		return days, nil
	}

	slots, err := l.Slots.GetSlots(ctx, listingID, r)
	if err != nil {
		return nil, err
	}
	days := GenerateCalendarDays(r, slots, *listing)
	l.storeCalendar(ctx, listingID, r, days)
	return days, nil
}

// Quote prices a prospective stay without reserving anything.
func (l *DefaultLedger) Quote(ctx context.Context, listingID string, r models.DateRange, guestCount int, promoCode string) (models.PricingQuote, error) {
	listing, err := l.Listings.GetByID(ctx, listingID)
	if err != nil {
		return models.PricingQuote{}, err
	}
	if err := validateGuestCount(guestCount, listing); err != nil {
		return models.PricingQuote{}, err
	}
	slots, err := l.Slots.GetSlots(ctx, listingID, r)
	if err != nil {
		return models.PricingQuote{}, err
	}
	return CalculatePricing(*listing, r, slots, guestCount, promoCode, l.Now())
}

// Create reserves capacity and persists a pending booking as one logical
// transaction: pricing is snapshotted first, the slot reservation is the
// atomic all-or-nothing step, and a failed persist compensates by releasing
// the reservation so no half-reserved state survives any error path.
//
// One booking consumes one reservation unit per date regardless of guest
// count; guests are bounded separately by the listing's capacity policy.
func (l *DefaultLedger) Create(ctx context.Context, req CreateBookingRequest) (*models.Booking, error) {
	logger := utils.GetLogger()
	now := l.Now()

	listing, err := l.Listings.GetByID(ctx, req.ListingID)
	if err != nil {
		return nil, err
	}
	if err := validateGuestCount(req.GuestCount, listing); err != nil {
		return nil, err
	}
	today := now.UTC().Truncate(24 * time.Hour)
	if req.Range.Start.Before(today) {
		return nil, models.NewValidationError("startDate", "must not be in the past")
	}
	if req.Guests.PrimaryName == "" {
		return nil, models.NewValidationError("guests.primaryName", "is required")
	}

	slots, err := l.Slots.GetSlots(ctx, req.ListingID, req.Range)
	if err != nil {
		return nil, err
	}
	quote, err := CalculatePricing(*listing, req.Range, slots, req.GuestCount, req.PromoCode, now)
	if err != nil {
		return nil, err
	}

	if err := l.Slots.Reserve(ctx, req.ListingID, req.Range, 1); err != nil {
		return nil, err
	}

	code, err := generateConfirmationCode(ctx, l.Bookings)
	if err != nil {
		l.compensateReserve(req.ListingID, req.Range)
		return nil, err
	}

	booking := &models.Booking{
		ID:               uuid.New().String(),
		ListingID:        req.ListingID,
		UserID:           req.UserID,
		TenantID:         req.TenantID,
		StartDate:        req.Range.Start.Format(models.DateLayout),
		EndDate:          req.Range.End.Format(models.DateLayout),
		GuestCount:       req.GuestCount,
		Guests:           req.Guests,
		Pricing:          quote,
		Currency:         quote.Currency,
		PaymentStatus:    models.PaymentStatusUnpaid,
		Status:           models.BookingStatusPending,
		ConfirmationCode: code,
		SpecialRequests:  req.SpecialRequests,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := l.Bookings.Create(ctx, booking); err != nil {
		l.compensateReserve(req.ListingID, req.Range)
		return nil, err
	}

	l.bumpCalendarVersion(ctx, req.ListingID)
	l.emitEvent(ctx, models.EventBookingCreated, booking, nil)

	logger.Info("booking created",
		zap.String("bookingID", booking.ID),
		zap.String("listingID", booking.ListingID),
		zap.String("range", req.Range.String()),
		zap.Float64("total", quote.Total))
	return booking, nil
}

// Cancel drives the pending|confirmed -> cancelled transition. The repository
// CAS guarantees only one caller observes a cancellable status and wins, so
// the capacity release below runs exactly once per booking no matter how many
// cancel requests race or retry.
func (l *DefaultLedger) Cancel(ctx context.Context, bookingID, reason, actor string) (*models.Booking, error) {
	logger := utils.GetLogger()
	now := l.Now()

	booking, err := l.Bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	listing, err := l.Listings.GetByID(ctx, booking.ListingID)
	if err != nil {
		return nil, err
	}
	refund := ComputeRefund(booking, EffectivePolicy(listing, l.FallbackPolicy), now)

	upd := models.BookingStatusUpdate{
		Status:             models.BookingStatusCancelled,
		CancelledAt:        &now,
		CancelledBy:        actor,
		CancellationReason: reason,
		RefundAmount:       &refund,
	}
	if booking.PaymentStatus == models.PaymentStatusPaid {
		if refund >= booking.Pricing.Total {
			upd.PaymentStatus = models.PaymentStatusRefunded
		} else if refund > 0 {
			upd.PaymentStatus = models.PaymentStatusPartiallyRefunded
		}
	}

	cancelled, err := l.Bookings.TransitionStatus(ctx, bookingID, "cancel",
		[]string{models.BookingStatusPending, models.BookingStatusConfirmed}, upd)
	if err != nil {
		return nil, err
	}

	r, rangeErr := cancelled.Range()
	if rangeErr != nil {
		// Reservation state is unreachable without parseable dates; surface
		// loudly but keep the cancellation.
		logger.Error("cancelled booking has unparseable dates, capacity not released",
			zap.String("bookingID", bookingID), zap.Error(rangeErr))
	} else if err := l.Slots.Release(ctx, cancelled.ListingID, r, 1); err != nil {
		logger.Error("failed to release capacity for cancelled booking",
			zap.String("bookingID", bookingID), zap.Error(err))
	}

	l.bumpCalendarVersion(ctx, cancelled.ListingID)
	l.emitEvent(ctx, models.EventBookingCancelled, cancelled, map[string]any{
		"reason":       reason,
		"cancelledBy":  actor,
		"refundAmount": refund,
	})

	logger.Info("booking cancelled",
		zap.String("bookingID", bookingID),
		zap.String("actor", actor),
		zap.Float64("refund", refund))
	return cancelled, nil
}

// Confirm is the payment collaborator's success signal: pending -> confirmed.
func (l *DefaultLedger) Confirm(ctx context.Context, bookingID string) (*models.Booking, error) {
	confirmed, err := l.Bookings.TransitionStatus(ctx, bookingID, "confirm",
		[]string{models.BookingStatusPending},
		models.BookingStatusUpdate{
			Status:        models.BookingStatusConfirmed,
			PaymentStatus: models.PaymentStatusPaid,
		})
	if err != nil {
		return nil, err
	}
	l.emitEvent(ctx, models.EventBookingConfirmed, confirmed, nil)
	return confirmed, nil
}

// Complete marks a confirmed booking whose stay has elapsed: confirmed -> completed.
func (l *DefaultLedger) Complete(ctx context.Context, bookingID string) (*models.Booking, error) {
	completed, err := l.Bookings.TransitionStatus(ctx, bookingID, "complete",
		[]string{models.BookingStatusConfirmed},
		models.BookingStatusUpdate{Status: models.BookingStatusCompleted})
	if err != nil {
		return nil, err
	}
	l.emitEvent(ctx, models.EventBookingCompleted, completed, nil)
	return completed, nil
}

// MarkNoShow records a confirmed booking whose guest never checked in:
// confirmed -> no_show. Capacity stays consumed; the dates have passed.
func (l *DefaultLedger) MarkNoShow(ctx context.Context, bookingID string) (*models.Booking, error) {
	noShow, err := l.Bookings.TransitionStatus(ctx, bookingID, "mark no-show",
		[]string{models.BookingStatusConfirmed},
		models.BookingStatusUpdate{Status: models.BookingStatusNoShow})
	if err != nil {
		return nil, err
	}
	l.emitEvent(ctx, models.EventBookingNoShow, noShow, nil)
	return noShow, nil
}

func (l *DefaultLedger) GetBooking(ctx context.Context, bookingID string) (*models.Booking, error) {
	return l.Bookings.GetByID(ctx, bookingID)
}

func (l *DefaultLedger) ListDueForCompletion(ctx context.Context, before string, limit int) ([]models.Booking, error) {
	return l.Bookings.ListDueForCompletion(ctx, before, limit)
}

// SetupSlots replaces capacity records for a listing's dates.
func (l *DefaultLedger) SetupSlots(ctx context.Context, listingID string, slots []models.Slot) error {
	if _, err := l.Listings.GetByID(ctx, listingID); err != nil {
		return err
	}
	for _, s := range slots {
		if _, err := time.Parse(models.DateLayout, s.Date); err != nil {
			return models.NewValidationError("slots.date", "invalid date "+s.Date)
		}
		if s.Capacity < 0 {
			return models.NewValidationError("slots.capacity", "must not be negative")
		}
	}
	if err := l.Slots.UpsertSlots(ctx, listingID, slots); err != nil {
		return err
	}
	l.bumpCalendarVersion(ctx, listingID)
	return nil
}

// BlockDate toggles a single date's blocked flag.
func (l *DefaultLedger) BlockDate(ctx context.Context, listingID, date string, blocked bool, reason string) error {
	if _, err := time.Parse(models.DateLayout, date); err != nil {
		return models.NewValidationError("date", "invalid date "+date)
	}
	if err := l.Slots.SetBlocked(ctx, listingID, date, blocked, reason); err != nil {
		return err
	}
	l.bumpCalendarVersion(ctx, listingID)
	return nil
}

func validateGuestCount(guestCount int, listing *models.Listing) error {
	if guestCount < 1 {
		return models.NewValidationError("guestCount", "must be at least 1")
	}
	if listing.MaxGuestsPerBooking > 0 && guestCount > listing.MaxGuestsPerBooking {
		return models.NewValidationError("guestCount",
			fmt.Sprintf("exceeds the listing maximum of %d guests", listing.MaxGuestsPerBooking))
	}
	return nil
}

// compensateReserve undoes a reservation when booking persistence fails after
// the slot increment succeeded. Runs on a fresh context: the original may
// already be cancelled, and leaking capacity is worse than a late release.
func (l *DefaultLedger) compensateReserve(listingID string, r models.DateRange) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := l.Slots.Release(ctx, listingID, r, 1); err != nil {
		utils.GetLogger().Error("failed to compensate reservation",
			zap.String("listingID", listingID),
			zap.String("range", r.String()),
			zap.Error(err))
	}
}
