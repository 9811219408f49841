package reservation

import (
	"context"
	"time"

	bookingRepo "stayhub/database/repository/booking"
	listingRepo "stayhub/database/repository/listing"
	outboxRepo "stayhub/database/repository/outbox"
	slotRepo "stayhub/database/repository/slot"
	"stayhub/models"

	"github.com/go-redis/redis/v8"
)

// Ledger is the transactional boundary of the reservation core. Bookings are
// created and moved through their lifecycle exclusively via these methods.
type Ledger interface {
	AvailabilityCalendar(ctx context.Context, listingID string, r models.DateRange) ([]models.CalendarDay, error)
	Quote(ctx context.Context, listingID string, r models.DateRange, guestCount int, promoCode string) (models.PricingQuote, error)

	Create(ctx context.Context, req CreateBookingRequest) (*models.Booking, error)
	Cancel(ctx context.Context, bookingID, reason, actor string) (*models.Booking, error)

	// Collaborator-driven transitions: Confirm on payment success, Complete
	// from the post-stay sweep, MarkNoShow when check-in never happens.
	Confirm(ctx context.Context, bookingID string) (*models.Booking, error)
	Complete(ctx context.Context, bookingID string) (*models.Booking, error)
	MarkNoShow(ctx context.Context, bookingID string) (*models.Booking, error)

	GetBooking(ctx context.Context, bookingID string) (*models.Booking, error)

	// ListDueForCompletion feeds the completion sweep: confirmed bookings
	// whose stay ended on or before the given date.
	ListDueForCompletion(ctx context.Context, before string, limit int) ([]models.Booking, error)

	// Calendar management for listing owners.
	SetupSlots(ctx context.Context, listingID string, slots []models.Slot) error
	BlockDate(ctx context.Context, listingID, date string, blocked bool, reason string) error
}

// CreateBookingRequest carries everything Create needs. Identity arrives as
// explicit userID/tenantID values supplied by the caller; the core never
// reads an ambient current user.
type CreateBookingRequest struct {
	ListingID       string
	UserID          string
	TenantID        string
	Range           models.DateRange
	GuestCount      int
	Guests          models.GuestDetails
	SpecialRequests string
	PromoCode       string
}

// DefaultLedger implements Ledger.
type DefaultLedger struct {
	Slots          slotRepo.Store
	Bookings       bookingRepo.Repository
	Listings       listingRepo.Repository
	Outbox         outboxRepo.Repository
	Cache          *redis.Client // optional; nil disables calendar caching
	FallbackPolicy models.CancellationPolicy
	Now            func() time.Time
}

// NewLedger wires a DefaultLedger with a real clock.
func NewLedger(
	slots slotRepo.Store,
	bookings bookingRepo.Repository,
	listings listingRepo.Repository,
	outbox outboxRepo.Repository,
	cache *redis.Client,
	fallbackPolicy models.CancellationPolicy,
) *DefaultLedger {
	return &DefaultLedger{
		Slots:          slots,
		Bookings:       bookings,
		Listings:       listings,
		Outbox:         outbox,
		Cache:          cache,
		FallbackPolicy: fallbackPolicy,
		Now:            time.Now,
	}
}
