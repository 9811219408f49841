package models

import "time"

// Booking event types emitted by the ledger.
const (
	EventBookingCreated   = "booking_created"
	EventBookingConfirmed = "booking_confirmed"
	EventBookingCancelled = "booking_cancelled"
	EventBookingCompleted = "booking_completed"
	EventBookingNoShow    = "booking_no_show"
)

// BookingEvent is an outbox record of a booking state change. The core only
// records these as observable side effects; delivery belongs to the
// notification collaborator consuming the outbox.
type BookingEvent struct {
	ID         string         `bson:"id" json:"id"`
	Type       string         `bson:"type" json:"type"`
	BookingID  string         `bson:"booking_id" json:"bookingId"`
	ListingID  string         `bson:"listing_id" json:"listingId"`
	TenantID   string         `bson:"tenant_id" json:"tenantId"`
	Payload    map[string]any `bson:"payload,omitempty" json:"payload,omitempty"`
	Dispatched bool           `bson:"dispatched" json:"dispatched"`
	CreatedAt  time.Time      `bson:"created_at" json:"createdAt"`
}
