package models

import "time"

// Booking lifecycle states. Cancelled, completed and no_show are terminal.
const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusCancelled = "cancelled"
	BookingStatusCompleted = "completed"
	BookingStatusNoShow    = "no_show"
)

// Payment states as reported by the payment collaborator.
const (
	PaymentStatusUnpaid            = "unpaid"
	PaymentStatusPaid              = "paid"
	PaymentStatusRefunded          = "refunded"
	PaymentStatusPartiallyRefunded = "partially_refunded"
)

// Guest is one entry in a booking's guest roster.
type Guest struct {
	Name string `bson:"name" json:"name"`
	Age  int    `bson:"age,omitempty" json:"age,omitempty"`
}

// GuestDetails carries the primary contact plus the full roster.
type GuestDetails struct {
	PrimaryName  string  `bson:"primary_name" json:"primaryName"`
	PrimaryEmail string  `bson:"primary_email" json:"primaryEmail"`
	PrimaryPhone string  `bson:"primary_phone,omitempty" json:"primaryPhone,omitempty"`
	Roster       []Guest `bson:"roster,omitempty" json:"roster,omitempty"`
}

// Booking is a reservation record. Bookings are created only through the
// ledger, mutated only through its defined transitions and never deleted;
// cancellation is a status change so history survives.
type Booking struct {
	ID               string       `bson:"id" json:"id"`
	ListingID        string       `bson:"listing_id" json:"listingId"`
	UserID           string       `bson:"user_id" json:"userId"`
	TenantID         string       `bson:"tenant_id" json:"tenantId"`
	StartDate        string       `bson:"start_date" json:"startDate"` // "YYYY-MM-DD", inclusive
	EndDate          string       `bson:"end_date" json:"endDate"`     // "YYYY-MM-DD", exclusive
	GuestCount       int          `bson:"guest_count" json:"guestCount"`
	Guests           GuestDetails `bson:"guests" json:"guests"`
	Pricing          PricingQuote `bson:"pricing" json:"pricing"` // snapshot taken at creation, immutable
	Currency         string       `bson:"currency" json:"currency"`
	PaymentStatus    string       `bson:"payment_status" json:"paymentStatus"`
	Status           string       `bson:"status" json:"status"`
	ConfirmationCode string       `bson:"confirmation_code" json:"confirmationCode"`
	SpecialRequests  string       `bson:"special_requests,omitempty" json:"specialRequests,omitempty"`

	CancelledAt        *time.Time `bson:"cancelled_at,omitempty" json:"cancelledAt,omitempty"`
	CancelledBy        string     `bson:"cancelled_by,omitempty" json:"cancelledBy,omitempty"`
	CancellationReason string     `bson:"cancellation_reason,omitempty" json:"cancellationReason,omitempty"`
	RefundAmount       float64    `bson:"refund_amount,omitempty" json:"refundAmount,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// Range parses the booking's stored dates back into a DateRange.
func (b *Booking) Range() (DateRange, error) {
	return ParseDateRange(b.StartDate, b.EndDate)
}

// BookingStatusUpdate is the field set applied atomically by a status
// transition. Only non-zero fields are written.
type BookingStatusUpdate struct {
	Status             string
	PaymentStatus      string
	CancelledAt        *time.Time
	CancelledBy        string
	CancellationReason string
	RefundAmount       *float64
}
