package models

import "time"

// Listing carries the catalog configuration the reservation core consumes:
// capacity policy, default pricing, minimum stay and cancellation terms.
// Everything else about a listing (description, media, amenities) lives with
// the catalog service that owns it.
type Listing struct {
	ID                  string             `bson:"id" json:"id"`
	TenantID            string             `bson:"tenant_id" json:"tenantId"`
	Name                string             `bson:"name" json:"name"`
	BasePrice           float64            `bson:"base_price" json:"basePrice"` // default nightly price
	Currency            string             `bson:"currency" json:"currency"`    // ISO 4217
	MaxGuestsPerBooking int                `bson:"max_guests_per_booking" json:"maxGuestsPerBooking"`
	MinimumStayNights   int                `bson:"minimum_stay_nights" json:"minimumStayNights"`
	ServiceFeeRate      float64            `bson:"service_fee_rate" json:"serviceFeeRate"`
	TaxRate             float64            `bson:"tax_rate" json:"taxRate"`
	CancellationPolicy  CancellationPolicy `bson:"cancellation_policy" json:"cancellationPolicy"`
	PromoCodes          []PromoCode        `bson:"promo_codes,omitempty" json:"promoCodes,omitempty"`
	CreatedAt           time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt           time.Time          `bson:"updated_at" json:"updatedAt"`
}

// CancellationPolicy parameterizes refund computation. Full refund when the
// cancellation lands more than FullRefundDays before the stay starts, the
// partial rate within PartialRefundDays, zero refund once the stay has begun.
type CancellationPolicy struct {
	FullRefundDays    int     `bson:"full_refund_days" json:"fullRefundDays"`
	PartialRefundDays int     `bson:"partial_refund_days" json:"partialRefundDays"`
	PartialRefundRate float64 `bson:"partial_refund_rate" json:"partialRefundRate"` // e.g. 0.5 for 50%
}

// PromoCode is a listing-scoped discount: either a percentage of the subtotal
// or a fixed amount, whichever is set.
type PromoCode struct {
	Code      string    `bson:"code" json:"code"`
	Percent   float64   `bson:"percent,omitempty" json:"percent,omitempty"` // e.g. 0.10 for 10% off
	Amount    float64   `bson:"amount,omitempty" json:"amount,omitempty"`
	ExpiresAt time.Time `bson:"expires_at,omitempty" json:"expiresAt,omitempty"`
}
