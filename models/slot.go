package models

// Slot is the capacity record for one listing on one date.
type Slot struct {
	ListingID   string  `bson:"listing_id" json:"listingId"`
	Date        string  `bson:"date" json:"date"`                                // "YYYY-MM-DD"
	Capacity    int     `bson:"capacity" json:"capacity"`                        // max concurrent bookings for the date
	Reserved    int     `bson:"reserved" json:"reserved"`                        // current count; 0 <= Reserved <= Capacity
	BasePrice   float64 `bson:"base_price,omitempty" json:"basePrice,omitempty"` // per-date override; 0 falls back to the listing default
	Blocked     bool    `bson:"blocked" json:"blocked"`
	BlockReason string  `bson:"block_reason,omitempty" json:"blockReason,omitempty"`
}

// Remaining returns the unreserved capacity, never negative.
func (s Slot) Remaining() int {
	if s.Reserved >= s.Capacity {
		return 0
	}
	return s.Capacity - s.Reserved
}

// EffectivePrice resolves the per-date price: slot override, else the listing default.
func (s Slot) EffectivePrice(listingDefault float64) float64 {
	if s.BasePrice > 0 {
		return s.BasePrice
	}
	return listingDefault
}
