package models

// PricingQuote is a snapshotted, immutable price breakdown. Each component is
// rounded once to the currency minor unit; Total is the exact sum of the
// rounded components and is never re-rounded.
type PricingQuote struct {
	BasePrice      float64 `bson:"base_price" json:"basePrice"` // listing default nightly price
	Nights         int     `bson:"nights" json:"nights"`
	Subtotal       float64 `bson:"subtotal" json:"subtotal"` // sum of per-date effective prices
	ServiceFee     float64 `bson:"service_fee" json:"serviceFee"`
	TaxAmount      float64 `bson:"tax_amount" json:"taxAmount"`
	DiscountAmount float64 `bson:"discount_amount" json:"discountAmount"`
	Total          float64 `bson:"total" json:"total"`
	Currency       string  `bson:"currency" json:"currency"`
}
