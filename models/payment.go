package models

// PaymentIntent is the core's view of a gateway payment intent issued for a
// pending booking. The client completes payment against ClientSecret; the
// gateway reports the outcome through the webhook.
type PaymentIntent struct {
	IntentID     string  `json:"intentId"`
	BookingID    string  `json:"bookingId"`
	ClientSecret string  `json:"clientSecret"`
	Amount       float64 `json:"amount"`
	Currency     string  `json:"currency"`
}
