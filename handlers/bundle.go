package handlers

import "github.com/gin-gonic/gin"

// HandlerBundle collects every endpoint for route registration.
type HandlerBundle struct {
	// Listing calendar endpoints.
	GetAvailabilityHandler gin.HandlerFunc
	QuotePricingHandler    gin.HandlerFunc
	SetupSlotsHandler      gin.HandlerFunc
	BlockDateHandler       gin.HandlerFunc

	// Booking lifecycle endpoints.
	CreateBookingHandler   gin.HandlerFunc
	GetBookingHandler      gin.HandlerFunc
	CancelBookingHandler   gin.HandlerFunc
	ConfirmBookingHandler  gin.HandlerFunc
	CompleteBookingHandler gin.HandlerFunc
	NoShowBookingHandler   gin.HandlerFunc

	// Payment adapter endpoints.
	CreatePaymentIntentHandler gin.HandlerFunc
	StripeWebhookHandler       gin.HandlerFunc
}
