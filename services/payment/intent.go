package payment

import (
	"context"
	"fmt"
	"math"
	"strings"

	"stayhub/models"
	"stayhub/services/reservation"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
	"go.uber.org/zap"
)

// IntentService issues payment intents for pending bookings. Capture and
// settlement stay with the payment collaborator; this adapter only creates the
// intent and later translates the gateway's callbacks into ledger transitions.
type IntentService interface {
	CreateIntent(ctx context.Context, bookingID string) (*models.PaymentIntent, error)
	HandlePaymentSucceeded(ctx context.Context, bookingID string) error
	HandlePaymentFailed(ctx context.Context, bookingID, reason string) error
}

// StripeIntentService implements IntentService against Stripe.
type StripeIntentService struct {
	Ledger reservation.Ledger
	Logger *zap.Logger
}

func NewStripeIntentService(ledger reservation.Ledger, logger *zap.Logger) *StripeIntentService {
	return &StripeIntentService{Ledger: ledger, Logger: logger}
}

func (s *StripeIntentService) CreateIntent(ctx context.Context, bookingID string) (*models.PaymentIntent, error) {
	booking, err := s.Ledger.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.Status != models.BookingStatusPending {
		return nil, &models.StateTransitionError{BookingID: bookingID, From: booking.Status, Event: "create payment intent"}
	}

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(minorUnits(booking.Pricing.Total, booking.Currency)),
		Currency: stripe.String(strings.ToLower(booking.Currency)),
		Metadata: map[string]string{
			"booking_id": booking.ID,
			"tenant_id":  booking.TenantID,
		},
	}
	intent, err := paymentintent.New(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment intent: %w", err)
	}

	s.Logger.Info("payment intent created",
		zap.String("bookingID", booking.ID),
		zap.String("intentID", intent.ID))
	return &models.PaymentIntent{
		IntentID:     intent.ID,
		BookingID:    booking.ID,
		ClientSecret: intent.ClientSecret,
		Amount:       booking.Pricing.Total,
		Currency:     booking.Currency,
	}, nil
}

// HandlePaymentSucceeded drives pending -> confirmed.
func (s *StripeIntentService) HandlePaymentSucceeded(ctx context.Context, bookingID string) error {
	if _, err := s.Ledger.Confirm(ctx, bookingID); err != nil {
		return err
	}
	return nil
}

// HandlePaymentFailed cancels the pending booking so its capacity frees up.
func (s *StripeIntentService) HandlePaymentFailed(ctx context.Context, bookingID, reason string) error {
	if reason == "" {
		reason = "payment failed"
	}
	if _, err := s.Ledger.Cancel(ctx, bookingID, reason, "payment_gateway"); err != nil {
		return err
	}
	return nil
}

// minorUnits converts a major-unit amount to the integer minor units Stripe
// expects, respecting zero-decimal currencies.
func minorUnits(amount float64, currency string) int64 {
	switch strings.ToUpper(currency) {
	case "JPY", "KRW", "VND":
		return int64(math.Round(amount))
	default:
		return int64(math.Round(amount * 100))
	}
}
