package payment

import (
	"context"
	"errors"
	"testing"

	"stayhub/models"
	"stayhub/services/reservation"

	"go.uber.org/zap"
)

type stubLedger struct {
	reservation.Ledger // panics on anything not stubbed below

	booking    *models.Booking
	getErr     error
	confirmed  []string
	cancelled  []string
	cancelErr  error
	confirmErr error
}

func (s *stubLedger) GetBooking(_ context.Context, id string) (*models.Booking, error) {
	return s.booking, s.getErr
}

func (s *stubLedger) Confirm(_ context.Context, id string) (*models.Booking, error) {
	if s.confirmErr != nil {
		return nil, s.confirmErr
	}
	s.confirmed = append(s.confirmed, id)
	return s.booking, nil
}

func (s *stubLedger) Cancel(_ context.Context, id, reason, actor string) (*models.Booking, error) {
	if s.cancelErr != nil {
		return nil, s.cancelErr
	}
	s.cancelled = append(s.cancelled, id+"/"+reason+"/"+actor)
	return s.booking, nil
}

func TestCreateIntentGuards(t *testing.T) {
	t.Parallel()

	t.Run("only pending bookings get an intent", func(t *testing.T) {
		t.Parallel()
		svc := NewStripeIntentService(&stubLedger{
			booking: &models.Booking{ID: "booking-1", Status: models.BookingStatusConfirmed},
		}, zap.NewNop())

		_, err := svc.CreateIntent(context.Background(), "booking-1")
		var transition *models.StateTransitionError
		if !errors.As(err, &transition) {
			t.Fatalf("err = %v, want StateTransitionError", err)
		}
		if transition.From != models.BookingStatusConfirmed {
			t.Errorf("observed status = %q, want confirmed", transition.From)
		}
	})

	t.Run("unknown booking propagates not found", func(t *testing.T) {
		t.Parallel()
		svc := NewStripeIntentService(&stubLedger{
			getErr: &models.NotFoundError{Kind: "booking", ID: "nope"},
		}, zap.NewNop())

		_, err := svc.CreateIntent(context.Background(), "nope")
		var notFound *models.NotFoundError
		if !errors.As(err, &notFound) {
			t.Fatalf("err = %v, want NotFoundError", err)
		}
	})
}

func TestPaymentCallbacks(t *testing.T) {
	t.Parallel()

	t.Run("success confirms the booking", func(t *testing.T) {
		t.Parallel()
		ledger := &stubLedger{booking: &models.Booking{ID: "booking-1"}}
		svc := NewStripeIntentService(ledger, zap.NewNop())

		if err := svc.HandlePaymentSucceeded(context.Background(), "booking-1"); err != nil {
			t.Fatalf("HandlePaymentSucceeded: %v", err)
		}
		if len(ledger.confirmed) != 1 || ledger.confirmed[0] != "booking-1" {
			t.Errorf("confirmed = %v, want [booking-1]", ledger.confirmed)
		}
	})

	t.Run("failure cancels with the gateway as actor", func(t *testing.T) {
		t.Parallel()
		ledger := &stubLedger{booking: &models.Booking{ID: "booking-1"}}
		svc := NewStripeIntentService(ledger, zap.NewNop())

		if err := svc.HandlePaymentFailed(context.Background(), "booking-1", "card_declined"); err != nil {
			t.Fatalf("HandlePaymentFailed: %v", err)
		}
		if len(ledger.cancelled) != 1 || ledger.cancelled[0] != "booking-1/card_declined/payment_gateway" {
			t.Errorf("cancelled = %v, want the gateway cancellation", ledger.cancelled)
		}
	})

	t.Run("empty failure reason gets a default", func(t *testing.T) {
		t.Parallel()
		ledger := &stubLedger{booking: &models.Booking{ID: "booking-1"}}
		svc := NewStripeIntentService(ledger, zap.NewNop())

		if err := svc.HandlePaymentFailed(context.Background(), "booking-1", ""); err != nil {
			t.Fatalf("HandlePaymentFailed: %v", err)
		}
		if ledger.cancelled[0] != "booking-1/payment failed/payment_gateway" {
			t.Errorf("cancelled = %v, want the default reason", ledger.cancelled)
		}
	})
}

func TestMinorUnits(t *testing.T) {
	t.Parallel()
	cases := []struct {
		amount   float64
		currency string
		want     int64
	}{
		{356.40, "USD", 35640},
		{356.40, "usd", 35640},
		{0.1 + 0.2, "EUR", 30}, // float noise must not shift a cent
		{35640, "JPY", 35640},
		{35640.4, "KRW", 35640},
		{0, "USD", 0},
	}
	for _, tc := range cases {
		if got := minorUnits(tc.amount, tc.currency); got != tc.want {
			t.Errorf("minorUnits(%v, %s) = %d, want %d", tc.amount, tc.currency, got, tc.want)
		}
	}
}
