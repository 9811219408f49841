package bookingRepo

import (
	"context"

	"stayhub/models"
)

// Repository defines data access for booking records. Status changes go
// through TransitionStatus only, which is a compare-and-swap on the current
// status: exactly one caller can win a transition from a given state.
type Repository interface {
	Create(ctx context.Context, booking *models.Booking) error
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	ConfirmationCodeExists(ctx context.Context, code string) (bool, error)

	// TransitionStatus atomically moves the booking to upd.Status if and only
	// if its current status is one of from. It returns the updated booking,
	// a models.NotFoundError when the booking does not exist, or a
	// models.StateTransitionError (carrying the observed status) when the
	// CAS loses.
	TransitionStatus(ctx context.Context, bookingID, event string, from []string, upd models.BookingStatusUpdate) (*models.Booking, error)

	// ListDueForCompletion returns confirmed bookings whose stay ended on or
	// before the given date. The completion sweep feeds these back through the
	// ledger's Complete transition.
	ListDueForCompletion(ctx context.Context, before string, limit int) ([]models.Booking, error)
}
