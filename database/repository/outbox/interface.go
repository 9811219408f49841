package outboxRepo

import (
	"context"

	"stayhub/models"
)

// Repository persists booking events so state changes are observable by the
// notification collaborator without the core delivering anything itself.
type Repository interface {
	Append(ctx context.Context, event models.BookingEvent) error
	ListPending(ctx context.Context, limit int) ([]models.BookingEvent, error)
	MarkDispatched(ctx context.Context, ids []string) error
}
