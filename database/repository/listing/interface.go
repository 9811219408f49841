package listingRepo

import (
	"context"

	"stayhub/models"
)

// Repository reads listing catalog configuration. The catalog itself is owned
// elsewhere; the reservation core only consumes capacity policy, default
// pricing and cancellation terms.
type Repository interface {
	GetByID(ctx context.Context, id string) (*models.Listing, error)
}
