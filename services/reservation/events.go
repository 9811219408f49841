package reservation

import (
	"context"

	"stayhub/models"
	"stayhub/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// emitEvent appends a booking event to the outbox. Event recording is an
// observable side effect, not part of the transition's correctness: a failed
// append is logged and the operation still succeeds.
func (l *DefaultLedger) emitEvent(ctx context.Context, eventType string, booking *models.Booking, extra map[string]any) {
	if l.Outbox == nil {
		return
	}

	payload := map[string]any{
		"status":           booking.Status,
		"confirmationCode": booking.ConfirmationCode,
		"startDate":        booking.StartDate,
		"endDate":          booking.EndDate,
		"total":            booking.Pricing.Total,
		"currency":         booking.Currency,
		"userId":           booking.UserID,
	}
	for k, v := range extra {
		payload[k] = v
	}

	event := models.BookingEvent{
		ID:        uuid.New().String(),
		Type:      eventType,
		BookingID: booking.ID,
		ListingID: booking.ListingID,
		TenantID:  booking.TenantID,
		Payload:   payload,
		CreatedAt: l.Now(),
	}
	if err := l.Outbox.Append(ctx, event); err != nil {
		utils.GetLogger().Error("failed to append booking event",
			zap.String("type", eventType),
			zap.String("bookingID", booking.ID),
			zap.Error(err))
	}
}
