package handlers

import (
	"errors"
	"io"
	"net/http"

	"stayhub/config"
	"stayhub/models"
	"stayhub/services/payment"
	"stayhub/utils"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v76/webhook"
	"go.uber.org/zap"
)

// PaymentHandler exposes the payment-intent endpoint and the Stripe webhook.
type PaymentHandler struct {
	Intents payment.IntentService
}

func NewPaymentHandler(intents payment.IntentService) *PaymentHandler {
	return &PaymentHandler{Intents: intents}
}

// CreatePaymentIntentHandler issues a gateway intent for a pending booking.
// POST /api/bookings/:id/payment-intent
func (h *PaymentHandler) CreatePaymentIntentHandler(c *gin.Context) {
	intent, err := h.Intents.CreateIntent(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, intent)
}

// StripeWebhookHandler translates gateway events into ledger transitions:
// payment success confirms the pending booking, payment failure cancels it.
// POST /api/payments/webhook
func (h *PaymentHandler) StripeWebhookHandler(c *gin.Context) {
	logger := utils.GetLogger()

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid_payload", "could not read request body")
		return
	}

	event, err := webhook.ConstructEvent(body, c.GetHeader("Stripe-Signature"), config.AppConfig.StripeWebhookSecret)
	if err != nil {
		logger.Warn("rejected stripe webhook", zap.Error(err))
		utils.JSONError(c, http.StatusBadRequest, "invalid_signature", "webhook signature verification failed")
		return
	}

	var bookingID string
	if metadata, ok := event.Data.Object["metadata"].(map[string]any); ok {
		bookingID, _ = metadata["booking_id"].(string)
	}
	if bookingID == "" {
		logger.Warn("stripe event without booking metadata", zap.String("type", string(event.Type)))
		c.JSON(http.StatusOK, gin.H{"received": true})
		return
	}

	ctx := c.Request.Context()
	switch event.Type {
	case "payment_intent.succeeded":
		err = h.Intents.HandlePaymentSucceeded(ctx, bookingID)
	case "payment_intent.payment_failed", "payment_intent.canceled":
		err = h.Intents.HandlePaymentFailed(ctx, bookingID, "payment "+string(event.Type))
	default:
		c.JSON(http.StatusOK, gin.H{"received": true})
		return
	}

	if err != nil {
		// A lost CAS here means the transition already happened; the webhook
		// retried. Acknowledge instead of making Stripe retry forever.
		var transition *models.StateTransitionError
		if errors.As(err, &transition) {
			logger.Info("stripe webhook replayed a settled transition",
				zap.String("bookingID", bookingID), zap.String("status", transition.From))
			c.JSON(http.StatusOK, gin.H{"received": true})
			return
		}
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"received": true})
}
