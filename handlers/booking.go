package handlers

import (
	"net/http"

	"stayhub/models"
	"stayhub/services/reservation"

	"github.com/gin-gonic/gin"
)

// BookingHandler drives the booking lifecycle over HTTP.
type BookingHandler struct {
	Ledger reservation.Ledger
}

func NewBookingHandler(ledger reservation.Ledger) *BookingHandler {
	return &BookingHandler{Ledger: ledger}
}

// CreateBookingHandler reserves capacity and creates a pending booking.
// POST /api/bookings
func (h *BookingHandler) CreateBookingHandler(c *gin.Context) {
	var dto createBookingDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		respondError(c, models.NewValidationError("body", err.Error()))
		return
	}
	r, err := models.ParseDateRange(dto.StartDate, dto.EndDate)
	if err != nil {
		respondError(c, models.NewValidationError("dateRange", err.Error()))
		return
	}

	// Identity comes off the authenticated request and is passed explicitly;
	// the core never reads an ambient current user.
	userID := c.GetString("userID")
	tenantID := c.GetString("tenantID")

	booking, err := h.Ledger.Create(c.Request.Context(), dto.toRequest(userID, tenantID, r))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, booking)
}

// GetBookingHandler returns a booking by id.
// GET /api/bookings/:id
func (h *BookingHandler) GetBookingHandler(c *gin.Context) {
	booking, err := h.Ledger.GetBooking(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

// CancelBookingHandler cancels a pending or confirmed booking.
// POST /api/bookings/:id/cancel
func (h *BookingHandler) CancelBookingHandler(c *gin.Context) {
	var dto cancelBookingDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		respondError(c, models.NewValidationError("body", err.Error()))
		return
	}

	booking, err := h.Ledger.Cancel(c.Request.Context(), c.Param("id"), dto.Reason, c.GetString("userID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

// ConfirmBookingHandler is the payment collaborator's success callback.
// POST /api/bookings/:id/confirm
func (h *BookingHandler) ConfirmBookingHandler(c *gin.Context) {
	booking, err := h.Ledger.Confirm(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

// CompleteBookingHandler marks an elapsed stay completed.
// POST /api/bookings/:id/complete
func (h *BookingHandler) CompleteBookingHandler(c *gin.Context) {
	booking, err := h.Ledger.Complete(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

// NoShowBookingHandler records a missed check-in.
// POST /api/bookings/:id/no-show
func (h *BookingHandler) NoShowBookingHandler(c *gin.Context) {
	booking, err := h.Ledger.MarkNoShow(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}
