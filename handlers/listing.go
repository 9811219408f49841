package handlers

import (
	"net/http"

	"stayhub/models"
	"stayhub/services/reservation"

	"github.com/gin-gonic/gin"
)

// ListingHandler serves availability, pricing and slot management for a listing.
type ListingHandler struct {
	Ledger reservation.Ledger
}

func NewListingHandler(ledger reservation.Ledger) *ListingHandler {
	return &ListingHandler{Ledger: ledger}
}

// GetAvailabilityHandler returns the day-by-day calendar for a date range.
// GET /api/listings/:id/availability?start=YYYY-MM-DD&end=YYYY-MM-DD
func (h *ListingHandler) GetAvailabilityHandler(c *gin.Context) {
	r, err := models.ParseDateRange(c.Query("start"), c.Query("end"))
	if err != nil {
		respondError(c, models.NewValidationError("dateRange", err.Error()))
		return
	}

	days, err := h.Ledger.AvailabilityCalendar(c.Request.Context(), c.Param("id"), r)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"listing_id": c.Param("id"), "days": days})
}

// QuotePricingHandler prices a prospective stay.
// POST /api/listings/:id/pricing
func (h *ListingHandler) QuotePricingHandler(c *gin.Context) {
	var dto pricingRequestDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		respondError(c, models.NewValidationError("body", err.Error()))
		return
	}
	r, err := models.ParseDateRange(dto.StartDate, dto.EndDate)
	if err != nil {
		respondError(c, models.NewValidationError("dateRange", err.Error()))
		return
	}

	quote, err := h.Ledger.Quote(c.Request.Context(), c.Param("id"), r, dto.GuestCount, dto.PromoCode)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, quote)
}

// SetupSlotsHandler creates or replaces capacity records for the listing.
// PUT /api/listings/:id/slots
func (h *ListingHandler) SetupSlotsHandler(c *gin.Context) {
	var dto setupSlotsDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		respondError(c, models.NewValidationError("body", err.Error()))
		return
	}

	listingID := c.Param("id")
	if err := h.Ledger.SetupSlots(c.Request.Context(), listingID, dto.toDomain(listingID)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"listing_id": listingID, "slots": len(dto.Slots)})
}

// BlockDateHandler toggles a date's blocked flag.
// PUT /api/listings/:id/slots/block
func (h *ListingHandler) BlockDateHandler(c *gin.Context) {
	var dto blockDateDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		respondError(c, models.NewValidationError("body", err.Error()))
		return
	}

	if err := h.Ledger.BlockDate(c.Request.Context(), c.Param("id"), dto.Date, dto.Blocked, dto.Reason); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"date": dto.Date, "blocked": dto.Blocked})
}
