package handlers

import (
	"stayhub/models"
	"stayhub/services/reservation"
)

// Request/response DTOs live here, at the edge of the core, as the one place
// snake-case wire fields are mapped onto domain types. Internal types never
// carry transport naming.

type guestDTO struct {
	Name string `json:"name" binding:"required"`
	Age  int    `json:"age,omitempty"`
}

type guestDetailsDTO struct {
	PrimaryName  string     `json:"primary_name" binding:"required"`
	PrimaryEmail string     `json:"primary_email" binding:"required,email"`
	PrimaryPhone string     `json:"primary_phone,omitempty"`
	Roster       []guestDTO `json:"roster,omitempty"`
}

type createBookingDTO struct {
	ListingID       string          `json:"listing_id" binding:"required"`
	StartDate       string          `json:"start_date" binding:"required"`
	EndDate         string          `json:"end_date" binding:"required"`
	GuestCount      int             `json:"guest_count" binding:"required"`
	Guests          guestDetailsDTO `json:"guests" binding:"required"`
	SpecialRequests string          `json:"special_requests,omitempty"`
	PromoCode       string          `json:"promo_code,omitempty"`
}

type pricingRequestDTO struct {
	StartDate  string `json:"start_date" binding:"required"`
	EndDate    string `json:"end_date" binding:"required"`
	GuestCount int    `json:"guest_count" binding:"required"`
	PromoCode  string `json:"promo_code,omitempty"`
}

type cancelBookingDTO struct {
	Reason string `json:"reason" binding:"required"`
}

type slotDTO struct {
	Date        string  `json:"date" binding:"required"`
	Capacity    int     `json:"capacity"`
	BasePrice   float64 `json:"base_price,omitempty"`
	Blocked     bool    `json:"blocked,omitempty"`
	BlockReason string  `json:"block_reason,omitempty"`
}

type setupSlotsDTO struct {
	Slots []slotDTO `json:"slots" binding:"required"`
}

type blockDateDTO struct {
	Date    string `json:"date" binding:"required"`
	Blocked bool   `json:"blocked"`
	Reason  string `json:"reason,omitempty"`
}

func (dto guestDetailsDTO) toDomain() models.GuestDetails {
	details := models.GuestDetails{
		PrimaryName:  dto.PrimaryName,
		PrimaryEmail: dto.PrimaryEmail,
		PrimaryPhone: dto.PrimaryPhone,
	}
	for _, g := range dto.Roster {
		details.Roster = append(details.Roster, models.Guest{Name: g.Name, Age: g.Age})
	}
	return details
}

func (dto createBookingDTO) toRequest(userID, tenantID string, r models.DateRange) reservation.CreateBookingRequest {
	return reservation.CreateBookingRequest{
		ListingID:       dto.ListingID,
		UserID:          userID,
		TenantID:        tenantID,
		Range:           r,
		GuestCount:      dto.GuestCount,
		Guests:          dto.Guests.toDomain(),
		SpecialRequests: dto.SpecialRequests,
		PromoCode:       dto.PromoCode,
	}
}

func (dto setupSlotsDTO) toDomain(listingID string) []models.Slot {
	slots := make([]models.Slot, 0, len(dto.Slots))
	for _, s := range dto.Slots {
		slots = append(slots, models.Slot{
			ListingID:   listingID,
			Date:        s.Date,
			Capacity:    s.Capacity,
			BasePrice:   s.BasePrice,
			Blocked:     s.Blocked,
			BlockReason: s.BlockReason,
		})
	}
	return slots
}
