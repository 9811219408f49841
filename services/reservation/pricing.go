package reservation

import (
	"fmt"
	"math"
	"strings"
	"time"

	"stayhub/models"
)

// Currencies without a minor unit; everything else rounds to hundredths.
var zeroMinorUnitCurrencies = map[string]bool{
	"JPY": true,
	"KRW": true,
	"VND": true,
}

// roundToMinorUnit rounds half-up to the currency's minor unit. Applied once
// per pricing component; component sums are never re-rounded.
func roundToMinorUnit(amount float64, currency string) float64 {
	factor := 100.0
	if zeroMinorUnitCurrencies[strings.ToUpper(currency)] {
		factor = 1.0
	}
	return math.Floor(amount*factor+0.5) / factor
}

// CalculatePricing computes a quote for a stay. Pure and retry-free: all
// inputs arrive as arguments, nothing is looked up.
//
// subtotal is the sum of per-date effective prices (slot override, else the
// listing default), so per-date pricing is honored rather than a flat
// basePrice * nights. The service fee applies to the subtotal; tax applies
// after the fee, on subtotal + serviceFee. The discount is capped so the
// total never goes negative.
func CalculatePricing(listing models.Listing, r models.DateRange, slots []models.Slot, guestCount int, promoCode string, now time.Time) (models.PricingQuote, error) {
	nights := r.Nights()
	minStay := listing.MinimumStayNights
	if minStay < 1 {
		minStay = 1
	}
	if nights < minStay {
		return models.PricingQuote{}, models.NewValidationError("dateRange", fmt.Sprintf("stay is below the minimum of %d nights", minStay))
	}
	if guestCount < 1 {
		return models.PricingQuote{}, models.NewValidationError("guestCount", "must be at least 1")
	}

	byDate := make(map[string]models.Slot, len(slots))
	for _, s := range slots {
		byDate[s.Date] = s
	}

	subtotal := 0.0
	for _, date := range r.Dates() {
		price := listing.BasePrice
		if s, ok := byDate[date]; ok {
			price = s.EffectivePrice(listing.BasePrice)
		}
		subtotal += price
	}

	subtotal = roundToMinorUnit(subtotal, listing.Currency)
	serviceFee := roundToMinorUnit(subtotal*listing.ServiceFeeRate, listing.Currency)
	taxAmount := roundToMinorUnit((subtotal+serviceFee)*listing.TaxRate, listing.Currency)

	discount, err := resolveDiscount(listing, promoCode, subtotal, now)
	if err != nil {
		return models.PricingQuote{}, err
	}
	if maxDiscount := subtotal + serviceFee + taxAmount; discount > maxDiscount {
		discount = maxDiscount
	}

	return models.PricingQuote{
		BasePrice:      listing.BasePrice,
		Nights:         nights,
		Subtotal:       subtotal,
		ServiceFee:     serviceFee,
		TaxAmount:      taxAmount,
		DiscountAmount: discount,
		Total:          subtotal + serviceFee + taxAmount - discount,
		Currency:       listing.Currency,
	}, nil
}

// resolveDiscount looks up a promo code on the listing. Unknown or expired
// codes are a validation failure rather than a silent zero, so clients can
// correct the code.
func resolveDiscount(listing models.Listing, promoCode string, subtotal float64, now time.Time) (float64, error) {
	if promoCode == "" {
		return 0, nil
	}
	for _, promo := range listing.PromoCodes {
		if !strings.EqualFold(promo.Code, promoCode) {
			continue
		}
		if !promo.ExpiresAt.IsZero() && promo.ExpiresAt.Before(now) {
			return 0, models.NewValidationError("promoCode", "code has expired")
		}
		if promo.Percent > 0 {
			return roundToMinorUnit(subtotal*promo.Percent, listing.Currency), nil
		}
		return roundToMinorUnit(promo.Amount, listing.Currency), nil
	}
	return 0, models.NewValidationError("promoCode", "unknown code")
}
