package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"stayhub/models"
	"stayhub/services/reservation"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// stubLedger returns canned values per method; unset methods fail the test
// if reached.
type stubLedger struct {
	booking *models.Booking
	quote   models.PricingQuote
	days    []models.CalendarDay
	err     error
}

func (s *stubLedger) AvailabilityCalendar(context.Context, string, models.DateRange) ([]models.CalendarDay, error) {
	return s.days, s.err
}

func (s *stubLedger) Quote(context.Context, string, models.DateRange, int, string) (models.PricingQuote, error) {
	return s.quote, s.err
}

func (s *stubLedger) Create(context.Context, reservation.CreateBookingRequest) (*models.Booking, error) {
	return s.booking, s.err
}

func (s *stubLedger) Cancel(context.Context, string, string, string) (*models.Booking, error) {
	return s.booking, s.err
}

func (s *stubLedger) Confirm(context.Context, string) (*models.Booking, error) {
	return s.booking, s.err
}

func (s *stubLedger) Complete(context.Context, string) (*models.Booking, error) {
	return s.booking, s.err
}

func (s *stubLedger) MarkNoShow(context.Context, string) (*models.Booking, error) {
	return s.booking, s.err
}

func (s *stubLedger) GetBooking(context.Context, string) (*models.Booking, error) {
	return s.booking, s.err
}

func (s *stubLedger) ListDueForCompletion(context.Context, string, int) ([]models.Booking, error) {
	return nil, s.err
}

func (s *stubLedger) SetupSlots(context.Context, string, []models.Slot) error { return s.err }

func (s *stubLedger) BlockDate(context.Context, string, string, bool, string) error { return s.err }

var _ reservation.Ledger = (*stubLedger)(nil)

func bookingRouter(ledger reservation.Ledger) *gin.Engine {
	router := gin.New()
	h := NewBookingHandler(ledger)
	router.POST("/api/bookings", h.CreateBookingHandler)
	router.GET("/api/bookings/:id", h.GetBookingHandler)
	router.POST("/api/bookings/:id/cancel", h.CancelBookingHandler)
	return router
}

const validBookingBody = `{
	"listing_id": "listing-1",
	"start_date": "2026-03-10",
	"end_date": "2026-03-13",
	"guest_count": 2,
	"guests": {"primary_name": "Ada Lovelace", "primary_email": "ada@example.com"}
}`

func TestCreateBookingHandler(t *testing.T) {
	t.Parallel()

	t.Run("created booking returns 201", func(t *testing.T) {
		t.Parallel()
		ledger := &stubLedger{booking: &models.Booking{ID: "booking-1", Status: models.BookingStatusPending}}
		router := bookingRouter(ledger)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/bookings", strings.NewReader(validBookingBody))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("status = %d, want 201; body: %s", w.Code, w.Body.String())
		}
		var got models.Booking
		if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
			t.Fatalf("unmarshal response: %v", err)
		}
		if got.ID != "booking-1" {
			t.Errorf("booking id = %q, want booking-1", got.ID)
		}
	})

	t.Run("malformed body returns 400", func(t *testing.T) {
		t.Parallel()
		router := bookingRouter(&stubLedger{})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/bookings", strings.NewReader(`{"listing_id": ""}`))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", w.Code)
		}
	})

	t.Run("invalid date range returns 400", func(t *testing.T) {
		t.Parallel()
		router := bookingRouter(&stubLedger{})

		body := strings.Replace(validBookingBody, `"2026-03-13"`, `"2026-03-09"`, 1)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/bookings", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", w.Code)
		}
	})

	t.Run("overbooked maps to 409 with the failing date", func(t *testing.T) {
		t.Parallel()
		ledger := &stubLedger{err: &models.OverbookedError{ListingID: "listing-1", Date: "2026-03-11"}}
		router := bookingRouter(ledger)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/bookings", strings.NewReader(validBookingBody))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		if w.Code != http.StatusConflict {
			t.Fatalf("status = %d, want 409", w.Code)
		}
		var body map[string]any
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("unmarshal response: %v", err)
		}
		if body["error"] != "overbooked" || body["date"] != "2026-03-11" {
			t.Errorf("body = %v, want overbooked on 2026-03-11", body)
		}
	})

	t.Run("storage failure maps to 503", func(t *testing.T) {
		t.Parallel()
		ledger := &stubLedger{err: &models.StorageError{Op: "reserve", Err: context.DeadlineExceeded}}
		router := bookingRouter(ledger)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/bookings", strings.NewReader(validBookingBody))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		if w.Code != http.StatusServiceUnavailable {
			t.Errorf("status = %d, want 503", w.Code)
		}
	})
}

func TestGetBookingHandler(t *testing.T) {
	t.Parallel()

	t.Run("unknown booking returns 404", func(t *testing.T) {
		t.Parallel()
		ledger := &stubLedger{err: &models.NotFoundError{Kind: "booking", ID: "nope"}}
		router := bookingRouter(ledger)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/bookings/nope", nil))

		if w.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", w.Code)
		}
	})
}

func TestCancelBookingHandler(t *testing.T) {
	t.Parallel()

	t.Run("already cancelled maps to 409 with the observed status", func(t *testing.T) {
		t.Parallel()
		ledger := &stubLedger{err: &models.StateTransitionError{
			BookingID: "booking-1",
			From:      models.BookingStatusCancelled,
			Event:     "cancel",
		}}
		router := bookingRouter(ledger)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/bookings/booking-1/cancel", strings.NewReader(`{"reason": "test"}`))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		if w.Code != http.StatusConflict {
			t.Fatalf("status = %d, want 409", w.Code)
		}
		var body map[string]any
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("unmarshal response: %v", err)
		}
		if body["error"] != "invalid_state_transition" || body["status"] != models.BookingStatusCancelled {
			t.Errorf("body = %v, want invalid_state_transition/cancelled", body)
		}
	})

	t.Run("missing reason returns 400", func(t *testing.T) {
		t.Parallel()
		router := bookingRouter(&stubLedger{})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/bookings/booking-1/cancel", strings.NewReader(`{}`))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", w.Code)
		}
	})
}

func TestGetAvailabilityHandler(t *testing.T) {
	t.Parallel()

	router := gin.New()
	ledger := &stubLedger{days: []models.CalendarDay{
		{Date: "2026-03-10", Status: models.DayStatusAvailable, Price: 100},
	}}
	router.GET("/api/listings/:id/availability", NewListingHandler(ledger).GetAvailabilityHandler)

	t.Run("valid range returns the calendar", func(t *testing.T) {
		t.Parallel()
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet,
			"/api/listings/listing-1/availability?start=2026-03-10&end=2026-03-11", nil))

		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200; body: %s", w.Code, w.Body.String())
		}
		var body struct {
			ListingID string               `json:"listing_id"`
			Days      []models.CalendarDay `json:"days"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("unmarshal response: %v", err)
		}
		if body.ListingID != "listing-1" || len(body.Days) != 1 {
			t.Errorf("body = %+v, want one day for listing-1", body)
		}
	})

	t.Run("missing query params return 400", func(t *testing.T) {
		t.Parallel()
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/listings/listing-1/availability", nil))

		if w.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", w.Code)
		}
	})
}
