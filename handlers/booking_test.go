package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bookingRepo "sewakantor/database/repository/booking"
	"sewakantor/models"
	"sewakantor/services/booking"
)

type stubBookingService struct {
	booking *models.Booking
	isNew   bool
	err     error

	lastKey string
}

func (s *stubBookingService) CreateBooking(ctx context.Context, req *models.BookingRequest, idempotencyKey string) (*models.Booking, bool, error) {
	s.lastKey = idempotencyKey
	return s.booking, s.isNew, s.err
}

func (s *stubBookingService) GetBooking(ctx context.Context, id string) (*models.Booking, error) {
	if s.booking != nil && s.booking.ID == id {
		return s.booking, nil
	}
	return nil, booking.ErrBookingNotFound
}

func (s *stubBookingService) GetBookingByCode(ctx context.Context, code string) (*models.Booking, error) {
	if s.booking != nil && s.booking.BookingCode == code {
		return s.booking, nil
	}
	return nil, booking.ErrBookingNotFound
}

func (s *stubBookingService) ListBookings(ctx context.Context, criteria bookingRepo.BookingSearchCriteria) ([]models.Booking, int64, error) {
	if s.booking == nil {
		return nil, 0, nil
	}
	return []models.Booking{*s.booking}, 1, nil
}

func (s *stubBookingService) UpdateStatus(ctx context.Context, id string, status string) (*models.Booking, error) {
	return s.booking, s.err
}

func (s *stubBookingService) UpdatePaymentStatus(ctx context.Context, id string, paymentStatus, method, reference string) (*models.Booking, error) {
	return s.booking, s.err
}

func newBookingRouter(svc booking.BookingService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewBookingHandler(svc)
	r := gin.New()
	r.POST("/api/v1/bookings", h.CreateBooking)
	r.GET("/api/v1/bookings/:id", h.GetBooking)
	r.GET("/api/v1/bookings/code/:code", h.GetBookingByCode)
	return r
}

func sampleBooking() *models.Booking {
	return &models.Booking{
		ID:          "booking-1",
		BookingCode: "BKAB12CD34",
		OfficeID:    "office-1",
		Total:       348000,
		Status:      models.BookingStatusPending,
	}
}

const createBody = `{"office_id":"office-1","start_date":"2026-01-01","end_date":"2026-01-03","rental_type":"daily","customer_name":"Budi","customer_email":"budi@example.com","customer_phone":"0812"}`

func TestCreateBookingEndpoint(t *testing.T) {
	t.Run("new booking responds 201", func(t *testing.T) {
		svc := &stubBookingService{booking: sampleBooking(), isNew: true}
		r := newBookingRouter(svc)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(createBody))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Idempotency-Key", "key-1")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, "key-1", svc.lastKey)

		var envelope models.BookingAPIResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
		assert.True(t, envelope.Success)
		require.NotNil(t, envelope.Data)
		assert.Equal(t, "BKAB12CD34", envelope.Data.BookingCode)
	})

	t.Run("idempotent replay responds 200", func(t *testing.T) {
		svc := &stubBookingService{booking: sampleBooking(), isNew: false}
		r := newBookingRouter(svc)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(createBody))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("validation errors map to 422 with field map", func(t *testing.T) {
		svc := &stubBookingService{
			err: &booking.ValidationError{Fields: map[string]string{"customer_email": "email is required"}},
		}
		r := newBookingRouter(svc)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(createBody))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

		var body struct {
			Success bool              `json:"success"`
			Errors  map[string]string `json:"errors"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.False(t, body.Success)
		assert.Equal(t, "email is required", body.Errors["customer_email"])
	})

	t.Run("tier unavailable maps to 422", func(t *testing.T) {
		svc := &stubBookingService{err: &booking.TierUnavailableError{Period: models.PeriodWeekly}}
		r := newBookingRouter(svc)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(createBody))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("unknown office maps to 404", func(t *testing.T) {
		svc := &stubBookingService{err: booking.ErrOfficeNotFound}
		r := newBookingRouter(svc)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(createBody))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestGetBookingEndpoints(t *testing.T) {
	svc := &stubBookingService{booking: sampleBooking()}
	r := newBookingRouter(svc)

	t.Run("by id", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/bookings/booking-1", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("by code", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/bookings/code/BKAB12CD34", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("missing booking responds 404", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/bookings/nope", nil))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
