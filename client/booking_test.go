package client_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sewakantor/client"
	"sewakantor/models"
)

func validRequest() *models.BookingRequest {
	return &models.BookingRequest{
		OfficeID:      "office-1",
		StartDate:     "2024-01-01",
		EndDate:       "2024-01-04",
		RentalType:    "daily",
		CustomerName:  "Budi Santoso",
		CustomerEmail: "budi@example.com",
		CustomerPhone: "+628123456789",
		ComputedTotal: 464000,
	}
}

func TestSubmit(t *testing.T) {
	ctx := context.Background()

	t.Run("posts the booking and returns the confirmed record verbatim", func(t *testing.T) {
		calls := 0
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls++
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/api/v1/bookings", r.URL.Path)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			assert.NotEmpty(t, r.Header.Get("Idempotency-Key"))

			var req models.BookingRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "office-1", req.OfficeID)
			assert.Equal(t, "daily", req.RentalType)
			assert.Equal(t, models.Money(464000), req.ComputedTotal)

			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(models.BookingAPIResponse{
				Success: true,
				Data: &models.Booking{
					ID:          "bk-1",
					BookingCode: "BKA1B2C3D4",
					OfficeID:    req.OfficeID,
					// Backend-owned total deliberately differs from the
					// client quote; the client must not reinterpret it.
					Total:  999999,
					Status: models.BookingStatusPending,
				},
				Message: "Booking created successfully",
			})
		}))
		defer server.Close()

		c := client.New(server.URL, 2*time.Second)
		booking, err := c.Submit(ctx, validRequest())
		require.NoError(t, err)
		assert.Equal(t, 1, calls, "exactly one network call per invocation")
		assert.Equal(t, "BKA1B2C3D4", booking.BookingCode)
		assert.Equal(t, models.Money(999999), booking.Total)
	})

	t.Run("missing email short-circuits before any network call", func(t *testing.T) {
		calls := 0
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls++
		}))
		defer server.Close()

		req := validRequest()
		req.CustomerEmail = ""

		c := client.New(server.URL, 2*time.Second)
		_, err := c.Submit(ctx, req)

		var vErr *client.ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Contains(t, vErr.Fields, "customer_email")
		assert.Zero(t, calls, "validation failures must never reach the network")
	})

	t.Run("malformed email is rejected locally", func(t *testing.T) {
		req := validRequest()
		req.CustomerEmail = "budi@nowhere"

		c := client.New("http://127.0.0.1:0", 2*time.Second)
		_, err := c.Submit(ctx, req)

		var vErr *client.ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, "email is invalid", vErr.Fields["customer_email"])
	})

	t.Run("collects every invalid field in one pass", func(t *testing.T) {
		c := client.New("http://127.0.0.1:0", 2*time.Second)
		_, err := c.Submit(ctx, &models.BookingRequest{RentalType: "hourly"})

		var vErr *client.ValidationError
		require.ErrorAs(t, err, &vErr)
		for _, field := range []string{"office_id", "customer_name", "customer_email", "customer_phone", "start_date", "end_date", "rental_type"} {
			assert.Contains(t, vErr.Fields, field)
		}
	})

	t.Run("non-success HTTP status maps to a booking error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnprocessableEntity)
			json.NewEncoder(w).Encode(models.BookingAPIResponse{
				Success: false,
				Message: "Office is not available for booking",
			})
		}))
		defer server.Close()

		c := client.New(server.URL, 2*time.Second)
		_, err := c.Submit(ctx, validRequest())

		var bErr *client.BookingError
		require.ErrorAs(t, err, &bErr)
		assert.Equal(t, "Office is not available for booking", bErr.Message)
	})

	t.Run("success=false with 200 still fails", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(models.BookingAPIResponse{Success: false, Message: "quota exceeded"})
		}))
		defer server.Close()

		c := client.New(server.URL, 2*time.Second)
		_, err := c.Submit(ctx, validRequest())

		var bErr *client.BookingError
		require.ErrorAs(t, err, &bErr)
		assert.Equal(t, "quota exceeded", bErr.Message)
	})

	t.Run("transport failure maps to a booking error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		server.Close() // refuse connections

		c := client.New(server.URL, time.Second)
		_, err := c.Submit(ctx, validRequest())

		var bErr *client.BookingError
		assert.ErrorAs(t, err, &bErr)
	})

	t.Run("retry with the same key reuses the idempotency header", func(t *testing.T) {
		var keys []string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			keys = append(keys, r.Header.Get("Idempotency-Key"))
			if len(keys) == 1 {
				w.WriteHeader(http.StatusBadGateway)
				return
			}
			json.NewEncoder(w).Encode(models.BookingAPIResponse{
				Success: true,
				Data:    &models.Booking{ID: "bk-1", BookingCode: "BKRETRY001"},
			})
		}))
		defer server.Close()

		c := client.New(server.URL, 2*time.Second)
		key := "attempt-42"

		_, err := c.SubmitWithKey(ctx, validRequest(), key)
		var bErr *client.BookingError
		require.ErrorAs(t, err, &bErr)

		booking, err := c.SubmitWithKey(ctx, validRequest(), key)
		require.NoError(t, err)
		assert.Equal(t, "BKRETRY001", booking.BookingCode)
		assert.Equal(t, []string{key, key}, keys)
	})
}
