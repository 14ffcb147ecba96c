package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"sewakantor/models"
	"sewakantor/services/booking"
)

// SessionHandler exposes the interactive booking-flow endpoints.
type SessionHandler struct {
	Service booking.SessionService
}

// NewSessionHandler constructs a SessionHandler.
func NewSessionHandler(service booking.SessionService) *SessionHandler {
	return &SessionHandler{Service: service}
}

// InitiateSession handles POST /api/v1/booking-sessions.
func (h *SessionHandler) InitiateSession(c *gin.Context) {
	var input booking.InitiateSessionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, "office_id, start_date, end_date and rental_type are required")
		return
	}

	session, err := h.Service.Initiate(c.Request.Context(), input)
	if err != nil {
		writeBookingError(c, err)
		return
	}
	respond(c, http.StatusCreated, session, "Booking session started")
}

// GetSession handles GET /api/v1/booking-sessions/:id.
func (h *SessionHandler) GetSession(c *gin.Context) {
	session, err := h.Service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeBookingError(c, err)
		return
	}
	respond(c, http.StatusOK, session, "Booking session retrieved")
}

// UpdateSessionDetails handles PUT /api/v1/booking-sessions/:id/details.
func (h *SessionHandler) UpdateSessionDetails(c *gin.Context) {
	var details booking.SessionDetailsInput
	if err := c.ShouldBindJSON(&details); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	session, err := h.Service.UpdateDetails(c.Request.Context(), c.Param("id"), details)
	if err != nil {
		writeBookingError(c, err)
		return
	}
	respond(c, http.StatusOK, session, "Booking details updated")
}

// ProceedToPayment handles POST /api/v1/booking-sessions/:id/payment.
func (h *SessionHandler) ProceedToPayment(c *gin.Context) {
	var input struct {
		PaymentMethod string `json:"payment_method"`
	}
	// Body is optional; a missing payment method defaults later.
	_ = c.ShouldBindJSON(&input)

	session, err := h.Service.ProceedToPayment(c.Request.Context(), c.Param("id"), input.PaymentMethod)
	if err != nil {
		writeBookingError(c, err)
		return
	}
	respond(c, http.StatusOK, session, "Awaiting payment")
}

// SubmitSession handles POST /api/v1/booking-sessions/:id/submit.
// A Failed session may be submitted again; the retry reuses the same
// idempotency key so a double submission cannot double-book.
func (h *SessionHandler) SubmitSession(c *gin.Context) {
	session, err := h.Service.Submit(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeBookingError(c, err)
		return
	}

	message := "Booking confirmed"
	if session.State != models.SessionConfirmed {
		message = "Booking submission failed, nothing was booked"
	}
	respond(c, http.StatusOK, session, message)
}

// CancelSession handles DELETE /api/v1/booking-sessions/:id.
func (h *SessionHandler) CancelSession(c *gin.Context) {
	if err := h.Service.Cancel(c.Request.Context(), c.Param("id")); err != nil {
		writeBookingError(c, err)
		return
	}
	respond(c, http.StatusOK, nil, "Booking session cancelled")
}
