package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	bookingRepo "sewakantor/database/repository/booking"
	"sewakantor/models"
	"sewakantor/services/booking"
	"sewakantor/utils"
)

// BookingHandler exposes booking creation and management endpoints.
type BookingHandler struct {
	Service booking.BookingService
}

// NewBookingHandler constructs a BookingHandler.
func NewBookingHandler(service booking.BookingService) *BookingHandler {
	return &BookingHandler{Service: service}
}

// CreateBooking handles POST /api/v1/bookings.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var req models.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	idempotencyKey := c.GetHeader("Idempotency-Key")
	created, isNew, err := h.Service.CreateBooking(c.Request.Context(), &req, idempotencyKey)
	if err != nil {
		writeBookingError(c, err)
		return
	}

	status := http.StatusCreated
	message := "Booking created successfully"
	if !isNew {
		status = http.StatusOK
		message = "Booking already exists for this idempotency key"
	}
	respond(c, status, created, message)
}

// GetBooking handles GET /api/v1/bookings/:id.
func (h *BookingHandler) GetBooking(c *gin.Context) {
	booked, err := h.Service.GetBooking(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeBookingError(c, err)
		return
	}
	respond(c, http.StatusOK, booked, "Booking retrieved successfully")
}

// GetBookingByCode handles GET /api/v1/bookings/code/:code.
func (h *BookingHandler) GetBookingByCode(c *gin.Context) {
	booked, err := h.Service.GetBookingByCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		writeBookingError(c, err)
		return
	}
	respond(c, http.StatusOK, booked, "Booking retrieved successfully")
}

// ListBookings handles GET /api/v1/admin/bookings with filters and pagination.
func (h *BookingHandler) ListBookings(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	criteria := bookingRepo.BookingSearchCriteria{
		OfficeID:      c.Query("office_id"),
		Status:        c.Query("status"),
		PaymentStatus: c.Query("payment_status"),
		StartDateFrom: c.Query("start_date"),
		EndDateTo:     c.Query("end_date"),
		Search:        c.Query("search"),
		Page:          page,
		PerPage:       perPage,
	}

	bookings, total, err := h.Service.ListBookings(c.Request.Context(), criteria)
	if err != nil {
		utils.GetLogger().Error("failed to list bookings", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "failed to list bookings")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"data":       bookings,
		"pagination": pagination(page, perPage, total),
		"message":    "Bookings retrieved successfully",
	})
}

// UpdateBookingStatus handles PATCH /api/v1/admin/bookings/:id/status.
func (h *BookingHandler) UpdateBookingStatus(c *gin.Context) {
	var input struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, "status is required")
		return
	}

	updated, err := h.Service.UpdateStatus(c.Request.Context(), c.Param("id"), input.Status)
	if err != nil {
		writeBookingError(c, err)
		return
	}
	respond(c, http.StatusOK, updated, "Booking status updated successfully")
}

// UpdatePaymentStatus handles PATCH /api/v1/admin/bookings/:id/payment-status.
func (h *BookingHandler) UpdatePaymentStatus(c *gin.Context) {
	var input struct {
		PaymentStatus    string `json:"payment_status" binding:"required"`
		PaymentMethod    string `json:"payment_method"`
		PaymentReference string `json:"payment_reference"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, "payment_status is required")
		return
	}

	updated, err := h.Service.UpdatePaymentStatus(c.Request.Context(), c.Param("id"),
		input.PaymentStatus, input.PaymentMethod, input.PaymentReference)
	if err != nil {
		writeBookingError(c, err)
		return
	}
	respond(c, http.StatusOK, updated, "Payment status updated successfully")
}

// writeBookingError maps domain errors onto HTTP responses. Anything
// unrecognized is a server fault and logged as such.
func writeBookingError(c *gin.Context, err error) {
	var vErr *booking.ValidationError
	if errors.As(err, &vErr) {
		respondFieldErrors(c, http.StatusUnprocessableEntity, "validation failed", vErr.Fields)
		return
	}

	var tierErr *booking.TierUnavailableError
	if errors.As(err, &tierErr) {
		respondError(c, http.StatusUnprocessableEntity, tierErr.Error())
		return
	}

	switch {
	case errors.Is(err, booking.ErrOfficeNotFound), errors.Is(err, booking.ErrBookingNotFound):
		respondError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, booking.ErrOfficeUnavailable):
		respondError(c, http.StatusUnprocessableEntity, "Office is not available for booking")
	case errors.Is(err, booking.ErrBookingInProgress):
		respondError(c, http.StatusConflict, err.Error())
	case errors.Is(err, booking.ErrSessionNotFound):
		respondError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, booking.ErrInvalidTransition):
		respondError(c, http.StatusConflict, err.Error())
	case errors.Is(err, booking.ErrMissingContactInfo):
		respondError(c, http.StatusUnprocessableEntity, err.Error())
	default:
		utils.GetLogger().Error("booking operation failed", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "internal server error")
	}
}
