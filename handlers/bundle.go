package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	// Catalog endpoints
	ListOfficesHandler      gin.HandlerFunc
	GetOfficeHandler        gin.HandlerFunc
	QuoteOfficeHandler      gin.HandlerFunc
	ListCitiesHandler       gin.HandlerFunc
	AdminListOfficesHandler gin.HandlerFunc
	CreateOfficeHandler     gin.HandlerFunc
	UpdateOfficeHandler     gin.HandlerFunc
	DeleteOfficeHandler     gin.HandlerFunc
	CreateCityHandler       gin.HandlerFunc
	UpdateCityHandler       gin.HandlerFunc
	DeleteCityHandler       gin.HandlerFunc

	// Booking endpoints
	CreateBookingHandler    gin.HandlerFunc
	GetBookingHandler       gin.HandlerFunc
	GetBookingByCodeHandler gin.HandlerFunc
	ListBookingsHandler     gin.HandlerFunc
	UpdateBookingStatus     gin.HandlerFunc
	UpdatePaymentStatus     gin.HandlerFunc

	// Booking session endpoints
	InitiateSession      gin.HandlerFunc
	GetSession           gin.HandlerFunc
	UpdateSessionDetails gin.HandlerFunc
	ProceedToPayment     gin.HandlerFunc
	SubmitSession        gin.HandlerFunc
	CancelSession        gin.HandlerFunc

	// Admin auth endpoints
	AdminLoginHandler   gin.HandlerFunc
	AdminProfileHandler gin.HandlerFunc
}

// NewHandlerBundle wires the individual handlers into a bundle ready for
// route registration.
func NewHandlerBundle(office *OfficeHandler, city *CityHandler, bookingH *BookingHandler, session *SessionHandler, admin *AdminHandler) *HandlerBundle {
	return &HandlerBundle{
		ListOfficesHandler:      office.ListOffices,
		GetOfficeHandler:        office.GetOffice,
		QuoteOfficeHandler:      office.QuoteOffice,
		ListCitiesHandler:       city.ListCities,
		AdminListOfficesHandler: office.AdminListOffices,
		CreateOfficeHandler:     office.CreateOffice,
		UpdateOfficeHandler:     office.UpdateOffice,
		DeleteOfficeHandler:     office.DeleteOffice,
		CreateCityHandler:       city.CreateCity,
		UpdateCityHandler:       city.UpdateCity,
		DeleteCityHandler:       city.DeleteCity,

		CreateBookingHandler:    bookingH.CreateBooking,
		GetBookingHandler:       bookingH.GetBooking,
		GetBookingByCodeHandler: bookingH.GetBookingByCode,
		ListBookingsHandler:     bookingH.ListBookings,
		UpdateBookingStatus:     bookingH.UpdateBookingStatus,
		UpdatePaymentStatus:     bookingH.UpdatePaymentStatus,

		InitiateSession:      session.InitiateSession,
		GetSession:           session.GetSession,
		UpdateSessionDetails: session.UpdateSessionDetails,
		ProceedToPayment:     session.ProceedToPayment,
		SubmitSession:        session.SubmitSession,
		CancelSession:        session.CancelSession,

		AdminLoginHandler:   admin.Login,
		AdminProfileHandler: admin.Profile,
	}
}
