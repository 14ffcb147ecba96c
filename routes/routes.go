package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"sewakantor/handlers"
	"sewakantor/middleware"
	"sewakantor/utils"
)

// RegisterCatalogRoutes registers the public office and city endpoints.
func RegisterCatalogRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/v1")
	{
		api.GET("/offices", hb.ListOfficesHandler)
		api.GET("/offices/:id", hb.GetOfficeHandler)
		api.GET("/offices/:id/quote", hb.QuoteOfficeHandler)
		api.GET("/cities", hb.ListCitiesHandler)
	}
}

// RegisterBookingRoutes sets up the booking submission and lookup endpoints.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/v1/bookings")
	{
		api.POST("", hb.CreateBookingHandler)
		api.GET("/:id", hb.GetBookingHandler)
		api.GET("/code/:code", hb.GetBookingByCodeHandler)
	}
}

// RegisterSessionRoutes sets up the interactive booking-flow endpoints.
func RegisterSessionRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/v1/booking-sessions")
	{
		api.POST("", hb.InitiateSession)
		api.GET("/:id", hb.GetSession)
		api.PUT("/:id/details", hb.UpdateSessionDetails)
		api.POST("/:id/payment", hb.ProceedToPayment)
		api.POST("/:id/submit", hb.SubmitSession)
		api.DELETE("/:id", hb.CancelSession)
	}
}

// RegisterAdminRoutes sets up endpoints for admin operations.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	admin := r.Group("/api/v1/admin")
	admin.POST("/login", hb.AdminLoginHandler)

	protected := admin.Group("")
	protected.Use(middleware.JWTAuthAdminMiddleware())
	{
		protected.GET("/me", hb.AdminProfileHandler)

		protected.GET("/offices", hb.AdminListOfficesHandler)
		protected.POST("/offices", hb.CreateOfficeHandler)
		protected.PUT("/offices/:id", hb.UpdateOfficeHandler)
		protected.DELETE("/offices/:id", hb.DeleteOfficeHandler)

		protected.POST("/cities", hb.CreateCityHandler)
		protected.PUT("/cities/:id", hb.UpdateCityHandler)
		protected.DELETE("/cities/:id", hb.DeleteCityHandler)

		protected.GET("/bookings", hb.ListBookingsHandler)
		protected.PATCH("/bookings/:id/status", hb.UpdateBookingStatus)
		protected.PATCH("/bookings/:id/payment-status", hb.UpdatePaymentStatus)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, utils.GetHealthStatus())
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "Idempotency-Key"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterCatalogRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterSessionRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
	RegisterHealthRoute(r)
}
