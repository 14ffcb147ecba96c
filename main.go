package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"sewakantor/config"
	"sewakantor/cron"
	"sewakantor/database"
	adminRepoPkg "sewakantor/database/repository/admin"
	bookingRepoPkg "sewakantor/database/repository/booking"
	cityRepoPkg "sewakantor/database/repository/city"
	officeRepoPkg "sewakantor/database/repository/office"
	"sewakantor/handlers"
	"sewakantor/middleware"
	"sewakantor/routes"
	"sewakantor/services/booking"
	"sewakantor/services/catalog"
	"sewakantor/utils"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitRedis()

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware(config.AppConfig.MaxRequestsPerMin))

	// repositories.
	officeRepo := officeRepoPkg.NewMongoOfficeRepo()
	bookingRepo := bookingRepoPkg.NewMongoBookingRepo()
	cityRepo := cityRepoPkg.NewMongoCityRepo()
	adminRepo := adminRepoPkg.NewMongoAdminRepo()

	// services.
	catalogService := &catalog.DefaultCatalogService{
		Offices:  officeRepo,
		Cities:   cityRepo,
		Cache:    utils.GetCacheClient(),
		CacheTTL: time.Duration(config.AppConfig.OfficeCacheTTLMin) * time.Minute,
	}

	bookingService := &booking.DefaultBookingService{
		Repo:       bookingRepo,
		OfficeRepo: officeRepo,
		Validator:  booking.NewRequestValidator(),
		Cache:      utils.GetCacheClient(),
	}

	sessionStore := &booking.RedisSessionStore{
		Client: utils.GetSessionCacheClient(),
		TTL:    time.Duration(config.AppConfig.SessionTTLMin) * time.Minute,
	}
	sessionService := &booking.DefaultSessionService{
		Store:      sessionStore,
		OfficeRepo: officeRepo,
		Bookings:   bookingService,
	}

	// handlers.
	officeHandler := handlers.NewOfficeHandler(catalogService)
	cityHandler := handlers.NewCityHandler(catalogService)
	bookingHandler := handlers.NewBookingHandler(bookingService)
	sessionHandler := handlers.NewSessionHandler(sessionService)
	adminHandler := handlers.NewAdminHandler(adminRepo)

	handlerBundle := handlers.NewHandlerBundle(
		officeHandler, cityHandler, bookingHandler, sessionHandler, adminHandler,
	)

	routes.RegisterRoutes(router, handlerBundle)

	// Background workers and monitors.
	cron.InitExpiryWorker(bookingRepo)
	utils.StartHealthMonitor(
		map[string]*redis.Client{
			"cache":   utils.GetCacheClient(),
			"session": utils.GetSessionCacheClient(),
		},
		database.MongoClient,
	)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
