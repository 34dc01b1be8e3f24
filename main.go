// File: seatwise/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"seatwise/config"
	"seatwise/cron"
	"seatwise/database"
	bookingRepoPkg "seatwise/database/repository/booking"
	roomRepoPkg "seatwise/database/repository/room"
	"seatwise/handlers"
	"seatwise/routes"
	"seatwise/services/availability"
	"seatwise/services/booking"
	"seatwise/services/identity"
	"seatwise/services/notification"
	"seatwise/services/tracking"
	"seatwise/utils"
)

func main() {
	config.LoadConfig()
	utils.InitializeLogger()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()

	// Tracking events drain through an asynq worker.
	go cron.InitTrackingWorker()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())

	// repositories.
	bookingRepo := bookingRepoPkg.NewMongoBookingRepo()
	roomRepo := roomRepoPkg.NewMongoRoomRepo()

	// services.
	availabilityIndex := &availability.Index{
		Rooms:    roomRepo,
		Bookings: bookingRepo,
	}
	notifier := notification.NewEmailNotificationService(logger)
	trackingSink := tracking.NewAsynqSink(logger)
	defer trackingSink.Close()

	engine := booking.NewBookingEngine(
		bookingRepo,
		roomRepo,
		availabilityIndex,
		notifier,
		trackingSink,
		identity.NoopProvider{},
		logger,
	)

	bookingHandler := handlers.NewBookingHandler(engine, logger)
	availabilityHandler := handlers.NewAvailabilityHandler(availabilityIndex, utils.GetCacheClient(), logger)
	adminHandler := handlers.NewAdminHandler(engine)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		SubmitBooking:      bookingHandler.SubmitBookingHandler,
		BookingReply:       bookingHandler.BookingReplyHandler,
		RoomAvailability:   availabilityHandler.RoomAvailabilityHandler,
		SeatAvailability:   availabilityHandler.SeatAvailabilityHandler,
		AdminGetBooking:    adminHandler.GetBookingHandler,
		AdminBookingAction: adminHandler.BookingActionHandler,
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

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
