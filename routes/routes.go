package routes

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"seatwise/handlers"
	"seatwise/middleware"
)

// RegisterRoutes wires every endpoint group onto the router.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	registerAvailabilityRoutes(r, hb)
	registerBookingRoutes(r, hb)
	registerAdminRoutes(r, hb)
}

// registerAvailabilityRoutes registers the public read endpoints.
func registerAvailabilityRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api")
	{
		api.GET("/rooms/:roomID/availability", hb.RoomAvailability)
		api.GET("/seats/:seatID/availability", hb.SeatAvailability)
	}
}

// registerBookingRoutes registers submission and reply-link dispatch.
// Reply links are token-authorized, so no auth middleware here.
func registerBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/bookings")
	{
		api.POST("", middleware.RateLimitMiddleware(), hb.SubmitBooking)
		api.GET("/reply", hb.BookingReply)
	}
}

// registerAdminRoutes registers the JWT-protected admin endpoints.
func registerAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/admin")
	api.Use(middleware.JWTAuthAdminMiddleware())
	{
		api.GET("/bookings/:id", hb.AdminGetBooking)
		api.POST("/bookings/:id/:action", hb.AdminBookingAction)
	}
}
