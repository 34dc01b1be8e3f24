// File: seatwise/handlers/bundle.go
package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	// Public booking endpoints.
	SubmitBooking gin.HandlerFunc
	BookingReply  gin.HandlerFunc

	// Availability endpoints.
	RoomAvailability gin.HandlerFunc
	SeatAvailability gin.HandlerFunc

	// Admin endpoints.
	AdminGetBooking    gin.HandlerFunc
	AdminBookingAction gin.HandlerFunc
}
