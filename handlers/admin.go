// File: seatwise/handlers/admin.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"seatwise/models"
	"seatwise/services/booking"
)

// AdminHandler encapsulates elevated admin-level booking operations.
type AdminHandler struct {
	Engine booking.BookingEngine
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(engine booking.BookingEngine) *AdminHandler {
	return &AdminHandler{Engine: engine}
}

// GetBookingHandler returns a single booking by id.
func (ah *AdminHandler) GetBookingHandler(c *gin.Context) {
	b, err := ah.Engine.GetBooking(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, booking.ErrBookingNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
			return
		}
		zap.L().Error("failed to fetch booking", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch booking"})
		return
	}
	c.JSON(http.StatusOK, b)
}

// BookingActionHandler runs confirm, cancel, delete or restore against
// a booking with admin authority.
func (ah *AdminHandler) BookingActionHandler(c *gin.Context) {
	action, ok := models.ParseBookingAction(c.Param("action"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown action"})
		return
	}
	switch action {
	case models.ActionConfirm, models.ActionCancel, models.ActionDelete, models.ActionRestore:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "action not available to admins"})
		return
	}

	result, err := ah.Engine.PerformAction(c.Request.Context(), c.Param("id"), action, booking.RoleAdmin)
	if err != nil {
		if errors.Is(err, booking.ErrBookingNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
			return
		}
		zap.L().Error("admin booking action failed",
			zap.String("bookingID", c.Param("id")),
			zap.String("action", string(action)),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to process action"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"result":      result.Kind,
		"alreadyDone": result.AlreadyDone,
		"booking":     result.Booking,
	})
}
