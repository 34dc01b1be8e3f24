package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"seatwise/models"
	"seatwise/services/booking"
)

// BookingHandler exposes the public booking endpoints: form
// submission and reply-link dispatch.
type BookingHandler struct {
	Engine booking.BookingEngine
	Logger *zap.Logger
}

// NewBookingHandler creates a new BookingHandler.
func NewBookingHandler(engine booking.BookingEngine, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{Engine: engine, Logger: logger}
}

// allowed reply actions per role. Admin links only ever carry confirm
// or cancel; anything else on an admin token is a forged URL.
var adminReplyActions = map[models.BookingAction]bool{
	models.ActionConfirm: true,
	models.ActionCancel:  true,
}

var customerReplyActions = map[models.BookingAction]bool{
	models.ActionConfirm:     true,
	models.ActionCancel:      true,
	models.ActionMaybeCancel: true,
	models.ActionCheckin:     true,
	models.ActionCheckout:    true,
}

// SubmitBookingHandler validates and stores a booking request.
func (bh *BookingHandler) SubmitBookingHandler(c *gin.Context) {
	var input models.SubmitBookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	result, err := bh.Engine.Submit(c.Request.Context(), input)
	if err != nil {
		var se *booking.SubmitError
		if errors.As(err, &se) {
			c.JSON(http.StatusBadRequest, gin.H{"error": se.Code, "message": se.Message})
			return
		}
		bh.Logger.Error("booking submission failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store booking"})
		return
	}
	c.JSON(http.StatusCreated, result)
}

// BookingReplyHandler dispatches an action carried by an emailed reply
// link. The token decides whether the caller acts as admin or
// customer; a token that fits neither scope gets a flat 403.
func (bh *BookingHandler) BookingReplyHandler(c *gin.Context) {
	bookingID := c.Query("id")
	token := c.Query("token")
	action, ok := models.ParseBookingAction(c.Query("action"))
	if bookingID == "" || token == "" || !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid reply link"})
		return
	}

	role, _, err := bh.Engine.AuthorizeReply(c.Request.Context(), bookingID, token)
	if err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return
	}
	switch role {
	case booking.RoleAdmin:
		if !adminReplyActions[action] {
			c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}
	case booking.RoleCustomer:
		if !customerReplyActions[action] {
			c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}
	}

	result, err := bh.Engine.PerformAction(c.Request.Context(), bookingID, action, role)
	if err != nil {
		if errors.Is(err, booking.ErrBookingNotFound) || errors.Is(err, booking.ErrUnauthorized) {
			c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}
		bh.Logger.Error("reply dispatch failed",
			zap.String("bookingID", bookingID),
			zap.String("action", string(action)),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to process reply"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"result":      result.Kind,
		"alreadyDone": result.AlreadyDone,
		"role":        role,
	})
}
