package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	roomRepo "seatwise/database/repository/room"
	"seatwise/services/availability"
)

// availabilityCacheTTL keeps snapshots fresh enough that a just-placed
// booking disappears from the grid within a minute.
const availabilityCacheTTL = 60 * time.Second

// AvailabilityHandler serves the read side: free-slot grids per room
// and per seat, cached in Redis.
type AvailabilityHandler struct {
	Index  *availability.Index
	Cache  *redis.Client
	Logger *zap.Logger
}

// NewAvailabilityHandler creates a new AvailabilityHandler.
func NewAvailabilityHandler(index *availability.Index, cache *redis.Client, logger *zap.Logger) *AvailabilityHandler {
	return &AvailabilityHandler{Index: index, Cache: cache, Logger: logger}
}

// RoomAvailabilityHandler returns date -> slot label -> free seat IDs
// for a room over a date range.
func (ah *AvailabilityHandler) RoomAvailabilityHandler(c *gin.Context) {
	roomID := c.Param("roomID")
	from, to, ok := ah.dateRange(c)
	if !ok {
		return
	}

	cacheKey := fmt.Sprintf("availability:room:%s:%s:%s", roomID, c.Query("start"), c.Query("end"))
	if ah.serveCached(c, cacheKey) {
		return
	}

	result, err := ah.Index.RoomAvailability(c.Request.Context(), roomID, from, to)
	if err != nil {
		if errors.Is(err, roomRepo.ErrRoomNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
			return
		}
		ah.Logger.Error("room availability lookup failed", zap.String("roomID", roomID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute availability"})
		return
	}

	ah.storeCached(c.Request.Context(), cacheKey, result)
	c.JSON(http.StatusOK, result)
}

// SeatAvailabilityHandler returns date -> free slot labels for a
// single seat over a date range.
func (ah *AvailabilityHandler) SeatAvailabilityHandler(c *gin.Context) {
	seatID := c.Param("seatID")
	from, to, ok := ah.dateRange(c)
	if !ok {
		return
	}

	cacheKey := fmt.Sprintf("availability:seat:%s:%s:%s", seatID, c.Query("start"), c.Query("end"))
	if ah.serveCached(c, cacheKey) {
		return
	}

	result, err := ah.Index.SeatAvailability(c.Request.Context(), seatID, from, to)
	if err != nil {
		if errors.Is(err, roomRepo.ErrSeatNotFound) || errors.Is(err, roomRepo.ErrRoomNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "seat not found"})
			return
		}
		ah.Logger.Error("seat availability lookup failed", zap.String("seatID", seatID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute availability"})
		return
	}

	ah.storeCached(c.Request.Context(), cacheKey, result)
	c.JSON(http.StatusOK, result)
}

// dateRange parses the from/to query params. Missing params default to
// a one-week window starting today.
func (ah *AvailabilityHandler) dateRange(c *gin.Context) (from, to time.Time, ok bool) {
	loc := ah.Index.Location
	if loc == nil {
		loc = time.Local
	}
	now := time.Now().In(loc)
	from = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	to = from.AddDate(0, 0, 7)

	var err error
	if s := c.Query("start"); s != "" {
		if from, err = time.ParseInLocation(availability.DateFormat, s, loc); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start date"})
			return from, to, false
		}
	}
	if s := c.Query("end"); s != "" {
		if to, err = time.ParseInLocation(availability.DateFormat, s, loc); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end date"})
			return from, to, false
		}
	}
	if to.Before(from) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "end date before start date"})
		return from, to, false
	}
	return from, to, true
}

func (ah *AvailabilityHandler) serveCached(c *gin.Context, key string) bool {
	if ah.Cache == nil {
		return false
	}
	data, err := ah.Cache.Get(c.Request.Context(), key).Result()
	if err != nil {
		return false
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(data))
	return true
}

func (ah *AvailabilityHandler) storeCached(ctx context.Context, key string, value interface{}) {
	if ah.Cache == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := ah.Cache.Set(ctx, key, data, availabilityCacheTTL).Err(); err != nil {
		ah.Logger.Warn("availability cache write failed", zap.String("key", key), zap.Error(err))
	}
}
