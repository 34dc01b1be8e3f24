package roomRepo

import (
	"context"
	"errors"

	"seatwise/models"
)

var (
	// ErrRoomNotFound is returned when a room id does not resolve.
	ErrRoomNotFound = errors.New("room not found")
	// ErrSeatNotFound is returned when a seat id does not resolve.
	ErrSeatNotFound = errors.New("seat not found")
)

// RoomRepository defines the data access contract for rooms and seats.
type RoomRepository interface {
	GetRoom(ctx context.Context, id string) (*models.Room, error)
	GetSeat(ctx context.Context, id string) (*models.Seat, error)
	// GetSeatsByRoom lists the seats of a room. For consultation rooms
	// the room itself is the single bookable unit and is returned as a
	// synthetic seat carrying the room id.
	GetSeatsByRoom(ctx context.Context, room *models.Room) ([]models.Seat, error)
}
