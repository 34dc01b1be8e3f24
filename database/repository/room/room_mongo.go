package roomRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"seatwise/database"
	"seatwise/models"
)

// MongoRoomRepo implements RoomRepository using MongoDB.
type MongoRoomRepo struct {
	roomColl *mongo.Collection
	seatColl *mongo.Collection
}

// NewMongoRoomRepo constructs a new instance of MongoRoomRepo.
func NewMongoRoomRepo() RoomRepository {
	db := database.DB()
	return &MongoRoomRepo{
		roomColl: db.Collection("rooms"),
		seatColl: db.Collection("seats"),
	}
}

func (repo *MongoRoomRepo) GetRoom(ctx context.Context, id string) (*models.Room, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var room models.Room
	if err := repo.roomColl.FindOne(ctx, bson.M{"id": id}).Decode(&room); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrRoomNotFound
		}
		return nil, fmt.Errorf("error fetching room with id %s: %w", id, err)
	}
	return &room, nil
}

func (repo *MongoRoomRepo) GetSeat(ctx context.Context, id string) (*models.Seat, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var seat models.Seat
	if err := repo.seatColl.FindOne(ctx, bson.M{"id": id}).Decode(&seat); err != nil {
		if err != mongo.ErrNoDocuments {
			return nil, fmt.Errorf("error fetching seat with id %s: %w", id, err)
		}
		// Consultation rooms are booked as a whole: the room id doubles
		// as the seat id.
		var room models.Room
		if err := repo.roomColl.FindOne(ctx, bson.M{"id": id, "booking_mode": string(models.BookingModeConsultation)}).Decode(&room); err != nil {
			if err == mongo.ErrNoDocuments {
				return nil, ErrSeatNotFound
			}
			return nil, fmt.Errorf("error fetching seat with id %s: %w", id, err)
		}
		return &models.Seat{ID: room.ID, RoomID: room.ID, Name: room.Name}, nil
	}
	return &seat, nil
}

func (repo *MongoRoomRepo) GetSeatsByRoom(ctx context.Context, room *models.Room) ([]models.Seat, error) {
	if room.BookingMode == models.BookingModeConsultation {
		return []models.Seat{{ID: room.ID, RoomID: room.ID, Name: room.Name}}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := repo.seatColl.Find(ctx, bson.M{"room_id": room.ID})
	if err != nil {
		return nil, fmt.Errorf("error fetching seats for room %s: %w", room.ID, err)
	}
	defer cursor.Close(ctx)

	var seats []models.Seat
	for cursor.Next(ctx) {
		var s models.Seat
		if err := cursor.Decode(&s); err != nil {
			return nil, fmt.Errorf("error decoding seat: %w", err)
		}
		seats = append(seats, s)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return seats, nil
}
