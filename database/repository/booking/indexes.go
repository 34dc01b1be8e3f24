package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the necessary indexes on the bookings collection.
// The partial unique index on (seat_id, start) closes the double-booking
// race between the availability pre-check and the insert: only one
// active booking can hold a seat slot at a time.
func (repo *MongoBookingRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	activeStatuses := bson.M{"$in": []string{"booked", "confirmed", "checked-in"}}

	indexModels := []mongo.IndexModel{
		// Unique index on booking ID
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		// One active booking per seat slot
		{
			Keys: bson.D{{Key: "seat_id", Value: 1}, {Key: "start", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetName("unique_active_seat_start").
				SetPartialFilterExpression(bson.M{"status": activeStatuses}),
		},
		// Duplicate-submission lookups
		{
			Keys:    bson.D{{Key: "guest_email", Value: 1}, {Key: "start", Value: 1}, {Key: "status", Value: 1}},
			Options: options.Index().SetName("guest_start_status_idx"),
		},
		// Availability range scans
		{
			Keys:    bson.D{{Key: "seat_id", Value: 1}, {Key: "start", Value: 1}, {Key: "status", Value: 1}},
			Options: options.Index().SetName("seat_start_status_idx"),
		},
	}

	_, err := repo.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create booking indexes: %w", err)
	}
	return nil
}
