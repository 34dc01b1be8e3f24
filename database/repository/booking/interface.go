package bookingRepo

import (
	"context"
	"errors"
	"time"

	"seatwise/models"
)

// ErrNotFound is returned when a booking id does not resolve.
var ErrNotFound = errors.New("booking not found")

// ErrSlotTaken is returned when the storage-level uniqueness constraint
// on (seat, start) rejects a create because an active booking already
// holds that slot.
var ErrSlotTaken = errors.New("seat slot already booked")

// BookingRepository defines the data access contract for bookings.
type BookingRepository interface {
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	Create(ctx context.Context, booking *models.Booking) error
	// TransitionStatus moves the booking from one of the expected
	// statuses to the target status. It reports false without error
	// when the precondition no longer holds, which serializes
	// concurrent transitions on the same booking.
	TransitionStatus(ctx context.Context, id string, from []models.BookingStatus, to models.BookingStatus) (bool, error)
	SetStatus(ctx context.Context, id string, status models.BookingStatus) error
	SetCustomerStatus(ctx context.Context, id string, status models.CustomerStatus) error
	// FindByGuestAndStart lists bookings with the given guest email and
	// exact start timestamp in any of the given statuses. Used for
	// duplicate-submission detection.
	FindByGuestAndStart(ctx context.Context, email string, start time.Time, statuses []models.BookingStatus) ([]models.Booking, error)
	// FindBySeatsInRange lists bookings for any of the given seats with
	// a start inside [from, to) in any of the given statuses. Used by
	// the availability index.
	FindBySeatsInRange(ctx context.Context, seatIDs []string, from, to time.Time, statuses []models.BookingStatus) ([]models.Booking, error)
	// Delete removes a booking. Deleting a missing booking is a no-op.
	Delete(ctx context.Context, id string) error
}
