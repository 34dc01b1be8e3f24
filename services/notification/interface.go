package notification

import (
	"context"

	"seatwise/models"
)

// NotificationService defines the outbound booking emails. One call
// corresponds to one message; callers decide which kind a transition
// warrants and treat delivery failures as non-fatal.
type NotificationService interface {
	// BookingRequestedCustomer asks the customer to confirm their
	// booking (double-confirmation rooms).
	BookingRequestedCustomer(ctx context.Context, booking *models.Booking, room *models.Room) error
	// BookingConfirmedCustomer tells the customer the booking is binding.
	BookingConfirmedCustomer(ctx context.Context, booking *models.Booking, room *models.Room) error
	// BookingCancelledCustomer tells the customer the booking was cancelled.
	BookingCancelledCustomer(ctx context.Context, booking *models.Booking, room *models.Room) error
	// BookingCancelledAdmin tells the room administrator the customer cancelled.
	BookingCancelledAdmin(ctx context.Context, booking *models.Booking, room *models.Room) error
	// BookingRequestedAdmin notifies an administrator that a new
	// booking awaits review.
	BookingRequestedAdmin(ctx context.Context, to, subject string, booking *models.Booking, room *models.Room) error
}
