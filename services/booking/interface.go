package booking

import (
	"context"
	"time"

	"go.uber.org/zap"

	bookingRepo "seatwise/database/repository/booking"
	roomRepo "seatwise/database/repository/room"
	"seatwise/models"
	"seatwise/services/availability"
	"seatwise/services/identity"
	"seatwise/services/notification"
	"seatwise/services/tracking"
)

// Role is the authority a caller acts with when dispatching an action.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleCustomer Role = "customer"
)

// ActionResultKind classifies the outcome of a dispatched action. The
// values are stable identifiers used by the reply landing page.
type ActionResultKind string

const (
	ResultConfirmed         ActionResultKind = "confirmed"
	ResultCancelled         ActionResultKind = "cancelled"
	ResultAlreadyCancelled  ActionResultKind = "already-cancelled"
	ResultMaybeCancel       ActionResultKind = "maybe-cancel"
	ResultCannotCheckedIn   ActionResultKind = "cannot-checked-in"
	ResultAlreadyCheckedIn  ActionResultKind = "already-checked-in"
	ResultCannotCheckedOut  ActionResultKind = "cannot-checked-out"
	ResultAlreadyCheckedOut ActionResultKind = "already-checked-out"
	ResultNoAction          ActionResultKind = "no-action"
	ResultDeleted           ActionResultKind = "deleted"
	ResultRestored          ActionResultKind = "restored"
)

// ActionResult is the classified outcome of a dispatch. AlreadyDone is
// set when an admin action found the booking already in the target
// state, so the caller can word the reply page accordingly.
type ActionResult struct {
	Kind        ActionResultKind
	AlreadyDone bool
	Booking     *models.Booking
}

// BookingEngine is the write side of the booking system: submissions
// and state transitions. Reads go through the availability index and
// the repository directly.
type BookingEngine interface {
	Submit(ctx context.Context, input models.SubmitBookingInput) (*models.SubmitBookingResult, error)
	PerformAction(ctx context.Context, bookingID string, action models.BookingAction, role Role) (*ActionResult, error)
	AuthorizeReply(ctx context.Context, bookingID, token string) (Role, *models.Booking, error)
	GetBooking(ctx context.Context, bookingID string) (*models.Booking, error)
}

// DefaultBookingEngine is the production BookingEngine.
type DefaultBookingEngine struct {
	Bookings     bookingRepo.BookingRepository
	Rooms        roomRepo.RoomRepository
	Availability *availability.Index
	Notifier     notification.NotificationService
	Tracker      tracking.Sink
	Identity     identity.IdentityProvider
	Logger       *zap.Logger

	// Now supplies the wall clock for the check-in and check-out
	// windows. Nil means time.Now.
	Now func() time.Time
}

func NewBookingEngine(
	bookings bookingRepo.BookingRepository,
	rooms roomRepo.RoomRepository,
	avail *availability.Index,
	notifier notification.NotificationService,
	tracker tracking.Sink,
	idp identity.IdentityProvider,
	logger *zap.Logger,
) *DefaultBookingEngine {
	return &DefaultBookingEngine{
		Bookings:     bookings,
		Rooms:        rooms,
		Availability: avail,
		Notifier:     notifier,
		Tracker:      tracker,
		Identity:     idp,
		Logger:       logger,
	}
}

func (e *DefaultBookingEngine) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}

func (e *DefaultBookingEngine) GetBooking(ctx context.Context, bookingID string) (*models.Booking, error) {
	b, err := e.Bookings.GetByID(ctx, bookingID)
	if err != nil {
		if err == bookingRepo.ErrNotFound {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return b, nil
}
