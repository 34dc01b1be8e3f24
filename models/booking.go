package models

import "time"

// BookingStatus is the lifecycle status of a booking.
type BookingStatus string

const (
	BookingStatusBooked     BookingStatus = "booked"
	BookingStatusConfirmed  BookingStatus = "confirmed"
	BookingStatusCancelled  BookingStatus = "cancelled"
	BookingStatusCheckedIn  BookingStatus = "checked-in"
	BookingStatusCheckedOut BookingStatus = "checked-out"
)

// CustomerStatus tracks the customer side of the double-confirmation
// workflow. It stays empty unless the room forces customer confirmation.
type CustomerStatus string

const (
	CustomerStatusNone      CustomerStatus = ""
	CustomerStatusBooked    CustomerStatus = "booked"
	CustomerStatusConfirmed CustomerStatus = "confirmed"
)

// ActiveBookingStatuses are the statuses that occupy a seat slot and
// count against duplicate submissions. Cancelled and checked-out
// bookings do not block re-booking of the same slot.
var ActiveBookingStatuses = []BookingStatus{
	BookingStatusBooked,
	BookingStatusConfirmed,
	BookingStatusCheckedIn,
}

// BookingAction is an action requested against an existing booking.
type BookingAction string

const (
	ActionConfirm     BookingAction = "confirm"
	ActionCancel      BookingAction = "cancel"
	ActionMaybeCancel BookingAction = "maybe-cancel"
	ActionCheckin     BookingAction = "checkin"
	ActionCheckout    BookingAction = "checkout"
	ActionDelete      BookingAction = "delete"
	ActionRestore     BookingAction = "restore"
)

// ParseBookingAction maps a request string onto the closed action set.
func ParseBookingAction(s string) (BookingAction, bool) {
	switch BookingAction(s) {
	case ActionConfirm, ActionCancel, ActionMaybeCancel, ActionCheckin,
		ActionCheckout, ActionDelete, ActionRestore:
		return BookingAction(s), true
	}
	return "", false
}

// Booking represents a seat reservation record.
type Booking struct {
	ID             string         `bson:"id" json:"id"`
	SeatID         string         `bson:"seat_id" json:"seat_id"`
	RoomID         string         `bson:"room_id" json:"room_id"`
	Start          time.Time      `bson:"start" json:"start"`
	End            time.Time      `bson:"end" json:"end"`
	GuestFirstName string         `bson:"guest_firstname" json:"guest_firstname"`
	GuestLastName  string         `bson:"guest_lastname" json:"guest_lastname"`
	GuestEmail     string         `bson:"guest_email" json:"guest_email"`
	GuestPhone     string         `bson:"guest_phone" json:"guest_phone"`
	Notes          string         `bson:"notes,omitempty" json:"notes,omitempty"`
	Consent        bool           `bson:"consent" json:"consent"`
	Status         BookingStatus  `bson:"status" json:"status"`
	CustomerStatus CustomerStatus `bson:"customer_status,omitempty" json:"customer_status,omitempty"`
	CreatedAt      time.Time      `bson:"created_at" json:"created_at"`
}
