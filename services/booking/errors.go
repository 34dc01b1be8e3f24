package booking

import (
	"errors"
	"fmt"
)

// SubmitError rejects a booking submission before any mutation. The
// code is part of the external contract: user-facing copy keys off it.
type SubmitError struct {
	Code    string
	Message string
}

func (e *SubmitError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

var (
	// ErrConsentRequired: the data-processing consent box was not ticked.
	ErrConsentRequired = &SubmitError{"consentRequired", "consent to data processing is required"}
	// ErrInvalidFormat: malformed booking date or time.
	ErrInvalidFormat = &SubmitError{"invalidFormat", "invalid booking date or time"}
	// ErrInvalidSeat: the seat does not resolve to a room.
	ErrInvalidSeat = &SubmitError{"invalidSeat", "seat does not resolve to a room"}
	// ErrInvalidContactData: missing name or phone, or malformed email.
	ErrInvalidContactData = &SubmitError{"invalidContactData", "invalid or missing contact data"}
	// ErrSSOAuthentication: the room requires an authenticated visitor.
	ErrSSOAuthentication = &SubmitError{"ssoAuthentication", "room requires SSO authentication"}
	// ErrDuplicateBooking: the guest already holds a booking at that time.
	ErrDuplicateBooking = &SubmitError{"duplicateBooking", "a booking with this email already exists for the timeslot"}
	// ErrSeatUnavailable: the seat was booked in the meantime.
	ErrSeatUnavailable = &SubmitError{"seatUnavailable", "the selected seat is no longer available"}
)

// ErrBookingNotFound is returned when an action targets a booking id
// that does not resolve.
var ErrBookingNotFound = errors.New("booking not found")

// ErrUnauthorized is returned for invalid or mis-scoped reply tokens.
// Deliberately carries no detail beyond "forbidden".
var ErrUnauthorized = errors.New("unauthorized")
