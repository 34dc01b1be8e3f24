package booking

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"seatwise/config"
	bookingRepo "seatwise/database/repository/booking"
	roomRepo "seatwise/database/repository/room"
	"seatwise/models"
	"seatwise/services/availability"
)

// Submit validates a booking request and, when it passes, persists the
// booking and sends the matching notification. Checks run in a fixed
// order so the guest always sees the most fundamental failure first:
// consent, date/time format, seat resolution, contact data, duplicate,
// seat availability.
func (e *DefaultBookingEngine) Submit(ctx context.Context, input models.SubmitBookingInput) (*models.SubmitBookingResult, error) {
	if !input.Consent {
		return nil, ErrConsentRequired
	}

	loc := e.loc()
	day, err := time.ParseInLocation(availability.DateFormat, input.Date, loc)
	if err != nil {
		return nil, ErrInvalidFormat
	}
	clockHour, clockMinute, err := parseClock(input.Time)
	if err != nil {
		return nil, ErrInvalidFormat
	}
	start := time.Date(day.Year(), day.Month(), day.Day(), clockHour, clockMinute, 0, 0, loc)

	seat, err := e.Rooms.GetSeat(ctx, input.SeatID)
	if err != nil {
		if errors.Is(err, roomRepo.ErrSeatNotFound) {
			return nil, ErrInvalidSeat
		}
		return nil, err
	}
	room, err := e.Rooms.GetRoom(ctx, seat.RoomID)
	if err != nil {
		if errors.Is(err, roomRepo.ErrRoomNotFound) {
			return nil, ErrInvalidSeat
		}
		return nil, err
	}

	firstName := strings.TrimSpace(input.FirstName)
	lastName := strings.TrimSpace(input.LastName)
	email := strings.TrimSpace(input.Email)
	phone := strings.TrimSpace(input.Phone)

	if room.SSORequired {
		if !e.Identity.IsAuthenticated(ctx) {
			return nil, ErrSSOAuthentication
		}
		data, err := e.Identity.GetCustomerData(ctx)
		if err != nil {
			return nil, ErrSSOAuthentication
		}
		// Identity of record wins over whatever the form carried.
		firstName = data.FirstName
		lastName = data.LastName
		email = data.Email
	}

	if firstName == "" || lastName == "" || phone == "" || !validEmail(email) {
		return nil, ErrInvalidContactData
	}

	notes := ""
	if room.NotesEnabled {
		notes = strings.TrimSpace(input.Notes)
	}

	dups, err := e.Bookings.FindByGuestAndStart(ctx, email, start, models.ActiveBookingStatuses)
	if err != nil {
		return nil, err
	}
	if len(dups) > 0 {
		return nil, ErrDuplicateBooking
	}

	free, err := e.Availability.SeatAvailability(ctx, seat.ID, day, day.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}
	if !slotOffered(free[input.Date], input.Time) {
		return nil, ErrSeatUnavailable
	}

	end := e.deriveEnd(room, start, input.Time)

	now := e.now()
	status := models.BookingStatusBooked
	if room.AutoConfirmation {
		status = models.BookingStatusConfirmed
		if input.Instant && sameDay(day, now, loc) && start.Before(now) {
			status = models.BookingStatusCheckedIn
		}
	}
	customerStatus := models.CustomerStatusNone
	if room.ForceToConfirm {
		customerStatus = models.CustomerStatusBooked
	}

	b := &models.Booking{
		ID:             uuid.NewString(),
		SeatID:         seat.ID,
		RoomID:         room.ID,
		Start:          start,
		End:            end,
		GuestFirstName: firstName,
		GuestLastName:  lastName,
		GuestEmail:     email,
		GuestPhone:     phone,
		Notes:          notes,
		Consent:        true,
		Status:         status,
		CustomerStatus: customerStatus,
		CreatedAt:      now,
	}
	if err := e.Bookings.Create(ctx, b); err != nil {
		if errors.Is(err, bookingRepo.ErrSlotTaken) {
			// Lost the race against a concurrent submission.
			return nil, ErrSeatUnavailable
		}
		return nil, err
	}

	e.notifySubmitted(ctx, b, room)

	return &models.SubmitBookingResult{
		BookingID:        b.ID,
		Status:           b.Status,
		AutoConfirmation: room.AutoConfirmation,
		ForceToConfirm:   room.ForceToConfirm,
		ForceToCheckin:   room.ForceToCheckin,
	}, nil
}

// notifySubmitted sends exactly one notification per accepted
// submission. Auto-confirming rooms mail the guest; everything else
// optionally raises the internal new-booking notice.
func (e *DefaultBookingEngine) notifySubmitted(ctx context.Context, b *models.Booking, room *models.Room) {
	var err error
	switch {
	case room.AutoConfirmation && room.ForceToConfirm:
		err = e.Notifier.BookingRequestedCustomer(ctx, b, room)
	case room.AutoConfirmation:
		err = e.Notifier.BookingConfirmedCustomer(ctx, b, room)
	case config.AppConfig.NotifyOnNewBooking && config.AppConfig.NotificationEmail != "":
		err = e.Notifier.BookingRequestedAdmin(ctx, config.AppConfig.NotificationEmail, "New booking received", b, room)
	}
	if err != nil {
		e.logger().Warn("booking notification failed",
			zap.String("bookingID", b.ID),
			zap.Error(err))
	}
}

// deriveEnd looks the submitted start up in the room's weekly schedule
// and takes the slot's end. A start that no longer matches any slot
// collapses to a zero-length booking rather than failing the submit.
func (e *DefaultBookingEngine) deriveEnd(room *models.Room, start time.Time, clock string) time.Time {
	weekday := isoWeekday(start)
	for _, slot := range room.Schedule {
		if slot.Weekday != weekday || slot.Start != clock {
			continue
		}
		hour, minute, err := parseClock(slot.End)
		if err != nil {
			continue
		}
		return time.Date(start.Year(), start.Month(), start.Day(), hour, minute, 0, 0, start.Location())
	}
	return start
}

func (e *DefaultBookingEngine) loc() *time.Location {
	if e.Availability != nil && e.Availability.Location != nil {
		return e.Availability.Location
	}
	return time.Local
}

func (e *DefaultBookingEngine) logger() *zap.Logger {
	if e.Logger != nil {
		return e.Logger
	}
	return zap.NewNop()
}

func slotOffered(labels []string, clock string) bool {
	for _, label := range labels {
		if strings.HasPrefix(label, clock+"-") {
			return true
		}
	}
	return false
}

func validEmail(s string) bool {
	if s == "" {
		return false
	}
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s
}

func sameDay(a, b time.Time, loc *time.Location) bool {
	a, b = a.In(loc), b.In(loc)
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func parseClock(s string) (hour, minute int, err error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, 0, err
	}
	return t.Hour(), t.Minute(), nil
}

func isoWeekday(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}
