package availability

import (
	"context"
	"fmt"
	"time"

	bookingRepo "seatwise/database/repository/booking"
	roomRepo "seatwise/database/repository/room"
	"seatwise/models"
)

// DateFormat is the calendar-date key format used in availability maps.
const DateFormat = "2006-01-02"

// Index computes which (date, timeslot, seat) tuples are free for a
// room, given its recurring weekly schedule and the bookings that hold
// seats in an active status. Results are a snapshot of repository
// state at call time; there is no freshness guarantee beyond the call.
//
// The index deliberately has no booking-horizon awareness: filtering
// by a room's days-in-advance window is a presentation concern.
type Index struct {
	Rooms    roomRepo.RoomRepository
	Bookings bookingRepo.BookingRepository
	// Location resolves schedule times of day to wall-clock instants.
	// Defaults to time.Local.
	Location *time.Location
}

func (ix *Index) loc() *time.Location {
	if ix.Location != nil {
		return ix.Location
	}
	return time.Local
}

// RoomAvailability returns, for every calendar date in [startDate,
// endDate) on which the room's weekly schedule defines slots, the free
// seat ids per timeslot label. A seat is free unless a booking exists
// for it at that exact start in status booked, confirmed or checked-in.
func (ix *Index) RoomAvailability(ctx context.Context, roomID string, startDate, endDate time.Time) (map[string]map[string][]string, error) {
	room, err := ix.Rooms.GetRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}
	seats, err := ix.Rooms.GetSeatsByRoom(ctx, room)
	if err != nil {
		return nil, err
	}

	blocked, err := ix.blockedSlots(ctx, seats, startDate, endDate)
	if err != nil {
		return nil, err
	}

	result := make(map[string]map[string][]string)
	ix.eachScheduledSlot(room, startDate, endDate, func(day time.Time, slot models.ScheduleSlot, slotStart time.Time) {
		dateKey := day.Format(DateFormat)
		slots, ok := result[dateKey]
		if !ok {
			slots = make(map[string][]string)
			result[dateKey] = slots
		}
		free := []string{}
		for _, seat := range seats {
			if _, taken := blocked[slotKey(seat.ID, slotStart)]; !taken {
				free = append(free, seat.ID)
			}
		}
		slots[slot.Label()] = free
	})
	return result, nil
}

// SeatAvailability is the seat-scoped specialization of
// RoomAvailability: free timeslot labels per date for one seat.
func (ix *Index) SeatAvailability(ctx context.Context, seatID string, startDate, endDate time.Time) (map[string][]string, error) {
	seat, err := ix.Rooms.GetSeat(ctx, seatID)
	if err != nil {
		return nil, err
	}
	room, err := ix.Rooms.GetRoom(ctx, seat.RoomID)
	if err != nil {
		return nil, err
	}

	blocked, err := ix.blockedSlots(ctx, []models.Seat{*seat}, startDate, endDate)
	if err != nil {
		return nil, err
	}

	result := make(map[string][]string)
	ix.eachScheduledSlot(room, startDate, endDate, func(day time.Time, slot models.ScheduleSlot, slotStart time.Time) {
		if _, taken := blocked[slotKey(seat.ID, slotStart)]; taken {
			return
		}
		dateKey := day.Format(DateFormat)
		result[dateKey] = append(result[dateKey], slot.Label())
	})
	return result, nil
}

// eachScheduledSlot walks every schedule occurrence of the room inside
// [startDate, endDate), invoking fn with the day, the schedule entry
// and the absolute slot start.
func (ix *Index) eachScheduledSlot(room *models.Room, startDate, endDate time.Time, fn func(day time.Time, slot models.ScheduleSlot, slotStart time.Time)) {
	loc := ix.loc()
	from := dateOnly(startDate, loc)
	to := dateOnly(endDate, loc)

	for day := from; day.Before(to); day = day.AddDate(0, 0, 1) {
		weekday := isoWeekday(day)
		for _, slot := range room.Schedule {
			if slot.Weekday != weekday {
				continue
			}
			hour, minute, err := parseClock(slot.Start)
			if err != nil {
				continue
			}
			slotStart := time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, loc)
			fn(day, slot, slotStart)
		}
	}
}

// blockedSlots indexes the active bookings of the given seats by
// (seat, start) for the date range.
func (ix *Index) blockedSlots(ctx context.Context, seats []models.Seat, startDate, endDate time.Time) (map[string]struct{}, error) {
	loc := ix.loc()
	seatIDs := make([]string, 0, len(seats))
	for _, s := range seats {
		seatIDs = append(seatIDs, s.ID)
	}

	bookings, err := ix.Bookings.FindBySeatsInRange(ctx, seatIDs, dateOnly(startDate, loc), dateOnly(endDate, loc), models.ActiveBookingStatuses)
	if err != nil {
		return nil, fmt.Errorf("error fetching bookings for availability: %w", err)
	}

	blocked := make(map[string]struct{}, len(bookings))
	for _, b := range bookings {
		blocked[slotKey(b.SeatID, b.Start)] = struct{}{}
	}
	return blocked, nil
}

func slotKey(seatID string, start time.Time) string {
	return fmt.Sprintf("%s|%d", seatID, start.Unix())
}

// isoWeekday maps time.Weekday onto ISO-8601 numbering (Mon=1..Sun=7).
func isoWeekday(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

func parseClock(s string) (hour, minute int, err error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, 0, err
	}
	return t.Hour(), t.Minute(), nil
}

func dateOnly(t time.Time, loc *time.Location) time.Time {
	year, month, day := t.In(loc).Date()
	return time.Date(year, month, day, 0, 0, 0, 0, loc)
}
