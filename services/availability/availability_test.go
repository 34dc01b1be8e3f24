package availability

import (
	"context"
	"testing"
	"time"

	roomRepo "seatwise/database/repository/room"
	"seatwise/models"
)

type fakeRooms struct {
	rooms map[string]*models.Room
	seats map[string]*models.Seat
}

func (f *fakeRooms) GetRoom(ctx context.Context, id string) (*models.Room, error) {
	room, ok := f.rooms[id]
	if !ok {
		return nil, roomRepo.ErrRoomNotFound
	}
	return room, nil
}

func (f *fakeRooms) GetSeat(ctx context.Context, id string) (*models.Seat, error) {
	seat, ok := f.seats[id]
	if !ok {
		if room, found := f.rooms[id]; found && room.BookingMode == models.BookingModeConsultation {
			return &models.Seat{ID: room.ID, RoomID: room.ID, Name: room.Name}, nil
		}
		return nil, roomRepo.ErrSeatNotFound
	}
	return seat, nil
}

func (f *fakeRooms) GetSeatsByRoom(ctx context.Context, room *models.Room) ([]models.Seat, error) {
	if room.BookingMode == models.BookingModeConsultation {
		return []models.Seat{{ID: room.ID, RoomID: room.ID, Name: room.Name}}, nil
	}
	var out []models.Seat
	for _, id := range []string{"seat-1", "seat-2"} {
		if s, ok := f.seats[id]; ok && s.RoomID == room.ID {
			out = append(out, *s)
		}
	}
	return out, nil
}

type fakeBookings struct {
	bookings []models.Booking
}

func (f *fakeBookings) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	return nil, nil
}
func (f *fakeBookings) Create(ctx context.Context, b *models.Booking) error { return nil }
func (f *fakeBookings) TransitionStatus(ctx context.Context, id string, from []models.BookingStatus, to models.BookingStatus) (bool, error) {
	return false, nil
}
func (f *fakeBookings) SetStatus(ctx context.Context, id string, s models.BookingStatus) error {
	return nil
}
func (f *fakeBookings) SetCustomerStatus(ctx context.Context, id string, s models.CustomerStatus) error {
	return nil
}
func (f *fakeBookings) FindByGuestAndStart(ctx context.Context, email string, start time.Time, statuses []models.BookingStatus) ([]models.Booking, error) {
	return nil, nil
}
func (f *fakeBookings) Delete(ctx context.Context, id string) error { return nil }

func (f *fakeBookings) FindBySeatsInRange(ctx context.Context, seatIDs []string, from, to time.Time, statuses []models.BookingStatus) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range f.bookings {
		for _, sid := range seatIDs {
			if b.SeatID != sid || b.Start.Before(from) || !b.Start.Before(to) {
				continue
			}
			for _, st := range statuses {
				if b.Status == st {
					out = append(out, b)
				}
			}
		}
	}
	return out, nil
}

// Monday 2026-03-02 and the following Tuesday.
var (
	testMonday  = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	testTuesday = testMonday.AddDate(0, 0, 1)
)

func testIndex(bookings []models.Booking) *Index {
	rooms := &fakeRooms{
		rooms: map[string]*models.Room{
			"room-1": {
				ID:   "room-1",
				Name: "Reading Room",
				Schedule: []models.ScheduleSlot{
					{Weekday: 1, Start: "10:00", End: "12:00"},
					{Weekday: 1, Start: "14:00", End: "16:00"},
					{Weekday: 2, Start: "10:00", End: "12:00"},
				},
				BookingMode: models.BookingModeSeat,
			},
			"room-2": {
				ID:          "room-2",
				Name:        "Consultation",
				Schedule:    []models.ScheduleSlot{{Weekday: 1, Start: "09:00", End: "09:30"}},
				BookingMode: models.BookingModeConsultation,
			},
		},
		seats: map[string]*models.Seat{
			"seat-1": {ID: "seat-1", RoomID: "room-1", Name: "Desk 1"},
			"seat-2": {ID: "seat-2", RoomID: "room-1", Name: "Desk 2"},
		},
	}
	return &Index{
		Rooms:    rooms,
		Bookings: &fakeBookings{bookings: bookings},
		Location: time.UTC,
	}
}

func TestRoomAvailability_AllFree(t *testing.T) {
	ix := testIndex(nil)

	got, err := ix.RoomAvailability(context.Background(), "room-1", testMonday, testTuesday)
	if err != nil {
		t.Fatalf("availability failed: %v", err)
	}
	day, ok := got["2026-03-02"]
	if !ok {
		t.Fatalf("expected scheduled date key, got %v", got)
	}
	if len(day["10:00-12:00"]) != 2 || len(day["14:00-16:00"]) != 2 {
		t.Fatalf("expected both seats free in both slots, got %v", day)
	}
	if _, ok := got["2026-03-03"]; ok {
		t.Fatalf("end date is exclusive, got %v", got)
	}
}

func TestRoomAvailability_ActiveBookingBlocksSeat(t *testing.T) {
	for _, status := range models.ActiveBookingStatuses {
		t.Run(string(status), func(t *testing.T) {
			ix := testIndex([]models.Booking{{
				ID:     "bk-1",
				SeatID: "seat-1",
				Start:  testMonday.Add(10 * time.Hour),
				Status: status,
			}})

			got, err := ix.RoomAvailability(context.Background(), "room-1", testMonday, testTuesday)
			if err != nil {
				t.Fatalf("availability failed: %v", err)
			}
			free := got["2026-03-02"]["10:00-12:00"]
			if len(free) != 1 || free[0] != "seat-2" {
				t.Fatalf("expected only seat-2 free, got %v", free)
			}
			if len(got["2026-03-02"]["14:00-16:00"]) != 2 {
				t.Fatalf("other slot must stay free, got %v", got)
			}
		})
	}
}

func TestRoomAvailability_TerminalStatusesDoNotBlock(t *testing.T) {
	for _, status := range []models.BookingStatus{models.BookingStatusCancelled, models.BookingStatusCheckedOut} {
		t.Run(string(status), func(t *testing.T) {
			ix := testIndex([]models.Booking{{
				ID:     "bk-1",
				SeatID: "seat-1",
				Start:  testMonday.Add(10 * time.Hour),
				Status: status,
			}})

			got, err := ix.RoomAvailability(context.Background(), "room-1", testMonday, testTuesday)
			if err != nil {
				t.Fatalf("availability failed: %v", err)
			}
			if len(got["2026-03-02"]["10:00-12:00"]) != 2 {
				t.Fatalf("expected both seats free, got %v", got)
			}
		})
	}
}

func TestRoomAvailability_FullSlotKeepsEmptyList(t *testing.T) {
	ix := testIndex([]models.Booking{
		{ID: "bk-1", SeatID: "seat-1", Start: testMonday.Add(10 * time.Hour), Status: models.BookingStatusBooked},
		{ID: "bk-2", SeatID: "seat-2", Start: testMonday.Add(10 * time.Hour), Status: models.BookingStatusConfirmed},
	})

	got, err := ix.RoomAvailability(context.Background(), "room-1", testMonday, testTuesday)
	if err != nil {
		t.Fatalf("availability failed: %v", err)
	}
	free, ok := got["2026-03-02"]["10:00-12:00"]
	if !ok {
		t.Fatalf("fully booked slot must keep its key, got %v", got)
	}
	if free == nil || len(free) != 0 {
		t.Fatalf("expected empty seat list, got %v", free)
	}
}

func TestRoomAvailability_UnscheduledDateOmitted(t *testing.T) {
	ix := testIndex(nil)

	// Wednesday has no schedule entries at all.
	wednesday := testMonday.AddDate(0, 0, 2)
	got, err := ix.RoomAvailability(context.Background(), "room-1", wednesday, wednesday.AddDate(0, 0, 1))
	if err != nil {
		t.Fatalf("availability failed: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no date keys, got %v", got)
	}
}

func TestRoomAvailability_UnknownRoom(t *testing.T) {
	ix := testIndex(nil)

	if _, err := ix.RoomAvailability(context.Background(), "room-99", testMonday, testTuesday); err != roomRepo.ErrRoomNotFound {
		t.Fatalf("expected room not found, got %v", err)
	}
}

func TestSeatAvailability(t *testing.T) {
	ix := testIndex([]models.Booking{{
		ID:     "bk-1",
		SeatID: "seat-1",
		Start:  testMonday.Add(10 * time.Hour),
		Status: models.BookingStatusBooked,
	}})

	got, err := ix.SeatAvailability(context.Background(), "seat-1", testMonday, testTuesday.AddDate(0, 0, 1))
	if err != nil {
		t.Fatalf("availability failed: %v", err)
	}
	if labels := got["2026-03-02"]; len(labels) != 1 || labels[0] != "14:00-16:00" {
		t.Fatalf("expected only the afternoon slot on Monday, got %v", labels)
	}
	if labels := got["2026-03-03"]; len(labels) != 1 || labels[0] != "10:00-12:00" {
		t.Fatalf("expected Tuesday slot free, got %v", labels)
	}
}

func TestSeatAvailability_ConsultationRoomActsAsSeat(t *testing.T) {
	ix := testIndex(nil)

	got, err := ix.SeatAvailability(context.Background(), "room-2", testMonday, testTuesday)
	if err != nil {
		t.Fatalf("availability failed: %v", err)
	}
	if labels := got["2026-03-02"]; len(labels) != 1 || labels[0] != "09:00-09:30" {
		t.Fatalf("expected consultation slot, got %v", labels)
	}
}

func TestSeatAvailability_PastDatesNotFiltered(t *testing.T) {
	// The index reports schedule occupancy for any requested range; it
	// does not second-guess whether the dates are still bookable.
	ix := testIndex(nil)

	past := time.Date(2020, 3, 2, 0, 0, 0, 0, time.UTC) // also a Monday
	got, err := ix.SeatAvailability(context.Background(), "seat-1", past, past.AddDate(0, 0, 1))
	if err != nil {
		t.Fatalf("availability failed: %v", err)
	}
	if len(got["2020-03-02"]) != 2 {
		t.Fatalf("expected past Monday slots reported, got %v", got)
	}
}
