package booking

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	bookingRepo "seatwise/database/repository/booking"
	roomRepo "seatwise/database/repository/room"
	"seatwise/models"
	"seatwise/services/availability"
	"seatwise/services/identity"
)

// memBookingRepo is an in-memory BookingRepository with the same
// transition semantics as the Mongo implementation.
type memBookingRepo struct {
	mu       sync.Mutex
	bookings map[string]*models.Booking
}

func newMemBookingRepo() *memBookingRepo {
	return &memBookingRepo{bookings: make(map[string]*models.Booking)}
}

func (r *memBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (r *memBookingRepo) Create(ctx context.Context, booking *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.bookings {
		if existing.SeatID == booking.SeatID && existing.Start.Equal(booking.Start) && isActive(existing.Status) {
			return bookingRepo.ErrSlotTaken
		}
	}
	cp := *booking
	r.bookings[booking.ID] = &cp
	return nil
}

func (r *memBookingRepo) TransitionStatus(ctx context.Context, id string, from []models.BookingStatus, to models.BookingStatus) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return false, nil
	}
	for _, f := range from {
		if b.Status == f {
			b.Status = to
			return true, nil
		}
	}
	return false, nil
}

func (r *memBookingRepo) SetStatus(ctx context.Context, id string, status models.BookingStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if b, ok := r.bookings[id]; ok {
		b.Status = status
	}
	return nil
}

func (r *memBookingRepo) SetCustomerStatus(ctx context.Context, id string, status models.CustomerStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if b, ok := r.bookings[id]; ok {
		b.CustomerStatus = status
	}
	return nil
}

func (r *memBookingRepo) FindByGuestAndStart(ctx context.Context, email string, start time.Time, statuses []models.BookingStatus) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Booking
	for _, b := range r.bookings {
		if b.GuestEmail == email && b.Start.Equal(start) && statusIn(b.Status, statuses) {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *memBookingRepo) FindBySeatsInRange(ctx context.Context, seatIDs []string, from, to time.Time, statuses []models.BookingStatus) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Booking
	for _, b := range r.bookings {
		for _, sid := range seatIDs {
			if b.SeatID == sid && !b.Start.Before(from) && b.Start.Before(to) && statusIn(b.Status, statuses) {
				out = append(out, *b)
			}
		}
	}
	return out, nil
}

func (r *memBookingRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.bookings, id)
	return nil
}

func isActive(s models.BookingStatus) bool {
	return statusIn(s, models.ActiveBookingStatuses)
}

func statusIn(s models.BookingStatus, set []models.BookingStatus) bool {
	for _, candidate := range set {
		if s == candidate {
			return true
		}
	}
	return false
}

// memRoomRepo serves a fixed set of rooms and seats.
type memRoomRepo struct {
	rooms map[string]*models.Room
	seats map[string]*models.Seat
}

func (r *memRoomRepo) GetRoom(ctx context.Context, id string) (*models.Room, error) {
	room, ok := r.rooms[id]
	if !ok {
		return nil, roomRepo.ErrRoomNotFound
	}
	return room, nil
}

func (r *memRoomRepo) GetSeat(ctx context.Context, id string) (*models.Seat, error) {
	seat, ok := r.seats[id]
	if !ok {
		if room, found := r.rooms[id]; found && room.BookingMode == models.BookingModeConsultation {
			return &models.Seat{ID: room.ID, RoomID: room.ID, Name: room.Name}, nil
		}
		return nil, roomRepo.ErrSeatNotFound
	}
	return seat, nil
}

func (r *memRoomRepo) GetSeatsByRoom(ctx context.Context, room *models.Room) ([]models.Seat, error) {
	if room.BookingMode == models.BookingModeConsultation {
		return []models.Seat{{ID: room.ID, RoomID: room.ID, Name: room.Name}}, nil
	}
	var out []models.Seat
	for _, s := range r.seats {
		if s.RoomID == room.ID {
			out = append(out, *s)
		}
	}
	return out, nil
}

// recordingNotifier remembers which notifications were sent, in order.
type recordingNotifier struct {
	sent []string
}

func (n *recordingNotifier) BookingRequestedCustomer(ctx context.Context, b *models.Booking, room *models.Room) error {
	n.sent = append(n.sent, "requestedCustomer")
	return nil
}

func (n *recordingNotifier) BookingConfirmedCustomer(ctx context.Context, b *models.Booking, room *models.Room) error {
	n.sent = append(n.sent, "confirmedCustomer")
	return nil
}

func (n *recordingNotifier) BookingCancelledCustomer(ctx context.Context, b *models.Booking, room *models.Room) error {
	n.sent = append(n.sent, "cancelledCustomer")
	return nil
}

func (n *recordingNotifier) BookingCancelledAdmin(ctx context.Context, b *models.Booking, room *models.Room) error {
	n.sent = append(n.sent, "cancelledAdmin")
	return nil
}

func (n *recordingNotifier) BookingRequestedAdmin(ctx context.Context, to, subject string, b *models.Booking, room *models.Room) error {
	n.sent = append(n.sent, "requestedAdmin:"+to)
	return nil
}

// countingSink counts tracking events per booking.
type countingSink struct {
	records map[string]int
}

func newCountingSink() *countingSink {
	return &countingSink{records: make(map[string]int)}
}

func (s *countingSink) Record(siteID, bookingID string) {
	s.records[bookingID]++
}

// stubIdentity is an authenticated visitor with fixed customer data.
type stubIdentity struct {
	authenticated bool
	data          identity.CustomerData
}

func (s stubIdentity) IsAuthenticated(ctx context.Context) bool { return s.authenticated }

func (s stubIdentity) GetCustomerData(ctx context.Context) (identity.CustomerData, error) {
	return s.data, nil
}

// testEnv bundles an engine with its fakes at a frozen clock.
type testEnv struct {
	engine   *DefaultBookingEngine
	bookings *memBookingRepo
	rooms    *memRoomRepo
	notifier *recordingNotifier
	tracker  *countingSink
	now      time.Time
}

func newTestEnv(rooms map[string]*models.Room, seats map[string]*models.Seat) *testEnv {
	roomStore := &memRoomRepo{rooms: rooms, seats: seats}
	bookingStore := newMemBookingRepo()
	notifier := &recordingNotifier{}
	tracker := newCountingSink()

	env := &testEnv{
		bookings: bookingStore,
		rooms:    roomStore,
		notifier: notifier,
		tracker:  tracker,
		now:      time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC),
	}
	env.engine = &DefaultBookingEngine{
		Bookings: bookingStore,
		Rooms:    roomStore,
		Availability: &availability.Index{
			Rooms:    roomStore,
			Bookings: bookingStore,
			Location: time.UTC,
		},
		Notifier: notifier,
		Tracker:  tracker,
		Identity: identity.NoopProvider{},
		Logger:   zap.NewNop(),
		Now:      func() time.Time { return env.now },
	}
	return env
}
