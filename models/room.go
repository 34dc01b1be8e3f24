package models

// BookingMode selects how a room is booked: individual seats, or the
// room itself acting as the single bookable unit (consultations).
type BookingMode string

const (
	BookingModeSeat         BookingMode = "seat"
	BookingModeConsultation BookingMode = "consultation"
)

// ScheduleSlot is one recurring weekly opening of a room.
// Weekday follows ISO-8601: 1 = Monday ... 7 = Sunday.
// Start and End are times of day in "15:04" form.
type ScheduleSlot struct {
	Weekday int    `bson:"weekday" json:"weekday"`
	Start   string `bson:"start" json:"start"`
	End     string `bson:"end" json:"end"`
}

// Label renders the timeslot label used across availability maps
// and booking forms, e.g. "09:00-12:00".
func (s ScheduleSlot) Label() string {
	return s.Start + "-" + s.End
}

// Room is a bookable resource with a recurring weekly schedule.
type Room struct {
	ID               string         `bson:"id" json:"id"`
	Name             string         `bson:"name" json:"name"`
	Schedule         []ScheduleSlot `bson:"schedule" json:"schedule"`
	BookingMode      BookingMode    `bson:"booking_mode" json:"booking_mode"`
	SSORequired      bool           `bson:"sso_required" json:"sso_required"`
	ForceToConfirm   bool           `bson:"force_to_confirm" json:"force_to_confirm"`
	ForceToCheckin   bool           `bson:"force_to_checkin" json:"force_to_checkin"`
	AutoConfirmation bool           `bson:"auto_confirmation" json:"auto_confirmation"`
	DaysInAdvance    int            `bson:"days_in_advance" json:"days_in_advance"`
	NotesEnabled     bool           `bson:"notes_enabled" json:"notes_enabled"`
}

// Seat is an individually bookable unit within a room.
type Seat struct {
	ID     string `bson:"id" json:"id"`
	RoomID string `bson:"room_id" json:"room_id"`
	Name   string `bson:"name" json:"name"`
}
