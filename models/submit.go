package models

// SubmitBookingInput is the payload of a new booking submission.
type SubmitBookingInput struct {
	Date      string `json:"date"`  // "2006-01-02"
	Time      string `json:"time"`  // "15:04"
	SeatID    string `json:"seat_id"`
	FirstName string `json:"firstname"`
	LastName  string `json:"lastname"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Notes     string `json:"notes,omitempty"`
	Consent   bool   `json:"consent"`
	Instant   bool   `json:"instant,omitempty"`
}

// SubmitBookingResult reports a successful submission together with
// the room flags the confirmation page keys its copy off.
type SubmitBookingResult struct {
	BookingID        string        `json:"booking_id"`
	Status           BookingStatus `json:"status"`
	AutoConfirmation bool          `json:"auto_confirmation"`
	ForceToConfirm   bool          `json:"force_to_confirm"`
	ForceToCheckin   bool          `json:"force_to_checkin"`
}
