package booking

import (
	"context"
	"time"

	"go.uber.org/zap"

	"seatwise/config"
	"seatwise/models"
	"seatwise/utils"
)

// checkinLeeway is how early a customer may check in before the slot
// starts. The check-in window closes the same margin before the slot
// ends so a check-in always leaves room for a check-out.
const checkinLeeway = 15 * time.Minute

// AuthorizeReply resolves the role a reply token grants on a booking.
// Admin and customer tokens are tried in that order; an unknown
// booking id fails the same way as a bad token so the link leaks
// nothing about which bookings exist.
func (e *DefaultBookingEngine) AuthorizeReply(ctx context.Context, bookingID, token string) (Role, *models.Booking, error) {
	b, err := e.Bookings.GetByID(ctx, bookingID)
	if err != nil {
		return "", nil, ErrUnauthorized
	}
	if utils.VerifyBookingReplyToken(token, b.ID, b.Start, false) {
		return RoleAdmin, b, nil
	}
	if utils.VerifyBookingReplyToken(token, b.ID, b.Start, true) {
		return RoleCustomer, b, nil
	}
	return "", nil, ErrUnauthorized
}

// PerformAction runs one action against a booking with the given
// authority and classifies the outcome. Every dispatch, including
// no-ops and repeats, records exactly one tracking event.
func (e *DefaultBookingEngine) PerformAction(ctx context.Context, bookingID string, action models.BookingAction, role Role) (*ActionResult, error) {
	b, err := e.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	room, err := e.Rooms.GetRoom(ctx, b.RoomID)
	if err != nil {
		return nil, err
	}

	var res *ActionResult
	switch role {
	case RoleAdmin:
		res, err = e.dispatchAdmin(ctx, b, room, action)
	case RoleCustomer:
		res, err = e.dispatchCustomer(ctx, b, room, action)
	default:
		return nil, ErrUnauthorized
	}
	if err != nil {
		return nil, err
	}

	if e.Tracker != nil {
		e.Tracker.Record(config.AppConfig.SiteID, b.ID)
	}
	res.Booking = b
	return res, nil
}

// dispatchAdmin handles the administrator action set. Confirm and
// cancel only fire from a fresh state; finding the booking already in
// the target state reports the state with AlreadyDone set instead of
// repeating side effects.
func (e *DefaultBookingEngine) dispatchAdmin(ctx context.Context, b *models.Booking, room *models.Room, action models.BookingAction) (*ActionResult, error) {
	switch action {
	case models.ActionConfirm:
		if b.Status != models.BookingStatusBooked {
			return adminClassify(b, action), nil
		}
		ok, err := e.Bookings.TransitionStatus(ctx, b.ID, []models.BookingStatus{models.BookingStatusBooked}, models.BookingStatusConfirmed)
		if err != nil {
			return nil, err
		}
		if !ok {
			return e.reclassifyAdmin(ctx, b, action)
		}
		b.Status = models.BookingStatusConfirmed
		if room.ForceToConfirm {
			// Double confirmation: the admin ack hands the ball to the
			// customer instead of closing the loop.
			b.CustomerStatus = models.CustomerStatusBooked
			if err := e.Bookings.SetCustomerStatus(ctx, b.ID, b.CustomerStatus); err != nil {
				return nil, err
			}
			e.notify(b, e.Notifier.BookingRequestedCustomer(ctx, b, room))
		} else {
			b.CustomerStatus = models.CustomerStatusNone
			if err := e.Bookings.SetCustomerStatus(ctx, b.ID, b.CustomerStatus); err != nil {
				return nil, err
			}
			e.notify(b, e.Notifier.BookingConfirmedCustomer(ctx, b, room))
		}
		return &ActionResult{Kind: ResultConfirmed}, nil

	case models.ActionCancel:
		switch b.Status {
		case models.BookingStatusBooked, models.BookingStatusConfirmed:
		default:
			return adminClassify(b, action), nil
		}
		ok, err := e.Bookings.TransitionStatus(ctx, b.ID,
			[]models.BookingStatus{models.BookingStatusBooked, models.BookingStatusConfirmed},
			models.BookingStatusCancelled)
		if err != nil {
			return nil, err
		}
		if !ok {
			return e.reclassifyAdmin(ctx, b, action)
		}
		b.Status = models.BookingStatusCancelled
		e.notify(b, e.Notifier.BookingCancelledCustomer(ctx, b, room))
		return &ActionResult{Kind: ResultCancelled}, nil

	case models.ActionDelete:
		if err := e.Bookings.Delete(ctx, b.ID); err != nil {
			return nil, err
		}
		return &ActionResult{Kind: ResultDeleted}, nil

	case models.ActionRestore:
		if err := e.Bookings.SetStatus(ctx, b.ID, models.BookingStatusBooked); err != nil {
			return nil, err
		}
		if err := e.Bookings.SetCustomerStatus(ctx, b.ID, models.CustomerStatusNone); err != nil {
			return nil, err
		}
		b.Status = models.BookingStatusBooked
		b.CustomerStatus = models.CustomerStatusNone
		return &ActionResult{Kind: ResultRestored}, nil
	}
	return &ActionResult{Kind: ResultNoAction}, nil
}

// reclassifyAdmin handles a lost transition race: another dispatch got
// there first, so reload and report the state it left behind.
func (e *DefaultBookingEngine) reclassifyAdmin(ctx context.Context, b *models.Booking, action models.BookingAction) (*ActionResult, error) {
	fresh, err := e.GetBooking(ctx, b.ID)
	if err != nil {
		return nil, err
	}
	*b = *fresh
	return adminClassify(b, action), nil
}

// adminClassify names the outcome of an admin action that changed
// nothing. Confirm and cancel report the state the booking is stuck
// in; anything else is a no-op.
func adminClassify(b *models.Booking, action models.BookingAction) *ActionResult {
	switch action {
	case models.ActionConfirm:
		switch b.Status {
		case models.BookingStatusConfirmed:
			return &ActionResult{Kind: ResultConfirmed, AlreadyDone: true}
		case models.BookingStatusCancelled:
			return &ActionResult{Kind: ResultCancelled, AlreadyDone: true}
		}
	case models.ActionCancel:
		if b.Status == models.BookingStatusCancelled {
			return &ActionResult{Kind: ResultCancelled, AlreadyDone: true}
		}
	}
	return &ActionResult{Kind: ResultNoAction}
}

// dispatchCustomer handles the customer action set. A link followed
// after the booking was cancelled is treated as a plain cancel so the
// guest lands on the already-cancelled page whatever the link said.
func (e *DefaultBookingEngine) dispatchCustomer(ctx context.Context, b *models.Booking, room *models.Room, action models.BookingAction) (*ActionResult, error) {
	if b.Status == models.BookingStatusCancelled {
		action = models.ActionCancel
	}

	cancelled := b.Status == models.BookingStatusCancelled
	confirmed := b.Status == models.BookingStatusConfirmed
	checkedIn := b.Status == models.BookingStatusCheckedIn
	checkedOut := b.Status == models.BookingStatusCheckedOut
	userConfirmed := b.CustomerStatus == models.CustomerStatusConfirmed

	switch action {
	case models.ActionConfirm:
		if !cancelled && !userConfirmed {
			if err := e.Bookings.SetCustomerStatus(ctx, b.ID, models.CustomerStatusConfirmed); err != nil {
				return nil, err
			}
			b.CustomerStatus = models.CustomerStatusConfirmed
			userConfirmed = true
			e.notify(b, e.Notifier.BookingConfirmedCustomer(ctx, b, room))
		}

	case models.ActionMaybeCancel:
		if !cancelled && !checkedOut {
			ok, err := e.Bookings.TransitionStatus(ctx, b.ID, models.ActiveBookingStatuses, models.BookingStatusCancelled)
			if err != nil {
				return nil, err
			}
			if ok {
				b.Status = models.BookingStatusCancelled
				cancelled = true
				e.notify(b, e.Notifier.BookingCancelledAdmin(ctx, b, room))
			} else if fresh, err := e.GetBooking(ctx, b.ID); err == nil {
				*b = *fresh
				cancelled = b.Status == models.BookingStatusCancelled
				checkedOut = b.Status == models.BookingStatusCheckedOut
			}
		}

	case models.ActionCheckin:
		if confirmed && !checkedIn && e.withinCheckinWindow(b) {
			ok, err := e.Bookings.TransitionStatus(ctx, b.ID,
				[]models.BookingStatus{models.BookingStatusConfirmed}, models.BookingStatusCheckedIn)
			if err != nil {
				return nil, err
			}
			if ok {
				b.Status = models.BookingStatusCheckedIn
				checkedIn = true
			}
		}

	case models.ActionCheckout:
		if checkedIn && e.withinCheckoutWindow(b) {
			ok, err := e.Bookings.TransitionStatus(ctx, b.ID,
				[]models.BookingStatus{models.BookingStatusCheckedIn}, models.BookingStatusCheckedOut)
			if err != nil {
				return nil, err
			}
			if ok {
				b.Status = models.BookingStatusCheckedOut
				checkedOut = true
			}
		}
	}

	return customerClassify(action, cancelled, userConfirmed, checkedIn, checkedOut), nil
}

// customerClassify maps the post-dispatch state and the requested
// action onto the reply page outcome. The order of the cases is load
// bearing: a cancellable booking that got a bare cancel link must land
// on maybe-cancel before any terminal classification applies.
func customerClassify(action models.BookingAction, cancelled, userConfirmed, checkedIn, checkedOut bool) *ActionResult {
	switch {
	case !cancelled && !checkedOut && action == models.ActionCancel:
		return &ActionResult{Kind: ResultMaybeCancel}
	case cancelled && action == models.ActionMaybeCancel:
		return &ActionResult{Kind: ResultCancelled}
	case cancelled && action == models.ActionCancel:
		return &ActionResult{Kind: ResultAlreadyCancelled}
	case userConfirmed && action == models.ActionConfirm:
		return &ActionResult{Kind: ResultConfirmed}
	case !checkedIn && action == models.ActionCheckin:
		return &ActionResult{Kind: ResultCannotCheckedIn}
	case checkedIn && action == models.ActionCheckin:
		return &ActionResult{Kind: ResultAlreadyCheckedIn}
	case !checkedOut && action == models.ActionCheckout:
		return &ActionResult{Kind: ResultCannotCheckedOut}
	case checkedOut && action == models.ActionCheckout:
		return &ActionResult{Kind: ResultAlreadyCheckedOut}
	}
	return &ActionResult{Kind: ResultNoAction}
}

// withinCheckinWindow reports whether the clock sits inside
// [start-leeway, end-leeway], both ends inclusive.
func (e *DefaultBookingEngine) withinCheckinWindow(b *models.Booking) bool {
	now := e.now()
	return !now.Before(b.Start.Add(-checkinLeeway)) && !now.After(b.End.Add(-checkinLeeway))
}

// withinCheckoutWindow reports whether the clock sits inside
// [start, end], both ends inclusive.
func (e *DefaultBookingEngine) withinCheckoutWindow(b *models.Booking) bool {
	now := e.now()
	return !now.Before(b.Start) && !now.After(b.End)
}

// notify logs a failed notification and moves on. Mail delivery never
// decides whether a state transition stands.
func (e *DefaultBookingEngine) notify(b *models.Booking, err error) {
	if err != nil {
		e.logger().Warn("booking notification failed",
			zap.String("bookingID", b.ID),
			zap.Error(err))
	}
}
