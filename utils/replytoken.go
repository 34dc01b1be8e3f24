package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"seatwise/config"
)

// Reply tokens authorize the action links embedded in booking emails.
// A token binds one booking in one role: it is an HMAC over the booking
// id and start time, with a "-customer" suffix scoping customer links.
// Verification recomputes the expected token from the current booking
// and compares in constant time; the token stays valid for as long as
// the booking keeps its start time.

func replySecret() []byte {
	secret := config.AppConfig.ReplySecret
	if secret == "" {
		secret = "seatwise-reply"
	}
	return []byte(secret)
}

// BookingReplyToken derives the capability token for a booking.
// customerScope selects the customer variant of the token.
func BookingReplyToken(bookingID string, start time.Time, customerScope bool) string {
	payload := fmt.Sprintf("%s-%d", bookingID, start.Unix())
	if customerScope {
		payload += "-customer"
	}
	mac := hmac.New(sha256.New, replySecret())
	mac.Write([]byte(payload))
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifyBookingReplyToken reports whether token authorizes the given
// booking in the given scope.
func VerifyBookingReplyToken(token, bookingID string, start time.Time, customerScope bool) bool {
	expected := BookingReplyToken(bookingID, start, customerScope)
	return hmac.Equal([]byte(token), []byte(expected))
}
