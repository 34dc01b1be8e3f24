package utils

import (
	"testing"
	"time"

	"seatwise/config"
)

var tokenStart = time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

func TestBookingReplyToken_Stable(t *testing.T) {
	a := BookingReplyToken("bk-1", tokenStart, false)
	b := BookingReplyToken("bk-1", tokenStart, false)
	if a != b {
		t.Fatalf("token must be deterministic: %s != %s", a, b)
	}
	if !VerifyBookingReplyToken(a, "bk-1", tokenStart, false) {
		t.Fatalf("token must verify against its own inputs")
	}
}

func TestBookingReplyToken_ScopesDiffer(t *testing.T) {
	admin := BookingReplyToken("bk-1", tokenStart, false)
	customer := BookingReplyToken("bk-1", tokenStart, true)
	if admin == customer {
		t.Fatalf("admin and customer tokens must differ")
	}
	if VerifyBookingReplyToken(admin, "bk-1", tokenStart, true) {
		t.Fatalf("admin token must not verify in customer scope")
	}
	if VerifyBookingReplyToken(customer, "bk-1", tokenStart, false) {
		t.Fatalf("customer token must not verify in admin scope")
	}
}

func TestBookingReplyToken_BindsBookingAndStart(t *testing.T) {
	token := BookingReplyToken("bk-1", tokenStart, false)
	if VerifyBookingReplyToken(token, "bk-2", tokenStart, false) {
		t.Fatalf("token must not verify for another booking")
	}
	if VerifyBookingReplyToken(token, "bk-1", tokenStart.Add(time.Hour), false) {
		t.Fatalf("token must not verify for a shifted start")
	}
}

func TestBookingReplyToken_SecretChangesToken(t *testing.T) {
	saved := config.AppConfig.ReplySecret
	defer func() { config.AppConfig.ReplySecret = saved }()

	config.AppConfig.ReplySecret = "secret-a"
	a := BookingReplyToken("bk-1", tokenStart, false)
	config.AppConfig.ReplySecret = "secret-b"
	b := BookingReplyToken("bk-1", tokenStart, false)
	if a == b {
		t.Fatalf("different secrets must yield different tokens")
	}
	if VerifyBookingReplyToken(a, "bk-1", tokenStart, false) {
		t.Fatalf("token minted under the old secret must stop verifying")
	}
}

func TestVerifyBookingReplyToken_RejectsGarbage(t *testing.T) {
	for _, token := range []string{"", "deadbeef", "bk-1-1772445600"} {
		if VerifyBookingReplyToken(token, "bk-1", tokenStart, false) {
			t.Fatalf("garbage token %q must not verify", token)
		}
	}
}
