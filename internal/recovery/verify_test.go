package recovery

import (
	"context"
	"errors"
	"testing"
	"time"
)

func newVerifyForTest(t *testing.T, svc *fakeService, store Store) (*VerifyStage, *fakeClock) {
	t.Helper()
	clock := &fakeClock{t: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	stage, err := NewVerifyStage(Payload{Identifier: "user@example.com"}, svc, store, clock.now)
	if err != nil {
		t.Fatalf("NewVerifyStage() error = %v", err)
	}
	return stage, clock
}

func TestVerifyEntryGuard(t *testing.T) {
	// No payload and an empty store: the session cannot be verified
	// without knowing what it was verified against.
	_, err := NewVerifyStage(Payload{}, &fakeService{}, &memStore{}, nil)
	if !errors.Is(err, ErrSessionExpired) {
		t.Fatalf("NewVerifyStage() error = %v, want ErrSessionExpired", err)
	}

	// Store fallback admits entry after a restart.
	stage, err := NewVerifyStage(Payload{}, &fakeService{}, &memStore{identifier: "user@example.com"}, nil)
	if err != nil {
		t.Fatalf("NewVerifyStage() with stored identifier: %v", err)
	}
	if stage.Identifier() != "user@example.com" {
		t.Errorf("Identifier() = %q", stage.Identifier())
	}
}

func TestVerifyIncompleteCodeRejectedLocally(t *testing.T) {
	for _, digits := range []string{"", "1", "12345"} {
		svc := &fakeService{}
		stage, _ := newVerifyForTest(t, svc, &memStore{})
		stage.Cells.Paste(digits)

		_, err := stage.Submit(context.Background())
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("Submit() with %d digits: error = %v, want ValidationError", len(digits), err)
		}
		if svc.verifyCalls != 0 {
			t.Errorf("verifyCalls = %d, want 0", svc.verifyCalls)
		}
	}
}

func TestVerifySuccessPersistsSuccessCode(t *testing.T) {
	svc := &fakeService{successCode: "sc-42"}
	store := &memStore{}
	stage, _ := newVerifyForTest(t, svc, store)
	stage.Cells.Paste("123456")

	payload, err := stage.Submit(context.Background())
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if payload.SuccessCode != "sc-42" || payload.Identifier != "user@example.com" {
		t.Errorf("payload = %+v", payload)
	}
	if svc.lastCode != "123456" {
		t.Errorf("submitted code = %q, want concatenated digits", svc.lastCode)
	}
	if code, ok := store.PendingSuccessCode(); !ok || code != "sc-42" {
		t.Errorf("stored success code = %q, %v", code, ok)
	}
}

func TestVerifyRejectionClearsCellsKeepsDeadline(t *testing.T) {
	svc := &fakeService{verifyErr: &ServiceError{Status: 400, Message: "invalid or expired code"}}
	stage, clock := newVerifyForTest(t, svc, &memStore{})
	stage.Cells.Paste("123456")
	deadline := stage.ResendAvailableAt()

	clock.advance(10 * time.Second)
	_, err := stage.Submit(context.Background())
	if !IsRejection(err) {
		t.Fatalf("Submit() error = %v, want service rejection", err)
	}
	if stage.Cells.Code() != "" || stage.Cells.Focus() != 0 {
		t.Errorf("cells not wiped: code=%q focus=%d", stage.Cells.Code(), stage.Cells.Focus())
	}
	if !stage.ResendAvailableAt().Equal(deadline) {
		t.Error("rejection moved the resend deadline")
	}
}

func TestVerifyTransportFailureKeepsCells(t *testing.T) {
	svc := &fakeService{verifyErr: errors.New("connection refused")}
	stage, _ := newVerifyForTest(t, svc, &memStore{})
	stage.Cells.Paste("123456")

	_, err := stage.Submit(context.Background())
	if err == nil || IsRejection(err) {
		t.Fatalf("Submit() error = %v, want plain transport error", err)
	}
	if stage.Cells.Code() != "123456" {
		t.Errorf("transport failure wiped cells: %q", stage.Cells.Code())
	}
}

func TestResendCooldownGating(t *testing.T) {
	stage, clock := newVerifyForTest(t, &fakeService{}, &memStore{})

	if stage.CanResend() {
		t.Fatal("resend enabled immediately after entry")
	}
	if got := FormatCountdown(stage.ResendRemaining()); got != "02:00" {
		t.Errorf("initial countdown = %q, want 02:00", got)
	}

	clock.advance(119 * time.Second)
	if stage.CanResend() {
		t.Error("resend enabled one second early")
	}
	if got := FormatCountdown(stage.ResendRemaining()); got != "00:01" {
		t.Errorf("countdown = %q, want 00:01", got)
	}

	clock.advance(time.Second)
	if !stage.CanResend() {
		t.Error("resend still disabled at exactly 120s")
	}
}

func TestResendResetsWindowAndClearsCells(t *testing.T) {
	svc := &fakeService{}
	stage, clock := newVerifyForTest(t, svc, &memStore{})
	stage.Cells.Paste("12")

	clock.advance(ResendCooldown)
	if err := stage.Resend(context.Background()); err != nil {
		t.Fatalf("Resend() error = %v", err)
	}
	if svc.sendCalls != 1 {
		t.Errorf("sendCalls = %d, want 1", svc.sendCalls)
	}
	if stage.Cells.Code() != "" {
		t.Errorf("cells not cleared by resend: %q", stage.Cells.Code())
	}
	if stage.CanResend() {
		t.Error("cooldown not restarted after resend")
	}
	if got := stage.ResendRemaining(); got != ResendCooldown {
		t.Errorf("ResendRemaining() = %v, want %v", got, ResendCooldown)
	}
}

func TestResendFailureDoesNotStickDisabled(t *testing.T) {
	svc := &fakeService{sendErr: &ServiceError{Status: 502, Message: "gateway"}}
	stage, clock := newVerifyForTest(t, svc, &memStore{})

	clock.advance(ResendCooldown)
	if err := stage.Resend(context.Background()); err == nil {
		t.Fatal("Resend() error = nil, want failure")
	}
	if !stage.CanResend() {
		t.Error("failed resend left the action disabled for another window")
	}
}

func TestResendBeforeDeadlineRefused(t *testing.T) {
	svc := &fakeService{}
	stage, _ := newVerifyForTest(t, svc, &memStore{})

	if err := stage.Resend(context.Background()); err == nil {
		t.Fatal("Resend() during cooldown succeeded")
	}
	if svc.sendCalls != 0 {
		t.Errorf("sendCalls = %d, want 0", svc.sendCalls)
	}
}

func TestFormatCountdown(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "00:00"},
		{time.Second, "00:01"},
		{500 * time.Millisecond, "00:01"}, // round up, never 00:00 while gated
		{90 * time.Second, "01:30"},
		{ResendCooldown, "02:00"},
	}
	for _, tt := range tests {
		if got := FormatCountdown(tt.d); got != tt.want {
			t.Errorf("FormatCountdown(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}
