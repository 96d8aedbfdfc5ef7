package recovery

import (
	"context"
	"fmt"
	"time"
)

// ResendCooldown is how long the resend action stays disabled after an
// OTP is (re)issued.
const ResendCooldown = 120 * time.Second

// VerifyStage owns the six digit cells and the resend cooldown window.
// The clock is injected so cooldown behavior is testable without
// sleeping.
type VerifyStage struct {
	Cells DigitCells

	session  Session
	svc      Service
	store    Store
	now      func() time.Time
	deadline time.Time // resend becomes available at this instant
	busy     bool
}

// NewVerifyStage resolves the session (payload first, store fallback)
// and starts a fresh cooldown window. ErrSessionExpired means the
// caller should redirect to the request stage.
func NewVerifyStage(p Payload, svc Service, store Store, now func() time.Time) (*VerifyStage, error) {
	if now == nil {
		now = time.Now
	}
	sess, err := resolveVerify(p, store)
	if err != nil {
		return nil, err
	}
	return &VerifyStage{
		session:  sess,
		svc:      svc,
		store:    store,
		now:      now,
		deadline: now().Add(ResendCooldown),
	}, nil
}

// Identifier returns the contact identifier being verified against.
func (s *VerifyStage) Identifier() string { return s.session.Identifier }

// ResendRemaining is the time left until resend is allowed, clamped at
// zero.
func (s *VerifyStage) ResendRemaining() time.Duration {
	d := s.deadline.Sub(s.now())
	if d < 0 {
		return 0
	}
	return d
}

// CanResend reports whether the cooldown window has fully elapsed.
func (s *VerifyStage) CanResend() bool { return s.ResendRemaining() == 0 }

// ResendAvailableAt exposes the current cooldown deadline.
func (s *VerifyStage) ResendAvailableAt() time.Time { return s.deadline }

// Resend clears the entered digits, restarts the cooldown, and asks
// the service to issue a fresh OTP to the same identifier. If the
// request fails, the cooldown is rolled back so resend stays available
// instead of sticking disabled for another window.
func (s *VerifyStage) Resend(ctx context.Context) error {
	if !s.CanResend() {
		return fmt.Errorf("resend available in %s", FormatCountdown(s.ResendRemaining()))
	}
	if s.busy {
		return ErrBusy
	}
	s.busy = true
	defer func() { s.busy = false }()

	s.Cells.Clear()
	s.deadline = s.now().Add(ResendCooldown)
	if _, err := s.svc.SendOTP(ctx, s.session.Identifier); err != nil {
		s.deadline = s.now()
		return err
	}
	return nil
}

// Submit exchanges the entered code for a success code. Incomplete
// input is rejected locally. A service rejection (invalid or expired
// code) wipes all six cells and refocuses cell 0; the cooldown
// deadline is left untouched either way. On success the code is
// persisted and the transition payload for the reset stage returned.
func (s *VerifyStage) Submit(ctx context.Context) (Payload, error) {
	if !s.Cells.Complete() {
		return Payload{}, &ValidationError{Field: "otp", Message: "enter all 6 digits"}
	}
	if s.busy {
		return Payload{}, ErrBusy
	}
	s.busy = true
	defer func() { s.busy = false }()

	successCode, err := s.svc.VerifyOTP(ctx, s.session.Identifier, s.Cells.Code())
	if err != nil {
		if IsRejection(err) {
			s.Cells.Clear()
		}
		return Payload{}, err
	}
	s.session.SuccessCode = successCode
	if err := s.store.SetPendingSuccessCode(successCode); err != nil {
		return Payload{}, err
	}
	return Payload{Identifier: s.session.Identifier, SuccessCode: successCode}, nil
}

// FormatCountdown renders a duration as mm:ss, rounding up so the
// display never shows 00:00 while resend is still gated.
func FormatCountdown(d time.Duration) string {
	secs := int((d + time.Second - 1) / time.Second)
	if secs < 0 {
		secs = 0
	}
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}
