// Package recovery implements the OTP password-recovery flow: a
// three-stage handshake (request OTP, verify OTP, set new password)
// that survives process restarts through a small persisted store and
// ends by minting an authenticated session.
package recovery

import (
	"context"
	"errors"
	"time"
)

// State is a position in the recovery state machine.
type State int

const (
	StateRequest State = iota
	StateVerify
	StateReset
	StateDone
)

func (s State) String() string {
	switch s {
	case StateRequest:
		return "request"
	case StateVerify:
		return "verify"
	case StateReset:
		return "reset"
	case StateDone:
		return "done"
	default:
		return "unknown"
	}
}

// Flow drives a single recovery attempt through its states. Guarded
// transitions: verify needs a pending identifier, reset additionally
// needs a success code; a failed guard falls back to StateRequest
// rather than erroring out.
type Flow struct {
	svc   Service
	store Store
	now   func() time.Time

	state   State
	payload Payload

	request *RequestStage
	verify  *VerifyStage
	reset   *ResetStage
}

// NewFlow builds a flow in StateRequest. Call Resume to pick up a
// previously interrupted attempt from the store instead.
func NewFlow(svc Service, store Store, now func() time.Time) *Flow {
	if now == nil {
		now = time.Now
	}
	return &Flow{
		svc:     svc,
		store:   store,
		now:     now,
		state:   StateRequest,
		request: NewRequestStage(svc, store),
	}
}

// State reports the current position in the flow.
func (f *Flow) State() State { return f.state }

// Resume inspects the persisted store and enters the furthest stage it
// authorizes: reset when both identifier and success code survived,
// verify when only the identifier did, request otherwise.
func (f *Flow) Resume() State {
	if reset, err := NewResetStage(Payload{}, f.svc, f.store); err == nil {
		f.reset = reset
		f.state = StateReset
		return f.state
	}
	if verify, err := NewVerifyStage(Payload{}, f.svc, f.store, f.now); err == nil {
		f.verify = verify
		f.state = StateVerify
		return f.state
	}
	f.state = StateRequest
	return f.state
}

// Request returns the request stage. Valid in StateRequest.
func (f *Flow) Request() *RequestStage { return f.request }

// Verify returns the verify stage. Valid in StateVerify.
func (f *Flow) Verify() *VerifyStage { return f.verify }

// Reset returns the reset stage. Valid in StateReset.
func (f *Flow) Reset() *ResetStage { return f.reset }

// SubmitRequest runs the request stage and, on success, transitions to
// StateVerify carrying the identifier.
func (f *Flow) SubmitRequest(ctx context.Context, method ContactMethod, identifier string, consent bool) error {
	payload, err := f.request.Submit(ctx, method, identifier, consent)
	if err != nil {
		return err
	}
	f.payload = payload
	return f.enterVerify()
}

func (f *Flow) enterVerify() error {
	verify, err := NewVerifyStage(f.payload, f.svc, f.store, f.now)
	if errors.Is(err, ErrSessionExpired) {
		f.state = StateRequest
		return err
	}
	if err != nil {
		return err
	}
	f.verify = verify
	f.state = StateVerify
	return nil
}

// SubmitVerify runs the verify stage and, on success, transitions to
// StateReset carrying identifier and success code.
func (f *Flow) SubmitVerify(ctx context.Context) error {
	payload, err := f.verify.Submit(ctx)
	if err != nil {
		return err
	}
	return f.EnterReset(payload)
}

// EnterReset transitions to StateReset with a payload produced by a
// successful verification. Exposed separately because the interactive
// UI drives the verify stage itself and only hands the flow the
// resulting payload.
func (f *Flow) EnterReset(payload Payload) error {
	f.payload = payload
	reset, err := NewResetStage(f.payload, f.svc, f.store)
	if errors.Is(err, ErrSessionExpired) {
		f.state = StateRequest
		return err
	}
	if err != nil {
		return err
	}
	f.reset = reset
	f.state = StateReset
	return nil
}

// SubmitReset runs the reset stage and, on success, reaches StateDone
// with server-issued credentials. The store is already cleared by the
// stage at that point.
func (f *Flow) SubmitReset(ctx context.Context, newPassword, confirmPassword string) (Credentials, error) {
	creds, err := f.reset.Submit(ctx, newPassword, confirmPassword)
	if err != nil {
		return Credentials{}, err
	}
	f.state = StateDone
	return creds, nil
}
