package recovery

import (
	"context"
	"strings"
)

// RequestStage collects the contact identifier and consent flag and
// asks the service to issue an OTP. It is the entry stage; it needs no
// prior session state.
type RequestStage struct {
	svc   Service
	store Store
	busy  bool
}

func NewRequestStage(svc Service, store Store) *RequestStage {
	return &RequestStage{svc: svc, store: store}
}

// Submit validates locally, issues exactly one send-OTP request, and
// on success commits the identifier to the store and returns the
// transition payload for the verify stage. Validation failures never
// reach the network.
func (s *RequestStage) Submit(ctx context.Context, method ContactMethod, identifier string, consent bool) (Payload, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return Payload{}, &ValidationError{Field: "identifier", Message: "enter your email or phone number"}
	}
	if !consent {
		return Payload{}, &ValidationError{Field: "consent", Message: "you must agree before a code can be sent"}
	}
	if s.busy {
		return Payload{}, ErrBusy
	}
	s.busy = true
	defer func() { s.busy = false }()

	if _, err := s.svc.SendOTP(ctx, identifier); err != nil {
		// Nothing is persisted on failure; the stage stays put.
		return Payload{}, err
	}
	if err := s.store.SetPendingIdentifier(identifier); err != nil {
		return Payload{}, err
	}
	return Payload{Identifier: identifier}, nil
}
