package recovery

import "context"

// ResetStage commits the new password using the success code obtained
// during verification.
type ResetStage struct {
	session Session
	svc     Service
	store   Store
	busy    bool
}

// NewResetStage resolves the identifier and success code (payload
// first, store fallback). Either one missing is ErrSessionExpired:
// a reset attempt without a verified code is not a valid state and
// callers must redirect to the request stage without touching the
// network.
func NewResetStage(p Payload, svc Service, store Store) (*ResetStage, error) {
	sess, err := resolveReset(p, store)
	if err != nil {
		return nil, err
	}
	return &ResetStage{session: sess, svc: svc, store: store}, nil
}

// Identifier returns the contact identifier the reset applies to.
func (s *ResetStage) Identifier() string { return s.session.Identifier }

// ValidatePassword applies the blocking rules: the new password is
// required and at least MinPasswordLength characters, the confirmation
// must match. Strength scoring is advisory and lives elsewhere.
func ValidatePassword(newPassword, confirmPassword string) error {
	if newPassword == "" {
		return &ValidationError{Field: "password", Message: "enter a new password"}
	}
	if len(newPassword) < MinPasswordLength {
		return &ValidationError{Field: "password", Message: "password must be at least 8 characters"}
	}
	if confirmPassword == "" {
		return &ValidationError{Field: "confirm", Message: "confirm your new password"}
	}
	if confirmPassword != newPassword {
		return &ValidationError{Field: "confirm", Message: "passwords do not match"}
	}
	return nil
}

// Submit validates, commits the reset, and on success clears the
// store so the pending identifier and success code cannot outlive the
// attempt. On failure the store is left intact so the user can retry
// without re-verifying the OTP.
func (s *ResetStage) Submit(ctx context.Context, newPassword, confirmPassword string) (Credentials, error) {
	if err := ValidatePassword(newPassword, confirmPassword); err != nil {
		return Credentials{}, err
	}
	if s.busy {
		return Credentials{}, ErrBusy
	}
	s.busy = true
	defer func() { s.busy = false }()

	creds, err := s.svc.ResetPassword(ctx, s.session.Identifier, s.session.SuccessCode, newPassword, confirmPassword)
	if err != nil {
		return Credentials{}, err
	}
	if err := s.store.Clear(); err != nil {
		return Credentials{}, err
	}
	return creds, nil
}
