package recovery

import (
	"context"
	"time"
)

// Service is the remote collaborator that issues OTPs, verifies them,
// and commits password resets. Implementations translate transport
// rejections into *ServiceError so stages can tell them apart from
// network failures.
type Service interface {
	// SendOTP asks the service to issue a one-time code to the given
	// contact identifier.
	SendOTP(ctx context.Context, identifier string) (SendReceipt, error)

	// VerifyOTP exchanges a complete 6-digit code for a one-time
	// success code authorizing a password reset.
	VerifyOTP(ctx context.Context, identifier, code string) (string, error)

	// ResetPassword commits the new password. Requires the success
	// code from VerifyOTP. Returns server-issued credentials.
	ResetPassword(ctx context.Context, identifier, successCode, newPassword, confirmPassword string) (Credentials, error)
}

// SendReceipt is the issuance acknowledgement for a sent OTP. Nothing
// downstream depends on it; it exists so callers can surface the
// service's message and expiry if they want to.
type SendReceipt struct {
	Message   string
	ExpiresAt time.Time
}

// Credentials is the authenticated session material returned by a
// successful reset.
type Credentials struct {
	Token    string
	Username string
	Email    string
}

// Store is the reload-surviving carrier for the pending identifier and
// success code between stages. Staleness is the implementation's
// concern; absent and stale look the same to stages.
type Store interface {
	PendingIdentifier() (string, bool)
	PendingSuccessCode() (string, bool)
	SetPendingIdentifier(string) error
	SetPendingSuccessCode(string) error
	Clear() error
}
