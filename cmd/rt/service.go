package main

import (
	"context"
	"errors"

	"github.com/rtrack/rt/internal/api"
	"github.com/rtrack/rt/internal/recovery"
)

// recoveryService adapts the API client to the recovery engine's
// Service interface, translating HTTP-level rejections into the
// engine's ServiceError so stages can tell them from transport
// failures.
type recoveryService struct {
	client *api.Client
}

func (s *recoveryService) SendOTP(ctx context.Context, identifier string) (recovery.SendReceipt, error) {
	resp, err := s.client.SendOTP(ctx, identifier)
	if err != nil {
		return recovery.SendReceipt{}, translateAPIError(err)
	}
	return recovery.SendReceipt{Message: resp.Message, ExpiresAt: resp.ExpiresAtUtc}, nil
}

func (s *recoveryService) VerifyOTP(ctx context.Context, identifier, code string) (string, error) {
	resp, err := s.client.VerifyOTP(ctx, identifier, code)
	if err != nil {
		return "", translateAPIError(err)
	}
	return resp.SuccessCode, nil
}

func (s *recoveryService) ResetPassword(ctx context.Context, identifier, successCode, newPassword, confirmPassword string) (recovery.Credentials, error) {
	resp, err := s.client.ResetPassword(ctx, identifier, successCode, newPassword, confirmPassword)
	if err != nil {
		return recovery.Credentials{}, translateAPIError(err)
	}
	return recovery.Credentials{Token: resp.Token, Username: resp.Username, Email: resp.Email}, nil
}

func translateAPIError(err error) error {
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		return &recovery.ServiceError{Status: apiErr.Status, Message: apiErr.Message}
	}
	return err
}

// serviceMessage picks the inline text for a failed remote call: the
// service's own message for rejections, a stage-specific fallback for
// everything else (timeouts, DNS, connection refused).
func serviceMessage(err error, fallback string) string {
	if recovery.IsRejection(err) {
		return err.Error()
	}
	return fallback
}
