package api

import "time"

type SendOTPRequest struct {
	Email string `json:"email"`
}

type SendOTPResponse struct {
	Message      string    `json:"message"`
	ExpiresAtUtc time.Time `json:"expiresAtUtc"`
}

type VerifyOTPRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

type VerifyOTPResponse struct {
	Message     string `json:"message"`
	SuccessCode string `json:"successCode"`
}

type ResetPasswordRequest struct {
	Email           string `json:"email"`
	SuccessCode     string `json:"successCode"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is returned by login and by a successful password
// reset; either way the token starts an authenticated session.
type AuthResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type MeResponse struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}
