// Package api is the HTTP/JSON client for the Routinely backend. The
// recovery flow only uses the password endpoints; login and me round
// out the session surface.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const DefaultTimeout = 30 * time.Second

// Client talks to the Routinely REST API.
type Client struct {
	BaseURL    string
	ClientID   string // sent as X-Client-Id on every request
	Token      string // bearer token, attached when non-empty
	HTTPClient *http.Client
}

// NewClient creates a client for the given base URL. clientID is the
// client-identifier header value every request carries.
func NewClient(baseURL, clientID string) *Client {
	return &Client{
		BaseURL:  baseURL,
		ClientID: clientID,
		HTTPClient: &http.Client{
			Timeout: DefaultTimeout,
		},
	}
}

// WithToken returns a client that authenticates with the given bearer
// token.
func (c *Client) WithToken(token string) *Client {
	return &Client{
		BaseURL:    c.BaseURL,
		ClientID:   c.ClientID,
		Token:      token,
		HTTPClient: c.HTTPClient,
	}
}

// Error is a non-2xx response. Message is the server's error payload
// text when it sent one.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("API error (status %d)", e.Status)
}

// errorBody is the service's error payload shape.
type errorBody struct {
	Message string `json:"message"`
}

// request sends one HTTP request and decodes the JSON response into
// out (when non-nil). There is deliberately no retry loop: each flow
// action maps to exactly one outbound request.
func (c *Client) request(ctx context.Context, method, path string, body, out interface{}) error {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Client-Id", c.ClientID)
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}

	respBody, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &Error{Status: resp.StatusCode}
		var eb errorBody
		if json.Unmarshal(respBody, &eb) == nil {
			apiErr.Message = eb.Message
		}
		return apiErr
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("failed to parse response: %w", err)
		}
	}
	return nil
}

// SendOTP asks the service to issue a one-time code to the address.
func (c *Client) SendOTP(ctx context.Context, email string) (*SendOTPResponse, error) {
	var out SendOTPResponse
	if err := c.request(ctx, "POST", "/password/send-otp", SendOTPRequest{Email: email}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// VerifyOTP exchanges a complete code for a one-time success code.
func (c *Client) VerifyOTP(ctx context.Context, email, otp string) (*VerifyOTPResponse, error) {
	var out VerifyOTPResponse
	if err := c.request(ctx, "POST", "/password/verify-otp", VerifyOTPRequest{Email: email, OTP: otp}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ResetPassword commits the new password and returns a fresh session.
func (c *Client) ResetPassword(ctx context.Context, email, successCode, newPassword, confirmPassword string) (*AuthResponse, error) {
	req := ResetPasswordRequest{
		Email:           email,
		SuccessCode:     successCode,
		NewPassword:     newPassword,
		ConfirmPassword: confirmPassword,
	}
	var out AuthResponse
	if err := c.request(ctx, "POST", "/password/reset", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Login authenticates with email and password.
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	var out AuthResponse
	if err := c.request(ctx, "POST", "/auth/login", LoginRequest{Email: email, Password: password}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Me returns the profile of the authenticated user.
func (c *Client) Me(ctx context.Context) (*MeResponse, error) {
	var out MeResponse
	if err := c.request(ctx, "GET", "/users/me", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
