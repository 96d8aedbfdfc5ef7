package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestHeaders(t *testing.T) {
	var gotHeaders http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHeaders = r.Header.Clone()
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "ok"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "rt-cli").WithToken("tok-1")
	_, err := c.SendOTP(context.Background(), "user@example.com")
	require.NoError(t, err)

	assert.Equal(t, "rt-cli", gotHeaders.Get("X-Client-Id"))
	assert.Equal(t, "Bearer tok-1", gotHeaders.Get("Authorization"))
	assert.Equal(t, "application/json", gotHeaders.Get("Content-Type"))
}

func TestNoAuthHeaderWithoutToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode(map[string]string{})
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, "rt-cli").SendOTP(context.Background(), "user@example.com")
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestVerifyOTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/password/verify-otp", r.URL.Path)
		var req VerifyOTPRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "user@example.com", req.Email)
		assert.Equal(t, "123456", req.OTP)
		_ = json.NewEncoder(w).Encode(VerifyOTPResponse{Message: "verified", SuccessCode: "sc-9"})
	}))
	defer srv.Close()

	resp, err := NewClient(srv.URL, "rt-cli").VerifyOTP(context.Background(), "user@example.com", "123456")
	require.NoError(t, err)
	assert.Equal(t, "sc-9", resp.SuccessCode)
}

func TestResetPassword(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/password/reset", r.URL.Path)
		var req ResetPasswordRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "sc-9", req.SuccessCode)
		assert.Equal(t, req.NewPassword, req.ConfirmPassword)
		_ = json.NewEncoder(w).Encode(AuthResponse{Token: "tok-2", Username: "sam", Email: req.Email})
	}))
	defer srv.Close()

	resp, err := NewClient(srv.URL, "rt-cli").ResetPassword(context.Background(), "user@example.com", "sc-9", "Str0ng!pass", "Str0ng!pass")
	require.NoError(t, err)
	assert.Equal(t, "tok-2", resp.Token)
	assert.Equal(t, "sam", resp.Username)
}

func TestErrorPayloadMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "invalid or expired code"})
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, "rt-cli").VerifyOTP(context.Background(), "user@example.com", "000000")
	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "invalid or expired code", apiErr.Message)
}

func TestErrorFallbackMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("<html>bad gateway</html>"))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, "rt-cli").SendOTP(context.Background(), "user@example.com")
	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.Status)
	assert.Contains(t, apiErr.Error(), "502")
}

func TestTransportErrorIsNotAPIError(t *testing.T) {
	// Nothing listening here.
	_, err := NewClient("http://127.0.0.1:1", "rt-cli").SendOTP(context.Background(), "user@example.com")
	require.Error(t, err)
	var apiErr *Error
	assert.False(t, errors.As(err, &apiErr), "transport failures must not masquerade as server rejections")
}
