package recovery

import (
	"context"
	"time"
)

// fakeService counts calls and returns scripted results.
type fakeService struct {
	sendCalls   int
	verifyCalls int
	resetCalls  int

	sendErr     error
	verifyErr   error
	resetErr    error
	successCode string
	creds       Credentials

	lastIdentifier string
	lastCode       string
	lastPassword   string
	lastSuccess    string
}

func (f *fakeService) SendOTP(_ context.Context, identifier string) (SendReceipt, error) {
	f.sendCalls++
	f.lastIdentifier = identifier
	if f.sendErr != nil {
		return SendReceipt{}, f.sendErr
	}
	return SendReceipt{Message: "otp sent", ExpiresAt: time.Now().Add(5 * time.Minute)}, nil
}

func (f *fakeService) VerifyOTP(_ context.Context, identifier, code string) (string, error) {
	f.verifyCalls++
	f.lastIdentifier = identifier
	f.lastCode = code
	if f.verifyErr != nil {
		return "", f.verifyErr
	}
	if f.successCode == "" {
		return "success-code", nil
	}
	return f.successCode, nil
}

func (f *fakeService) ResetPassword(_ context.Context, identifier, successCode, newPassword, _ string) (Credentials, error) {
	f.resetCalls++
	f.lastIdentifier = identifier
	f.lastSuccess = successCode
	f.lastPassword = newPassword
	if f.resetErr != nil {
		return Credentials{}, f.resetErr
	}
	if f.creds == (Credentials{}) {
		return Credentials{Token: "tok-1", Username: "user", Email: identifier}, nil
	}
	return f.creds, nil
}

// memStore is an in-memory Store for stage tests.
type memStore struct {
	identifier  string
	successCode string
}

func (m *memStore) PendingIdentifier() (string, bool) {
	return m.identifier, m.identifier != ""
}

func (m *memStore) PendingSuccessCode() (string, bool) {
	return m.successCode, m.successCode != ""
}

func (m *memStore) SetPendingIdentifier(v string) error {
	m.identifier = v
	return nil
}

func (m *memStore) SetPendingSuccessCode(v string) error {
	m.successCode = v
	return nil
}

func (m *memStore) Clear() error {
	m.identifier = ""
	m.successCode = ""
	return nil
}

// fakeClock is an adjustable now() source.
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }
