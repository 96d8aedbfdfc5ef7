// Package credentials stores the active session token for the rt CLI.
package credentials

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const FileName = "credentials.json"

// Credentials is the durable session material. Token is attached to
// outbound API requests as a bearer header.
type Credentials struct {
	Token    string `json:"token"`
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
}

func path(dir string) string {
	return filepath.Join(dir, FileName)
}

// Load reads stored credentials. Returns nil (no error) when none are
// stored.
func Load(dir string) (*Credentials, error) {
	data, err := os.ReadFile(path(dir)) // #nosec G304 - path is derived from the config dir
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading credentials: %w", err)
	}
	var creds Credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return nil, fmt.Errorf("parsing credentials: %w", err)
	}
	if creds.Token == "" {
		return nil, nil
	}
	return &creds, nil
}

// Save writes credentials with owner-only permissions.
func (c *Credentials) Save(dir string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling credentials: %w", err)
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}
	if err := os.WriteFile(path(dir), data, 0o600); err != nil {
		return fmt.Errorf("writing credentials: %w", err)
	}
	return nil
}

// Clear removes stored credentials. Clearing when none exist is not an
// error.
func Clear(dir string) error {
	err := os.Remove(path(dir))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
