// Package recoverystore persists the two identifiers a password
// recovery attempt needs to survive a process restart: the pending
// contact identifier and the pending success code.
package recoverystore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const FileName = "recovery.json"

// StaleAfter bounds how long persisted recovery state is honored. The
// service's own OTP expiry is authoritative; this stamp only stops a
// weeks-old abandoned attempt from resuming into a dead flow.
const StaleAfter = 15 * time.Minute

type state struct {
	PendingIdentifier  string    `json:"pending_identifier,omitempty"`
	PendingSuccessCode string    `json:"pending_success_code,omitempty"`
	SavedAt            time.Time `json:"saved_at,omitempty"`
}

// Store is a file-backed two-key store. Reads go to disk every time so
// concurrent rt processes see each other's writes.
type Store struct {
	dir string
	now func() time.Time
}

func New(dir string) *Store {
	return &Store{dir: dir, now: time.Now}
}

// NewWithClock is for tests that need to control staleness.
func NewWithClock(dir string, now func() time.Time) *Store {
	return &Store{dir: dir, now: now}
}

func (s *Store) path() string {
	return filepath.Join(s.dir, FileName)
}

// load reads the state file. Missing, unreadable, or stale files all
// come back as empty state: a recovery attempt that cannot be resumed
// restarts from the request stage, which is always safe.
func (s *Store) load() state {
	data, err := os.ReadFile(s.path()) // #nosec G304 - path is derived from the config dir
	if err != nil {
		return state{}
	}
	var st state
	if err := json.Unmarshal(data, &st); err != nil {
		return state{}
	}
	if !st.SavedAt.IsZero() && s.now().Sub(st.SavedAt) > StaleAfter {
		return state{}
	}
	return st
}

func (s *Store) save(st state) error {
	st.SavedAt = s.now()
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling recovery state: %w", err)
	}
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return fmt.Errorf("creating state dir: %w", err)
	}
	if err := os.WriteFile(s.path(), data, 0o600); err != nil {
		return fmt.Errorf("writing recovery state: %w", err)
	}
	return nil
}

func (s *Store) PendingIdentifier() (string, bool) {
	st := s.load()
	return st.PendingIdentifier, st.PendingIdentifier != ""
}

func (s *Store) PendingSuccessCode() (string, bool) {
	st := s.load()
	return st.PendingSuccessCode, st.PendingSuccessCode != ""
}

func (s *Store) SetPendingIdentifier(v string) error {
	st := s.load()
	st.PendingIdentifier = v
	return s.save(st)
}

func (s *Store) SetPendingSuccessCode(v string) error {
	st := s.load()
	st.PendingSuccessCode = v
	return s.save(st)
}

// Clear removes the state file entirely. Recovery state must not
// outlive a completed attempt.
func (s *Store) Clear() error {
	err := os.Remove(s.path())
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
