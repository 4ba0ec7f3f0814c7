// Package session manages the stored credential for the investment
// promotion office API. The token and display name live in a small JSON
// file under the user's config directory, the terminal analog of the
// browser's local storage, with an explicit init/teardown lifecycle.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Session holds the credential state for the current user.
type Session struct {
	Token    string `json:"token"`
	UserName string `json:"user_name,omitempty"`
}

// Active reports whether a credential token is present. No server-side
// validation happens here; an expired token surfaces as a failed request.
func (s Session) Active() bool {
	return s.Token != ""
}

// AuthToken returns the bearer token for outgoing API requests. The
// pointer receiver lets a long-lived client observe login and logout
// on the same session object.
func (s *Session) AuthToken() string {
	return s.Token
}

// Store persists sessions to a file on disk.
type Store struct {
	path string
}

// NewStore creates a store backed by the given file path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// DefaultPath returns the standard session file location.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".config", "ipo", "session.json"), nil
}

// Load reads the stored session. A missing file is not an error; it
// yields an empty, inactive session.
func (s *Store) Load() (Session, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Session{}, nil
		}
		return Session{}, fmt.Errorf("failed to read session file: %w", err)
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return Session{}, fmt.Errorf("failed to parse session file: %w", err)
	}

	return sess, nil
}

// Save writes the session to disk, creating parent directories as
// needed. The file is user-readable only.
func (s *Store) Save(sess Session) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}

	data, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}

	return nil
}

// Clear removes the stored session. Clearing an absent session is a no-op.
func (s *Store) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove session file: %w", err)
	}
	return nil
}
