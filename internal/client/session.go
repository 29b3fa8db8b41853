package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/adanyl0v/go-todo-app/internal/models"
)

// ErrNoSession is returned by Load when nothing was saved.
var ErrNoSession = errors.New("no saved session")

// Session is what the client keeps between runs.
type Session struct {
	Token string             `json:"token"`
	User  models.UserSummary `json:"user"`
}

// SessionStore keeps a Session in a JSON file readable only by its owner.
type SessionStore struct {
	path string
}

func NewSessionStore(path string) *SessionStore {
	return &SessionStore{path: path}
}

// DefaultSessionPath is the session file under the user config directory.
func DefaultSessionPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to find config dir: %w", err)
	}
	return filepath.Join(dir, "todo", "session.json"), nil
}

func (s *SessionStore) Path() string {
	return s.path
}

func (s *SessionStore) Load() (*Session, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNoSession
		}
		return nil, fmt.Errorf("failed to read session: %w", err)
	}

	var session Session
	if err = json.Unmarshal(raw, &session); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}
	if session.Token == "" {
		return nil, ErrNoSession
	}
	return &session, nil
}

func (s *SessionStore) Save(session *Session) error {
	raw, err := json.MarshalIndent(session, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	if err = os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("failed to create session dir: %w", err)
	}
	if err = os.WriteFile(s.path, raw, 0o600); err != nil {
		return fmt.Errorf("failed to write session: %w", err)
	}
	// WriteFile keeps the mode of an existing file.
	if err = os.Chmod(s.path, 0o600); err != nil {
		return fmt.Errorf("failed to chmod session: %w", err)
	}
	return nil
}

// Clear removes the saved session. A missing file is not an error.
func (s *SessionStore) Clear() error {
	err := os.Remove(s.path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove session: %w", err)
	}
	return nil
}
