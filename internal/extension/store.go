// Package extension is the companion client for the prompt library: it
// keeps a signed-in session on disk, talks to the /api/extension routes
// and holds the popup's tab and filter state.
package extension

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/spf13/viper"
)

// sessionFile is the YAML file the session is stored in.
const sessionFile = "session.yaml"

// Session is the persisted sign-in state.
type Session struct {
	AuthToken string `mapstructure:"auth_token"`
	UserID    string `mapstructure:"user_id"`
	Username  string `mapstructure:"username"`
}

// Authenticated reports whether the session carries a token.
func (s Session) Authenticated() bool {
	return s.AuthToken != ""
}

// Store persists a Session between runs.
type Store interface {
	Load() (Session, error)
	Save(s Session) error
	Clear() error
}

// ViperStore keeps the session in a YAML file under dir.
type ViperStore struct {
	mu   sync.Mutex
	path string
}

// NewViperStore creates a store rooted at dir. The directory is created on
// first save.
func NewViperStore(dir string) *ViperStore {
	return &ViperStore{path: filepath.Join(dir, sessionFile)}
}

// DefaultDir returns $PROMPTKIT_CONFIG_DIR, falling back to ~/.promptkit.
func DefaultDir() (string, error) {
	if dir := os.Getenv("PROMPTKIT_CONFIG_DIR"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".promptkit"), nil
}

// Path returns the session file location.
func (s *ViperStore) Path() string {
	return s.path
}

// Load reads the session. A missing file is an empty session.
func (s *ViperStore) Load() (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := viper.New()
	v.SetConfigFile(s.path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist) {
			return Session{}, nil
		}
		return Session{}, fmt.Errorf("read session: %w", err)
	}

	var session Session
	if err := v.Unmarshal(&session); err != nil {
		return Session{}, fmt.Errorf("decode session: %w", err)
	}
	return session, nil
}

// Save overwrites the session file.
func (s *ViperStore) Save(session Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigPermissions(0o600)
	v.Set("auth_token", session.AuthToken)
	v.Set("user_id", session.UserID)
	v.Set("username", session.Username)

	if err := v.WriteConfigAs(s.path); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

// Clear removes the session file.
func (s *ViperStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove session: %w", err)
	}
	return nil
}
