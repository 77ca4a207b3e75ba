package appstate

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/NoteLegend/CodeKeep/internal/models"
)

// Only the session survives a restart; collections and snippets are
// reloaded from the API.
type persistedSession struct {
	User            *models.User `json:"user"`
	Token           string       `json:"token"`
	IsAuthenticated bool         `json:"isAuthenticated"`
}

// Save writes the session subset of the state to path.
func (s *Store) Save(path string) error {
	s.mu.RLock()
	session := persistedSession{
		User:            s.state.User,
		Token:           s.state.Token,
		IsAuthenticated: s.state.IsAuthenticated,
	}
	s.mu.RUnlock()

	data, err := json.MarshalIndent(session, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write session: %w", err)
	}
	return nil
}

// Load restores a previously saved session. A missing file is not an
// error; the store is simply left logged out.
func (s *Store) Load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read session: %w", err)
	}

	var session persistedSession
	if err := json.Unmarshal(data, &session); err != nil {
		return fmt.Errorf("failed to decode session: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.User = session.User
	s.state.Token = session.Token
	s.state.IsAuthenticated = session.IsAuthenticated
	return nil
}

// ClearSaved removes the persisted session file, if any.
func ClearSaved(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
