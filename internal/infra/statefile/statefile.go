// Package statefile persists resume state between runs: the targets already
// resolved and the targets still owed. A cancelled run saves it; --resume
// picks it back up.
package statefile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/afero"
)

// State is the resume payload.
type State struct {
	SavedAt   string   `json:"saved_at"` // UTC RFC3339
	Group     string   `json:"group"`
	Completed []string `json:"completed"`
	Remaining []string `json:"remaining"`
}

// Store reads and writes the state file.
type Store struct {
	fs   afero.Fs
	path string
}

// NewStore creates a store at path.
func NewStore(fs afero.Fs, path string) *Store {
	return &Store{fs: fs, path: path}
}

// Save writes the state atomically.
func (s *Store) Save(state State) error {
	state.SavedAt = time.Now().UTC().Format(time.RFC3339)
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := s.fs.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create state directory: %w", err)
	}
	tmp, err := afero.TempFile(s.fs, dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer s.fs.Remove(tmpPath)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write state: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close state: %w", err)
	}
	if err := s.fs.Rename(tmpPath, s.path); err != nil {
		return fmt.Errorf("rename state into place: %w", err)
	}
	return nil
}

// Load reads the state. A missing file returns (nil, nil).
func (s *Store) Load() (*State, error) {
	data, err := afero.ReadFile(s.fs, s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read state: %w", err)
	}
	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("parse state: %w", err)
	}
	return &state, nil
}

// Clear removes the state file. Missing file is a no-op.
func (s *Store) Clear() error {
	err := s.fs.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Path returns the state file location.
func (s *Store) Path() string {
	return s.path
}
