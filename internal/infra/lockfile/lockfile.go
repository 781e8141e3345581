// Package lockfile implements the singleton guard: an exclusively-created
// marker file that ensures at most one installer instance runs system-wide.
package lockfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/0xb0rn3/blackutility/internal/domain/model/lock"
)

// ErrAlreadyRunning indicates another live instance holds the marker.
var ErrAlreadyRunning = errors.New("another instance is already running")

// lockInfo is the JSON payload stored in the marker file.
type lockInfo struct {
	PID        int    `json:"pid"`
	Hostname   string `json:"hostname"`
	AcquiredAt string `json:"acquired_at"` // UTC RFC3339
}

// Guard owns the marker file for the lifetime of one run.
type Guard struct {
	path string
	held bool
}

// NewGuard returns an unacquired guard for the marker at path.
func NewGuard(path string) *Guard {
	return &Guard{path: path}
}

// Acquire atomically creates the marker file. It fails with ErrAlreadyRunning
// when a live instance holds it, and removes a stale marker (dead holder)
// before retrying the exclusive create once.
func (g *Guard) Acquire() error {
	if g.held {
		return nil
	}

	if existing, err := readLockFile(g.path); err == nil {
		if existing.IsHeldByLiveProcess() {
			return fmt.Errorf("%w (pid %d on %s since %s)", ErrAlreadyRunning,
				existing.PID(), existing.Hostname(),
				existing.AcquiredAt().Format(time.RFC3339))
		}
		// Holder is gone; remove the stale marker so O_EXCL can succeed.
		os.Remove(g.path)
	} else if !os.IsNotExist(err) {
		// Unreadable marker cannot name a live holder; reclaim it.
		os.Remove(g.path)
	}

	rl, err := lock.NewRunLock()
	if err != nil {
		return fmt.Errorf("build lock info: %w", err)
	}
	data, err := json.Marshal(lockInfo{
		PID:        rl.PID(),
		Hostname:   rl.Hostname(),
		AcquiredAt: rl.AcquiredAt().Format(time.RFC3339),
	})
	if err != nil {
		return fmt.Errorf("serialize lock info: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(g.path), 0o755); err != nil {
		return fmt.Errorf("create lock directory: %w", err)
	}

	f, err := os.OpenFile(g.path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if os.IsExist(err) {
			return ErrAlreadyRunning
		}
		return fmt.Errorf("create lock file: %w", err)
	}

	_, writeErr := f.Write(data)
	closeErr := f.Close()
	if writeErr != nil {
		os.Remove(g.path)
		return fmt.Errorf("write lock data: %w", writeErr)
	}
	if closeErr != nil {
		os.Remove(g.path)
		return fmt.Errorf("close lock file: %w", closeErr)
	}

	g.held = true
	return nil
}

// Release removes the marker. Idempotent: releasing an unheld or already
// removed lock is a no-op, never an error.
func (g *Guard) Release() error {
	if !g.held {
		return nil
	}
	g.held = false
	err := os.Remove(g.path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Held reports whether this guard currently owns the marker.
func (g *Guard) Held() bool {
	return g.held
}

// Path returns the marker location.
func (g *Guard) Path() string {
	return g.path
}

// readLockFile reads and parses a marker file into a RunLock.
func readLockFile(path string) (*lock.RunLock, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var info lockInfo
	if err := json.Unmarshal(data, &info); err != nil {
		return nil, err
	}
	acquiredAt, err := time.Parse(time.RFC3339, info.AcquiredAt)
	if err != nil {
		acquiredAt = time.Time{}
	}
	return lock.Reconstruct(info.PID, info.Hostname, acquiredAt), nil
}

// GetLockInfo returns the current holder, for diagnostics.
func GetLockInfo(path string) (*lock.RunLock, error) {
	return readLockFile(path)
}
