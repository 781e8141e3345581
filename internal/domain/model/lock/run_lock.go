// Package lock holds the run-lock value object recorded inside the
// singleton marker file.
package lock

import (
	"fmt"
	"os"
	"time"
)

// RunLock identifies the process holding the installer's exclusive marker.
// At most one valid RunLock exists system-wide at any time.
type RunLock struct {
	pid        int
	hostname   string
	acquiredAt time.Time
}

// NewRunLock creates a RunLock for the current process.
func NewRunLock() (*RunLock, error) {
	hostname, err := os.Hostname()
	if err != nil {
		return nil, fmt.Errorf("get hostname: %w", err)
	}
	return &RunLock{
		pid:        os.Getpid(),
		hostname:   hostname,
		acquiredAt: time.Now().UTC(),
	}, nil
}

// Reconstruct rebuilds a RunLock from persisted data.
func Reconstruct(pid int, hostname string, acquiredAt time.Time) *RunLock {
	return &RunLock{pid: pid, hostname: hostname, acquiredAt: acquiredAt}
}

// IsHeldByLiveProcess reports whether the recorded PID still refers to a
// running process. A dead holder makes the marker stale.
func (l *RunLock) IsHeldByLiveProcess() bool {
	if l.pid <= 0 {
		return false
	}
	return processAlive(l.pid)
}

func (l *RunLock) PID() int              { return l.pid }
func (l *RunLock) Hostname() string      { return l.hostname }
func (l *RunLock) AcquiredAt() time.Time { return l.acquiredAt }
