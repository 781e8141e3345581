package pkgmgr

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"time"
)

// termGrace is how long a SIGTERM'd process group gets before SIGKILL.
const termGrace = 5 * time.Second

// Runner executes package-manager commands. Stdout and stderr of every
// invocation are appended to a fixed-path capture file instead of the
// installer's own streams.
type Runner struct {
	mu          sync.Mutex
	capturePath string
	capture     *os.File
}

// NewRunner creates a runner that captures command output at capturePath.
func NewRunner(capturePath string) *Runner {
	return &Runner{capturePath: capturePath}
}

// Run executes one command. On context cancellation or deadline the entire
// process group receives SIGTERM, then SIGKILL after a grace period, so a
// timed-out package manager never lingers in the background.
func (r *Runner) Run(ctx context.Context, name string, args ...string) error {
	return r.RunEnv(ctx, nil, name, args...)
}

// RunEnv is Run with extra environment entries appended to the parent's.
func (r *Runner) RunEnv(ctx context.Context, extraEnv []string, name string, args ...string) error {
	capture, err := r.captureFile()
	if err != nil {
		return err
	}

	cmd := exec.Command(name, args...)
	cmd.Stdout = capture
	cmd.Stderr = capture
	if len(extraEnv) > 0 {
		cmd.Env = append(os.Environ(), extraEnv...)
	}
	configureProcessGroup(cmd)

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", name, err)
	}

	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("%s %v: %w", name, args, err)
		}
		return nil
	case <-ctx.Done():
		killProcessGroup(cmd.Process.Pid, true)
		select {
		case <-done:
		case <-time.After(termGrace):
			killProcessGroup(cmd.Process.Pid, false)
			<-done
		}
		return ctx.Err()
	}
}

// Output executes a query command and returns its stdout. Queries are
// read-only and short-lived, so they go through exec's own context plumbing.
func (r *Runner) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("%s %v: %w", name, args, err)
	}
	return out, nil
}

// Close closes the capture file if it was opened.
func (r *Runner) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.capture == nil {
		return nil
	}
	f := r.capture
	r.capture = nil
	return f.Close()
}

func (r *Runner) captureFile() (*os.File, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.capture != nil {
		return r.capture, nil
	}
	if err := os.MkdirAll(filepath.Dir(r.capturePath), 0o755); err != nil {
		return nil, fmt.Errorf("create capture directory: %w", err)
	}
	f, err := os.OpenFile(r.capturePath, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open capture file: %w", err)
	}
	r.capture = f
	return f, nil
}
