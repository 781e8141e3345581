// Package logsink appends severity-tagged, timestamped lines to the fixed
// log file. Any pre-existing log is rotated to a .bak suffix at open.
package logsink

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/spf13/afero"
)

// FileSink is the append-only log file. It is safe for use from a single
// owner; the mutex only guards against late writes racing Close.
type FileSink struct {
	mu     sync.Mutex
	fs     afero.Fs
	path   string
	file   afero.File
	closed bool
}

// Open rotates any existing log at path to path+".bak" and opens a fresh file.
func Open(fs afero.Fs, path string) (*FileSink, error) {
	if err := fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}

	if _, err := fs.Stat(path); err == nil {
		backup := path + ".bak"
		fs.Remove(backup)
		if err := fs.Rename(path, backup); err != nil {
			return nil, fmt.Errorf("rotate previous log: %w", err)
		}
	}

	f, err := fs.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	return &FileSink{fs: fs, path: path, file: f}, nil
}

// Append writes one "[ts] [LEVEL] msg" line. Errors are swallowed: a failing
// log sink must never abort the run or block teardown.
func (s *FileSink) Append(level, msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	ts := time.Now().UTC().Format(time.RFC3339)
	fmt.Fprintf(s.file, "[%s] [%s] %s\n", ts, level, msg)
}

// Path returns the log file location.
func (s *FileSink) Path() string {
	return s.path
}

// Close flushes and closes the file. Idempotent.
func (s *FileSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	if err := s.file.Sync(); err != nil {
		s.file.Close()
		return err
	}
	return s.file.Close()
}
