//go:build !windows

package lock

import (
	"errors"
	"os"
	"syscall"
)

// processAlive sends signal 0 to probe for the process. EPERM means the
// process exists but belongs to someone else.
func processAlive(pid int) bool {
	process, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	err = process.Signal(syscall.Signal(0))
	if err == nil {
		return true
	}
	return errors.Is(err, syscall.EPERM)
}
