//go:build windows

package lock

import "os"

func processAlive(pid int) bool {
	// FindProcess only succeeds for live processes on Windows.
	_, err := os.FindProcess(pid)
	return err == nil
}
