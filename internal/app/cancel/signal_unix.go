//go:build !windows

package cancel

import (
	"os"
	"syscall"
)

// signalsToHandle returns the signals that request cancellation on Unix.
func signalsToHandle() []os.Signal {
	return []os.Signal{
		os.Interrupt,    // Ctrl+C (SIGINT)
		syscall.SIGTERM, // kill command
	}
}

// isTerminate distinguishes SIGTERM from a user interrupt.
func isTerminate(sig os.Signal) bool {
	return sig == syscall.SIGTERM
}
