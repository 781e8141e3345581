//go:build windows

package cancel

import "os"

func signalsToHandle() []os.Signal {
	return []os.Signal{os.Interrupt}
}

func isTerminate(sig os.Signal) bool {
	return false
}
