package pkgmgr

import (
	"fmt"
	"os/exec"
)

// Detect resolves the configured manager name to a concrete Manager.
// "auto" picks whichever binary is on PATH, preferring pacman.
func Detect(name string, runner *Runner) (Manager, error) {
	switch name {
	case "pacman":
		return NewPacman(runner), nil
	case "apt":
		return NewApt(runner), nil
	case "auto", "":
		if _, err := exec.LookPath("pacman"); err == nil {
			return NewPacman(runner), nil
		}
		if _, err := exec.LookPath("apt-get"); err == nil {
			return NewApt(runner), nil
		}
		return nil, fmt.Errorf("no supported package manager found (need pacman or apt-get)")
	default:
		return nil, fmt.Errorf("unknown package manager %q", name)
	}
}
