package pkgmgr

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

// Pacman drives Arch's pacman. Install flags mirror the original installer:
// --needed skips up-to-date packages, --overwrite=* rides over file conflicts
// common in the blackarch repository.
type Pacman struct {
	runner *Runner
}

// NewPacman creates the pacman manager using runner for command execution.
func NewPacman(runner *Runner) *Pacman {
	return &Pacman{runner: runner}
}

func (p *Pacman) Name() string {
	return "pacman"
}

// Refresh synchronizes the package databases.
func (p *Pacman) Refresh(ctx context.Context) error {
	return p.runner.Run(ctx, "pacman", "-Sy", "--noconfirm")
}

// Bootstrap refreshes the databases and installs the keyring the blackarch
// repository signs its packages with.
func (p *Pacman) Bootstrap(ctx context.Context) error {
	if err := p.Refresh(ctx); err != nil {
		return fmt.Errorf("database refresh: %w", err)
	}
	if err := p.runner.Run(ctx, "pacman", "-S", "--noconfirm", "archlinux-keyring"); err != nil {
		return fmt.Errorf("keyring install: %w", err)
	}
	return nil
}

// ListGroup lists the members of a package group via `pacman -Sgg`, whose
// output is "<group> <package>" per line across all groups.
func (p *Pacman) ListGroup(ctx context.Context, group string) ([]string, error) {
	out, err := p.runner.Output(ctx, "pacman", "-Sgg")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWorkListUnavailable, err)
	}
	return parseGroupMembers(out, group)
}

// parseGroupMembers filters `pacman -Sgg` output ("<group> <package>" per
// line, all groups interleaved) down to one group's members.
func parseGroupMembers(out []byte, group string) ([]string, error) {
	seen := make(map[string]bool)
	var pkgs []string
	for _, line := range strings.Split(string(out), "\n") {
		fields := strings.Fields(line)
		if len(fields) != 2 || fields[0] != group {
			continue
		}
		if !seen[fields[1]] {
			seen[fields[1]] = true
			pkgs = append(pkgs, fields[1])
		}
	}
	sort.Strings(pkgs)

	if len(pkgs) == 0 {
		return nil, fmt.Errorf("%w: group %q has no members", ErrWorkListUnavailable, group)
	}
	return pkgs, nil
}

// Install installs one package.
func (p *Pacman) Install(ctx context.Context, pkg string) error {
	return p.runner.Run(ctx, "pacman", "-S", "--noconfirm", "--needed", "--overwrite=*", pkg)
}
