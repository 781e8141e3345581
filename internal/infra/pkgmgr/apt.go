package pkgmgr

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

var aptEnv = []string{"DEBIAN_FRONTEND=noninteractive"}

// Apt drives Debian/Kali's apt. Kali publishes its tool sets as
// kali-tools-* metapackages, so the group acts as a package-name prefix.
type Apt struct {
	runner *Runner
}

// NewApt creates the apt manager using runner for command execution.
func NewApt(runner *Runner) *Apt {
	return &Apt{runner: runner}
}

func (a *Apt) Name() string {
	return "apt"
}

// Refresh synchronizes the package indexes.
func (a *Apt) Refresh(ctx context.Context) error {
	return a.runner.RunEnv(ctx, aptEnv, "apt-get", "update")
}

// Bootstrap refreshes the indexes and installs the Kali archive keyring.
func (a *Apt) Bootstrap(ctx context.Context) error {
	if err := a.Refresh(ctx); err != nil {
		return fmt.Errorf("index refresh: %w", err)
	}
	if err := a.runner.RunEnv(ctx, aptEnv, "apt-get", "install", "-y", "kali-archive-keyring"); err != nil {
		return fmt.Errorf("keyring install: %w", err)
	}
	return nil
}

// ListGroup lists known package names starting with the group prefix.
func (a *Apt) ListGroup(ctx context.Context, group string) ([]string, error) {
	out, err := a.runner.Output(ctx, "apt-cache", "--no-generate", "pkgnames", group)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWorkListUnavailable, err)
	}
	return parsePkgNames(out, group)
}

// parsePkgNames deduplicates and sorts `apt-cache pkgnames` output, one
// package name per line.
func parsePkgNames(out []byte, group string) ([]string, error) {
	seen := make(map[string]bool)
	var pkgs []string
	for _, line := range strings.Split(string(out), "\n") {
		name := strings.TrimSpace(line)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		pkgs = append(pkgs, name)
	}
	sort.Strings(pkgs)

	if len(pkgs) == 0 {
		return nil, fmt.Errorf("%w: no packages match prefix %q", ErrWorkListUnavailable, group)
	}
	return pkgs, nil
}

// Install installs one package.
func (a *Apt) Install(ctx context.Context, pkg string) error {
	return a.runner.RunEnv(ctx, aptEnv, "apt-get", "install", "-y", pkg)
}
