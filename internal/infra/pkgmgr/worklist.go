package pkgmgr

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/afero"
)

// WorkListProvider queries the catalog through a Manager and keeps a
// newline-delimited transient artifact of the result. The artifact is
// removed by teardown; it exists so an operator can inspect what a run
// was about to install.
type WorkListProvider struct {
	fs           afero.Fs
	mgr          Manager
	artifactPath string
}

// NewWorkListProvider creates a provider writing its artifact to artifactPath.
func NewWorkListProvider(fs afero.Fs, mgr Manager, artifactPath string) *WorkListProvider {
	return &WorkListProvider{fs: fs, mgr: mgr, artifactPath: artifactPath}
}

// Fetch queries the group's members, persists the artifact, and reads the
// run's targets back out of it, so the artifact on disk is exactly what the
// run consumes.
func (p *WorkListProvider) Fetch(ctx context.Context, group string) ([]string, error) {
	pkgs, err := p.mgr.ListGroup(ctx, group)
	if err != nil {
		return nil, err
	}

	var b strings.Builder
	for _, pkg := range pkgs {
		b.WriteString(pkg)
		b.WriteByte('\n')
	}
	if err := afero.WriteFile(p.fs, p.artifactPath, []byte(b.String()), 0o644); err != nil {
		return nil, fmt.Errorf("write work-list artifact: %w", err)
	}

	f, err := p.fs.Open(p.artifactPath)
	if err != nil {
		return nil, fmt.Errorf("read back work-list artifact: %w", err)
	}
	defer f.Close()
	targets, err := ParseWorkList(f)
	if err != nil {
		return nil, err
	}
	return targets, nil
}

// Cleanup removes the transient artifact. Missing file is not an error.
func (p *WorkListProvider) Cleanup() error {
	err := p.fs.Remove(p.artifactPath)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// ArtifactPath returns where the artifact is written.
func (p *WorkListProvider) ArtifactPath() string {
	return p.artifactPath
}

// ParseWorkList reads non-empty, newline-terminated target identifiers.
// Blank lines are ignored; no further syntax validation is applied.
func ParseWorkList(r io.Reader) ([]string, error) {
	var targets []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			targets = append(targets, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read work list: %w", err)
	}
	return targets, nil
}
