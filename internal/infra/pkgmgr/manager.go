// Package pkgmgr wraps the external package manager (pacman or apt): catalog
// queries for the work list, repository bootstrap, and one install invocation
// per target with process-group termination on timeout.
package pkgmgr

import (
	"context"
	"errors"
)

// ErrWorkListUnavailable indicates the catalog query produced no usable list.
var ErrWorkListUnavailable = errors.New("work list unavailable")

// Manager drives one concrete package manager. Install invocations are
// synchronous and must never run concurrently against the same database.
type Manager interface {
	// Name returns "pacman" or "apt".
	Name() string
	// Refresh synchronizes the package database.
	Refresh(ctx context.Context) error
	// Bootstrap registers the tool repository prerequisites (keyring).
	Bootstrap(ctx context.Context) error
	// ListGroup returns the install targets belonging to a package group.
	ListGroup(ctx context.Context, group string) ([]string, error)
	// Install installs exactly one target. A non-zero exit status is an
	// error; a context deadline kills the spawned process group.
	Install(ctx context.Context, pkg string) error
}
