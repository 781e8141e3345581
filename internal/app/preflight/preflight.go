// Package preflight runs the read-only checks that gate the installer before
// any mutation begins. Every check failure carries a typed sentinel error and
// short-circuits the remaining checks.
package preflight

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strings"
	"time"
)

var (
	ErrInsufficientPrivilege = errors.New("root privileges required")
	ErrInsufficientDisk      = errors.New("insufficient disk space")
	ErrInsufficientMemory    = errors.New("insufficient memory")
	ErrUnsupportedHost       = errors.New("unsupported host distribution")
	ErrManagerBusy           = errors.New("package manager database is locked")
	ErrNoNetwork             = errors.New("no network connectivity")
)

// dnsProbes are the connectivity probe targets (Google, Cloudflare, Quad9).
var dnsProbes = []string{"8.8.8.8:53", "1.1.1.1:53", "9.9.9.9:53"}

const probeTimeout = 3 * time.Second

// Check is one named validation step.
type Check struct {
	Name string
	Run  func() error
}

// Validator holds thresholds and probes. The probe fields default to the
// real system calls and are swapped out in tests.
type Validator struct {
	MinDiskBytes   uint64
	MinMemoryBytes uint64
	// Families accepted in /etc/os-release ID/ID_LIKE; empty skips the check.
	HostFamilies []string
	// Path whose presence marks the package database busy; empty skips.
	DBLockPath string
	// SkipNetwork disables the connectivity probe.
	SkipNetwork bool

	Euid        func() int
	FreeDisk    func(path string) (uint64, error)
	TotalMemory func() (uint64, error)
	OSRelease   func() (string, error)
	Dial        func(network, addr string, timeout time.Duration) error
}

// New builds a validator with the real system probes.
func New(minDisk, minMemory uint64, hostFamilies []string, dbLockPath string) *Validator {
	return &Validator{
		MinDiskBytes:   minDisk,
		MinMemoryBytes: minMemory,
		HostFamilies:   hostFamilies,
		DBLockPath:     dbLockPath,
		Euid:           os.Geteuid,
		FreeDisk:       freeDiskBytes,
		TotalMemory:    totalMemoryBytes,
		OSRelease:      readOSRelease,
		Dial: func(network, addr string, timeout time.Duration) error {
			conn, err := net.DialTimeout(network, addr, timeout)
			if err != nil {
				return err
			}
			return conn.Close()
		},
	}
}

// Checks returns the ordered check list. Used by the doctor command, which
// reports each outcome instead of short-circuiting.
func (v *Validator) Checks() []Check {
	checks := []Check{
		{Name: "root privileges", Run: v.checkPrivilege},
		{Name: "disk space", Run: v.checkDisk},
		{Name: "memory", Run: v.checkMemory},
	}
	if len(v.HostFamilies) > 0 {
		checks = append(checks, Check{Name: "host distribution", Run: v.checkHost})
	}
	if v.DBLockPath != "" {
		checks = append(checks, Check{Name: "package database", Run: v.checkDBReady})
	}
	if !v.SkipNetwork {
		checks = append(checks, Check{Name: "network connectivity", Run: v.checkNetwork})
	}
	return checks
}

// Validate runs the checks in order and returns the first failure.
func (v *Validator) Validate() error {
	for _, c := range v.Checks() {
		if err := c.Run(); err != nil {
			return err
		}
	}
	return nil
}

func (v *Validator) checkPrivilege() error {
	if v.Euid() != 0 {
		return ErrInsufficientPrivilege
	}
	return nil
}

func (v *Validator) checkDisk() error {
	free, err := v.FreeDisk("/")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInsufficientDisk, err)
	}
	if free < v.MinDiskBytes {
		return fmt.Errorf("%w: %.1f GiB free, %.1f GiB required",
			ErrInsufficientDisk, gib(free), gib(v.MinDiskBytes))
	}
	return nil
}

func (v *Validator) checkMemory() error {
	total, err := v.TotalMemory()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInsufficientMemory, err)
	}
	if total < v.MinMemoryBytes {
		return fmt.Errorf("%w: %.1f GiB total, %.1f GiB required",
			ErrInsufficientMemory, gib(total), gib(v.MinMemoryBytes))
	}
	return nil
}

func (v *Validator) checkHost() error {
	release, err := v.OSRelease()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnsupportedHost, err)
	}
	lower := strings.ToLower(release)
	for _, family := range v.HostFamilies {
		if strings.Contains(lower, strings.ToLower(family)) {
			return nil
		}
	}
	return fmt.Errorf("%w: want one of %v", ErrUnsupportedHost, v.HostFamilies)
}

func (v *Validator) checkDBReady() error {
	if _, err := os.Stat(v.DBLockPath); err == nil {
		return fmt.Errorf("%w: %s exists", ErrManagerBusy, v.DBLockPath)
	}
	return nil
}

func (v *Validator) checkNetwork() error {
	var lastErr error
	for _, addr := range dnsProbes {
		if err := v.Dial("tcp", addr, probeTimeout); err == nil {
			return nil
		} else {
			lastErr = err
		}
	}
	return fmt.Errorf("%w: %v", ErrNoNetwork, lastErr)
}

// HostFamiliesFor returns the distribution families accepted per manager.
// "auto" accepts either family; detection settles the manager later.
func HostFamiliesFor(manager string) []string {
	switch manager {
	case "pacman":
		return []string{"arch"}
	case "apt":
		return []string{"debian", "kali"}
	default:
		return []string{"arch", "debian", "kali"}
	}
}

// DBLockPathFor returns the package database lock checked for readiness.
// dpkg's lock files exist even when idle, so apt gets no presence check.
func DBLockPathFor(manager string) string {
	switch manager {
	case "pacman", "auto", "":
		return "/var/lib/pacman/db.lck"
	default:
		return ""
	}
}

func readOSRelease() (string, error) {
	data, err := os.ReadFile("/etc/os-release")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func gib(b uint64) float64 {
	return float64(b) / (1024 * 1024 * 1024)
}
