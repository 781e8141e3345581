package lockfile

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestGuard_AcquireAndRelease(t *testing.T) {
	lockPath := filepath.Join(t.TempDir(), "run.lock")
	g := NewGuard(lockPath)

	if err := g.Acquire(); err != nil {
		t.Fatal(err)
	}
	if !g.Held() {
		t.Error("guard should report held after Acquire")
	}

	// The marker carries the holder's identity.
	info, err := GetLockInfo(lockPath)
	if err != nil {
		t.Fatal(err)
	}
	if info.PID() != os.Getpid() {
		t.Errorf("expected pid %d in marker, got %d", os.Getpid(), info.PID())
	}

	if err := g.Release(); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(lockPath); !os.IsNotExist(err) {
		t.Error("marker should be removed on release")
	}
}

func TestGuard_ContentionDoesNotRemoveHolderMarker(t *testing.T) {
	lockPath := filepath.Join(t.TempDir(), "run.lock")

	// Simulate a live holder: the current process counts as alive.
	data, err := json.Marshal(lockInfo{
		PID:        os.Getpid(),
		Hostname:   "test-host",
		AcquiredAt: time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(lockPath, data, 0o644); err != nil {
		t.Fatal(err)
	}

	g := NewGuard(lockPath)
	err = g.Acquire()
	if !errors.Is(err, ErrAlreadyRunning) {
		t.Fatalf("expected ErrAlreadyRunning, got %v", err)
	}
	if g.Held() {
		t.Error("losing guard should not report held")
	}

	// The holder's marker must survive the failed acquisition.
	if _, err := os.Stat(lockPath); err != nil {
		t.Errorf("holder marker should remain: %v", err)
	}
}

func TestGuard_StaleMarkerIsReclaimed(t *testing.T) {
	lockPath := filepath.Join(t.TempDir(), "run.lock")

	// A PID far beyond pid_max never names a live process.
	data, err := json.Marshal(lockInfo{
		PID:        99999999,
		Hostname:   "dead-host",
		AcquiredAt: time.Now().UTC().Add(-time.Hour).Format(time.RFC3339),
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(lockPath, data, 0o644); err != nil {
		t.Fatal(err)
	}

	g := NewGuard(lockPath)
	if err := g.Acquire(); err != nil {
		t.Fatalf("stale marker should be reclaimed: %v", err)
	}
	defer g.Release()

	info, err := GetLockInfo(lockPath)
	if err != nil {
		t.Fatal(err)
	}
	if info.PID() != os.Getpid() {
		t.Errorf("marker should name the new holder, got pid %d", info.PID())
	}
}

func TestGuard_CorruptMarkerIsReclaimed(t *testing.T) {
	lockPath := filepath.Join(t.TempDir(), "run.lock")
	if err := os.WriteFile(lockPath, []byte("not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	g := NewGuard(lockPath)
	if err := g.Acquire(); err != nil {
		t.Fatalf("unreadable marker should not block acquisition: %v", err)
	}
	defer g.Release()
}

func TestGuard_ReleaseIsIdempotent(t *testing.T) {
	lockPath := filepath.Join(t.TempDir(), "run.lock")
	g := NewGuard(lockPath)

	// Releasing before acquiring is a no-op.
	if err := g.Release(); err != nil {
		t.Errorf("unheld release should be nil, got %v", err)
	}

	if err := g.Acquire(); err != nil {
		t.Fatal(err)
	}
	if err := g.Release(); err != nil {
		t.Fatal(err)
	}
	if err := g.Release(); err != nil {
		t.Errorf("double release should be nil, got %v", err)
	}
}

func TestGuard_AcquireWhileHeldIsNoop(t *testing.T) {
	lockPath := filepath.Join(t.TempDir(), "run.lock")
	g := NewGuard(lockPath)

	if err := g.Acquire(); err != nil {
		t.Fatal(err)
	}
	defer g.Release()

	if err := g.Acquire(); err != nil {
		t.Errorf("re-acquire by the holder should be nil, got %v", err)
	}
}

func TestGuard_CreatesLockDirectory(t *testing.T) {
	lockPath := filepath.Join(t.TempDir(), "nested", "dir", "run.lock")
	g := NewGuard(lockPath)

	if err := g.Acquire(); err != nil {
		t.Fatal(err)
	}
	defer g.Release()
}
