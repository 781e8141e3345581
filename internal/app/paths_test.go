package app

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestResolvePaths_SystemDefaults(t *testing.T) {
	t.Setenv("BLACKUTILITY_HOME", "")

	p := ResolvePaths()

	if p.Lock != "/var/lock/blackutility.lock" {
		t.Errorf("unexpected lock path %s", p.Lock)
	}
	if p.Log != "/var/log/blackutility.log" {
		t.Errorf("unexpected log path %s", p.Log)
	}
	if p.State != "/var/lib/blackutility/state.json" {
		t.Errorf("unexpected state path %s", p.State)
	}
	if p.WorkList != "/var/tmp/blackutility-worklist.txt" {
		t.Errorf("unexpected work-list path %s", p.WorkList)
	}
}

func TestGetPaths_CachesFirstResolution(t *testing.T) {
	home := t.TempDir()
	t.Setenv("BLACKUTILITY_HOME", home)

	first := GetPaths()
	if first.Lock != filepath.Join(home, "blackutility.lock") {
		t.Fatalf("unexpected lock path %s", first.Lock)
	}

	// A later environment change must not reshuffle an already-resolved run.
	t.Setenv("BLACKUTILITY_HOME", t.TempDir())
	second := GetPaths()
	if second != first {
		t.Errorf("expected cached paths, got %+v then %+v", first, second)
	}
}

func TestResolvePaths_HomeOverrideRelocatesEverything(t *testing.T) {
	home := t.TempDir()
	t.Setenv("BLACKUTILITY_HOME", home)

	p := ResolvePaths()

	for name, path := range map[string]string{
		"lock":      p.Lock,
		"log":       p.Log,
		"capture":   p.Capture,
		"report":    p.Report,
		"state":     p.State,
		"work list": p.WorkList,
	} {
		rel, err := filepath.Rel(home, path)
		if err != nil || strings.HasPrefix(rel, "..") {
			t.Errorf("%s path %s escapes the home override", name, path)
		}
	}
}
