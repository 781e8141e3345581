package config

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadSettings_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadSettings(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Manager() != "auto" {
		t.Errorf("expected manager auto, got %s", cfg.Manager())
	}
	if cfg.ToolGroup() != "blackarch" {
		t.Errorf("expected tool group blackarch, got %s", cfg.ToolGroup())
	}
	if cfg.MaxRetries() != 3 {
		t.Errorf("expected 3 retries, got %d", cfg.MaxRetries())
	}
	if cfg.RetryCooldown() != 2*time.Second {
		t.Errorf("expected 2s cooldown, got %s", cfg.RetryCooldown())
	}
	if cfg.ItemTimeout() != 300*time.Second {
		t.Errorf("expected 300s item timeout, got %s", cfg.ItemTimeout())
	}
	if cfg.RunTimeout() != 0 {
		t.Errorf("run timeout should default to disabled, got %s", cfg.RunTimeout())
	}
	if cfg.MinDiskBytes() != 10<<30 {
		t.Errorf("expected 10 GiB disk floor, got %d", cfg.MinDiskBytes())
	}
	if cfg.MinMemoryBytes() != 2<<30 {
		t.Errorf("expected 2 GiB memory floor, got %d", cfg.MinMemoryBytes())
	}
	if cfg.ConfirmToken() != "AGREE" {
		t.Errorf("expected AGREE token, got %s", cfg.ConfirmToken())
	}
	if cfg.ConfigSource() != "default" {
		t.Errorf("expected default source, got %s", cfg.ConfigSource())
	}
}

func TestLoadSettings_YAMLOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
manager: pacman
tool_group: blackarch-forensic
max_retries: 5
retry_cooldown_sec: 10
item_timeout_sec: 600
run_timeout_sec: 7200
min_disk_gb: 20
min_memory_gb: 4
confirm_token: PROCEED
stderr_level: debug
`)

	cfg, err := LoadSettings(path)
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Manager() != "pacman" {
		t.Errorf("expected pacman, got %s", cfg.Manager())
	}
	if cfg.ToolGroup() != "blackarch-forensic" {
		t.Errorf("expected blackarch-forensic, got %s", cfg.ToolGroup())
	}
	if cfg.MaxRetries() != 5 {
		t.Errorf("expected 5 retries, got %d", cfg.MaxRetries())
	}
	if cfg.RetryCooldown() != 10*time.Second {
		t.Errorf("expected 10s cooldown, got %s", cfg.RetryCooldown())
	}
	if cfg.RunTimeout() != 2*time.Hour {
		t.Errorf("expected 2h run timeout, got %s", cfg.RunTimeout())
	}
	if cfg.MinDiskBytes() != 20<<30 {
		t.Errorf("expected 20 GiB disk floor, got %d", cfg.MinDiskBytes())
	}
	if cfg.ConfirmToken() != "PROCEED" {
		t.Errorf("expected PROCEED token, got %s", cfg.ConfirmToken())
	}
	if cfg.StderrLevel() != "debug" {
		t.Errorf("expected debug level, got %s", cfg.StderrLevel())
	}
	if cfg.ConfigSource() != "yaml" {
		t.Errorf("expected yaml source, got %s", cfg.ConfigSource())
	}
	if cfg.SettingPath() != path {
		t.Errorf("expected setting path %s, got %s", path, cfg.SettingPath())
	}
}

func TestLoadSettings_PartialFileKeepsOtherDefaults(t *testing.T) {
	path := writeConfig(t, "max_retries: 1\n")

	cfg, err := LoadSettings(path)
	if err != nil {
		t.Fatal(err)
	}

	if cfg.MaxRetries() != 1 {
		t.Errorf("expected 1 retry, got %d", cfg.MaxRetries())
	}
	if cfg.Manager() != "auto" {
		t.Errorf("unset manager should default to auto, got %s", cfg.Manager())
	}
}

func TestLoadSettings_InvalidManager(t *testing.T) {
	path := writeConfig(t, "manager: yum\n")

	if _, err := LoadSettings(path); err == nil {
		t.Error("expected error for unknown manager")
	}
}

func TestLoadSettings_MemoryOutOfRange(t *testing.T) {
	for _, gb := range []int{1, 5} {
		path := writeConfig(t, fmt.Sprintf("min_memory_gb: %d\n", gb))
		if _, err := LoadSettings(path); err == nil {
			t.Errorf("expected error for min_memory_gb=%d", gb)
		}
	}
}

func TestLoadSettings_ZeroRetriesRejected(t *testing.T) {
	path := writeConfig(t, "max_retries: 0\n")

	if _, err := LoadSettings(path); err == nil {
		t.Error("expected error for zero retries")
	}
}

func TestLoadSettings_MalformedYAML(t *testing.T) {
	path := writeConfig(t, "manager: [unclosed\n")

	if _, err := LoadSettings(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestSettingPath_EnvOverride(t *testing.T) {
	t.Setenv("BLACKUTILITY_CONFIG", "/tmp/custom.yaml")
	if got := SettingPath(); got != "/tmp/custom.yaml" {
		t.Errorf("expected env override, got %s", got)
	}

	t.Setenv("BLACKUTILITY_CONFIG", "")
	if got := SettingPath(); got != "/etc/blackutility/config.yaml" {
		t.Errorf("expected system path, got %s", got)
	}
}
