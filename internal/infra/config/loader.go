package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/0xb0rn3/blackutility/internal/app/config"
)

// RawSettings mirrors the structure of config.yaml.
// Pointer fields distinguish "absent" from zero values.
type RawSettings struct {
	Manager   *string `yaml:"manager"`
	ToolGroup *string `yaml:"tool_group"`

	MaxRetries       *int `yaml:"max_retries"`
	RetryCooldownSec *int `yaml:"retry_cooldown_sec"`
	ItemTimeoutSec   *int `yaml:"item_timeout_sec"`
	RunTimeoutSec    *int `yaml:"run_timeout_sec"`

	MinDiskGB   *int `yaml:"min_disk_gb"`
	MinMemoryGB *int `yaml:"min_memory_gb"`

	ConfirmToken      *string `yaml:"confirm_token"`
	ConfirmTimeoutSec *int    `yaml:"confirm_timeout_sec"`

	StderrLevel *string `yaml:"stderr_level"`
}

// Default parameters match the original installer's fixed constants.
const (
	DefaultManager        = "auto"
	DefaultToolGroup      = "blackarch"
	DefaultMaxRetries     = 3
	DefaultRetryCooldown  = 2 * time.Second
	DefaultItemTimeout    = 300 * time.Second
	DefaultMinDiskGB      = 10
	DefaultMinMemoryGB    = 2
	DefaultConfirmToken   = "AGREE"
	DefaultConfirmTimeout = 60 * time.Second
	DefaultStderrLevel    = "info"
)

// SettingPath returns the config file location, honoring BLACKUTILITY_CONFIG.
func SettingPath() string {
	if p := os.Getenv("BLACKUTILITY_CONFIG"); p != "" {
		return p
	}
	return "/etc/blackutility/config.yaml"
}

// LoadSettings loads configuration from config.yaml.
// Priority: config.yaml > defaults. A missing file is not an error.
func LoadSettings(path string) (*config.AppConfig, error) {
	settings := &RawSettings{}
	configSource := "default"
	settingPath := ""

	if data, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(data, settings); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
		configSource = "yaml"
		settingPath = path
	}

	return buildAppConfig(settings, configSource, settingPath)
}

func buildAppConfig(s *RawSettings, source, path string) (*config.AppConfig, error) {
	manager := strOr(s.Manager, DefaultManager)
	switch manager {
	case "auto", "pacman", "apt":
	default:
		return nil, fmt.Errorf("invalid manager %q (want auto, pacman, or apt)", manager)
	}

	memGB := intOr(s.MinMemoryGB, DefaultMinMemoryGB)
	if memGB < 2 || memGB > 4 {
		return nil, fmt.Errorf("min_memory_gb must be between 2 and 4, got %d", memGB)
	}

	retries := intOr(s.MaxRetries, DefaultMaxRetries)
	if retries < 1 {
		return nil, fmt.Errorf("max_retries must be at least 1, got %d", retries)
	}

	return config.NewAppConfig(
		manager,
		strOr(s.ToolGroup, DefaultToolGroup),
		retries,
		durOr(s.RetryCooldownSec, DefaultRetryCooldown),
		durOr(s.ItemTimeoutSec, DefaultItemTimeout),
		durOr(s.RunTimeoutSec, 0),
		uint64(intOr(s.MinDiskGB, DefaultMinDiskGB))*1024*1024*1024,
		uint64(memGB)*1024*1024*1024,
		strOr(s.ConfirmToken, DefaultConfirmToken),
		durOr(s.ConfirmTimeoutSec, DefaultConfirmTimeout),
		strOr(s.StderrLevel, DefaultStderrLevel),
		source, path,
	), nil
}

func strOr(p *string, def string) string {
	if p != nil && *p != "" {
		return *p
	}
	return def
}

func intOr(p *int, def int) int {
	if p != nil {
		return *p
	}
	return def
}

func durOr(p *int, def time.Duration) time.Duration {
	if p != nil {
		return time.Duration(*p) * time.Second
	}
	return def
}
