package config

import "time"

// Config provides read-only access to application configuration.
// This interface abstracts the configuration source (YAML file or defaults)
// and keeps the app layer off infrastructure details.
type Config interface {
	// Package manager selection: "auto", "pacman", or "apt"
	Manager() string
	// Group queried for the full work list (pacman group / apt package prefix)
	ToolGroup() string

	// Orchestration limits
	MaxRetries() int              // attempts per item before it is recorded failed
	RetryCooldown() time.Duration // sleep between attempts of the same item
	ItemTimeout() time.Duration   // wall-clock bound for a single install command
	RunTimeout() time.Duration    // overall deadline, 0 disables it

	// Preflight thresholds
	MinDiskBytes() uint64 // free space required on /
	MinMemoryBytes() uint64

	// Confirmation gate
	ConfirmToken() string
	ConfirmTimeout() time.Duration

	// Logging
	StderrLevel() string // minimum level echoed to stderr

	// Metadata
	ConfigSource() string // "yaml" or "default"
	SettingPath() string  // path of the loaded file, if any
}

// AppConfig is the concrete implementation of Config.
type AppConfig struct {
	manager   string
	toolGroup string

	maxRetries    int
	retryCooldown time.Duration
	itemTimeout   time.Duration
	runTimeout    time.Duration

	minDiskBytes   uint64
	minMemoryBytes uint64

	confirmToken   string
	confirmTimeout time.Duration

	stderrLevel string

	configSource string
	settingPath  string
}

// NewAppConfig builds an AppConfig from resolved values.
func NewAppConfig(
	manager, toolGroup string,
	maxRetries int,
	retryCooldown, itemTimeout, runTimeout time.Duration,
	minDiskBytes, minMemoryBytes uint64,
	confirmToken string,
	confirmTimeout time.Duration,
	stderrLevel string,
	configSource, settingPath string,
) *AppConfig {
	return &AppConfig{
		manager:        manager,
		toolGroup:      toolGroup,
		maxRetries:     maxRetries,
		retryCooldown:  retryCooldown,
		itemTimeout:    itemTimeout,
		runTimeout:     runTimeout,
		minDiskBytes:   minDiskBytes,
		minMemoryBytes: minMemoryBytes,
		confirmToken:   confirmToken,
		confirmTimeout: confirmTimeout,
		stderrLevel:    stderrLevel,
		configSource:   configSource,
		settingPath:    settingPath,
	}
}

func (c *AppConfig) Manager() string               { return c.manager }
func (c *AppConfig) ToolGroup() string             { return c.toolGroup }
func (c *AppConfig) MaxRetries() int               { return c.maxRetries }
func (c *AppConfig) RetryCooldown() time.Duration  { return c.retryCooldown }
func (c *AppConfig) ItemTimeout() time.Duration    { return c.itemTimeout }
func (c *AppConfig) RunTimeout() time.Duration     { return c.runTimeout }
func (c *AppConfig) MinDiskBytes() uint64          { return c.minDiskBytes }
func (c *AppConfig) MinMemoryBytes() uint64        { return c.minMemoryBytes }
func (c *AppConfig) ConfirmToken() string          { return c.confirmToken }
func (c *AppConfig) ConfirmTimeout() time.Duration { return c.confirmTimeout }
func (c *AppConfig) StderrLevel() string           { return c.stderrLevel }
func (c *AppConfig) ConfigSource() string          { return c.configSource }
func (c *AppConfig) SettingPath() string           { return c.settingPath }
