// Package config handles configuration loading and defaults for the
// dashboard. Configuration is read from XDG-compliant paths (typically
// ~/.config/mynotion/config.yaml); a missing file means defaults.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"mynotion/internal/fsutil"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration. Optional booleans are
// pointers so an explicit `false` in the file can be told apart from an
// omitted key.
type Config struct {
	// DataDir overrides the default data directory (~/.mynotion)
	DataDir string `yaml:"data_dir,omitempty"`

	// Theme customizes the visual appearance
	Theme ThemeConfig `yaml:"theme,omitempty"`

	// UX customizes user experience settings
	UX UXConfig `yaml:"ux,omitempty"`

	// Sync configures git synchronization of the data directory
	Sync SyncConfig `yaml:"sync,omitempty"`

	// Verbose enables diagnostic logging to stderr
	Verbose bool `yaml:"verbose,omitempty"`
}

// ThemeConfig defines color settings (hex, e.g. "#8B5CF6").
type ThemeConfig struct {
	Primary string `yaml:"primary,omitempty"`
	Accent  string `yaml:"accent,omitempty"`
	Muted   string `yaml:"muted,omitempty"`
}

// UXConfig defines user experience settings.
type UXConfig struct {
	// ConfirmDeletions shows a confirmation before deleting items
	ConfirmDeletions *bool `yaml:"confirm_deletions,omitempty"` // default: true

	// NarrowLayoutThreshold is the terminal width below which panes stack
	NarrowLayoutThreshold int `yaml:"narrow_layout_threshold,omitempty"` // default: 80
}

// SyncConfig defines git synchronization settings.
type SyncConfig struct {
	// Enabled turns git sync on
	Enabled bool `yaml:"enabled,omitempty"`

	// AutoCommit commits data files after each change
	AutoCommit *bool `yaml:"auto_commit,omitempty"` // default: true

	// AutoPush pushes after each auto-commit
	AutoPush bool `yaml:"auto_push,omitempty"`

	// CommitMessage is "auto" for generated messages or a fixed string
	CommitMessage string `yaml:"commit_message,omitempty"`
}

// AutoCommitEnabled resolves the optional flag against its default.
func (s SyncConfig) AutoCommitEnabled() bool {
	if s.AutoCommit == nil {
		return true
	}
	return *s.AutoCommit
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		DataDir: defaultDataDir(),
		Theme: ThemeConfig{
			Primary: "#8B5CF6", // Violet
			Accent:  "#06B6D4", // Cyan
			Muted:   "#6B7280", // Gray
		},
		UX: UXConfig{
			NarrowLayoutThreshold: 80,
		},
		Sync: SyncConfig{
			CommitMessage: "auto",
		},
	}
}

// ConfirmDeletions resolves the optional flag against its default.
func (c *Config) ConfirmDeletions() bool {
	if c.UX.ConfirmDeletions == nil {
		return true
	}
	return *c.UX.ConfirmDeletions
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".mynotion"
	}
	return filepath.Join(home, ".mynotion")
}

func configDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "mynotion")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "mynotion")
}

func configPath() string {
	dir := configDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}

// Load reads configuration from disk, merging with defaults. A missing
// config file returns the defaults unchanged.
func Load() (*Config, error) {
	cfg := Default()

	path := configPath()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	var user Config
	if err := yaml.Unmarshal(data, &user); err != nil {
		return nil, err
	}
	cfg.merge(&user)
	return cfg, nil
}

// merge applies set values from other over c.
func (c *Config) merge(other *Config) {
	if other.DataDir != "" {
		c.DataDir = other.DataDir
	}
	if other.Theme.Primary != "" {
		c.Theme.Primary = other.Theme.Primary
	}
	if other.Theme.Accent != "" {
		c.Theme.Accent = other.Theme.Accent
	}
	if other.Theme.Muted != "" {
		c.Theme.Muted = other.Theme.Muted
	}
	if other.UX.ConfirmDeletions != nil {
		c.UX.ConfirmDeletions = other.UX.ConfirmDeletions
	}
	if other.UX.NarrowLayoutThreshold > 0 {
		c.UX.NarrowLayoutThreshold = other.UX.NarrowLayoutThreshold
	}
	if other.Sync.Enabled {
		c.Sync.Enabled = true
	}
	if other.Sync.AutoCommit != nil {
		c.Sync.AutoCommit = other.Sync.AutoCommit
	}
	if other.Sync.AutoPush {
		c.Sync.AutoPush = true
	}
	if other.Sync.CommitMessage != "" {
		c.Sync.CommitMessage = other.Sync.CommitMessage
	}
	if other.Verbose {
		c.Verbose = true
	}
}

// Save writes the configuration to disk.
func (c *Config) Save() error {
	path := configPath()
	if path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return fsutil.WriteFileAtomic(path, data, 0600)
}

// GetDataDir returns the resolved data directory path, expanding a leading
// tilde.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return defaultDataDir()
	}
	if c.DataDir == "~" {
		if home, err := os.UserHomeDir(); err == nil {
			return home
		}
		return c.DataDir
	}
	if strings.HasPrefix(c.DataDir, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(c.DataDir, "~/"))
		}
	}
	return c.DataDir
}
