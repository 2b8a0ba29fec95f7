// Package config provides configuration management for ccnotify.
package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds user-tunable settings from config.yaml.
type Config struct {
	// Language overrides system language detection ("en", "zh-CN").
	Language string `yaml:"language"`
	// Editor is the binary launched by the notification click action.
	// Empty means autodetect ("code" on PATH, then common install paths).
	Editor string `yaml:"editor"`
	// Debug mirrors log output to stderr at debug level.
	Debug bool `yaml:"debug"`
	// NotifyTimeoutMS bounds each external notifier invocation.
	NotifyTimeoutMS int `yaml:"notify_timeout_ms"`
}

// DefaultNotifyTimeoutMS bounds external notifier commands so a hung
// notifier cannot stall the hook invocation.
const DefaultNotifyTimeoutMS = 5000

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		NotifyTimeoutMS: DefaultNotifyTimeoutMS,
	}
}

// DataDir returns the ccnotify data directory (~/.claude/ccnotify).
func DataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".claude", "ccnotify")
}

// DBPath returns the SQLite database path.
func DBPath() string {
	return filepath.Join(DataDir(), "ccnotify.db")
}

// LogPath returns the log file path.
func LogPath() string {
	return filepath.Join(DataDir(), "ccnotify.log")
}

// SettingsPath returns the ccnotify config file path.
func SettingsPath() string {
	return filepath.Join(DataDir(), "config.yaml")
}

// ClaudeSettingsPath returns the host app settings file the installer
// merges hook entries into (~/.claude/settings.json).
func ClaudeSettingsPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".claude", "settings.json")
}

// EnsureDataDir creates the data directory if missing.
func EnsureDataDir() error {
	return os.MkdirAll(DataDir(), 0o755)
}

// EnsureAll prepares everything needed before the tracker runs.
// Safe to call on every process start.
func EnsureAll() error {
	return EnsureDataDir()
}

// Load reads config.yaml. A missing file returns defaults, not an error;
// the tracker must run unconfigured.
func Load() (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(SettingsPath())
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return Default(), err
	}
	if cfg.NotifyTimeoutMS <= 0 {
		cfg.NotifyTimeoutMS = DefaultNotifyTimeoutMS
	}
	return cfg, nil
}
