package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds all tagmail configuration.
type Config struct {
	Sync     SyncConfig     `toml:"sync"`
	UI       UIConfig       `toml:"ui"`
	Storage  StorageConfig  `toml:"storage"`
	Accounts AccountsConfig `toml:"accounts"`
	Gmail    GmailConfig    `toml:"gmail"`
}

// GmailConfig holds Gmail OAuth credentials.
// Users can override via config file or env vars; nothing is embedded.
type GmailConfig struct {
	ClientID     string `toml:"client_id"`
	ClientSecret string `toml:"client_secret"`
}

// SyncConfig holds mail synchronization settings.
type SyncConfig struct {
	Interval     string `toml:"interval"`
	InitialCount int    `toml:"initial_count"`
}

// UIConfig holds display settings.
type UIConfig struct {
	DefaultMailbox string `toml:"default_mailbox"`
	PageSize       int    `toml:"page_size"`
}

// StorageConfig holds quota warning settings.
type StorageConfig struct {
	WarningThresholdPercent int `toml:"warning_threshold_percent"`
}

// AccountsConfig holds account selection settings.
type AccountsConfig struct {
	Default string `toml:"default"`
}

func defaults() Config {
	return Config{
		Sync: SyncConfig{
			Interval:     "5m",
			InitialCount: 500,
		},
		UI: UIConfig{
			DefaultMailbox: "inbox",
			PageSize:       50,
		},
		Storage: StorageConfig{
			WarningThresholdPercent: 90,
		},
	}
}

// Load reads config from path. If path is empty or the file does not exist,
// it returns defaults.
func Load(path string) (*Config, error) {
	cfg := defaults()
	if path == "" {
		return &cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}

// ConfigDir returns the tagmail config directory path.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "tagmail")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "tagmail")
}

// DataDir returns the tagmail data directory path.
func DataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "tagmail")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "tagmail")
}
