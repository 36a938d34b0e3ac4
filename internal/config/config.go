// ABOUTME: Fitcoach configuration management with cache backend selection.
// ABOUTME: Handles API endpoint, cached identity, and data directory.

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const defaultAPIBaseURL = "https://fitcoach-api.fly.dev/api"

// Config stores fitcoach tool configuration.
type Config struct {
	// APIBaseURL is the backend root. Defaults to the production API.
	APIBaseURL string `json:"api_base_url,omitempty"`

	// InitData is the raw Telegram init-data string sent with every request.
	// When empty, a synthetic one is built from the cached user below.
	InitData string `json:"init_data,omitempty"`

	// UserID and FirstName identify the cached Telegram user for synthetic
	// init data.
	UserID    int64  `json:"user_id,omitempty"`
	FirstName string `json:"first_name,omitempty"`

	// Cache selects the cache backend: "charm" (default, cloud with local
	// fallback) or "local" (badger only).
	Cache string `json:"cache,omitempty"`

	// DataDir is the root directory for local cache storage.
	// Supports ~ expansion for home directory. Defaults to ~/.local/share/fitcoach.
	DataDir string `json:"data_dir,omitempty"`

	// Offline disables all backend requests when true.
	Offline bool `json:"offline,omitempty"`
}

// GetAPIBaseURL returns the configured backend root.
func (c *Config) GetAPIBaseURL() string {
	if c.APIBaseURL == "" {
		return defaultAPIBaseURL
	}
	return strings.TrimRight(c.APIBaseURL, "/")
}

// GetCache returns the configured cache backend, defaulting to "charm".
func (c *Config) GetCache() string {
	if c.Cache == "" {
		return "charm"
	}
	return c.Cache
}

// GetDataDir returns the configured data directory with ~ expanded,
// defaulting to the standard XDG data directory.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return DataDir()
	}
	return ExpandPath(c.DataDir)
}

// DataDir returns the default XDG data directory for fitcoach.
func DataDir() string {
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		homeDir, _ := os.UserHomeDir()
		dataDir = filepath.Join(homeDir, ".local", "share")
	}
	return filepath.Join(dataDir, "fitcoach")
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// Validate checks backend selection values.
func (c *Config) Validate() error {
	switch c.GetCache() {
	case "charm", "local":
		return nil
	default:
		return fmt.Errorf("unknown cache backend: %q", c.Cache)
	}
}

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "fitcoach", "config.json")
}

// Load reads config from disk.
func Load() (*Config, error) {
	path := GetConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes config to disk.
func (c *Config) Save() error {
	path := GetConfigPath()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
