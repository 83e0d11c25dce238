// ABOUTME: Fueltrack configuration management with backend selection
// ABOUTME: Handles settings, remote credentials, and storage backend factory

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/harper/fueltrack/internal/storage"
)

// Config stores fueltrack configuration.
type Config struct {
	// Backend selects the storage backend: "sqlite" (default) or "badger".
	Backend string `json:"backend,omitempty"`

	// DataDir is the root directory for data storage.
	// SQLite puts fueltrack.db here. Badger puts its key-value files here.
	// Supports ~ expansion for home directory. Defaults to ~/.local/share/fueltrack.
	DataDir string `json:"data_dir,omitempty"`

	// Server is the base URL of the remote sync endpoint. Empty disables sync.
	Server string `json:"server,omitempty"`

	// APIKey authenticates requests against the remote endpoint.
	APIKey string `json:"api_key,omitempty"`

	// UserID identifies the signed-in account. Empty means signed out.
	UserID string `json:"user_id,omitempty"`
}

// GetBackend returns the configured backend, defaulting to "sqlite".
func (c *Config) GetBackend() string {
	if c.Backend == "" {
		return "sqlite"
	}
	return c.Backend
}

// GetDataDir returns the configured data directory with ~ expanded,
// defaulting to the standard XDG data directory.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return defaultDataDir()
	}
	return ExpandPath(c.DataDir)
}

// defaultDataDir returns the default XDG data directory for fueltrack.
func defaultDataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "fueltrack")
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

// OpenStorage creates a StateRepository implementation based on the configured backend.
func (c *Config) OpenStorage() (storage.StateRepository, error) {
	backend := c.GetBackend()
	dataDir := c.GetDataDir()

	switch backend {
	case "sqlite":
		dbPath := filepath.Join(dataDir, "fueltrack.db")
		return storage.NewSQLiteStore(dbPath)
	case "badger":
		return storage.NewBadgerStore(filepath.Join(dataDir, "badger"))
	default:
		return nil, fmt.Errorf("unknown backend: %q", backend)
	}
}

// CurrentUserID reports the signed-in account, if any.
// It satisfies the auth dependency of the sync layer.
func (c *Config) CurrentUserID() (string, bool) {
	if c.UserID == "" {
		return "", false
	}
	return c.UserID, true
}

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "fueltrack", "config.json")
}

// Load reads config from disk and applies environment variable overrides.
func Load() (*Config, error) {
	path := GetConfigPath()
	cfg := &Config{}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// First run, defaults apply.
	default:
		return nil, err
	}

	applyEnvOverrides(cfg)
	return cfg, nil
}

// applyEnvOverrides lets environment variables take precedence over the file.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("FUELTRACK_BACKEND"); v != "" {
		cfg.Backend = v
	}
	if v := os.Getenv("FUELTRACK_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv("FUELTRACK_SERVER"); v != "" {
		cfg.Server = v
	}
	if v := os.Getenv("FUELTRACK_API_KEY"); v != "" {
		cfg.APIKey = v
	}
	if v := os.Getenv("FUELTRACK_USER_ID"); v != "" {
		cfg.UserID = v
	}
}

// Save writes config to disk.
func (c *Config) Save() error {
	path := GetConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return err
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
