// ABOUTME: Pulse configuration management with backend selection.
// ABOUTME: Handles settings, analysis tuning, and storage backend factory function.

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pulsekit/pulse/internal/analysis"
	"github.com/pulsekit/pulse/internal/charm"
	"github.com/pulsekit/pulse/internal/storage"
)

// Config stores pulse tool configuration.
type Config struct {
	// Backend selects the storage backend: "sqlite" (default), "markdown",
	// or "charm" (cloud-synced).
	Backend string `json:"backend,omitempty"`

	// DataDir is the root directory for data storage.
	// SQLite puts pulse.db here. Markdown puts a records/ folder here.
	// Supports ~ expansion for home directory. Defaults to ~/.local/share/pulse.
	DataDir string `json:"data_dir,omitempty"`

	// CorrelationCutoff is the minimum |r| for a correlation to be
	// reported. Defaults to analysis.DefaultCutoff.
	CorrelationCutoff float64 `json:"correlation_cutoff,omitempty"`

	// AnalysisWindowDays bounds how far back analysis looks. 0 means the
	// default of 30 days.
	AnalysisWindowDays int `json:"analysis_window_days,omitempty"`
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
		return storage.DataDir()
	}
	return ExpandPath(c.DataDir)
}

// GetCorrelationCutoff returns the configured cutoff, defaulting to
// analysis.DefaultCutoff.
func (c *Config) GetCorrelationCutoff() float64 {
	if c.CorrelationCutoff == 0 {
		return analysis.DefaultCutoff
	}
	return c.CorrelationCutoff
}

// GetAnalysisWindowDays returns the analysis window, defaulting to 30.
func (c *Config) GetAnalysisWindowDays() int {
	if c.AnalysisWindowDays <= 0 {
		return 30
	}
	return c.AnalysisWindowDays
}

// OpenStorage creates a Repository implementation based on the configured backend.
func (c *Config) OpenStorage() (storage.Repository, error) {
	backend := c.GetBackend()
	dataDir := c.GetDataDir()

	switch backend {
	case "sqlite":
		return storage.Open(filepath.Join(dataDir, "pulse.db"))
	case "markdown":
		return storage.NewMarkdownStore(dataDir)
	case "charm":
		return charm.InitClient()
	default:
		return nil, fmt.Errorf("unknown backend: %q", backend)
	}
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

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "pulse", "config.json")
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
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return &cfg, nil
}

// Save writes config to disk.
func (c *Config) Save() error {
	path := GetConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0600)
}
