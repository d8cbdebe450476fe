// Package config loads and merges the Trellis client configuration.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the full Trellis configuration
type Config struct {
	API     APIConfig     `json:"api"`
	Board   BoardConfig   `json:"board"`
	Network NetworkConfig `json:"network"`
}

// APIConfig contains task service settings
type APIConfig struct {
	BaseURL     string `json:"baseUrl"`
	Token       string `json:"token"`
	WorkspaceID int64  `json:"workspaceId"`
	TimeoutMs   int    `json:"timeoutMs"`
	PageSize    int    `json:"pageSize"`
}

// BoardConfig contains board view settings
type BoardConfig struct {
	RefreshSeconds  int  `json:"refreshSeconds"`
	ExpandSubtasks  bool `json:"expandSubtasks"`
	ShowCompletedAt bool `json:"showCompletedAt"`
}

// NetworkConfig contains connectivity check settings
type NetworkConfig struct {
	CheckInterval int `json:"checkInterval"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:   "http://localhost:8080",
			TimeoutMs: 10000,
			PageSize:  100,
		},
		Board: BoardConfig{
			RefreshSeconds: 30,
			ExpandSubtasks: true,
		},
		Network: NetworkConfig{
			CheckInterval: 60,
		},
	}
}

// LoadConfig loads configuration with priority:
// 1. CLI flags (applied by the command layer after loading)
// 2. .trellis.json in the given directory
// 3. .trellis.json in the home directory
// 4. Defaults
func LoadConfig(dir string) (*Config, error) {
	paths := []string{filepath.Join(dir, ".trellis.json")}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".trellis.json"))
	}

	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		var cfg Config
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
		return MergeWithDefaults(&cfg), nil
	}

	return DefaultConfig(), nil
}

// SaveConfig saves configuration to the specified path
func SaveConfig(cfg *Config, path string) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// MergeWithDefaults fills in missing values with defaults
func MergeWithDefaults(cfg *Config) *Config {
	defaults := DefaultConfig()

	if cfg.API.BaseURL == "" {
		cfg.API.BaseURL = defaults.API.BaseURL
	}
	if cfg.API.TimeoutMs == 0 {
		cfg.API.TimeoutMs = defaults.API.TimeoutMs
	}
	if cfg.API.PageSize == 0 {
		cfg.API.PageSize = defaults.API.PageSize
	}

	if cfg.Board.RefreshSeconds == 0 {
		cfg.Board.RefreshSeconds = defaults.Board.RefreshSeconds
	}

	if cfg.Network.CheckInterval == 0 {
		cfg.Network.CheckInterval = defaults.Network.CheckInterval
	}

	return cfg
}

// Load is a convenience function that loads config from current directory
func Load() (*Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get current directory: %w", err)
	}
	return LoadConfig(cwd)
}
