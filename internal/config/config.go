// Package config provides configuration management for icnview.
//
// Config file locations (priority order):
//  1. $ICNVIEW_CONFIG
//  2. ./icnview.yaml
//  3. $XDG_CONFIG_HOME/icnview/config.yaml
//  4. ~/.config/icnview/config.yaml
//  5. /etc/icnview/config.yaml
//
// Environment variables override file values after defaults are applied.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Defaults
const (
	DefaultAddr           = ":8080"
	DefaultBaseURL        = "http://localhost:8181"
	DefaultTopologyID     = "flow:1"
	DefaultFetchTimeout   = 5 * time.Second
	DefaultMonitorPeriod  = 30 * time.Second
	DefaultManagementNode = "openflow:4"
	DefaultLogMaxSize     = 100
	DefaultLogMaxAge      = 28
)

// Load finds and loads the config file, or returns defaults if none found.
// Environment overrides are applied and the result is validated.
func Load() (*Config, string, error) {
	path := FindConfigPath()

	cfg := DefaultConfig()
	if path != "" {
		loaded, _, err := LoadFromPath(path)
		if err != nil {
			return nil, path, err
		}
		cfg = loaded
	}

	if err := cfg.ApplyEnv(); err != nil {
		return nil, path, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, path, err
	}
	return cfg, path, nil
}

// LoadFromPath loads config from a specific path
func LoadFromPath(path string) (*Config, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, path, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, path, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyDefaults()

	return &cfg, path, nil
}

// Save writes config to the specified path
func (c *Config) Save(path string) error {
	if err := EnsureConfigDir(path); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	return os.WriteFile(path, data, 0644)
}

// DefaultConfig returns sensible defaults for a new installation
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// applyDefaults fills in missing values with defaults
func (c *Config) applyDefaults() {
	if c.Server.Addr == "" {
		c.Server.Addr = DefaultAddr
	}
	if c.Source.Type == "" {
		c.Source.Type = SourceRestconf
	}
	if c.Controller.BaseURL == "" && c.Source.Type == SourceRestconf {
		c.Controller.BaseURL = DefaultBaseURL
	}
	if c.Controller.TopologyID == "" {
		c.Controller.TopologyID = DefaultTopologyID
	}
	if c.Controller.FetchTimeout == 0 {
		c.Controller.FetchTimeout = Duration(DefaultFetchTimeout)
	}
	if c.Controller.MonitorPeriod == 0 {
		c.Controller.MonitorPeriod = Duration(DefaultMonitorPeriod)
	}
	if c.Topology.ManagementNode == "" {
		c.Topology.ManagementNode = DefaultManagementNode
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.MaxSize == 0 {
		c.Log.MaxSize = DefaultLogMaxSize
	}
	if c.Log.MaxAge == 0 {
		c.Log.MaxAge = DefaultLogMaxAge
	}
}

// Summary returns a one-line description of where data comes from
func (c *Config) Summary() string {
	switch c.Source.Type {
	case SourceFile:
		return fmt.Sprintf("source=file dir=%s topology=%s", c.Source.Dir, c.Controller.TopologyID)
	default:
		return fmt.Sprintf("source=restconf controller=%s topology=%s", c.Controller.BaseURL, c.Controller.TopologyID)
	}
}
