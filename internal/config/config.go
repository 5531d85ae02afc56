package config

import (
	"bytes"
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/indaco/rustws/internal/core"
)

// ConfigFileName is the optional project-local configuration file.
const ConfigFileName = ".rustws.yaml"

// DiscoveryConfig tunes the recursive project scan.
type DiscoveryConfig struct {
	// MaxDepth limits how deep the scan descends below the root.
	MaxDepth *int `yaml:"max-depth,omitempty"`

	// Exclude holds additional glob patterns for directories to skip.
	Exclude []string `yaml:"exclude,omitempty"`
}

// Config is the main configuration structure for rustws.
type Config struct {
	Discovery *DiscoveryConfig `yaml:"discovery,omitempty"`

	// NoInteractive disables TUI prompts even on a terminal.
	NoInteractive bool `yaml:"no-interactive,omitempty"`
}

// GetDiscoveryConfig returns the discovery section, falling back to defaults.
func (c *Config) GetDiscoveryConfig() *DiscoveryConfig {
	if c == nil || c.Discovery == nil {
		return &DiscoveryConfig{}
	}
	return c.Discovery
}

// GetExcludePatterns returns the configured exclude patterns, if any.
func (c *Config) GetExcludePatterns() []string {
	if c == nil || c.Discovery == nil {
		return nil
	}
	return c.Discovery.Exclude
}

// GetMaxDepth returns the configured scan depth, or the core default.
func (c *Config) GetMaxDepth() int {
	if c != nil && c.Discovery != nil && c.Discovery.MaxDepth != nil {
		return *c.Discovery.MaxDepth
	}
	return core.MaxScanDepth
}

// LoadConfigFn allows tests to substitute configuration loading.
var LoadConfigFn = loadConfig

func loadConfig() (*Config, error) {
	data, err := os.ReadFile(ConfigFileName)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil // fallback to defaults
		}
		return nil, err
	}

	var cfg Config
	decoder := yaml.NewDecoder(bytes.NewReader(data), yaml.Strict())
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", ConfigFileName, err)
	}

	return &cfg, nil
}
