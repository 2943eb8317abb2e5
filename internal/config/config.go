// Package config defines the engine configuration, loaded from YAML.
// Every section has a Default constructor; an absent file or section means
// defaults, never an error.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration for the chainlex engine.
type Config struct {
	Registry  RegistryConfig  `yaml:"registry"`
	Inference InferenceConfig `yaml:"inference"`
	Graph     GraphConfig     `yaml:"graph"`
	Watcher   WatcherConfig   `yaml:"watcher"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// RegistryConfig controls how framework definition files are located.
type RegistryConfig struct {
	// Dir is the directory holding framework YAML files.
	Dir string `yaml:"dir"`
	// Frameworks restricts loading to the named framework ids.
	// Empty means load everything found in Dir.
	Frameworks []string `yaml:"frameworks"`
}

// InferenceConfig controls confidence propagation.
type InferenceConfig struct {
	// CombinePolicy selects how multi-premise confidences merge:
	// "min" (default), "product", or "mean".
	CombinePolicy string `yaml:"combine_policy"`
}

// GraphConfig controls knowledge graph construction defaults.
type GraphConfig struct {
	// DefaultStrength is applied to relationship edges that do not declare
	// their own strength.
	DefaultStrength float64 `yaml:"default_strength"`
	// DefaultConfidenceImpact is applied to relationship edges that do not
	// declare their own confidence impact.
	DefaultConfidenceImpact float64 `yaml:"default_confidence_impact"`
	// MaxChainDepth bounds derivation chain search.
	MaxChainDepth int `yaml:"max_chain_depth"`
}

// WatcherConfig controls the definition file watcher.
type WatcherConfig struct {
	Enabled bool `yaml:"enabled"`
	// Debounce is how long to wait after the last write before reloading.
	Debounce time.Duration `yaml:"debounce"`
}

// LoggingConfig controls categorized file logging.
type LoggingConfig struct {
	Enabled    bool            `yaml:"enabled"`
	Dir        string          `yaml:"dir"`
	Level      string          `yaml:"level"`
	Categories map[string]bool `yaml:"categories"`
}

// DefaultConfig returns the full default configuration.
func DefaultConfig() Config {
	return Config{
		Registry:  DefaultRegistryConfig(),
		Inference: DefaultInferenceConfig(),
		Graph:     DefaultGraphConfig(),
		Watcher:   DefaultWatcherConfig(),
		Logging:   DefaultLoggingConfig(),
	}
}

// DefaultRegistryConfig returns registry defaults.
func DefaultRegistryConfig() RegistryConfig {
	return RegistryConfig{
		Dir: "frameworks",
	}
}

// DefaultInferenceConfig returns inference defaults.
func DefaultInferenceConfig() InferenceConfig {
	return InferenceConfig{
		CombinePolicy: "min",
	}
}

// DefaultGraphConfig returns graph construction defaults.
func DefaultGraphConfig() GraphConfig {
	return GraphConfig{
		DefaultStrength:         0.9,
		DefaultConfidenceImpact: 0.95,
		MaxChainDepth:           32,
	}
}

// DefaultWatcherConfig returns watcher defaults.
func DefaultWatcherConfig() WatcherConfig {
	return WatcherConfig{
		Enabled:  false,
		Debounce: 500 * time.Millisecond,
	}
}

// DefaultLoggingConfig returns logging defaults (disabled).
func DefaultLoggingConfig() LoggingConfig {
	return LoggingConfig{
		Enabled: false,
		Dir:     "logs",
		Level:   "info",
	}
}

// Load reads a YAML config file, layering it over defaults.
// A missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks the configuration for values the engine cannot run with.
func (c Config) Validate() error {
	switch c.Inference.CombinePolicy {
	case "min", "product", "mean":
	default:
		return fmt.Errorf("inference.combine_policy: unknown policy %q", c.Inference.CombinePolicy)
	}
	if c.Graph.DefaultStrength < 0 || c.Graph.DefaultStrength > 1 {
		return fmt.Errorf("graph.default_strength: %v out of [0,1]", c.Graph.DefaultStrength)
	}
	if c.Graph.DefaultConfidenceImpact < 0 || c.Graph.DefaultConfidenceImpact > 1 {
		return fmt.Errorf("graph.default_confidence_impact: %v out of [0,1]", c.Graph.DefaultConfidenceImpact)
	}
	if c.Graph.MaxChainDepth < 1 {
		return fmt.Errorf("graph.max_chain_depth: must be >= 1, got %d", c.Graph.MaxChainDepth)
	}
	if c.Watcher.Debounce < 0 {
		return fmt.Errorf("watcher.debounce: must be non-negative")
	}
	return nil
}
