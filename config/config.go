// Package config provides configuration loading and management for cnlgraph.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the complete cnlgraph configuration
type Config struct {
	Graph  GraphConfig  `yaml:"graph"`
	NATS   NATSConfig   `yaml:"nats"`
	Export ExportConfig `yaml:"export"`
	Watch  WatchConfig  `yaml:"watch"`
}

// GraphConfig configures the knowledge graph settings
type GraphConfig struct {
	// ID names the graph; it becomes part of exported entity IRIs
	ID string `yaml:"id"`
	// Strict enables strict schema mode (terms must come from a schema file)
	Strict bool `yaml:"strict"`
	// SchemaFile is the path to the YAML schema definition used in strict mode
	SchemaFile string `yaml:"schema_file"`
}

// NATSConfig configures the NATS connection
type NATSConfig struct {
	// URL is the NATS server URL (empty = in-memory storage only)
	URL string `yaml:"url"`
}

// ExportConfig configures RDF export defaults
type ExportConfig struct {
	// Format is the default serialization (turtle, ntriples, jsonld)
	Format string `yaml:"format"`
	// Profile is the default ontology alignment profile (minimal, bfo, cco)
	Profile string `yaml:"profile"`
}

// WatchConfig configures file watching behavior
type WatchConfig struct {
	// DebounceDelay is how long to wait after the last write before recompiling
	DebounceDelay time.Duration `yaml:"debounce_delay"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Graph: GraphConfig{
			ID:     "default",
			Strict: false,
		},
		NATS: NATSConfig{
			URL: "",
		},
		Export: ExportConfig{
			Format:  "turtle",
			Profile: "minimal",
		},
		Watch: WatchConfig{
			DebounceDelay: 500 * time.Millisecond,
		},
	}
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if c.Graph.ID == "" {
		return fmt.Errorf("graph.id is required")
	}
	if c.Graph.Strict && c.Graph.SchemaFile == "" {
		return fmt.Errorf("graph.schema_file is required when graph.strict is true")
	}
	switch c.Export.Format {
	case "turtle", "ntriples", "jsonld":
	default:
		return fmt.Errorf("export.format must be turtle, ntriples, or jsonld")
	}
	switch c.Export.Profile {
	case "minimal", "bfo", "cco":
	default:
		return fmt.Errorf("export.profile must be minimal, bfo, or cco")
	}
	if c.Watch.DebounceDelay < 0 {
		return fmt.Errorf("watch.debounce_delay must not be negative")
	}
	return nil
}

// LoadFromFile loads configuration from a YAML file
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveToFile saves configuration to a YAML file
func (c *Config) SaveToFile(path string) error {
	// Ensure parent directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Merge merges another config into this one (other takes precedence for non-zero values)
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}

	// Graph
	if other.Graph.ID != "" {
		c.Graph.ID = other.Graph.ID
	}
	if other.Graph.Strict {
		c.Graph.Strict = true
	}
	if other.Graph.SchemaFile != "" {
		c.Graph.SchemaFile = other.Graph.SchemaFile
	}

	// NATS
	if other.NATS.URL != "" {
		c.NATS.URL = other.NATS.URL
	}

	// Export
	if other.Export.Format != "" {
		c.Export.Format = other.Export.Format
	}
	if other.Export.Profile != "" {
		c.Export.Profile = other.Export.Profile
	}

	// Watch
	if other.Watch.DebounceDelay != 0 {
		c.Watch.DebounceDelay = other.Watch.DebounceDelay
	}
}
