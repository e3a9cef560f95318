package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Graph.ID != "default" {
		t.Errorf("expected default graph id, got %s", cfg.Graph.ID)
	}
	if cfg.Graph.Strict {
		t.Error("expected open schema mode by default")
	}
	if cfg.Export.Format != "turtle" {
		t.Errorf("expected default export format turtle, got %s", cfg.Export.Format)
	}
	if cfg.Export.Profile != "minimal" {
		t.Errorf("expected default export profile minimal, got %s", cfg.Export.Profile)
	}
	if cfg.Watch.DebounceDelay != 500*time.Millisecond {
		t.Errorf("expected default debounce 500ms, got %s", cfg.Watch.DebounceDelay)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid default config",
			modify:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "missing graph id",
			modify:  func(c *Config) { c.Graph.ID = "" },
			wantErr: true,
		},
		{
			name:    "strict without schema file",
			modify:  func(c *Config) { c.Graph.Strict = true },
			wantErr: true,
		},
		{
			name: "strict with schema file",
			modify: func(c *Config) {
				c.Graph.Strict = true
				c.Graph.SchemaFile = "schema.yaml"
			},
			wantErr: false,
		},
		{
			name:    "unknown export format",
			modify:  func(c *Config) { c.Export.Format = "rdfxml" },
			wantErr: true,
		},
		{
			name:    "unknown export profile",
			modify:  func(c *Config) { c.Export.Profile = "dolce" },
			wantErr: true,
		},
		{
			name:    "negative debounce",
			modify:  func(c *Config) { c.Watch.DebounceDelay = -time.Second },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	content := `
graph:
  id: "chemistry"
  strict: true
  schema_file: "chemistry-schema.yaml"
nats:
  url: "nats://localhost:4222"
export:
  profile: "bfo"
watch:
  debounce_delay: 2s
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := LoadFromFile(configPath)
	if err != nil {
		t.Fatalf("LoadFromFile() error = %v", err)
	}

	if cfg.Graph.ID != "chemistry" {
		t.Errorf("expected graph id chemistry, got %s", cfg.Graph.ID)
	}
	if !cfg.Graph.Strict {
		t.Error("expected strict mode")
	}
	if cfg.NATS.URL != "nats://localhost:4222" {
		t.Errorf("expected NATS URL, got %s", cfg.NATS.URL)
	}
	if cfg.Export.Profile != "bfo" {
		t.Errorf("expected profile bfo, got %s", cfg.Export.Profile)
	}
	// Format not set in file; defaults survive
	if cfg.Export.Format != "turtle" {
		t.Errorf("expected default format turtle, got %s", cfg.Export.Format)
	}
	if cfg.Watch.DebounceDelay != 2*time.Second {
		t.Errorf("expected debounce 2s, got %s", cfg.Watch.DebounceDelay)
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestConfigMerge(t *testing.T) {
	base := DefaultConfig()
	other := &Config{
		Graph: GraphConfig{ID: "physics", Strict: true, SchemaFile: "physics.yaml"},
		NATS:  NATSConfig{URL: "nats://remote:4222"},
	}

	base.Merge(other)

	if base.Graph.ID != "physics" {
		t.Errorf("expected merged graph id physics, got %s", base.Graph.ID)
	}
	if !base.Graph.Strict {
		t.Error("expected strict to carry over")
	}
	if base.NATS.URL != "nats://remote:4222" {
		t.Errorf("expected merged NATS URL, got %s", base.NATS.URL)
	}
	// Zero-value fields in other must not clobber defaults
	if base.Export.Format != "turtle" {
		t.Errorf("expected format to keep default, got %s", base.Export.Format)
	}
	if base.Watch.DebounceDelay != 500*time.Millisecond {
		t.Errorf("expected debounce to keep default, got %s", base.Watch.DebounceDelay)
	}
}

func TestSaveAndReload(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "nested", "config.yaml")

	cfg := DefaultConfig()
	cfg.Graph.ID = "roundtrip"
	if err := cfg.SaveToFile(configPath); err != nil {
		t.Fatalf("SaveToFile() error = %v", err)
	}

	loaded, err := LoadFromFile(configPath)
	if err != nil {
		t.Fatalf("LoadFromFile() error = %v", err)
	}
	if loaded.Graph.ID != "roundtrip" {
		t.Errorf("expected graph id roundtrip, got %s", loaded.Graph.ID)
	}
}
