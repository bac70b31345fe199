package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"haltbench/internal/types"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Provider.Name != "mock" || cfg.Mode != "baseline" {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	payload := `
mode: compare
provider:
  name: openai
  model: gpt-4o
  timeout: 90s
categories: [MTC, FCT]
num_runs: 3
lite_mode: true
output:
  format: json
`
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Mode != "compare" {
		t.Errorf("mode = %q", cfg.Mode)
	}
	if cfg.Provider.Name != "openai" || cfg.Provider.Model != "gpt-4o" {
		t.Errorf("provider = %+v", cfg.Provider)
	}
	if cfg.ProviderTimeout() != 90*time.Second {
		t.Errorf("timeout = %v", cfg.ProviderTimeout())
	}
	if cfg.NumRuns != 3 || !cfg.LiteMode {
		t.Errorf("run options = %+v", cfg)
	}
	// Unset fields keep their defaults.
	if cfg.Concurrency != 4 {
		t.Errorf("concurrency = %d, want default 4", cfg.Concurrency)
	}

	cats, err := cfg.ParsedCategories()
	if err != nil {
		t.Fatal(err)
	}
	want := []types.Category{types.CategoryMTC, types.CategoryFCT}
	if len(cats) != 2 || cats[0] != want[0] || cats[1] != want[1] {
		t.Errorf("categories = %v, want %v", cats, want)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("HALTBENCH_PROVIDER", "deepseek")
	t.Setenv("HALTBENCH_DATASET", "/data/items")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Provider.Name != "deepseek" {
		t.Errorf("provider = %q, want deepseek", cfg.Provider.Name)
	}
	if cfg.DatasetPath != "/data/items" {
		t.Errorf("dataset path = %q", cfg.DatasetPath)
	}
}

func TestValidateRejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad mode", func(c *Config) { c.Mode = "turbo" }},
		{"bad format", func(c *Config) { c.Output.Format = "pdf" }},
		{"bad category", func(c *Config) { c.Categories = []string{"NOPE"} }},
		{"zero runs", func(c *Config) { c.NumRuns = 0 }},
		{"zero concurrency", func(c *Config) { c.Concurrency = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.yaml")

	cfg := Default()
	cfg.Provider.Name = "anthropic"
	if err := cfg.Save(path); err != nil {
		t.Fatal(err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Provider.Name != "anthropic" {
		t.Errorf("round trip lost provider: %q", loaded.Provider.Name)
	}
}
