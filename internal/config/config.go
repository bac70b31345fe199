// Package config holds the benchmark run configuration: YAML file,
// environment overrides, then CLI flags, in that precedence order.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"haltbench/internal/types"
)

// Config is the full benchmark configuration.
type Config struct {
	// Mode selects baseline (single pass) or compare (two passes
	// with an improvement delta).
	Mode string `yaml:"mode"`

	// Provider names the LLM backend to benchmark.
	Provider ProviderConfig `yaml:"provider"`

	// DatasetPath is the root directory of on-disk test items.
	// Empty means builtin items only.
	DatasetPath string `yaml:"dataset_path"`

	// Categories limits the run; empty means all categories.
	Categories []string `yaml:"categories"`

	// NumRuns repeats the benchmark for statistical stability.
	NumRuns int `yaml:"num_runs"`

	// Concurrency bounds parallel provider calls.
	Concurrency int `yaml:"concurrency"`

	// LiteMode caps each category at a handful of items.
	LiteMode bool `yaml:"lite_mode"`

	// DryRun validates the dataset without provider calls.
	DryRun bool `yaml:"dry_run"`

	Output  OutputConfig  `yaml:"output"`
	History HistoryConfig `yaml:"history"`
}

// ProviderConfig configures the LLM backend.
type ProviderConfig struct {
	Name        string  `yaml:"name"`
	APIKey      string  `yaml:"api_key"`
	Model       string  `yaml:"model"`
	BaseURL     string  `yaml:"base_url"`
	Temperature float64 `yaml:"temperature"`
	MaxTokens   int     `yaml:"max_tokens"`
	Timeout     string  `yaml:"timeout"`
}

// OutputConfig controls report rendering.
type OutputConfig struct {
	Format string `yaml:"format"` // console, json, markdown, html
	File   string `yaml:"file"`   // empty writes to stdout
}

// HistoryConfig controls the run-history archive.
type HistoryConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Mode: "baseline",
		Provider: ProviderConfig{
			Name:        "mock",
			Temperature: 0.7,
			MaxTokens:   2048,
			Timeout:     "60s",
		},
		NumRuns:     1,
		Concurrency: 4,
		Output: OutputConfig{
			Format: "console",
		},
		History: HistoryConfig{
			Enabled: true,
			Path:    "haltbench_history.db",
		},
	}
}

// Load reads the YAML file at path over the defaults. A missing file
// is not an error; environment overrides apply either way.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save writes the configuration as YAML, creating parent directories.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	if name := os.Getenv("HALTBENCH_PROVIDER"); name != "" {
		c.Provider.Name = name
	}
	if model := os.Getenv("HALTBENCH_MODEL"); model != "" {
		c.Provider.Model = model
	}
	if path := os.Getenv("HALTBENCH_DATASET"); path != "" {
		c.DatasetPath = path
	}
	if path := os.Getenv("HALTBENCH_HISTORY_DB"); path != "" {
		c.History.Path = path
	}
}

// ProviderTimeout parses the provider timeout string.
func (c *Config) ProviderTimeout() time.Duration {
	d, err := time.ParseDuration(c.Provider.Timeout)
	if err != nil || d <= 0 {
		return 60 * time.Second
	}
	return d
}

// ParsedCategories returns the category filter, nil meaning all.
func (c *Config) ParsedCategories() ([]types.Category, error) {
	return types.ParseCategoryList(strings.Join(c.Categories, ","))
}

// Validate checks the configuration for a runnable combination.
func (c *Config) Validate() error {
	if _, err := types.ParseMode(c.Mode); err != nil {
		return err
	}
	if _, err := types.ParseOutputFormat(c.Output.Format); err != nil {
		return err
	}
	if _, err := c.ParsedCategories(); err != nil {
		return err
	}
	if c.NumRuns < 1 {
		return fmt.Errorf("num_runs must be at least 1, got %d", c.NumRuns)
	}
	if c.Concurrency < 1 {
		return fmt.Errorf("concurrency must be at least 1, got %d", c.Concurrency)
	}
	return nil
}
