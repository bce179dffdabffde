// Package config loads craprs configuration from TOML, YAML, or JSON files.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config holds all configuration options for craprs.
type Config struct {
	Coverage CoverageConfig `koanf:"coverage"`
	Source   SourceConfig   `koanf:"source"`
	Exclude  ExcludeConfig  `koanf:"exclude"`
	Cache    CacheConfig    `koanf:"cache"`
	Output   OutputConfig   `koanf:"output"`
}

// CoverageConfig controls the coverage generation step.
type CoverageConfig struct {
	Tool string `koanf:"tool"` // tarpaulin or llvm-cov
	Skip bool   `koanf:"skip"` // reuse an existing lcov.info
}

// SourceConfig controls where sources are scanned.
type SourceConfig struct {
	Dir string `koanf:"dir"` // relative to the project dir
}

// ExcludeConfig defines file exclusion patterns (gitignore syntax).
type ExcludeConfig struct {
	Patterns  []string `koanf:"patterns"`
	Gitignore bool     `koanf:"gitignore"`
}

// CacheConfig controls the extraction result cache.
type CacheConfig struct {
	Enabled bool   `koanf:"enabled"`
	Dir     string `koanf:"dir"`
	TTL     int    `koanf:"ttl"` // TTL in hours
}

// OutputConfig controls report formatting.
type OutputConfig struct {
	Format string `koanf:"format"` // text, json, markdown
	Color  bool   `koanf:"color"`
}

// Default returns a config with sensible defaults.
func Default() *Config {
	return &Config{
		Coverage: CoverageConfig{
			Tool: "tarpaulin",
		},
		Source: SourceConfig{
			Dir: "src",
		},
		Exclude: ExcludeConfig{
			Patterns:  []string{"target"},
			Gitignore: true,
		},
		Cache: CacheConfig{
			Enabled: true,
			Dir:     ".craprs/cache",
			TTL:     24,
		},
		Output: OutputConfig{
			Format: "text",
			Color:  true,
		},
	}
}

// Load loads configuration from a file, layered over the defaults.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := Default()

	var parser koanf.Parser
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		parser = toml.Parser()
	}

	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadOrDefault tries standard config locations, falling back to defaults.
func LoadOrDefault() *Config {
	names := []string{
		"craprs.toml",
		"craprs.yaml",
		"craprs.yml",
		"craprs.json",
		".craprs.toml",
		".craprs.yaml",
		".craprs.yml",
		".craprs.json",
	}

	for _, name := range names {
		if _, err := os.Stat(name); err == nil {
			if cfg, err := Load(name); err == nil {
				return cfg
			}
		}
	}

	return Default()
}
