package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config holds all configuration options for strata.
type Config struct {
	// History analysis settings
	Analysis AnalysisConfig `koanf:"analysis"`

	// Commit log extraction settings
	Extract ExtractConfig `koanf:"extract"`

	// File exclusion patterns
	Exclude ExcludeConfig `koanf:"exclude"`

	// Cache settings
	Cache CacheConfig `koanf:"cache"`

	// Output settings
	Output OutputConfig `koanf:"output"`
}

// AnalysisConfig controls the history walk and metric extraction.
type AnalysisConfig struct {
	// Window bounds the walk: commits older than now minus this window
	// are skipped. Uses duration strings like "30d", "2w", "6m", "1y".
	Window string `koanf:"window"`

	// Extensions lists the file extensions whose content is measured.
	Extensions []string `koanf:"extensions"`

	// MaintainabilityExtensions lists the extensions that receive a
	// maintainability index on top of the other metrics.
	MaintainabilityExtensions []string `koanf:"maintainability_extensions"`

	// Workers caps metric-extraction concurrency. Zero sizes the pool
	// from the CPU count.
	Workers int `koanf:"workers"`

	// MaxFileSize skips blobs larger than this many bytes.
	MaxFileSize int64 `koanf:"max_file_size"`
}

// ExtractConfig controls commit log extraction.
type ExtractConfig struct {
	Window string `koanf:"window"`
}

// ExcludeConfig defines file exclusion patterns.
type ExcludeConfig struct {
	Patterns   []string `koanf:"patterns"`
	Extensions []string `koanf:"extensions"`
	Dirs       []string `koanf:"dirs"`
}

// CacheConfig controls caching behavior.
type CacheConfig struct {
	Enabled bool   `koanf:"enabled"`
	Dir     string `koanf:"dir"` // empty means the per-user cache directory
	TTL     int    `koanf:"ttl"` // TTL in hours
}

// OutputConfig controls output formatting.
type OutputConfig struct {
	Format  string `koanf:"format"` // text, json, markdown, toon
	Color   bool   `koanf:"color"`
	Verbose bool   `koanf:"verbose"`
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Analysis: AnalysisConfig{
			Window:                    "1y",
			Extensions:                []string{".py", ".java"},
			MaintainabilityExtensions: []string{".py"},
			Workers:                   0,
			MaxFileSize:               1 << 20,
		},
		Extract: ExtractConfig{
			Window: "10y",
		},
		Exclude: ExcludeConfig{
			Patterns: []string{
				"*.min.js",
				"*.min.css",
			},
			Extensions: []string{
				".lock",
				".sum",
			},
			Dirs: []string{
				"vendor",
				"node_modules",
				".git",
				".strata",
				"dist",
				"build",
				"__pycache__",
			},
		},
		Cache: CacheConfig{
			Enabled: true,
			Dir:     "",
			TTL:     24,
		},
		Output: OutputConfig{
			Format:  "text",
			Color:   true,
			Verbose: false,
		},
	}
}

// Load loads configuration from a file.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := DefaultConfig()

	var parser koanf.Parser
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".toml":
		parser = toml.Parser()
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

// LoadOrDefault tries to load config from standard locations or returns defaults.
func LoadOrDefault() *Config {
	configNames := []string{
		"strata.toml",
		"strata.yaml",
		"strata.yml",
		"strata.json",
		".strata.toml",
		".strata.yaml",
		".strata.yml",
		".strata.json",
	}

	searchDirs := []string{".", ".strata"}

	for _, dir := range searchDirs {
		for _, name := range configNames {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				cfg, err := Load(path)
				if err == nil {
					return cfg
				}
			}
		}
	}

	return DefaultConfig()
}

// ShouldExclude checks if a path should be excluded from scanning.
func (c *Config) ShouldExclude(path string) bool {
	for _, dir := range c.Exclude.Dirs {
		if strings.Contains(path, string(filepath.Separator)+dir+string(filepath.Separator)) ||
			strings.HasPrefix(path, dir+string(filepath.Separator)) {
			return true
		}
	}

	ext := filepath.Ext(path)
	for _, excludeExt := range c.Exclude.Extensions {
		if ext == excludeExt {
			return true
		}
	}

	base := filepath.Base(path)
	for _, pattern := range c.Exclude.Patterns {
		if matched, _ := filepath.Match(pattern, base); matched {
			return true
		}
	}

	return false
}

// CacheDir resolves the configured cache directory, empty meaning the
// per-user default.
func (c *Config) CacheDir(defaultDir string) string {
	if c.Cache.Dir != "" {
		return c.Cache.Dir
	}
	return defaultDir
}

// ParseWindow parses a duration string like "30d", "2w", "6m", "1y".
func ParseWindow(s string) (time.Duration, error) {
	if len(s) < 2 {
		return 0, fmt.Errorf("invalid window: %s", s)
	}

	unit := s[len(s)-1]
	value := s[:len(s)-1]

	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid window: %s", s)
	}

	switch unit {
	case 'd':
		return time.Duration(n) * 24 * time.Hour, nil
	case 'w':
		return time.Duration(n) * 7 * 24 * time.Hour, nil
	case 'm':
		return time.Duration(n) * 30 * 24 * time.Hour, nil
	case 'y':
		return time.Duration(n) * 365 * 24 * time.Hour, nil
	default:
		return 0, fmt.Errorf("invalid window unit: %c (use d, w, m, or y)", unit)
	}
}
