package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg == nil {
		t.Fatal("DefaultConfig() returned nil")
	}

	if cfg.Analysis.Window != "1y" {
		t.Errorf("Analysis.Window = %s, want 1y", cfg.Analysis.Window)
	}
	if len(cfg.Analysis.Extensions) != 2 {
		t.Errorf("Analysis.Extensions = %v, want [.py .java]", cfg.Analysis.Extensions)
	}
	if len(cfg.Analysis.MaintainabilityExtensions) != 1 || cfg.Analysis.MaintainabilityExtensions[0] != ".py" {
		t.Errorf("Analysis.MaintainabilityExtensions = %v, want [.py]", cfg.Analysis.MaintainabilityExtensions)
	}
	if cfg.Analysis.Workers != 0 {
		t.Errorf("Analysis.Workers = %d, want 0 (auto)", cfg.Analysis.Workers)
	}
	if cfg.Analysis.MaxFileSize != 1<<20 {
		t.Errorf("Analysis.MaxFileSize = %d, want %d", cfg.Analysis.MaxFileSize, 1<<20)
	}

	if cfg.Extract.Window != "10y" {
		t.Errorf("Extract.Window = %s, want 10y", cfg.Extract.Window)
	}

	if len(cfg.Exclude.Dirs) == 0 {
		t.Error("Exclude.Dirs should have default values")
	}

	if !cfg.Cache.Enabled {
		t.Error("Cache.Enabled should be true by default")
	}
	if cfg.Cache.TTL != 24 {
		t.Errorf("Cache.TTL = %d, want 24", cfg.Cache.TTL)
	}

	if cfg.Output.Format != "text" {
		t.Errorf("Output.Format = %s, want text", cfg.Output.Format)
	}
	if !cfg.Output.Color {
		t.Error("Output.Color should be true by default")
	}
}

func TestLoadTOML(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "strata.toml")

	content := `
[analysis]
window = "6m"
extensions = [".py"]
workers = 4

[extract]
window = "2y"

[exclude]
dirs = ["vendor", "custom_exclude"]
patterns = ["*_generated.py"]

[cache]
enabled = false

[output]
format = "json"
`

	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Analysis.Window != "6m" {
		t.Errorf("Analysis.Window = %s, want 6m", cfg.Analysis.Window)
	}
	if len(cfg.Analysis.Extensions) != 1 || cfg.Analysis.Extensions[0] != ".py" {
		t.Errorf("Analysis.Extensions = %v, want [.py]", cfg.Analysis.Extensions)
	}
	if cfg.Analysis.Workers != 4 {
		t.Errorf("Analysis.Workers = %d, want 4", cfg.Analysis.Workers)
	}
	if cfg.Extract.Window != "2y" {
		t.Errorf("Extract.Window = %s, want 2y", cfg.Extract.Window)
	}
	if cfg.Cache.Enabled {
		t.Error("Cache.Enabled should be false")
	}
	if cfg.Output.Format != "json" {
		t.Errorf("Output.Format = %s, want json", cfg.Output.Format)
	}
}

func TestLoadYAML(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "strata.yaml")

	content := `
analysis:
  window: 3m
  workers: 2

output:
  format: markdown
`

	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Analysis.Window != "3m" {
		t.Errorf("Analysis.Window = %s, want 3m", cfg.Analysis.Window)
	}
	if cfg.Analysis.Workers != 2 {
		t.Errorf("Analysis.Workers = %d, want 2", cfg.Analysis.Workers)
	}
	if cfg.Output.Format != "markdown" {
		t.Errorf("Output.Format = %s, want markdown", cfg.Output.Format)
	}
}

func TestLoadJSON(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "strata.json")

	content := `{
  "analysis": {
    "window": "2w",
    "max_file_size": 500000
  },
  "output": {
    "format": "json"
  }
}`

	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Analysis.Window != "2w" {
		t.Errorf("Analysis.Window = %s, want 2w", cfg.Analysis.Window)
	}
	if cfg.Analysis.MaxFileSize != 500000 {
		t.Errorf("Analysis.MaxFileSize = %d, want 500000", cfg.Analysis.MaxFileSize)
	}
}

func TestLoadNonExistentFile(t *testing.T) {
	if _, err := Load("/nonexistent/path/strata.toml"); err == nil {
		t.Error("Load() should return error for non-existent file")
	}
}

func TestLoadInvalidFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "strata.toml")

	content := `[analysis
invalid toml`

	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	if _, err := Load(configPath); err == nil {
		t.Error("Load() should return error for invalid config")
	}
}

func TestLoadOrDefault(t *testing.T) {
	tmpDir := t.TempDir()
	oldWd, _ := os.Getwd()
	defer os.Chdir(oldWd)

	if err := os.Chdir(tmpDir); err != nil {
		t.Fatalf("Failed to change directory: %v", err)
	}

	cfg := LoadOrDefault()
	if cfg == nil {
		t.Fatal("LoadOrDefault() returned nil")
	}
	if cfg.Analysis.Window != "1y" {
		t.Errorf("LoadOrDefault() returned non-default window: %s", cfg.Analysis.Window)
	}
}

func TestLoadOrDefaultWithConfigFile(t *testing.T) {
	tmpDir := t.TempDir()
	oldWd, _ := os.Getwd()
	defer os.Chdir(oldWd)

	content := `
[analysis]
window = "9y"
`
	if err := os.WriteFile(filepath.Join(tmpDir, "strata.toml"), []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	if err := os.Chdir(tmpDir); err != nil {
		t.Fatalf("Failed to change directory: %v", err)
	}

	cfg := LoadOrDefault()
	if cfg.Analysis.Window != "9y" {
		t.Errorf("LoadOrDefault() should load from file, got window=%s", cfg.Analysis.Window)
	}
}

func TestShouldExclude(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		path string
		want bool
	}{
		{"vendor/pkg/file.py", true},
		{"node_modules/pkg/file.js", true},
		{".git/objects/file", true},
		{"app.min.js", true},
		{"go.sum", true},
		{"package.lock", true},

		{"main.py", false},
		{"pkg/util/helper.py", false},
		{"app.js", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := cfg.ShouldExclude(tt.path); got != tt.want {
				t.Errorf("ShouldExclude(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestShouldExcludeCustomPatterns(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Exclude.Patterns = append(cfg.Exclude.Patterns, "*_generated.py", "*.pb.go")
	cfg.Exclude.Dirs = append(cfg.Exclude.Dirs, "custom_exclude")

	tests := []struct {
		path string
		want bool
	}{
		{"model_generated.py", true},
		{"service.pb.go", true},
		{"custom_exclude/file.py", true},
		{"main.py", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := cfg.ShouldExclude(tt.path); got != tt.want {
				t.Errorf("ShouldExclude(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestShouldExcludePathsWithSeparators(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		path string
		want bool
	}{
		{filepath.Join("src", "vendor", "pkg", "file.py"), true},
		{filepath.Join("vendor", "file.py"), true},
		{filepath.Join("src", "main.py"), false},
		{filepath.Join("pkg", "vendor_utils.py"), false}, // "vendor" in name, not directory
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := cfg.ShouldExclude(tt.path); got != tt.want {
				t.Errorf("ShouldExclude(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestCacheDir(t *testing.T) {
	cfg := DefaultConfig()

	if got := cfg.CacheDir("/home/u/.cache/strata"); got != "/home/u/.cache/strata" {
		t.Errorf("CacheDir() = %s, want fallback for empty config", got)
	}

	cfg.Cache.Dir = "/custom/cache"
	if got := cfg.CacheDir("/home/u/.cache/strata"); got != "/custom/cache" {
		t.Errorf("CacheDir() = %s, want configured dir", got)
	}
}

func TestParseWindow(t *testing.T) {
	tests := []struct {
		input   string
		want    time.Duration
		wantErr bool
	}{
		{"1y", 365 * 24 * time.Hour, false},
		{"2y", 2 * 365 * 24 * time.Hour, false},
		{"6m", 6 * 30 * 24 * time.Hour, false},
		{"3m", 3 * 30 * 24 * time.Hour, false},
		{"4w", 4 * 7 * 24 * time.Hour, false},
		{"30d", 30 * 24 * time.Hour, false},
		{"invalid", 0, true},
		{"1x", 0, true},
		{"1x2y", 0, true},
		{"1.5y", 0, true},
		{"0d", 0, true},
		{"-1y", 0, true},
		{"m", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseWindow(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseWindow(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
				return
			}
			if got != tt.want {
				t.Errorf("ParseWindow(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
