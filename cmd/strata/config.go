package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/panbanda/strata/pkg/config"
	"github.com/pelletier/go-toml"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration management commands",
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a configuration file",
	Long: `Validates a strata configuration file for syntax errors.

Examples:
  strata config validate                   # Validates default config locations
  strata config validate -c strata.toml    # Validates specific file`,
	RunE: runConfigValidate,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Long: `Shows the merged configuration from defaults and config file.

Examples:
  strata config show                 # Show effective config
  strata config show -c strata.toml  # Show config from specific file`,
	RunE: runConfigShow,
}

func init() {
	configCmd.AddCommand(configValidateCmd)
	configCmd.AddCommand(configShowCmd)
	rootCmd.AddCommand(configCmd)
}

// findConfig returns the config path that LoadOrDefault would pick up, or
// empty when only defaults apply.
func findConfig() string {
	if cfgFile != "" {
		return cfgFile
	}
	names := []string{
		"strata.toml", "strata.yaml", "strata.yml", "strata.json",
		".strata.toml", ".strata.yaml", ".strata.yml", ".strata.json",
	}
	for _, dir := range []string{".", ".strata"} {
		for _, name := range names {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				return path
			}
		}
	}
	return ""
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	path := findConfig()
	if path == "" {
		color.Yellow("No config file found. Default configuration is valid.")
		return nil
	}

	if _, err := config.Load(path); err != nil {
		color.Red("Configuration validation failed:")
		fmt.Printf("  - %s\n", err)
		return err
	}

	color.Green("Configuration valid: %s", path)
	return nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	path := findConfig()

	var cfg *config.Config
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return err
		}
		cfg = loaded
		fmt.Printf("# Configuration from: %s\n\n", path)
	} else {
		cfg = config.DefaultConfig()
		fmt.Println("# Default configuration (no config file found)")
	}

	content, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	fmt.Print(string(content))

	return nil
}
