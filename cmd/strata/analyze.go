package main

import (
	"fmt"

	"github.com/panbanda/strata/internal/progress"
	"github.com/panbanda/strata/pkg/analyzer/history"
	"github.com/panbanda/strata/pkg/export"
	"github.com/panbanda/strata/pkg/plot"
	"github.com/spf13/cobra"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [path|url]",
	Short: "Build the longitudinal metrics dataset for a repository",
	Long: `Walks the repository's commit history inside a trailing window and emits
one record per commit: files changed, line churn, summed cyclomatic
complexity, maintainability index, cohesion and coupling proxies, change
entropy, the author's running commit count, and the mean number of distinct
authors per file. Records are ordered by commit date ascending.

Examples:
  strata analyze                          # current directory, last year
  strata analyze --window 6m ~/src/app    # trailing six months
  strata analyze rails/rails --csv out/   # GitHub shorthand, CSV export
  strata analyze . --plot metrics.html    # render per-metric line charts`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringP("window", "w", "", "Trailing history window (e.g. 30d, 2w, 6m, 1y)")
	analyzeCmd.Flags().String("ref", "", "Branch, tag, or SHA to analyze (remote repositories)")
	analyzeCmd.Flags().Int("workers", 0, "Measurement worker count (0 = CPU count)")
	analyzeCmd.Flags().String("csv", "", "Write the dataset as CSV to a file or directory")
	analyzeCmd.Flags().String("parquet", "", "Write the dataset as Parquet to a file or directory")
	analyzeCmd.Flags().String("xlsx", "", "Write the dataset as XLSX to a file or directory")
	analyzeCmd.Flags().String("plot", "", "Render per-metric line charts to an HTML file or directory")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	windowFlag, _ := cmd.Flags().GetString("window")
	window, err := getWindow(windowFlag, cfg.Analysis.Window)
	if err != nil {
		return err
	}

	ref, _ := cmd.Flags().GetString("ref")
	target, err := resolveRepo(cmd.Context(), singlePathArg(args), ref)
	if err != nil {
		return err
	}
	defer target.Cleanup()

	workers, _ := cmd.Flags().GetInt("workers")
	if workers == 0 {
		workers = cfg.Analysis.Workers
	}

	spinner := progress.NewSpinner("Analyzing commits")
	a := history.New(
		history.WithWindow(window),
		history.WithExtensions(cfg.Analysis.Extensions),
		history.WithExcludeFunc(cfg.ShouldExclude),
		history.WithExtractor(newExtractor(cfg)),
		history.WithWorkers(workers),
		history.WithMaxFileSize(cfg.Analysis.MaxFileSize),
		history.WithSpinner(spinner),
	)
	defer a.Close()

	ds, err := a.Analyze(cmd.Context(), target.Path)
	if err != nil {
		spinner.FinishError(err)
		return fmt.Errorf("failed to analyze history: %w", err)
	}
	spinner.FinishSuccess()

	if err := writeExports(cmd, ds); err != nil {
		return err
	}

	formatter, err := newFormatter(cfg)
	if err != nil {
		return err
	}
	defer formatter.Close()

	return formatter.Output(ds)
}

// writeExports writes every export destination named on the command line.
func writeExports(cmd *cobra.Command, ds *history.Dataset) error {
	exports := []struct {
		flag  string
		write func(*history.Dataset, string) (string, error)
	}{
		{"csv", export.WriteCSV},
		{"parquet", export.WriteParquet},
		{"xlsx", export.WriteXLSX},
		{"plot", plot.WriteHTML},
	}
	for _, e := range exports {
		dest, _ := cmd.Flags().GetString(e.flag)
		if dest == "" {
			continue
		}
		path, err := e.write(ds, dest)
		if err != nil {
			return err
		}
		if verbose {
			fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s\n", path)
		}
	}
	return nil
}
