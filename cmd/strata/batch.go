package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/panbanda/strata/internal/progress"
	"github.com/panbanda/strata/pkg/analyzer/history"
	"github.com/panbanda/strata/pkg/batch"
	"github.com/spf13/cobra"
)

var batchCmd = &cobra.Command{
	Use:   "batch MANIFEST.csv",
	Short: "Analyze a CSV manifest of repositories",
	Long: `Reads a CSV manifest with a URL column and analyzes each repository in
sequence: clone, walk the history window, and write the dataset CSV (plus
charts with --plots) into <output-dir>/<owner>_<repo>/. A failing
repository is reported and skipped; the batch continues.

Examples:
  strata batch repos.csv
  strata batch repos.csv --limit 10 --output-dir results --plots`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	batchCmd.Flags().Int("limit", batch.DefaultLimit, "Maximum repositories to process (0 = no limit)")
	batchCmd.Flags().String("output-dir", ".", "Directory for per-repository output")
	batchCmd.Flags().Bool("plots", false, "Render per-metric charts next to each CSV")
	batchCmd.Flags().StringP("window", "w", "", "Trailing history window (e.g. 30d, 2w, 6m, 1y)")

	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	windowFlag, _ := cmd.Flags().GetString("window")
	window, err := getWindow(windowFlag, cfg.Analysis.Window)
	if err != nil {
		return err
	}

	limit, _ := cmd.Flags().GetInt("limit")
	outputDir, _ := cmd.Flags().GetString("output-dir")
	plots, _ := cmd.Flags().GetBool("plots")

	a := history.New(
		history.WithWindow(window),
		history.WithExtensions(cfg.Analysis.Extensions),
		history.WithExcludeFunc(cfg.ShouldExclude),
		history.WithExtractor(newExtractor(cfg)),
		history.WithWorkers(cfg.Analysis.Workers),
		history.WithMaxFileSize(cfg.Analysis.MaxFileSize),
	)
	defer a.Close()

	opts := []batch.Option{
		batch.WithAnalyzer(a),
		batch.WithLimit(limit),
		batch.WithOutputDir(outputDir),
		batch.WithTracker(progress.NewTracker("Analyzing repositories", 0)),
	}
	if plots {
		opts = append(opts, batch.WithPlots())
	}

	results, err := batch.New(opts...).Run(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	failed := 0
	for _, res := range results {
		if res.Err != nil {
			failed++
			color.Red("FAIL %s: %v", res.URL, res.Err)
			continue
		}
		fmt.Printf("ok   %s: %d commits -> %s\n", res.Name, res.Commits, res.Dir)
	}
	if failed > 0 {
		color.Yellow("%d of %d repositories failed", failed, len(results))
	}
	return nil
}
