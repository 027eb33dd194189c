package main

import (
	"fmt"

	"github.com/panbanda/strata/pkg/analyzer/search"
	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search [path|url]",
	Short: "Scan files at HEAD for keywords",
	Long: `Scans every file reachable from HEAD's tree for the given keywords and
reports matching lines with trimmed snippets. Binary files and duplicate
blobs are skipped.

Examples:
  strata search -k TODO -k FIXME
  strata search -k password --ignore-case rails/rails`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringSliceP("keyword", "k", nil, "Keyword to search for (repeatable)")
	searchCmd.Flags().BoolP("ignore-case", "i", false, "Case-insensitive matching")
	searchCmd.MarkFlagRequired("keyword")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	keywords, _ := cmd.Flags().GetStringSlice("keyword")
	ignoreCase, _ := cmd.Flags().GetBool("ignore-case")

	target, err := resolveRepo(cmd.Context(), singlePathArg(args), "")
	if err != nil {
		return err
	}
	defer target.Cleanup()

	a := search.New(keywords,
		search.WithIgnoreCase(ignoreCase),
		search.WithWorkers(cfg.Analysis.Workers),
		search.WithMaxFileSize(cfg.Analysis.MaxFileSize),
	)
	defer a.Close()

	report, err := a.Analyze(cmd.Context(), target.Path)
	if err != nil {
		return fmt.Errorf("failed to search repository: %w", err)
	}

	formatter, err := newFormatter(cfg)
	if err != nil {
		return err
	}
	defer formatter.Close()

	return formatter.Output(report)
}
