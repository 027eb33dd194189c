package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/panbanda/strata/internal/progress"
	"github.com/panbanda/strata/pkg/analyzer/commitlog"
	"github.com/spf13/cobra"
)

var logCmd = &cobra.Command{
	Use:   "log [path|url]",
	Short: "Extract commit history as a JSON document",
	Long: `Walks the repository's commit history inside a trailing window and writes
one JSON document with the full metadata of every commit: identities,
timestamps, message, parents, per-file line churn, and resolvable blob ids.

The output file defaults to <owner>_<repo>.json for remote repositories and
<directory>.json for local paths.

Examples:
  strata log                         # ./<dir>.json, last ten years
  strata log --window 2y rails/rails # rails_rails.json
  strata log . --validate            # check output against the schema`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLog,
}

func init() {
	logCmd.Flags().StringP("window", "w", "", "Trailing history window (e.g. 30d, 2w, 6m, 10y)")
	logCmd.Flags().Bool("validate", false, "Validate the document against the embedded JSON Schema")

	rootCmd.AddCommand(logCmd)
}

func runLog(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	windowFlag, _ := cmd.Flags().GetString("window")
	window, err := getWindow(windowFlag, cfg.Extract.Window)
	if err != nil {
		return err
	}

	target, err := resolveRepo(cmd.Context(), singlePathArg(args), "")
	if err != nil {
		return err
	}
	defer target.Cleanup()

	spinner := progress.NewSpinner("Extracting commits")
	a := commitlog.New(
		commitlog.WithWindow(window),
		commitlog.WithSpinner(spinner),
	)
	defer a.Close()

	doc, err := a.Analyze(cmd.Context(), target.Path)
	if err != nil {
		spinner.FinishError(err)
		return fmt.Errorf("failed to extract commits: %w", err)
	}
	spinner.FinishSuccess()

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal commit log: %w", err)
	}

	if validate, _ := cmd.Flags().GetBool("validate"); validate {
		if err := commitlog.Validate(data); err != nil {
			return fmt.Errorf("commit log failed schema validation: %w", err)
		}
	}

	dest := outputFile
	if dest == "" {
		dest = target.Name + ".json"
	}
	if err := os.WriteFile(dest, data, 0o644); err != nil {
		return fmt.Errorf("failed to write commit log: %w", err)
	}

	color.Green("Wrote %d commits to %s", len(doc.Commits), dest)
	return nil
}
