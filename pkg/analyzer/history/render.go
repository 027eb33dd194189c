package history

import (
	"fmt"
	"io"
	"strings"
	"time"
)

// RenderText implements output.Renderable for text output.
func (d *Dataset) RenderText(w io.Writer, colored bool) error {
	if len(d.Records) == 0 {
		fmt.Fprintln(w, "No commits found in the specified time window")
		return nil
	}

	fmt.Fprintf(w, "Longitudinal Metrics (%d commits)\n", d.Summary.Commits)
	fmt.Fprintln(w, strings.Repeat("=", 50))
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Repository: %s\n", d.Repository)
	fmt.Fprintf(w, "Time Range: %s to %s\n",
		d.Summary.From.Format("2006-01-02"),
		d.Summary.To.Format("2006-01-02"))
	fmt.Fprintf(w, "Authors:    %d\n", d.Summary.Authors)
	fmt.Fprintf(w, "Files:      %d tracked, %d measured, %d skipped\n",
		d.Summary.FilesTracked, d.Summary.FilesMeasured, d.Summary.FilesSkipped)
	if d.Summary.CommitsSkipped > 0 {
		fmt.Fprintf(w, "Skipped:    %d commits without usable timestamps\n", d.Summary.CommitsSkipped)
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Entropy:    p50=%.3f p90=%.3f p95=%.3f\n",
		d.Summary.Entropy.P50, d.Summary.Entropy.P90, d.Summary.Entropy.P95)
	fmt.Fprintln(w)

	if len(d.Summary.Trends) > 0 {
		fmt.Fprintln(w, "Trends (per day):")
		for _, name := range trendOrder {
			ts, ok := d.Summary.Trends[name]
			if !ok {
				continue
			}
			fmt.Fprintf(w, "  %-16s slope=%+.4f r2=%.2f  %s\n",
				name, ts.Slope, ts.RSquared, ts.Direction)
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, "Latest commits:")
	for _, rec := range tail(d.Records, 10) {
		fmt.Fprintf(w, "  %s  %s  files=%d +%d/-%d cc=%d mi=%.1f entropy=%.3f\n",
			shortHash(rec.CommitHash),
			rec.CommitDate.Format("2006-01-02"),
			rec.FilesChanged, rec.LinesAdded, rec.LinesDeleted,
			rec.Complexity, rec.Maintainability, rec.Entropy)
	}
	fmt.Fprintln(w)
	return nil
}

// RenderMarkdown implements output.Renderable for markdown output.
func (d *Dataset) RenderMarkdown(w io.Writer) error {
	if len(d.Records) == 0 {
		fmt.Fprintln(w, "No commits found in the specified time window")
		return nil
	}

	fmt.Fprintf(w, "## Longitudinal Metrics (%d commits)\n\n", d.Summary.Commits)
	fmt.Fprintf(w, "**Repository:** %s\n\n", d.Repository)
	fmt.Fprintf(w, "**Time Range:** %s to %s\n\n",
		d.Summary.From.Format("2006-01-02"),
		d.Summary.To.Format("2006-01-02"))

	if len(d.Summary.Trends) > 0 {
		fmt.Fprintln(w, "| Metric | Slope/day | R2 | Direction |")
		fmt.Fprintln(w, "|--------|-----------|----|-----------|")
		for _, name := range trendOrder {
			ts, ok := d.Summary.Trends[name]
			if !ok {
				continue
			}
			fmt.Fprintf(w, "| %s | %+.4f | %.2f | %s |\n",
				name, ts.Slope, ts.RSquared, ts.Direction)
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, "| Commit | Date | Author | Files | +/- | CC | MI | Entropy | Freq | Authors/File |")
	fmt.Fprintln(w, "|--------|------|--------|-------|-----|----|----|---------|------|--------------|")
	for _, rec := range d.Records {
		fmt.Fprintf(w, "| %s | %s | %s | %d | +%d/-%d | %d | %.1f | %.3f | %d | %.2f |\n",
			shortHash(rec.CommitHash),
			rec.CommitDate.Format(time.DateOnly),
			rec.Author,
			rec.FilesChanged, rec.LinesAdded, rec.LinesDeleted,
			rec.Complexity, rec.Maintainability, rec.Entropy,
			rec.AuthorFrequency, rec.AuthorsPerFile)
	}
	fmt.Fprintln(w)
	return nil
}

// RenderData implements output.Renderable for JSON/TOON output.
func (d *Dataset) RenderData() any {
	return d
}

// trendOrder fixes the display order of the trend map.
var trendOrder = []string{
	MetricComplexity,
	MetricMaintainability,
	MetricEntropy,
	MetricOwnership,
}

func shortHash(hash string) string {
	if len(hash) > 8 {
		return hash[:8]
	}
	return hash
}

// tail returns the last n records (dataset order is oldest first, so these
// are the most recent commits).
func tail(records []Record, n int) []Record {
	if len(records) <= n {
		return records
	}
	return records[len(records)-n:]
}
