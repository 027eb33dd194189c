// Package export writes a history dataset to tabular formats: CSV, Parquet,
// and XLSX. Every format carries the same thirteen columns in the same
// order.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/panbanda/strata/pkg/analyzer/history"
)

// Default filenames used when the destination is a directory.
const (
	DefaultCSVName     = "longitudinal_metrics.csv"
	DefaultParquetName = "longitudinal_metrics.parquet"
	DefaultXLSXName    = "longitudinal_metrics.xlsx"
)

// header lists the dataset columns in serialization order.
var header = []string{
	"commit_hash",
	"commit_date",
	"author",
	"files_changed",
	"lines_added",
	"lines_deleted",
	"total_cyclomatic_complexity",
	"total_maintainability_index",
	"total_cohesion_metric_lcom",
	"total_coupling_metric_imports",
	"code_entropy",
	"commit_frequency_by_author",
	"unique_authors_per_file_avg",
}

// WriteCSV writes the dataset's records as CSV and returns the path written.
// A directory destination gets DefaultCSVName appended.
func WriteCSV(ds *history.Dataset, path string) (string, error) {
	path = resolvePath(path, DefaultCSVName)
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write(header); err != nil {
		return "", fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, rec := range ds.Records {
		if err := w.Write(csvRow(rec)); err != nil {
			return "", fmt.Errorf("failed to write csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("failed to flush csv: %w", err)
	}
	return path, nil
}

func csvRow(rec history.Record) []string {
	return []string{
		rec.CommitHash,
		rec.CommitDate.Format(time.RFC3339),
		rec.Author,
		strconv.Itoa(rec.FilesChanged),
		strconv.Itoa(rec.LinesAdded),
		strconv.Itoa(rec.LinesDeleted),
		strconv.Itoa(rec.Complexity),
		formatFloat(rec.Maintainability),
		strconv.Itoa(rec.Cohesion),
		strconv.Itoa(rec.Coupling),
		formatFloat(rec.Entropy),
		strconv.Itoa(rec.AuthorFrequency),
		formatFloat(rec.AuthorsPerFile),
	}
}

// formatFloat renders the shortest string that round-trips the value.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// resolvePath appends defaultName when path is an existing directory.
func resolvePath(path, defaultName string) string {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return filepath.Join(path, defaultName)
	}
	return path
}
