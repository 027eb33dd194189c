package export

import (
	"fmt"
	"os"
	"time"

	"github.com/panbanda/strata/pkg/analyzer/history"
	"github.com/parquet-go/parquet-go"
)

// Row mirrors the dataset record schema for parquet export. The schema is
// inferred from the struct tags.
type Row struct {
	CommitHash      string    `parquet:"commit_hash,snappy"`
	CommitDate      time.Time `parquet:"commit_date,snappy"`
	Author          string    `parquet:"author,snappy"`
	FilesChanged    int32     `parquet:"files_changed,snappy"`
	LinesAdded      int32     `parquet:"lines_added,snappy"`
	LinesDeleted    int32     `parquet:"lines_deleted,snappy"`
	Complexity      int64     `parquet:"total_cyclomatic_complexity,snappy"`
	Maintainability float64   `parquet:"total_maintainability_index,snappy"`
	Cohesion        int32     `parquet:"total_cohesion_metric_lcom,snappy"`
	Coupling        int32     `parquet:"total_coupling_metric_imports,snappy"`
	Entropy         float64   `parquet:"code_entropy,snappy"`
	AuthorFrequency int32     `parquet:"commit_frequency_by_author,snappy"`
	AuthorsPerFile  float64   `parquet:"unique_authors_per_file_avg,snappy"`
}

// WriteParquet writes the dataset's records as parquet and returns the path
// written. A directory destination gets DefaultParquetName appended.
func WriteParquet(ds *history.Dataset, path string) (string, error) {
	path = resolvePath(path, DefaultParquetName)
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	writer := parquet.NewGenericWriter[Row](file)
	if _, err := writer.Write(rows(ds)); err != nil {
		writer.Close()
		return "", fmt.Errorf("failed to write parquet data: %w", err)
	}
	// Close flushes the footer; an unflushed file is unreadable.
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return path, nil
}

func rows(ds *history.Dataset) []Row {
	out := make([]Row, len(ds.Records))
	for i, rec := range ds.Records {
		out[i] = Row{
			CommitHash:      rec.CommitHash,
			CommitDate:      rec.CommitDate,
			Author:          rec.Author,
			FilesChanged:    int32(rec.FilesChanged),
			LinesAdded:      int32(rec.LinesAdded),
			LinesDeleted:    int32(rec.LinesDeleted),
			Complexity:      int64(rec.Complexity),
			Maintainability: rec.Maintainability,
			Cohesion:        int32(rec.Cohesion),
			Coupling:        int32(rec.Coupling),
			Entropy:         rec.Entropy,
			AuthorFrequency: int32(rec.AuthorFrequency),
			AuthorsPerFile:  rec.AuthorsPerFile,
		}
	}
	return out
}
