package export

import (
	"fmt"
	"time"

	"github.com/panbanda/strata/pkg/analyzer/history"
	"github.com/xuri/excelize/v2"
)

// MetricsSheet is the sheet name used in XLSX exports.
const MetricsSheet = "Metrics"

// WriteXLSX writes the dataset's records as an XLSX workbook with one
// "Metrics" sheet and returns the path written. A directory destination
// gets DefaultXLSXName appended.
func WriteXLSX(ds *history.Dataset, path string) (string, error) {
	path = resolvePath(path, DefaultXLSXName)

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", MetricsSheet); err != nil {
		return "", fmt.Errorf("failed to name sheet: %w", err)
	}

	headerRow := make([]interface{}, len(header))
	for i, col := range header {
		headerRow[i] = col
	}
	if err := f.SetSheetRow(MetricsSheet, "A1", &headerRow); err != nil {
		return "", fmt.Errorf("failed to write header row: %w", err)
	}

	for i, rec := range ds.Records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return "", fmt.Errorf("failed to compute cell name: %w", err)
		}
		row := []interface{}{
			rec.CommitHash,
			rec.CommitDate.Format(time.RFC3339),
			rec.Author,
			rec.FilesChanged,
			rec.LinesAdded,
			rec.LinesDeleted,
			rec.Complexity,
			rec.Maintainability,
			rec.Cohesion,
			rec.Coupling,
			rec.Entropy,
			rec.AuthorFrequency,
			rec.AuthorsPerFile,
		}
		if err := f.SetSheetRow(MetricsSheet, cell, &row); err != nil {
			return "", fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("failed to save workbook: %w", err)
	}
	return path, nil
}
