package export

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/panbanda/strata/pkg/analyzer/history"
	"github.com/parquet-go/parquet-go"
	"github.com/xuri/excelize/v2"
)

func sampleDataset() *history.Dataset {
	return &history.Dataset{
		Repository: "/tmp/repo",
		AnalyzedAt: time.Date(2024, 3, 3, 0, 0, 0, 0, time.UTC),
		Records: []history.Record{
			{
				CommitHash:      strings.Repeat("a", 40),
				CommitDate:      time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
				Author:          "alice@example.com",
				FilesChanged:    2,
				LinesAdded:      10,
				LinesDeleted:    3,
				Complexity:      7,
				Maintainability: 72.25,
				Cohesion:        3,
				Coupling:        2,
				Entropy:         1,
				AuthorFrequency: 1,
				AuthorsPerFile:  1,
			},
			{
				CommitHash:      strings.Repeat("b", 40),
				CommitDate:      time.Date(2024, 3, 2, 10, 0, 0, 0, time.UTC),
				Author:          "bob@example.com",
				FilesChanged:    1,
				LinesAdded:      5,
				LinesDeleted:    1,
				Complexity:      4,
				Maintainability: 68.5,
				Cohesion:        1,
				Coupling:        1,
				Entropy:         0,
				AuthorFrequency: 1,
				AuthorsPerFile:  1.5,
			},
		},
	}
}

func TestWriteCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	written, err := WriteCSV(sampleDataset(), path)
	if err != nil {
		t.Fatalf("WriteCSV() error = %v", err)
	}
	if written != path {
		t.Errorf("written path = %s, want %s", written, path)
	}

	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("Failed to open output: %v", err)
	}
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	if err != nil {
		t.Fatalf("Failed to parse csv: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("len(rows) = %d, want header + 2 records", len(rows))
	}
	if !reflect.DeepEqual(rows[0], header) {
		t.Errorf("header row = %v", rows[0])
	}

	want := []string{
		strings.Repeat("a", 40),
		"2024-03-01T10:00:00Z",
		"alice@example.com",
		"2", "10", "3", "7", "72.25", "3", "2", "1", "1", "1",
	}
	if !reflect.DeepEqual(rows[1], want) {
		t.Errorf("row 1 = %v, want %v", rows[1], want)
	}
	if rows[2][12] != "1.5" {
		t.Errorf("rows[2][12] = %s, want 1.5", rows[2][12])
	}
}

func TestWriteCSVDirectoryDefault(t *testing.T) {
	dir := t.TempDir()
	written, err := WriteCSV(sampleDataset(), dir)
	if err != nil {
		t.Fatalf("WriteCSV() error = %v", err)
	}
	if written != filepath.Join(dir, DefaultCSVName) {
		t.Errorf("written path = %s, want the default filename under the directory", written)
	}
	if _, err := os.Stat(written); err != nil {
		t.Errorf("output file missing: %v", err)
	}
}

func TestWriteCSVEmptyDataset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	if _, err := WriteCSV(&history.Dataset{}, path); err != nil {
		t.Fatalf("WriteCSV() error = %v", err)
	}

	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("Failed to open output: %v", err)
	}
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	if err != nil {
		t.Fatalf("Failed to parse csv: %v", err)
	}
	if len(rows) != 1 {
		t.Errorf("len(rows) = %d, want just the header", len(rows))
	}
}

func TestWriteCSVInvalidPath(t *testing.T) {
	if _, err := WriteCSV(sampleDataset(), "/nonexistent/dir/out.csv"); err == nil {
		t.Fatal("Expected error for an unwritable path")
	}
}

func TestParquetSchemaColumns(t *testing.T) {
	schema := parquet.SchemaOf(new(Row))
	for _, col := range header {
		if _, ok := schema.Lookup(col); !ok {
			t.Errorf("column %s missing from parquet schema", col)
		}
	}
}

func TestWriteParquetRoundTrip(t *testing.T) {
	ds := sampleDataset()
	path := filepath.Join(t.TempDir(), "out.parquet")
	written, err := WriteParquet(ds, path)
	if err != nil {
		t.Fatalf("WriteParquet() error = %v", err)
	}
	if written != path {
		t.Errorf("written path = %s, want %s", written, path)
	}

	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("Failed to open output: %v", err)
	}
	defer file.Close()

	reader := parquet.NewGenericReader[Row](file)
	defer reader.Close()

	got := make([]Row, reader.NumRows())
	n, err := reader.Read(got)
	if err != nil && err != io.EOF {
		t.Fatalf("Failed to read parquet: %v", err)
	}
	if n != len(ds.Records) {
		t.Fatalf("read %d rows, want %d", n, len(ds.Records))
	}

	if got[0].CommitHash != strings.Repeat("a", 40) {
		t.Errorf("CommitHash = %s", got[0].CommitHash)
	}
	if !got[0].CommitDate.Equal(ds.Records[0].CommitDate) {
		t.Errorf("CommitDate = %v, want %v", got[0].CommitDate, ds.Records[0].CommitDate)
	}
	if got[0].Maintainability != 72.25 {
		t.Errorf("Maintainability = %v, want 72.25", got[0].Maintainability)
	}
	if got[0].FilesChanged != 2 || got[0].Complexity != 7 {
		t.Errorf("counts = %+v", got[0])
	}
	if got[1].AuthorsPerFile != 1.5 {
		t.Errorf("AuthorsPerFile = %v, want 1.5", got[1].AuthorsPerFile)
	}
}

func TestWriteParquetEmptyDataset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.parquet")
	if _, err := WriteParquet(&history.Dataset{}, path); err != nil {
		t.Fatalf("WriteParquet() error = %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("output file missing: %v", err)
	}
	if info.Size() == 0 {
		t.Error("output should carry the schema even with no rows")
	}
}

func TestWriteXLSX(t *testing.T) {
	ds := sampleDataset()
	path := filepath.Join(t.TempDir(), "out.xlsx")
	written, err := WriteXLSX(ds, path)
	if err != nil {
		t.Fatalf("WriteXLSX() error = %v", err)
	}
	if written != path {
		t.Errorf("written path = %s, want %s", written, path)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("Failed to open workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(MetricsSheet)
	if err != nil {
		t.Fatalf("Failed to read sheet: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("len(rows) = %d, want header + 2 records", len(rows))
	}
	if !reflect.DeepEqual(rows[0], header) {
		t.Errorf("header row = %v", rows[0])
	}
	if rows[1][0] != strings.Repeat("a", 40) {
		t.Errorf("rows[1][0] = %s", rows[1][0])
	}
	if rows[1][1] != "2024-03-01T10:00:00Z" {
		t.Errorf("rows[1][1] = %s, want the RFC3339 date", rows[1][1])
	}
	if rows[1][7] != "72.25" {
		t.Errorf("rows[1][7] = %s, want 72.25", rows[1][7])
	}
	if rows[2][12] != "1.5" {
		t.Errorf("rows[2][12] = %s, want 1.5", rows[2][12])
	}
}

func TestWriteXLSXDirectoryDefault(t *testing.T) {
	dir := t.TempDir()
	written, err := WriteXLSX(sampleDataset(), dir)
	if err != nil {
		t.Fatalf("WriteXLSX() error = %v", err)
	}
	if written != filepath.Join(dir, DefaultXLSXName) {
		t.Errorf("written path = %s, want the default filename under the directory", written)
	}
}

func TestFormatFloat(t *testing.T) {
	tests := []struct {
		v    float64
		want string
	}{
		{0, "0"},
		{1, "1"},
		{1.5, "1.5"},
		{72.25, "72.25"},
		{1.0 / 3.0, "0.3333333333333333"},
	}
	for _, tt := range tests {
		if got := formatFloat(tt.v); got != tt.want {
			t.Errorf("formatFloat(%v) = %s, want %s", tt.v, got, tt.want)
		}
	}
}
