// Package plot renders a history dataset as one HTML page of per-metric
// time-series line charts.
package plot

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/panbanda/strata/pkg/analyzer/history"
)

// DefaultName is the filename used when the destination is a directory.
const DefaultName = "longitudinal_metrics.html"

const (
	chartWidth  = "1100px"
	chartHeight = "400px"
)

// metricSeries defines one chart on the page. Values are any so integer and
// float columns both map onto line data.
type metricSeries struct {
	title string
	yAxis string
	value func(history.Record) any
}

// metrics lists one chart per dataset column, in column order.
var metrics = []metricSeries{
	{"Files Changed", "files", func(r history.Record) any { return r.FilesChanged }},
	{"Lines Added", "lines", func(r history.Record) any { return r.LinesAdded }},
	{"Lines Deleted", "lines", func(r history.Record) any { return r.LinesDeleted }},
	{"Cyclomatic Complexity", "complexity", func(r history.Record) any { return r.Complexity }},
	{"Maintainability Index", "index", func(r history.Record) any { return r.Maintainability }},
	{"Cohesion (functions)", "functions", func(r history.Record) any { return r.Cohesion }},
	{"Coupling (imports)", "imports", func(r history.Record) any { return r.Coupling }},
	{"Code Entropy", "bits", func(r history.Record) any { return r.Entropy }},
	{"Author Commit Frequency", "commits", func(r history.Record) any { return r.AuthorFrequency }},
	{"Authors Per File (mean)", "authors", func(r history.Record) any { return r.AuthorsPerFile }},
}

// WriteHTML renders one line chart per metric column and returns the path
// written. A directory destination gets DefaultName appended.
func WriteHTML(ds *history.Dataset, path string) (string, error) {
	path = resolvePath(path, DefaultName)

	labels := make([]string, len(ds.Records))
	for i, rec := range ds.Records {
		labels[i] = rec.CommitDate.Format(time.DateOnly)
	}

	page := components.NewPage()
	page.PageTitle = "Longitudinal metrics"
	page.SetLayout(components.PageFlexLayout)
	for _, m := range metrics {
		page.AddCharts(lineChart(m, labels, ds.Records))
	}

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	if err := page.Render(file); err != nil {
		return "", fmt.Errorf("failed to render charts: %w", err)
	}
	return path, nil
}

func lineChart(m metricSeries, labels []string, records []history.Record) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: chartWidth, Height: chartHeight}),
		charts.WithTitleOpts(opts.Title{Title: m.title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "commit date"}),
		charts.WithYAxisOpts(opts.YAxis{Name: m.yAxis}),
	)
	line.SetXAxis(labels)

	data := make([]opts.LineData, len(records))
	for i, rec := range records {
		data[i] = opts.LineData{Value: m.value(rec)}
	}
	line.AddSeries(m.title, data,
		charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}),
	)
	return line
}

// resolvePath appends defaultName when path is an existing directory.
func resolvePath(path, defaultName string) string {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return filepath.Join(path, defaultName)
	}
	return path
}
