// Package batch runs the longitudinal analysis across a manifest of
// repositories: a CSV with a URL column, processed sequentially with
// per-repository output directories. One failing repository does not stop
// the batch.
package batch

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/panbanda/strata/internal/progress"
	"github.com/panbanda/strata/internal/remote"
	"github.com/panbanda/strata/pkg/analyzer"
	"github.com/panbanda/strata/pkg/analyzer/history"
	"github.com/panbanda/strata/pkg/export"
	"github.com/panbanda/strata/pkg/plot"
)

// DefaultLimit caps how many manifest rows a run processes unless the
// caller overrides it.
const DefaultLimit = 5

// urlColumn is the manifest header looked up case-insensitively.
const urlColumn = "URL"

// Result records the outcome for one repository in the batch.
type Result struct {
	URL     string // manifest entry as given
	Name    string // owner_repo identifier used for the output directory
	Dir     string // output directory written, empty when the repository failed
	Commits int    // records in the exported dataset
	Err     error  // non-nil when the repository was skipped
}

// CloneFunc fetches a remote source into a temporary directory.
type CloneFunc func(ctx context.Context, src *remote.Source) error

// Runner drives clone, analyze, and export for each manifest entry.
type Runner struct {
	analyzer  analyzer.RepoAnalyzer[*history.Dataset]
	clone     CloneFunc
	limit     int
	outputDir string
	plots     bool
	tracker   *progress.Tracker
}

// Option configures a Runner.
type Option func(*Runner)

// WithAnalyzer sets the analyzer run against each clone. Defaults to a
// history analyzer with default options.
func WithAnalyzer(a analyzer.RepoAnalyzer[*history.Dataset]) Option {
	return func(r *Runner) {
		r.analyzer = a
	}
}

// WithCloneFunc replaces the clone step (for testing).
func WithCloneFunc(fn CloneFunc) Option {
	return func(r *Runner) {
		if fn != nil {
			r.clone = fn
		}
	}
}

// WithLimit caps how many manifest rows are processed. Zero or a negative
// value lifts the cap.
func WithLimit(n int) Option {
	return func(r *Runner) {
		r.limit = n
	}
}

// WithOutputDir sets the directory that per-repository subdirectories are
// created under.
func WithOutputDir(dir string) Option {
	return func(r *Runner) {
		if dir != "" {
			r.outputDir = dir
		}
	}
}

// WithPlots renders the metric charts next to each repository's CSV.
func WithPlots() Option {
	return func(r *Runner) {
		r.plots = true
	}
}

// WithTracker sets a progress bar advanced once per repository. The total
// is set from the manifest when the run starts.
func WithTracker(t *progress.Tracker) Option {
	return func(r *Runner) {
		r.tracker = t
	}
}

// New creates a batch runner.
func New(opts ...Option) *Runner {
	r := &Runner{
		clone:     defaultClone,
		limit:     DefaultLimit,
		outputDir: ".",
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run processes the manifest sequentially and returns one Result per
// repository attempted. The returned error covers manifest-level failures
// and cancellation; per-repository failures live on the Results.
func (r *Runner) Run(ctx context.Context, manifestPath string) ([]Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	urls, err := readManifest(manifestPath)
	if err != nil {
		return nil, err
	}
	if r.limit > 0 && len(urls) > r.limit {
		urls = urls[:r.limit]
	}

	a := r.analyzer
	if a == nil {
		ha := history.New()
		defer ha.Close()
		a = ha
	}

	if r.tracker != nil {
		r.tracker.SetTotal(len(urls))
	}

	results := make([]Result, 0, len(urls))
	for _, url := range urls {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		results = append(results, r.processOne(ctx, a, url))
		if r.tracker != nil {
			r.tracker.Tick()
		}
	}
	if r.tracker != nil {
		r.tracker.FinishSuccess()
	}
	return results, nil
}

// processOne handles a single manifest entry end to end. Remote URLs are
// cloned to a temp directory and cleaned up afterwards; entries naming an
// existing local path are analyzed in place.
func (r *Runner) processOne(ctx context.Context, a analyzer.RepoAnalyzer[*history.Dataset], url string) Result {
	res := Result{URL: url}

	src, err := remote.Parse(url)
	if err != nil {
		res.Err = err
		return res
	}

	path := url
	name := filepath.Base(filepath.Clean(url))
	if src != nil {
		if err := r.clone(ctx, src); err != nil {
			res.Err = fmt.Errorf("failed to clone: %w", err)
			return res
		}
		defer src.Cleanup()
		path = src.CloneDir
		name = src.Name()
	} else if _, err := os.Stat(path); err != nil {
		res.Err = errors.New("not a repository URL or local path")
		return res
	}
	res.Name = name

	ds, err := a.Analyze(ctx, path)
	if err != nil {
		res.Err = fmt.Errorf("failed to analyze: %w", err)
		return res
	}

	outDir := filepath.Join(r.outputDir, name)
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		res.Err = fmt.Errorf("failed to create output directory: %w", err)
		return res
	}
	if _, err := export.WriteCSV(ds, outDir); err != nil {
		res.Err = err
		return res
	}
	if r.plots {
		if _, err := plot.WriteHTML(ds, outDir); err != nil {
			res.Err = err
			return res
		}
	}

	res.Dir = outDir
	res.Commits = len(ds.Records)
	return res
}

func defaultClone(ctx context.Context, src *remote.Source) error {
	// Full clone: the history walk needs every commit in the window, which
	// a shallow fetch would truncate.
	return src.Clone(ctx, io.Discard, false)
}

// readManifest returns the URL column of the CSV at path, in row order.
func readManifest(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open manifest: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	// Exported repository lists often carry ragged optional columns.
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest header: %w", err)
	}
	col := -1
	for i, name := range header {
		if strings.EqualFold(strings.TrimSpace(name), urlColumn) {
			col = i
			break
		}
	}
	if col < 0 {
		return nil, fmt.Errorf("manifest %s has no %s column", path, urlColumn)
	}

	var urls []string
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read manifest: %w", err)
		}
		if col >= len(row) {
			continue
		}
		if url := strings.TrimSpace(row[col]); url != "" {
			urls = append(urls, url)
		}
	}
	return urls, nil
}
