// Package history builds a longitudinal quality dataset from git history:
// one record per commit inside a trailing window, combining static measures
// of the changed files (complexity, maintainability, cohesion, coupling)
// with change entropy and running authorship aggregates.
package history

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/panbanda/strata/internal/fileproc"
	"github.com/panbanda/strata/internal/progress"
	"github.com/panbanda/strata/internal/vcs"
	"github.com/panbanda/strata/pkg/analyzer"
	"github.com/panbanda/strata/pkg/measure"
)

// DefaultGitTimeout is the default timeout for git operations.
const DefaultGitTimeout = 5 * time.Minute

// DefaultWindow is the trailing history window analyzed when none is set.
const DefaultWindow = 365 * 24 * time.Hour

// DefaultExtensions are the file extensions measured when none are configured.
var DefaultExtensions = []string{".py", ".java"}

// Analyzer walks commit history and folds each qualifying commit into the
// longitudinal dataset.
type Analyzer struct {
	window      time.Duration
	refTime     time.Time
	exts        map[string]bool
	exclude     func(path string) bool
	extractor   *measure.Extractor
	workers     int
	maxFileSize int64
	spinner     *progress.Tracker
	opener      vcs.Opener
}

// Compile-time check that Analyzer implements RepoAnalyzer.
var _ analyzer.RepoAnalyzer[*Dataset] = (*Analyzer)(nil)

// Option is a functional option for configuring Analyzer.
type Option func(*Analyzer)

// WithWindow sets the trailing time window of history to analyze.
func WithWindow(window time.Duration) Option {
	return func(a *Analyzer) {
		if window > 0 {
			a.window = window
		}
	}
}

// WithReferenceTime pins the end of the analysis window. The cutoff becomes
// ref minus the window instead of tracking the wall clock, which keeps runs
// reproducible.
func WithReferenceTime(ref time.Time) Option {
	return func(a *Analyzer) {
		a.refTime = ref
	}
}

// WithExtensions sets the file extensions accepted for measurement.
// Extensions are matched case-insensitively.
func WithExtensions(exts []string) Option {
	return func(a *Analyzer) {
		if len(exts) == 0 {
			return
		}
		a.exts = make(map[string]bool, len(exts))
		for _, ext := range exts {
			a.exts[strings.ToLower(ext)] = true
		}
	}
}

// WithExcludeFunc sets a predicate that removes matching paths from
// measurement. Excluded files still count toward entropy and ownership.
func WithExcludeFunc(fn func(path string) bool) Option {
	return func(a *Analyzer) {
		a.exclude = fn
	}
}

// WithExtractor sets the measurement extractor, letting callers share a
// result cache across analyzers.
func WithExtractor(e *measure.Extractor) Option {
	return func(a *Analyzer) {
		if e != nil {
			a.extractor = e
		}
	}
}

// WithWorkers sets the per-commit measurement worker count.
func WithWorkers(n int) Option {
	return func(a *Analyzer) {
		if n > 0 {
			a.workers = n
		}
	}
}

// WithMaxFileSize caps the blob size fetched for measurement. Larger files
// are skipped as read failures.
func WithMaxFileSize(n int64) Option {
	return func(a *Analyzer) {
		if n > 0 {
			a.maxFileSize = n
		}
	}
}

// WithSpinner sets a progress spinner ticked once per commit.
func WithSpinner(spinner *progress.Tracker) Option {
	return func(a *Analyzer) {
		a.spinner = spinner
	}
}

// WithOpener sets the VCS opener (useful for testing).
func WithOpener(opener vcs.Opener) Option {
	return func(a *Analyzer) {
		a.opener = opener
	}
}

// New creates a history analyzer with the given options.
func New(opts ...Option) *Analyzer {
	a := &Analyzer{
		window: DefaultWindow,
		opener: vcs.DefaultOpener(),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.exts == nil {
		a.exts = make(map[string]bool, len(DefaultExtensions))
		for _, ext := range DefaultExtensions {
			a.exts[ext] = true
		}
	}
	if a.extractor == nil {
		a.extractor = measure.New()
	}
	return a
}

// Analyze walks the repository's commit history within the window and folds
// each qualifying commit into the dataset. Records come back sorted by
// commit time ascending regardless of walk order.
func (a *Analyzer) Analyze(ctx context.Context, repoPath string) (*Dataset, error) {
	if ctx == nil {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(context.Background(), DefaultGitTimeout)
		defer cancel()
	}

	repo, err := a.opener.PlainOpenWithDetect(repoPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open repository: %w", err)
	}

	ref := a.refTime
	if ref.IsZero() {
		ref = time.Now()
	}
	cutoff := ref.Add(-a.window)

	iter, err := repo.Log(&vcs.LogOptions{Since: &cutoff})
	if err != nil {
		return nil, fmt.Errorf("failed to get git log: %w", err)
	}
	defer iter.Close()

	agg := newAggregator(a, cutoff)
	err = iter.ForEach(func(c vcs.Commit) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if a.spinner != nil {
			a.spinner.Tick()
		}
		agg.fold(ctx, c)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk commits: %w", err)
	}

	return agg.dataset(repoPath), nil
}

// Close releases resources held by the analyzer.
func (a *Analyzer) Close() {}

// accepts reports whether a changed file qualifies for measurement.
func (a *Analyzer) accepts(path string) bool {
	if a.exclude != nil && a.exclude(path) {
		return false
	}
	return a.exts[strings.ToLower(filepath.Ext(path))]
}

// aggregator owns the accumulator state for one walk. Later records depend
// on state folded by earlier ones, so commits fold strictly sequentially;
// only the per-file measurement inside a single commit fans out.
type aggregator struct {
	a              *Analyzer
	cutoff         time.Time
	authorCommits  map[string]int
	owners         *ownershipIndex
	records        []Record
	skipped        []FileResult
	measured       int
	commitsSkipped int
}

func newAggregator(a *Analyzer, cutoff time.Time) *aggregator {
	return &aggregator{
		a:             a,
		cutoff:        cutoff,
		authorCommits: make(map[string]int),
		owners:        newOwnershipIndex(),
	}
}

// fileChange pairs a changed path with its line churn for the commit.
type fileChange struct {
	path    string
	added   int
	deleted int
}

// fold applies one commit to the accumulators and emits its record.
// Commits without a usable timestamp or older than the cutoff are dropped
// before any accumulator mutation.
func (g *aggregator) fold(ctx context.Context, c vcs.Commit) {
	when := c.Committer().When
	if when.IsZero() {
		g.commitsSkipped++
		return
	}
	if when.Before(g.cutoff) {
		return
	}

	stats, err := c.Stats()
	if err != nil {
		g.commitsSkipped++
		return
	}

	author := identity(c.Author())

	counts := make(map[string]int, len(stats))
	accepted := make([]fileChange, 0, len(stats))
	for _, fs := range stats {
		counts[fs.Name]++
		g.owners.Touch(fs.Name, author)
		if g.a.accepts(fs.Name) {
			accepted = append(accepted, fileChange{path: fs.Name, added: fs.Addition, deleted: fs.Deletion})
		}
	}

	rec := Record{
		CommitHash: c.Hash().String(),
		CommitDate: when,
		Author:     author,
	}

	if len(accepted) > 0 {
		g.measure(ctx, c, accepted, &rec)
	}

	rec.Entropy = CalculateEntropy(counts)

	g.authorCommits[author]++
	rec.AuthorFrequency = g.authorCommits[author]
	rec.AuthorsPerFile = g.owners.MeanBreadth()

	g.records = append(g.records, rec)
}

// measure runs the extractors over the accepted files at this commit and
// folds the successes into the record. A failed file contributes nothing,
// not even its line churn.
func (g *aggregator) measure(ctx context.Context, c vcs.Commit, changes []fileChange, rec *Record) {
	paths := make([]string, len(changes))
	for i, fc := range changes {
		paths[i] = fc.path
	}

	var src fileproc.ContentSource
	if tree, err := c.Tree(); err != nil {
		src = unreadableSource{err: err}
	} else {
		src = treeSource{tree: tree}
	}

	outcomes := fileproc.MapSourceN(ctx, paths, src, g.a.workers, g.a.maxFileSize, g.a.extractor.Measure)
	for i, out := range outcomes {
		if out.Err != nil {
			g.skipped = append(g.skipped, FileResult{
				Path:   out.Path,
				Status: classify(out.Err),
				Err:    out.Err,
			})
			continue
		}

		fc := changes[i]
		rec.FilesChanged++
		rec.LinesAdded += fc.added
		rec.LinesDeleted += fc.deleted
		rec.Complexity += int(out.Value.Cyclomatic)
		rec.Maintainability += out.Value.Maintainability
		rec.Cohesion += out.Value.Functions
		rec.Coupling += out.Value.Imports
		g.measured++
	}
}

// dataset orders the folded records by commit time and derives the summary.
func (g *aggregator) dataset(repoPath string) *Dataset {
	sort.SliceStable(g.records, func(i, j int) bool {
		return g.records[i].CommitDate.Before(g.records[j].CommitDate)
	})

	ds := &Dataset{
		Repository: repoPath,
		AnalyzedAt: time.Now(),
		Records:    g.records,
		Skipped:    g.skipped,
	}
	ds.Summary = Summary{
		Commits:        len(g.records),
		CommitsSkipped: g.commitsSkipped,
		FilesMeasured:  g.measured,
		FilesSkipped:   len(g.skipped),
		Authors:        len(g.authorCommits),
		FilesTracked:   g.owners.Files(),
		Entropy:        entropyStats(g.records),
		Trends:         computeTrends(g.records),
	}
	if len(g.records) > 0 {
		ds.Summary.From = g.records[0].CommitDate
		ds.Summary.To = g.records[len(g.records)-1].CommitDate
	}
	return ds
}

// identity resolves the author key used for frequency and ownership
// accounting: the email when present, the name otherwise.
func identity(sig object.Signature) string {
	if sig.Email != "" {
		return sig.Email
	}
	return sig.Name
}

// classify buckets a per-file error into its skip status. Size-capped files
// count as read failures: their content never reached the extractors.
func classify(err error) FileStatus {
	var re *readError
	if errors.As(err, &re) || errors.Is(err, fileproc.ErrFileTooLarge) {
		return FileReadFailed
	}
	return FileMeasureFailed
}

// readError marks content-retrieval failures so the fold can tell them
// apart from measurement failures.
type readError struct {
	err error
}

func (e *readError) Error() string { return e.err.Error() }
func (e *readError) Unwrap() error { return e.err }

// treeSource adapts a vcs.Tree to fileproc.ContentSource. fileproc reads
// content sequentially before its fan-out, which keeps go-git tree access
// single-threaded.
type treeSource struct {
	tree vcs.Tree
}

func (s treeSource) Read(path string) ([]byte, error) {
	content, err := s.tree.File(path)
	if err != nil {
		return nil, &readError{err: err}
	}
	return content, nil
}

// unreadableSource fails every read with the tree resolution error, so a
// commit whose tree cannot be loaded degrades to per-file read failures
// instead of aborting the walk.
type unreadableSource struct {
	err error
}

func (s unreadableSource) Read(string) ([]byte, error) {
	return nil, &readError{err: s.err}
}
