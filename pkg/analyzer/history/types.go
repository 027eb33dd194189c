package history

import "time"

// Record is one row of the longitudinal dataset: the quality metrics of a
// single commit plus the running authorship aggregates at the moment the
// commit was folded.
type Record struct {
	CommitHash      string    `json:"commit_hash"`
	CommitDate      time.Time `json:"commit_date"`
	Author          string    `json:"author"`
	FilesChanged    int       `json:"files_changed"`
	LinesAdded      int       `json:"lines_added"`
	LinesDeleted    int       `json:"lines_deleted"`
	Complexity      int       `json:"total_cyclomatic_complexity"`
	Maintainability float64   `json:"total_maintainability_index"`
	Cohesion        int       `json:"total_cohesion_metric_lcom"`
	Coupling        int       `json:"total_coupling_metric_imports"`
	Entropy         float64   `json:"code_entropy"`
	AuthorFrequency int       `json:"commit_frequency_by_author"`
	AuthorsPerFile  float64   `json:"unique_authors_per_file_avg"`
}

// FileStatus classifies the outcome of measuring one changed file.
type FileStatus string

const (
	// FileOK means the file was read and measured successfully.
	FileOK FileStatus = "ok"
	// FileReadFailed means content retrieval failed (missing blob, size cap,
	// unreadable tree).
	FileReadFailed FileStatus = "read-failed"
	// FileMeasureFailed means the file was read but could not be measured.
	FileMeasureFailed FileStatus = "measure-failed"
)

// FileResult reports the fate of one measured file during a commit fold.
// Failures are retained on the Dataset; successes fold into the Record and
// are discarded.
type FileResult struct {
	Path   string     `json:"path"`
	Status FileStatus `json:"status"`
	Err    error      `json:"-"`
}

// Dataset is the complete result of a history analysis: one record per
// qualifying commit, ordered by commit time ascending.
type Dataset struct {
	Repository string       `json:"repository"`
	AnalyzedAt time.Time    `json:"analyzed_at"`
	Records    []Record     `json:"records"`
	Skipped    []FileResult `json:"skipped_files,omitempty"`
	Summary    Summary      `json:"summary"`
}

// Summary aggregates the walk: counts, the observed time range, the entropy
// distribution, and per-metric trends.
type Summary struct {
	Commits        int                   `json:"commits"`
	CommitsSkipped int                   `json:"commits_skipped"`
	FilesMeasured  int                   `json:"files_measured"`
	FilesSkipped   int                   `json:"files_skipped"`
	Authors        int                   `json:"authors"`
	FilesTracked   int                   `json:"files_tracked"`
	From           time.Time             `json:"from"`
	To             time.Time             `json:"to"`
	Entropy        EntropyStats          `json:"entropy"`
	Trends         map[string]TrendStats `json:"trends,omitempty"`
}

// EntropyStats summarizes the distribution of per-commit change entropy.
type EntropyStats struct {
	P50 float64 `json:"p50"`
	P90 float64 `json:"p90"`
	P95 float64 `json:"p95"`
}

// Metric names keying Summary.Trends.
const (
	MetricComplexity      = "complexity"
	MetricMaintainability = "maintainability"
	MetricEntropy         = "entropy"
	MetricOwnership       = "ownership"
)

// Trend directions. Polarity is metric-aware: rising maintainability
// improves, rising complexity worsens.
const (
	TrendImproving = "improving"
	TrendWorsening = "worsening"
	TrendStable    = "stable"
)

// TrendStats holds regression statistics for one metric over the dataset.
type TrendStats struct {
	Slope       float64 `json:"slope"`
	Intercept   float64 `json:"intercept"`
	RSquared    float64 `json:"r_squared"`
	Correlation float64 `json:"correlation"`
	Direction   string  `json:"direction"`
}
