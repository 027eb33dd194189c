// Package commitlog extracts complete commit metadata from git history into
// a single JSON document: identity, message, parentage, per-file churn, and
// resolvable blob ids for each commit inside a trailing window.
package commitlog

import (
	"context"
	"fmt"
	"time"

	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/panbanda/strata/internal/progress"
	"github.com/panbanda/strata/internal/vcs"
	"github.com/panbanda/strata/pkg/analyzer"
)

// DefaultGitTimeout is the default timeout for git operations.
const DefaultGitTimeout = 5 * time.Minute

// DefaultWindow spans ten years of history.
const DefaultWindow = 10 * 365 * 24 * time.Hour

// Analyzer extracts commit metadata from a repository.
type Analyzer struct {
	window  time.Duration
	refTime time.Time
	spinner *progress.Tracker
	opener  vcs.Opener
}

// Compile-time check that Analyzer implements RepoAnalyzer.
var _ analyzer.RepoAnalyzer[*Document] = (*Analyzer)(nil)

// Option is a functional option for configuring Analyzer.
type Option func(*Analyzer)

// WithWindow sets the trailing time window of history to extract.
func WithWindow(window time.Duration) Option {
	return func(a *Analyzer) {
		if window > 0 {
			a.window = window
		}
	}
}

// WithReferenceTime pins the end of the extraction window for reproducible
// runs.
func WithReferenceTime(ref time.Time) Option {
	return func(a *Analyzer) {
		a.refTime = ref
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

// New creates a commit-history extractor with the given options.
func New(opts ...Option) *Analyzer {
	a := &Analyzer{
		window: DefaultWindow,
		opener: vcs.DefaultOpener(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze walks the repository's history and collects one Commit entry per
// qualifying commit, in walk order (newest first).
func (a *Analyzer) Analyze(ctx context.Context, repoPath string) (*Document, error) {
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

	doc := &Document{
		Repository:  repoPath,
		GeneratedAt: time.Now(),
		Window:      FormatWindow(a.window),
		Commits:     []Commit{},
	}

	err = iter.ForEach(func(c vcs.Commit) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if a.spinner != nil {
			a.spinner.Tick()
		}

		when := c.Committer().When
		if when.IsZero() {
			doc.CommitsSkipped++
			return nil
		}
		if when.Before(cutoff) {
			return nil
		}

		doc.Commits = append(doc.Commits, extract(c, when))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk commits: %w", err)
	}

	return doc, nil
}

// Close releases resources held by the analyzer.
func (a *Analyzer) Close() {}

// extract builds one document entry. Stats and tree access degrade
// field-by-field: a commit with unreadable churn or an unresolvable tree is
// still logged.
func extract(c vcs.Commit, when time.Time) Commit {
	entry := Commit{
		CommitHash:   c.Hash().String(),
		Author:       signature(c.Author()),
		Committer:    signature(c.Committer()),
		CommitDate:   when,
		Message:      c.Message(),
		Parents:      []string{},
		Stats:        Stats{Files: map[string]FileStat{}},
		FilesChanged: []string{},
	}
	for _, h := range c.ParentHashes() {
		entry.Parents = append(entry.Parents, h.String())
	}

	if stats, err := c.Stats(); err == nil {
		for _, fs := range stats {
			entry.Stats.Insertions += fs.Addition
			entry.Stats.Deletions += fs.Deletion
			entry.Stats.Files[fs.Name] = FileStat{Insertions: fs.Addition, Deletions: fs.Deletion}
			entry.FilesChanged = append(entry.FilesChanged, fs.Name)
		}
	}

	if tree, err := c.Tree(); err == nil {
		entry.TreeID = c.TreeHash().String()
		for _, path := range entry.FilesChanged {
			// Deleted files have no blob at this commit; resolve what exists.
			if h, err := tree.FileHash(path); err == nil {
				entry.BlobIDs = append(entry.BlobIDs, h.String())
			}
		}
	}

	return entry
}

func signature(sig object.Signature) Signature {
	return Signature{Name: sig.Name, Email: sig.Email}
}

// FormatWindow renders a duration in the d/w/m/y shorthand used by window
// flags, picking the largest unit that divides evenly.
func FormatWindow(d time.Duration) string {
	days := int(d.Hours() / 24)
	switch {
	case days >= 365 && days%365 == 0:
		return fmt.Sprintf("%dy", days/365)
	case days >= 30 && days%30 == 0:
		return fmt.Sprintf("%dm", days/30)
	case days >= 7 && days%7 == 0:
		return fmt.Sprintf("%dw", days/7)
	default:
		return fmt.Sprintf("%dd", days)
	}
}
