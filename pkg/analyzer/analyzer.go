// Package analyzer hosts the shared contracts for strata's repository
// analyzers and the progress plumbing they report through. The concrete
// analyzers live in subpackages: history (commit-by-commit quality metrics),
// commitlog (commit metadata extraction), and search (keyword scanning).
package analyzer

import "context"

// RepoAnalyzer is the interface shared by analyzers that operate on a git
// repository identified by path. The context carries cancellation and,
// optionally, a progress Tracker (see WithTracker).
type RepoAnalyzer[T any] interface {
	// Analyze runs the analysis against the repository at repoPath.
	Analyze(ctx context.Context, repoPath string) (T, error)

	// Close releases any resources held by the analyzer.
	Close()
}
