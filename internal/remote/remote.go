// Package remote resolves repository arguments that point at remote git
// hosts and manages temporary clones of them.
package remote

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// knownHosts are git hosts accepted in scheme-less form (e.g. "github.com/golang/go").
var knownHosts = []string{
	"github.com",
	"gitlab.com",
	"bitbucket.org",
	"codeberg.org",
}

// Source represents a remote repository to analyze.
type Source struct {
	URL      string // normalized git URL
	Ref      string // branch, tag, or SHA (empty = default branch)
	CloneDir string // temp directory after clone
}

// Parse detects if a path is a remote reference.
// Returns nil if path exists on filesystem (local path takes precedence).
func Parse(path string) (*Source, error) {
	// Check if path exists locally
	if _, err := os.Stat(path); err == nil {
		return nil, nil
	}

	// SSH URLs pass through untouched; their @ is part of the address.
	if isSSHURL(path) {
		return &Source{URL: path}, nil
	}

	// Extract ref from path@ref syntax
	ref := ""
	if idx := strings.LastIndex(path, "@"); idx != -1 {
		ref = path[idx+1:]
		path = path[:idx]
	}

	if strings.HasPrefix(path, "https://") || strings.HasPrefix(path, "http://") {
		return &Source{URL: path, Ref: ref}, nil
	}

	// Scheme-less URL on a known host: github.com/golang/go
	for _, host := range knownHosts {
		if strings.HasPrefix(path, host+"/") {
			return &Source{URL: "https://" + path, Ref: ref}, nil
		}
	}

	// GitHub shorthand: owner/repo (exactly one slash, no dots before it)
	if isGitHubShorthand(path) {
		return &Source{
			URL: "https://github.com/" + path,
			Ref: ref,
		}, nil
	}

	return nil, nil
}

// isSSHURL returns true for scp-like git addresses such as
// git@github.com:owner/repo.git.
func isSSHURL(path string) bool {
	atIdx := strings.Index(path, "@")
	colonIdx := strings.Index(path, ":")
	return atIdx > 0 && colonIdx > atIdx && !strings.Contains(path, "://")
}

// isGitHubShorthand returns true if path matches owner/repo pattern.
func isGitHubShorthand(path string) bool {
	slashIdx := strings.Index(path, "/")
	if slashIdx == -1 {
		return false
	}
	// Must have exactly one slash
	if strings.Count(path, "/") != 1 {
		return false
	}
	// No dots before the slash (would indicate a domain)
	if strings.Contains(path[:slashIdx], ".") {
		return false
	}
	// Both parts must be non-empty
	return slashIdx > 0 && slashIdx < len(path)-1
}

// Name returns a filesystem-friendly identifier for the source, derived
// from the final path segments of its URL. Used to name per-repository
// output files in batch runs.
func (s *Source) Name() string {
	trimmed := strings.TrimSuffix(s.URL, ".git")
	trimmed = strings.TrimPrefix(trimmed, "https://")
	trimmed = strings.TrimPrefix(trimmed, "http://")
	if idx := strings.Index(trimmed, ":"); idx != -1 && strings.Contains(trimmed[:idx], "@") {
		trimmed = trimmed[idx+1:]
	}
	parts := strings.Split(strings.Trim(trimmed, "/"), "/")
	if len(parts) >= 2 {
		return parts[len(parts)-2] + "_" + parts[len(parts)-1]
	}
	return parts[len(parts)-1]
}

// Clone fetches the repository into a temporary directory and records it in
// CloneDir. Progress output is streamed to progress (pass io.Discard to
// silence it). With shallow set, only the tip of a single branch is fetched,
// which is enough for point-in-time analysis but not for history walks.
func (s *Source) Clone(ctx context.Context, progress io.Writer, shallow bool) error {
	dir, err := os.MkdirTemp("", "strata-clone-*")
	if err != nil {
		return fmt.Errorf("create clone dir: %w", err)
	}

	repo, err := s.cloneInto(ctx, dir, progress, shallow)
	if err != nil {
		os.RemoveAll(dir)
		return err
	}
	s.CloneDir = dir

	// A ref that is neither branch nor tag (a raw SHA) is resolved against
	// the full clone and checked out detached.
	if s.Ref != "" && repo != nil {
		if err := s.checkoutRevision(repo); err != nil {
			s.Cleanup()
			return err
		}
	}
	return nil
}

// cloneInto attempts the clone, trying the ref as a branch first, then as a
// tag. When both fail (or the ref is a SHA), it falls back to cloning the
// default branch; the caller resolves the revision afterwards. Returns a nil
// repository when the ref was already satisfied by the clone itself.
func (s *Source) cloneInto(ctx context.Context, dir string, progress io.Writer, shallow bool) (*git.Repository, error) {
	base := git.CloneOptions{
		URL:      s.URL,
		Progress: progress,
	}
	if shallow {
		base.Depth = 1
		base.SingleBranch = true
	}

	if s.Ref == "" {
		if _, err := git.PlainCloneContext(ctx, dir, false, &base); err != nil {
			return nil, fmt.Errorf("clone %s: %w", s.URL, err)
		}
		return nil, nil
	}

	refNames := []plumbing.ReferenceName{
		plumbing.NewBranchReferenceName(s.Ref),
		plumbing.NewTagReferenceName(s.Ref),
	}
	for _, refName := range refNames {
		opts := base
		opts.ReferenceName = refName
		if _, err := git.PlainCloneContext(ctx, dir, false, &opts); err == nil {
			return nil, nil
		}
		// Partial clone state must not leak into the next attempt.
		if err := resetDir(dir); err != nil {
			return nil, err
		}
	}

	repo, err := git.PlainCloneContext(ctx, dir, false, &base)
	if err != nil {
		return nil, fmt.Errorf("clone %s: %w", s.URL, err)
	}
	return repo, nil
}

func (s *Source) checkoutRevision(repo *git.Repository) error {
	hash, err := repo.ResolveRevision(plumbing.Revision(s.Ref))
	if err != nil {
		return fmt.Errorf("resolve ref %q: %w", s.Ref, err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		return fmt.Errorf("worktree: %w", err)
	}
	if err := wt.Checkout(&git.CheckoutOptions{Hash: *hash}); err != nil {
		return fmt.Errorf("checkout %s: %w", s.Ref, err)
	}
	return nil
}

// Cleanup removes the temporary clone directory, if any.
func (s *Source) Cleanup() {
	if s.CloneDir != "" {
		os.RemoveAll(s.CloneDir)
		s.CloneDir = ""
	}
}

func resetDir(dir string) error {
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("reset clone dir: %w", err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("reset clone dir: %w", err)
	}
	return nil
}
