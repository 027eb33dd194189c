// Package search scans every file reachable from a repository's HEAD tree
// for keywords and reports the matching lines.
package search

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/panbanda/strata/internal/fileproc"
	"github.com/panbanda/strata/internal/vcs"
	"github.com/panbanda/strata/pkg/analyzer"
	"github.com/zeebo/blake3"
)

// DefaultGitTimeout is the default timeout for git operations.
const DefaultGitTimeout = 5 * time.Minute

// binarySniffLen is how many leading bytes are checked for a NUL byte when
// deciding whether a blob is binary.
const binarySniffLen = 8 * 1024

// snippetMaxRunes caps the reported line preview.
const snippetMaxRunes = 120

// Analyzer scans a repository's HEAD tree for keywords.
type Analyzer struct {
	keywords    []string
	ignoreCase  bool
	workers     int
	maxFileSize int64
	opener      vcs.Opener
}

// Compile-time check that Analyzer implements RepoAnalyzer.
var _ analyzer.RepoAnalyzer[*Report] = (*Analyzer)(nil)

// Option is a functional option for configuring Analyzer.
type Option func(*Analyzer)

// WithIgnoreCase makes keyword matching case-insensitive.
func WithIgnoreCase(ignore bool) Option {
	return func(a *Analyzer) {
		a.ignoreCase = ignore
	}
}

// WithWorkers sets the scan worker count.
func WithWorkers(n int) Option {
	return func(a *Analyzer) {
		if n > 0 {
			a.workers = n
		}
	}
}

// WithMaxFileSize caps the blob size fetched for scanning. Larger files are
// skipped.
func WithMaxFileSize(n int64) Option {
	return func(a *Analyzer) {
		if n > 0 {
			a.maxFileSize = n
		}
	}
}

// WithOpener sets the VCS opener (useful for testing).
func WithOpener(opener vcs.Opener) Option {
	return func(a *Analyzer) {
		a.opener = opener
	}
}

// New creates a keyword scanner for the given keywords.
func New(keywords []string, opts ...Option) *Analyzer {
	a := &Analyzer{
		keywords: keywords,
		opener:   vcs.DefaultOpener(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// fileMatches carries one scanned file's hits.
type fileMatches struct {
	path    string
	matches []Match
}

// Analyze scans every file at HEAD and returns the matches ordered by path,
// then line. Binary blobs and blobs whose content was already scanned under
// another path are skipped.
func (a *Analyzer) Analyze(ctx context.Context, repoPath string) (*Report, error) {
	if len(a.keywords) == 0 {
		return nil, errors.New("no keywords given")
	}
	if ctx == nil {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(context.Background(), DefaultGitTimeout)
		defer cancel()
	}

	repo, err := a.opener.PlainOpenWithDetect(repoPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open repository: %w", err)
	}
	head, err := repo.Head()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve HEAD: %w", err)
	}
	commit, err := repo.CommitObject(head.Hash())
	if err != nil {
		return nil, fmt.Errorf("failed to load HEAD commit: %w", err)
	}
	tree, err := commit.Tree()
	if err != nil {
		return nil, fmt.Errorf("failed to load HEAD tree: %w", err)
	}
	entries, err := tree.Entries()
	if err != nil {
		return nil, fmt.Errorf("failed to list tree files: %w", err)
	}

	paths := make([]string, 0, len(entries))
	for _, entry := range entries {
		paths = append(paths, entry.Path)
	}
	// Reads run in path order, so the first of two identical blobs wins
	// deterministically.
	sort.Strings(paths)

	needles := make([]string, len(a.keywords))
	for i, kw := range a.keywords {
		if a.ignoreCase {
			needles[i] = strings.ToLower(kw)
		} else {
			needles[i] = kw
		}
	}

	src := newDedupSource(tree)
	scanned := fileproc.ForEachSourceN(ctx, paths, src, a.workers, a.maxFileSize, func(path string, content []byte) (fileMatches, error) {
		return a.scan(path, content, needles), nil
	})
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sort.Slice(scanned, func(i, j int) bool { return scanned[i].path < scanned[j].path })

	report := &Report{
		Repository:   repoPath,
		Keywords:     a.keywords,
		Matches:      []Match{},
		FilesScanned: len(scanned),
		FilesSkipped: len(paths) - len(scanned),
	}
	for _, fm := range scanned {
		report.Matches = append(report.Matches, fm.matches...)
	}
	return report, nil
}

// Close releases resources held by the analyzer.
func (a *Analyzer) Close() {}

// scan collects every keyword hit in content. Matches within a file are in
// line order, and in keyword order within a line.
func (a *Analyzer) scan(path string, content []byte, needles []string) fileMatches {
	fm := fileMatches{path: path}

	sc := bufio.NewScanner(bytes.NewReader(content))
	sc.Buffer(nil, len(content)+1)
	line := 0
	for sc.Scan() {
		line++
		text := sc.Text()
		hay := text
		if a.ignoreCase {
			hay = strings.ToLower(text)
		}
		for i, needle := range needles {
			if strings.Contains(hay, needle) {
				fm.matches = append(fm.matches, Match{
					Keyword: a.keywords[i],
					Path:    path,
					Line:    line,
					Snippet: snippet(text),
				})
			}
		}
	}
	return fm
}

// snippet trims the line and caps it at snippetMaxRunes runes.
func snippet(line string) string {
	s := strings.TrimSpace(line)
	if utf8.RuneCountInString(s) <= snippetMaxRunes {
		return s
	}
	runes := []rune(s)
	return string(runes[:snippetMaxRunes])
}

var (
	errBinaryFile    = errors.New("binary file")
	errDuplicateBlob = errors.New("duplicate blob")
)

// dedupSource reads blobs from a git tree, rejecting binary content and
// content already returned under an earlier path. Reads are sequential in
// the processing layer, so the seen set needs no locking.
type dedupSource struct {
	tree vcs.Tree
	seen map[[32]byte]struct{}
}

func newDedupSource(tree vcs.Tree) *dedupSource {
	return &dedupSource{tree: tree, seen: make(map[[32]byte]struct{})}
}

func (s *dedupSource) Read(path string) ([]byte, error) {
	content, err := s.tree.File(path)
	if err != nil {
		return nil, err
	}
	if isBinary(content) {
		return nil, errBinaryFile
	}
	sum := blake3.Sum256(content)
	if _, ok := s.seen[sum]; ok {
		return nil, errDuplicateBlob
	}
	s.seen[sum] = struct{}{}
	return content, nil
}

// isBinary reports whether the blob looks binary: a NUL byte anywhere in
// the leading sniff window.
func isBinary(content []byte) bool {
	sniff := content
	if len(sniff) > binarySniffLen {
		sniff = sniff[:binarySniffLen]
	}
	return bytes.IndexByte(sniff, 0) >= 0
}
