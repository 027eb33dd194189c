package fileproc

import (
	"context"
	"sync"

	"github.com/panbanda/strata/pkg/analyzer"
	"github.com/panbanda/strata/pkg/parser"
	"github.com/sourcegraph/conc/pool"
)

// ContentSource abstracts read access to file content at a point in history,
// typically a git tree.
type ContentSource interface {
	Read(path string) ([]byte, error)
}

// Outcome carries the per-file result of a MapSource run, or the error that
// prevented it. Outcomes preserve the input file order.
type Outcome[T any] struct {
	Path  string
	Value T
	Err   error
}

// item holds a file path and its loaded content.
type item struct {
	index   int
	path    string
	content []byte
}

// MapSource reads each file from src and applies fn across a worker pool,
// giving each invocation a pooled parser. Content is read sequentially before
// the fan-out. Read failures and fn errors are reported per file rather than
// aborting the run. Progress is tracked via context using analyzer.WithTracker.
func MapSource[T any](ctx context.Context, files []string, src ContentSource, fn func(*parser.Parser, string, []byte) (T, error)) []Outcome[T] {
	return MapSourceN(ctx, files, src, 0, 0, fn)
}

// MapSourceN is MapSource with configurable worker count and file size limit.
// maxWorkers <= 0 defaults to 2x NumCPU; maxSize <= 0 disables the limit.
// Files over the limit fail with ErrFileTooLarge.
func MapSourceN[T any](ctx context.Context, files []string, src ContentSource, maxWorkers int, maxSize int64, fn func(*parser.Parser, string, []byte) (T, error)) []Outcome[T] {
	if len(files) == 0 {
		return nil
	}

	tracker := analyzer.TrackerFromContext(ctx)
	if tracker != nil {
		tracker.Add(len(files))
	}

	outcomes := make([]Outcome[T], len(files))
	loaded := make([]item, 0, len(files))
	for i, path := range files {
		outcomes[i].Path = path
		content, err := src.Read(path)
		if err != nil {
			outcomes[i].Err = err
			if tracker != nil {
				tracker.Tick(path)
			}
			continue
		}
		if maxSize > 0 && int64(len(content)) > maxSize {
			outcomes[i].Err = ErrFileTooLarge
			if tracker != nil {
				tracker.Tick(path)
			}
			continue
		}
		loaded = append(loaded, item{index: i, path: path, content: content})
	}

	maxWorkers = Workers(maxWorkers)
	parsers := newParserPool(maxWorkers)
	defer parsers.close()

	p := pool.New().WithMaxGoroutines(maxWorkers).WithContext(ctx)
	for _, it := range loaded {
		p.Go(func(ctx context.Context) error {
			defer func() {
				if tracker != nil {
					tracker.Tick(it.path)
				}
			}()

			select {
			case <-ctx.Done():
				outcomes[it.index].Err = ctx.Err()
				return ctx.Err()
			default:
			}

			psr := parsers.get()
			defer parsers.put(psr)

			value, err := fn(psr, it.path, it.content)
			if err != nil {
				outcomes[it.index].Err = err
				return nil // individual file errors don't stop the pool
			}
			outcomes[it.index].Value = value
			return nil
		})
	}
	_ = p.Wait() // context errors are already recorded per outcome

	return outcomes
}

// ForEachSource reads each file from src and applies fn across a worker pool
// without a parser. Files whose read or fn failed are silently skipped; the
// returned values are in arbitrary order.
func ForEachSource[T any](ctx context.Context, files []string, src ContentSource, fn func(string, []byte) (T, error)) []T {
	return ForEachSourceN(ctx, files, src, 0, 0, fn)
}

// ForEachSourceN is ForEachSource with configurable worker count and file
// size limit.
func ForEachSourceN[T any](ctx context.Context, files []string, src ContentSource, maxWorkers int, maxSize int64, fn func(string, []byte) (T, error)) []T {
	if len(files) == 0 {
		return nil
	}

	tracker := analyzer.TrackerFromContext(ctx)
	if tracker != nil {
		tracker.Add(len(files))
	}

	loaded := make([]item, 0, len(files))
	for _, path := range files {
		content, err := src.Read(path)
		if err != nil {
			if tracker != nil {
				tracker.Tick(path)
			}
			continue
		}
		if maxSize > 0 && int64(len(content)) > maxSize {
			if tracker != nil {
				tracker.Tick(path)
			}
			continue
		}
		loaded = append(loaded, item{path: path, content: content})
	}

	results := make([]T, 0, len(loaded))
	var mu sync.Mutex

	p := pool.New().WithMaxGoroutines(Workers(maxWorkers)).WithContext(ctx)
	for _, it := range loaded {
		p.Go(func(ctx context.Context) error {
			defer func() {
				if tracker != nil {
					tracker.Tick(it.path)
				}
			}()

			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			value, err := fn(it.path, it.content)
			if err != nil {
				return nil
			}

			mu.Lock()
			results = append(results, value)
			mu.Unlock()
			return nil
		})
	}
	_ = p.Wait()

	return results
}
