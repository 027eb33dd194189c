// Package measure extracts per-file quality metrics from source content:
// cyclomatic complexity, maintainability index, function counts as a
// cohesion proxy, and import counts as a coupling proxy. Samples feed the
// per-commit aggregation in pkg/analyzer/history.
package measure

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/panbanda/strata/internal/cache"
	"github.com/panbanda/strata/pkg/parser"
)

// Sample holds the metrics extracted from a single file at a single commit.
type Sample struct {
	// Cyclomatic is the summed cyclomatic complexity of every function in
	// the file (1 + decision points each).
	Cyclomatic uint32 `json:"cyclomatic"`

	// Maintainability is the normalized 0-100 maintainability index.
	// Computed only for configured extensions; zero otherwise.
	Maintainability float64 `json:"maintainability"`

	// Functions is the number of function definitions (cohesion proxy).
	Functions int `json:"functions"`

	// Imports is the number of import statements (coupling proxy).
	Imports int `json:"imports"`
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithMaintainabilityExtensions sets the file extensions eligible for
// maintainability index computation. Extensions are matched case-insensitively
// and include the leading dot.
func WithMaintainabilityExtensions(exts []string) Option {
	return func(e *Extractor) {
		e.miExts = make(map[string]bool, len(exts))
		for _, ext := range exts {
			e.miExts[strings.ToLower(ext)] = true
		}
	}
}

// WithCache persists samples across runs, keyed by content hash. Identical
// blobs seen in later runs skip parsing entirely.
func WithCache(c *cache.Cache) Option {
	return func(e *Extractor) {
		e.cache = c
	}
}

// Extractor computes metric samples from file content. Identical content is
// measured once: a run-local memo keyed by xxhash backs every call, and an
// optional file cache extends that across runs. Safe for concurrent use;
// callers supply the (non-shareable) parser.
type Extractor struct {
	miExts map[string]bool
	cache  *cache.Cache

	mu   sync.RWMutex
	memo map[uint64]Sample
}

// New creates an extractor. By default only .py files receive a
// maintainability index.
func New(opts ...Option) *Extractor {
	e := &Extractor{
		miExts: map[string]bool{".py": true},
		memo:   make(map[uint64]Sample),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Measure parses content and extracts its metric sample. The language is
// detected from the path extension; unsupported extensions fail, which
// callers treat as a per-file skip.
func (e *Extractor) Measure(psr *parser.Parser, path string, content []byte) (Sample, error) {
	lang := parser.DetectLanguage(path)
	if lang == parser.LangUnknown {
		return Sample{}, fmt.Errorf("unsupported language: %s", path)
	}

	ext := strings.ToLower(filepath.Ext(path))
	key := memoKey(ext, content)
	if sample, ok := e.lookupMemo(key); ok {
		return sample, nil
	}
	if sample, ok := e.lookupCache(ext, content); ok {
		e.storeMemo(key, sample)
		return sample, nil
	}

	result, err := psr.Parse(content, lang, path)
	if err != nil {
		return Sample{}, fmt.Errorf("parse %s: %w", path, err)
	}

	var sample Sample
	functions := parser.GetFunctions(result)
	sample.Functions = len(functions)
	for _, fn := range functions {
		sample.Cyclomatic += functionComplexity(fn, result)
	}
	sample.Imports = countImports(result)

	if e.miExts[ext] {
		volume := halsteadVolume(result.Tree.RootNode(), content, lang)
		sample.Maintainability = maintainabilityIndex(volume, sample.Cyclomatic, countSourceLines(content))
	}

	e.storeMemo(key, sample)
	e.storeCache(ext, content, sample)
	return sample, nil
}

func (e *Extractor) lookupMemo(key uint64) (Sample, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	sample, ok := e.memo[key]
	return sample, ok
}

func (e *Extractor) storeMemo(key uint64, sample Sample) {
	e.mu.Lock()
	e.memo[key] = sample
	e.mu.Unlock()
}

func (e *Extractor) lookupCache(ext string, content []byte) (Sample, bool) {
	if e.cache == nil {
		return Sample{}, false
	}
	data, ok := e.cache.Get(cacheKey(ext, content))
	if !ok {
		return Sample{}, false
	}
	var sample Sample
	if err := json.Unmarshal(data, &sample); err != nil {
		return Sample{}, false
	}
	return sample, true
}

func (e *Extractor) storeCache(ext string, content []byte, sample Sample) {
	if e.cache == nil {
		return
	}
	data, err := json.Marshal(sample)
	if err != nil {
		return
	}
	_ = e.cache.Set(cacheKey(ext, content), data)
}

// memoKey hashes extension and content together: the extension decides
// maintainability eligibility, so the same bytes under different extensions
// are distinct samples.
func memoKey(ext string, content []byte) uint64 {
	d := xxhash.New()
	_, _ = d.WriteString(ext)
	_, _ = d.Write([]byte{0})
	_, _ = d.Write(content)
	return d.Sum64()
}

func cacheKey(ext string, content []byte) string {
	return "measure:" + ext + ":" + cache.HashBytes(content)
}
