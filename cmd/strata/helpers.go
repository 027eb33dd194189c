package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/panbanda/strata/internal/cache"
	"github.com/panbanda/strata/internal/output"
	"github.com/panbanda/strata/internal/remote"
	"github.com/panbanda/strata/pkg/config"
	"github.com/panbanda/strata/pkg/measure"
)

// loadConfig loads the config file named by --config, or searches the
// standard locations.
func loadConfig() (*config.Config, error) {
	if cfgFile != "" {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config %q: %w", cfgFile, err)
		}
		return cfg, nil
	}
	return config.LoadOrDefault(), nil
}

// getFormat resolves the output format: flag first, then config.
func getFormat(cfg *config.Config) output.Format {
	if formatName != "" {
		return output.ParseFormat(formatName)
	}
	return output.ParseFormat(cfg.Output.Format)
}

// newFormatter builds the formatter from the persistent flags and config.
func newFormatter(cfg *config.Config) (*output.Formatter, error) {
	return output.NewFormatter(getFormat(cfg), outputFile, cfg.Output.Color)
}

// getWindow resolves a window duration: flag value first, then the config
// default.
func getWindow(flagValue, cfgValue string) (time.Duration, error) {
	s := flagValue
	if s == "" {
		s = cfgValue
	}
	window, err := config.ParseWindow(s)
	if err != nil {
		return 0, err
	}
	return window, nil
}

// repoTarget is a resolved positional argument: a local path, possibly
// backed by a temporary clone of a remote repository.
type repoTarget struct {
	Path    string
	Name    string
	cleanup func()
}

// Cleanup removes the temporary clone, if any.
func (t *repoTarget) Cleanup() {
	if t.cleanup != nil {
		t.cleanup()
	}
}

// resolveRepo turns a positional argument into a local repository path.
// Remote URLs and GitHub shorthand are cloned to a temp directory; the
// caller must Cleanup. An explicit ref overrides any path@ref suffix.
func resolveRepo(ctx context.Context, arg, ref string) (*repoTarget, error) {
	src, err := remote.Parse(arg)
	if err != nil {
		return nil, err
	}
	if src == nil {
		abs, err := filepath.Abs(arg)
		if err != nil {
			return nil, err
		}
		return &repoTarget{
			Path: abs,
			Name: filepath.Base(abs),
		}, nil
	}

	if ref != "" {
		src.Ref = ref
	}

	var cloneProgress io.Writer = io.Discard
	if verbose {
		cloneProgress = os.Stderr
	}
	// Full clone: the history walk needs every commit in the window.
	if err := src.Clone(ctx, cloneProgress, false); err != nil {
		return nil, err
	}
	return &repoTarget{
		Path:    src.CloneDir,
		Name:    src.Name(),
		cleanup: src.Cleanup,
	}, nil
}

// newExtractor builds the measurement extractor, wiring the persistent
// result cache unless --no-cache is set.
func newExtractor(cfg *config.Config) *measure.Extractor {
	opts := []measure.Option{
		measure.WithMaintainabilityExtensions(cfg.Analysis.MaintainabilityExtensions),
	}
	if cfg.Cache.Enabled && !noCache {
		c, err := cache.New(cfg.CacheDir(cache.DefaultDir()), cfg.Cache.TTL, true)
		if err == nil {
			opts = append(opts, measure.WithCache(c))
		} else if verbose {
			fmt.Fprintf(os.Stderr, "cache disabled: %v\n", err)
		}
	}
	return measure.New(opts...)
}

// singlePathArg returns the repository argument, defaulting to ".".
func singlePathArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return "."
}
