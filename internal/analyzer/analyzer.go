// Package analyzer is the façade callers invoke per request: it wraps the
// extract→aggregate pipeline in the two-tier result cache and exposes the
// satisfaction relation on top of the extracted facts. Analysis failures
// degrade to an empty result so a caller's update path never has to handle
// an error from this layer.
package analyzer

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/implhint/implhint/internal/aggregator"
	"github.com/implhint/implhint/internal/cache"
	"github.com/implhint/implhint/internal/extractor"
	"github.com/implhint/implhint/internal/facts"
	"github.com/implhint/implhint/internal/resolver"
)

// Options configures an Analyzer. Zero values select all defaults.
type Options struct {
	Cache    cache.Options
	Resolver resolver.Options
}

// Analyzer owns the result cache and runs the analysis pipeline.
type Analyzer struct {
	cache  *cache.Cache
	opts   Options
	logger *slog.Logger
}

// New returns an Analyzer ready to serve requests.
func New(opts Options, logger *slog.Logger) *Analyzer {
	return &Analyzer{
		cache:  cache.New(opts.Cache),
		opts:   opts,
		logger: logger.With("component", "analyzer"),
	}
}

// AnalyzeFile returns the facts for the package owning path, served from
// cache when fresh. It never returns an error: an unreadable file, an
// unreadable directory, or a cancelled context all yield an empty result.
func (a *Analyzer) AnalyzeFile(ctx context.Context, path string) *facts.Result {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}

	if result, ok := a.cache.GetFile(abs); ok {
		a.logger.Debug("file cache hit", "file", abs)
		return result
	}
	dir := filepath.Dir(abs)
	if result, ok := a.cache.GetPackage(dir); ok {
		a.logger.Debug("package cache hit", "file", abs, "package", dir)
		return result
	}

	if err := ctx.Err(); err != nil {
		a.logger.Warn("analysis cancelled", "file", abs, "error", err)
		return facts.NewResult()
	}

	result, err := extractor.ForFile(abs, a.logger)
	if err != nil {
		a.logger.Warn("extraction failed, returning empty result", "file", abs, "error", err)
		return facts.NewResult()
	}

	a.cache.Put(abs, result)

	a.logger.Info("analysis complete", "file", abs, "packages", len(result.Packages))
	return result
}

// Satisfaction computes the interface-satisfaction relation for every
// package in a result, keyed by package directory path.
func (a *Analyzer) Satisfaction(result *facts.Result) map[string]*resolver.Resolution {
	out := make(map[string]*resolver.Resolution, len(result.Packages))
	for dir, pkg := range result.Packages {
		idx := aggregator.Index(pkg)
		out[dir] = resolver.Resolve(idx, a.opts.Resolver, a.logger)
	}
	return out
}

// Invalidate drops the cached entries for path and its owning package.
func (a *Analyzer) Invalidate(path string) {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	a.cache.InvalidateFile(abs)
	a.logger.Debug("cache invalidated", "file", abs)
}

// InvalidateAll drops every cached entry.
func (a *Analyzer) InvalidateAll() {
	a.cache.InvalidateAll()
	a.logger.Debug("cache cleared")
}
