package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/flowter/pkg/cache"
	"github.com/matzehuels/flowter/pkg/core/render/flowchart/layout"
	"github.com/matzehuels/flowter/pkg/graph"
	"github.com/matzehuels/flowter/pkg/observability"
)

// cacheKeyType labels artifact cache events.
const cacheKeyType = "artifact"

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete parse → layout → render pipeline.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{}

	// Stage 1: Parse
	parseStart := time.Now()
	doc, hash, err := Parse(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	result.Document = doc
	result.DocumentHash = hash
	result.Stats.ParseTime = time.Since(parseStart)

	opts.Logger.Debug("parsed document",
		"nodes", len(doc.Nodes),
		"edges", len(doc.Edges),
		"format", opts.InputFormat,
		"duration", result.Stats.ParseTime)

	// Stage 2: Layout
	layoutStart := time.Now()
	l, err := r.Layout(ctx, doc, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Layout = l
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.Stats.NodeCount = len(l.Order)
	result.Stats.EdgeCount = len(l.Edges)
	result.Stats.RowCount = len(l.Rows)

	opts.Logger.Info("computed layout",
		"mode", l.Mode,
		"rows", len(l.Rows),
		"nodes", len(l.Order),
		"edges", len(l.Edges),
		"duration", result.Stats.LayoutTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, info, err := r.RenderWithCacheInfo(ctx, l, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.CacheInfo = info
	result.Stats.RenderTime = time.Since(renderStart)

	opts.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", info.ArtifactHits,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Layout computes the geometry of doc. Nodes missing from every edge are
// reported at debug level since they are not drawn.
func (r *Runner) Layout(ctx context.Context, doc graph.Document, opts Options) (layout.Layout, error) {
	r.applyLogger(&opts)
	l, err := Layout(ctx, doc, opts)
	if err != nil {
		return layout.Layout{}, err
	}
	if skipped := len(doc.Nodes) - len(l.Order); skipped > 0 {
		opts.Logger.Debug("skipped nodes without edges", "count", skipped)
	}
	return l, nil
}

// RenderWithCacheInfo generates artifacts and reports cache usage. SVG and
// text formats are always rendered; PNG and PDF are looked up by the SVG
// hash first unless opts.Refresh is set.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, l layout.Layout, opts Options) (map[string][]byte, CacheInfo, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, CacheInfo{}, err
	}

	svg, err := RenderSVG(l, opts)
	if err != nil {
		return nil, CacheInfo{}, err
	}
	svgHash := cache.Hash(svg)

	var (
		info      CacheInfo
		cacheable int
	)
	artifacts := make(map[string][]byte, len(opts.Formats))
	hooks := observability.Cache()

	for _, format := range opts.Formats {
		if !IsCacheable(format) {
			data, err := renderFormat(ctx, l, svg, format, opts)
			if err != nil {
				return nil, CacheInfo{}, err
			}
			artifacts[format] = data
			continue
		}

		cacheable++
		key := r.Keyer.ArtifactKey(svgHash, opts.ArtifactKeyOpts(format))
		if !opts.Refresh {
			data, hit, err := r.Cache.Get(ctx, key)
			if err != nil {
				opts.Logger.Warn("cache read failed", "format", format, "error", err)
			}
			if err == nil && hit {
				hooks.OnCacheHit(ctx, cacheKeyType)
				artifacts[format] = data
				info.ArtifactHits++
				continue
			}
			hooks.OnCacheMiss(ctx, cacheKeyType)
		}

		data, err := renderFormat(ctx, l, svg, format, opts)
		if err != nil {
			return nil, CacheInfo{}, err
		}
		artifacts[format] = data

		if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err != nil {
			opts.Logger.Warn("cache write failed", "format", format, "error", err)
		} else {
			hooks.OnCacheSet(ctx, cacheKeyType, len(data))
		}
	}

	info.RenderHit = cacheable > 0 && info.ArtifactHits == cacheable
	return artifacts, info, nil
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, l layout.Layout, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, l, opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
