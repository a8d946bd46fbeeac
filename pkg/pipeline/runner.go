package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/linechart/pkg/cache"
	"github.com/matzehuels/linechart/pkg/dataset"
	chartio "github.com/matzehuels/linechart/pkg/io"
	"github.com/matzehuels/linechart/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and server use this to avoid duplicating caching logic.
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

// Execute runs the complete load → aggregate → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForLoad(); err != nil {
		return nil, err
	}
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}

	result := &Result{}

	// Stage 1: Load
	loadStart := time.Now()
	obs, err := r.Load(opts)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.Observations = len(obs)
	result.DatasetHash = cache.HashJSON(obs)

	// Stage 2: Aggregate
	aggStart := time.Now()
	summaries, hit, err := r.AggregateWithCacheInfo(ctx, obs, opts.Refresh)
	if err != nil {
		return nil, fmt.Errorf("aggregate: %w", err)
	}
	result.Summaries = summaries
	result.Stats.AggregateTime = time.Since(aggStart)
	result.Stats.Categories = len(summaries)
	result.CacheInfo.SummaryHit = hit

	r.Logger.Info("aggregated observations",
		"observations", len(obs),
		"categories", len(summaries),
		"duration", result.Stats.AggregateTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, summaries, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Load returns the options' observations, reading opts.Input when none
// were supplied inline.
func (r *Runner) Load(opts Options) ([]dataset.RawObservation, error) {
	if err := opts.ValidateForLoad(); err != nil {
		return nil, err
	}
	if opts.Observations != nil {
		return opts.Observations, nil
	}
	r.Logger.Debug("reading dataset", "path", opts.Input)
	return chartio.Import(opts.Input)
}

// AggregateWithCacheInfo validates and aggregates obs with caching and
// returns cache hit info. refresh bypasses the cache read.
func (r *Runner) AggregateWithCacheInfo(ctx context.Context, obs []dataset.RawObservation, refresh bool) ([]dataset.CategorySummary, bool, error) {
	hooks := observability.Pipeline()
	hooks.OnAggregateStart(ctx, len(obs))
	start := time.Now()

	if err := dataset.Validate(obs); err != nil {
		hooks.OnAggregateComplete(ctx, 0, time.Since(start), err)
		return nil, false, err
	}

	cacheKey := r.Keyer.SummaryKey(cache.HashJSON(obs))

	if !refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var cached []dataset.CategorySummary
			if err := json.Unmarshal(data, &cached); err == nil {
				observability.Cache().OnCacheHit(ctx, "summary")
				hooks.OnAggregateComplete(ctx, len(cached), time.Since(start), nil)
				return cached, true, nil
			}
		} else if err != nil {
			r.Logger.Warn("cache read failed", "key", cacheKey, "err", err)
		}
		observability.Cache().OnCacheMiss(ctx, "summary")
	}

	summaries := dataset.Aggregate(obs)
	hooks.OnAggregateComplete(ctx, len(summaries), time.Since(start), nil)

	if data, err := json.Marshal(summaries); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLSummary); err == nil {
			observability.Cache().OnCacheSet(ctx, "summary", len(data))
		} else {
			r.Logger.Warn("cache write failed", "key", cacheKey, "err", err)
		}
	}

	return summaries, false, nil
}

// Aggregate is a convenience wrapper that calls AggregateWithCacheInfo and discards the cache hit info.
func (r *Runner) Aggregate(ctx context.Context, obs []dataset.RawObservation) ([]dataset.CategorySummary, error) {
	s, _, err := r.AggregateWithCacheInfo(ctx, obs, false)
	return s, err
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, summaries []dataset.CategorySummary, opts Options) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()

	summaryHash := cache.HashJSON(summaries)

	// Try to get all formats from cache
	artifacts := make(map[string][]byte)
	if !opts.Refresh {
		for _, format := range opts.Formats {
			cacheKey := r.Keyer.ArtifactKey(summaryHash, opts.ArtifactKeyOpts(format))
			data, hit, err := r.Cache.Get(ctx, cacheKey)
			if err != nil || !hit {
				observability.Cache().OnCacheMiss(ctx, "artifact")
				break
			}
			observability.Cache().OnCacheHit(ctx, "artifact")
			artifacts[format] = data
		}
		if len(artifacts) == len(opts.Formats) {
			hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), nil)
			return artifacts, true, nil
		}
	}

	// Render all formats
	rendered, err := Render(summaries, opts)
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	// Cache each format
	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(summaryHash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact); err == nil {
			observability.Cache().OnCacheSet(ctx, "artifact", len(data))
		}
	}

	return rendered, false, nil
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, summaries []dataset.CategorySummary, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, summaries, opts)
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
