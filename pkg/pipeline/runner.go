package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/wordcloud/pkg/cache"
	"github.com/matzehuels/wordcloud/pkg/cloud"
	apperrors "github.com/matzehuels/wordcloud/pkg/errors"
	"github.com/matzehuels/wordcloud/pkg/observability"
	"github.com/matzehuels/wordcloud/pkg/terms"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger - it doesn't store
// pipeline results. Multiple goroutines can safely use the same Runner with
// different options; each invocation owns its canvas exclusively.
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

// Execute runs the complete aggregate → layout → render pipeline with
// caching. An EMPTY_INPUT error means the entries contained nothing usable;
// callers should treat that as a normal empty state, not a failure.
func (r *Runner) Execute(ctx context.Context, entries []string, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{
		ID:        uuid.New(),
		Artifacts: make(map[string][]byte),
	}
	result.Stats.EntryCount = len(entries)

	// Stage 1: Aggregate
	aggStart := time.Now()
	observability.Pipeline().OnAggregateStart(ctx, opts.Mode, len(entries))
	ranked, termsHit, err := r.AggregateWithCacheInfo(ctx, entries, opts)
	observability.Pipeline().OnAggregateComplete(ctx, opts.Mode, len(ranked), time.Since(aggStart), err)
	if err != nil {
		return nil, err
	}
	result.Terms = ranked
	result.Stats.AggregateTime = time.Since(aggStart)
	result.Stats.TermCount = len(ranked)
	result.CacheInfo.TermsHit = termsHit

	r.Logger.Info("aggregated terms",
		"id", result.ID,
		"entries", len(entries),
		"terms", len(ranked),
		"mode", opts.Mode,
		"duration", result.Stats.AggregateTime)

	// Stage 2: Layout
	layoutStart := time.Now()
	observability.Pipeline().OnLayoutStart(ctx, len(ranked))
	l, layoutHit, err := r.ComputeLayoutWithCacheInfo(ctx, ranked, opts)
	observability.Pipeline().OnLayoutComplete(ctx, len(l.Placed), len(l.Skipped), time.Since(layoutStart), err)
	if err != nil {
		return nil, err
	}
	result.Layout = l
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.Stats.PlacedCount = len(l.Placed)
	result.Stats.SkippedCount = len(l.Skipped)
	result.CacheInfo.LayoutHit = layoutHit

	r.Logger.Info("computed layout",
		"id", result.ID,
		"placed", len(l.Placed),
		"skipped", len(l.Skipped),
		"duration", result.Stats.LayoutTime)

	// Stage 3: Render
	renderStart := time.Now()
	observability.Pipeline().OnRenderStart(ctx, opts.Formats)
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, l, opts)
	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(renderStart), err)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"id", result.ID,
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// AggregateWithCacheInfo aggregates entries with caching and returns cache
// hit info. Returns an EMPTY_INPUT error when no usable terms remain.
func (r *Runner) AggregateWithCacheInfo(ctx context.Context, entries []string, opts Options) ([]cloud.WeightedTerm, bool, error) {
	if err := opts.ValidateForAggregate(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	cacheKey := r.Keyer.TermsKey(cache.HashStrings(entries), opts.TermsKeyOpts())

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			observability.Cache().OnCacheHit(ctx, "terms")
			if cached, err := cloud.UnmarshalTerms(data); err == nil {
				if len(cached) == 0 {
					return nil, true, apperrors.New(apperrors.ErrCodeEmptyInput, "no usable terms after aggregation")
				}
				return cached, true, nil
			}
			// Corrupt entry - recompute below
		} else {
			observability.Cache().OnCacheMiss(ctx, "terms")
		}
	}

	aggOpts, err := opts.aggregateOptions()
	if err != nil {
		return nil, false, err
	}
	ranked, err := terms.Aggregate(entries, aggOpts)
	if err != nil {
		return nil, false, err
	}

	if data, err := cloud.MarshalTerms(ranked); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLTerms)
		observability.Cache().OnCacheSet(ctx, "terms", len(data))
	}

	if len(ranked) == 0 {
		return nil, false, apperrors.New(apperrors.ErrCodeEmptyInput, "no usable terms after aggregation")
	}
	return ranked, false, nil
}

// Aggregate is a convenience wrapper that calls AggregateWithCacheInfo and
// discards the cache hit info.
func (r *Runner) Aggregate(ctx context.Context, entries []string, opts Options) ([]cloud.WeightedTerm, error) {
	ranked, _, err := r.AggregateWithCacheInfo(ctx, entries, opts)
	return ranked, err
}

// ComputeLayoutWithCacheInfo computes a layout with caching and returns
// cache hit info.
func (r *Runner) ComputeLayoutWithCacheInfo(ctx context.Context, ranked []cloud.WeightedTerm, opts Options) (cloud.Layout, bool, error) {
	opts.SetLayoutDefaults()
	r.applyLogger(&opts)

	termsData, err := cloud.MarshalTerms(ranked)
	if err != nil {
		return cloud.Layout{}, false, fmt.Errorf("serialize terms for cache key: %w", err)
	}
	cacheKey := r.Keyer.LayoutKey(cache.Hash(termsData), opts.LayoutKeyOpts())

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			observability.Cache().OnCacheHit(ctx, "layout")
			if cached, err := cloud.UnmarshalLayout(data); err == nil {
				return cached, true, nil
			}
			// If deserialization fails, fall through to recompute
		} else {
			observability.Cache().OnCacheMiss(ctx, "layout")
		}
	}

	l, err := GenerateLayout(ranked, opts)
	if err != nil {
		return cloud.Layout{}, false, err
	}

	if data, err := cloud.MarshalLayout(l); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLLayout)
		observability.Cache().OnCacheSet(ctx, "layout", len(data))
	}

	return l, false, nil
}

// ComputeLayout is a convenience wrapper that calls
// ComputeLayoutWithCacheInfo and discards the cache hit info.
func (r *Runner) ComputeLayout(ctx context.Context, ranked []cloud.WeightedTerm, opts Options) (cloud.Layout, error) {
	l, _, err := r.ComputeLayoutWithCacheInfo(ctx, ranked, opts)
	return l, err
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit
// info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, l cloud.Layout, opts Options) (map[string][]byte, bool, error) {
	opts.SetLayoutDefaults()
	opts.SetRenderDefaults()
	if err := ValidateFormats(opts.Formats); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	layoutData, err := cloud.MarshalLayout(l)
	if err != nil {
		return nil, false, fmt.Errorf("serialize layout for cache key: %w", err)
	}
	layoutHash := cache.Hash(layoutData)

	// Try to get all formats from cache
	allCached := true
	artifacts := make(map[string][]byte)

	if !opts.Refresh {
		for _, format := range opts.Formats {
			cacheKey := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
			if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
				observability.Cache().OnCacheHit(ctx, "artifact")
				artifacts[format] = data
			} else {
				observability.Cache().OnCacheMiss(ctx, "artifact")
				allCached = false
				break
			}
		}

		if allCached && len(artifacts) == len(opts.Formats) {
			return artifacts, true, nil // All artifacts from cache
		}
	}

	rendered, err := Render(l, opts)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact)
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}

	return rendered, false, nil
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and
// discards the cache hit info.
func (r *Runner) Render(ctx context.Context, l cloud.Layout, opts Options) (map[string][]byte, error) {
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
