package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"

	"github.com/travelboss/daygrid/pkg/cache"
	"github.com/travelboss/daygrid/pkg/errors"
	"github.com/travelboss/daygrid/pkg/event"
	"github.com/travelboss/daygrid/pkg/layout"
	"github.com/travelboss/daygrid/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache, feed client, and logger -
// it doesn't store pipeline results. Multiple goroutines can safely use
// the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Feeds  FeedFetcher
	Logger *log.Logger
}

// FeedFetcher retrieves raw ICS bodies. [ics.Client] is the standard
// implementation; tests substitute fakes.
type FeedFetcher interface {
	Fetch(ctx context.Context, url string, refresh bool) ([]byte, error)
}

// NewRunner creates a runner with the given cache, keyer, and feed client.
// If keyer is nil, a DefaultKeyer is used.
// If c is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, feeds FeedFetcher, logger *log.Logger) *Runner {
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
		Feeds:  feeds,
		Logger: logger,
	}
}

// Execute runs the complete load → layout → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "invalid options")
	}
	r.applyLogger(&opts)

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Load
	loadStart := time.Now()
	observability.Pipeline().OnLoadStart(ctx, opts.SourceName)
	events, loadHit, err := r.LoadWithCacheInfo(ctx, opts)
	observability.Pipeline().OnLoadComplete(ctx, opts.SourceName, len(events), time.Since(loadStart), err)
	if err != nil {
		return nil, errors.Wrap(errors.GetCode(err), err, "load")
	}
	result.Events = events
	result.EventsHash = HashEvents(events)
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.EventCount = len(events)
	result.CacheInfo.LoadHit = loadHit

	r.Logger.Info("loaded events",
		"events", len(events),
		"date", opts.Date,
		"duration", result.Stats.LoadTime)

	// Stage 2: Layout
	layoutStart := time.Now()
	observability.Pipeline().OnLayoutStart(ctx, len(events))
	styled, layoutHit, err := r.ComputeLayoutWithCacheInfo(ctx, events, opts)
	observability.Pipeline().OnLayoutComplete(ctx, time.Since(layoutStart), err)
	if err != nil {
		return nil, errors.Wrap(errors.GetCode(err), err, "layout")
	}
	result.Styled = styled
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.CacheInfo.LayoutHit = layoutHit

	r.Logger.Info("computed layout",
		"positioned", len(styled),
		"duration", result.Stats.LayoutTime)

	// Stage 3: Render
	renderStart := time.Now()
	observability.Pipeline().OnRenderStart(ctx, opts.Formats)
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, styled, opts)
	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(renderStart), err)
	if err != nil {
		return nil, errors.Wrap(errors.GetCode(err), err, "render")
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// LoadWithCacheInfo loads and expands events with caching and returns cache hit info.
func (r *Runner) LoadWithCacheInfo(ctx context.Context, opts Options) ([]event.Event, bool, error) {
	if err := opts.ValidateForLoad(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	// Inline events skip fetching and caching entirely.
	if len(opts.Events) > 0 {
		return opts.Events, false, nil
	}

	body, err := r.loadBody(ctx, opts)
	if err != nil {
		return nil, false, err
	}

	feedHash := cache.Hash(body)
	cacheKey := r.Keyer.EventsKey(feedHash, opts.Date)

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			observability.Cache().OnCacheHit(ctx, "events")
			var events []event.Event
			if err := json.Unmarshal(data, &events); err == nil {
				return events, true, nil // Cache hit
			}
		}
		observability.Cache().OnCacheMiss(ctx, "events")
	}

	events, err := expandBody(body, opts)
	if err != nil {
		return nil, false, err
	}

	if data, err := json.Marshal(events); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLFeed)
		observability.Cache().OnCacheSet(ctx, "events", len(data))
	}

	return events, false, nil // Cache miss
}

// Load is a convenience wrapper that calls LoadWithCacheInfo and discards the cache hit info.
func (r *Runner) Load(ctx context.Context, opts Options) ([]event.Event, error) {
	events, _, err := r.LoadWithCacheInfo(ctx, opts)
	return events, err
}

// ComputeLayoutWithCacheInfo positions events with caching and returns cache hit info.
func (r *Runner) ComputeLayoutWithCacheInfo(ctx context.Context, events []event.Event, opts Options) ([]layout.Styled[event.Event], bool, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	cacheKey := r.Keyer.LayoutKey(HashEvents(events), opts.LayoutKeyOpts())

	if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
		observability.Cache().OnCacheHit(ctx, "layout")
		var cached []layout.Styled[event.Event]
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, true, nil // Cache hit
		}
		// If deserialization fails, fall through to recompute
	}
	observability.Cache().OnCacheMiss(ctx, "layout")

	styled, err := computeLayout(events, opts)
	if err != nil {
		return nil, false, err
	}

	if data, err := json.Marshal(styled); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLLayout)
		observability.Cache().OnCacheSet(ctx, "layout", len(data))
	}

	return styled, false, nil // Cache miss
}

// ComputeLayout is a convenience wrapper that calls ComputeLayoutWithCacheInfo and discards the cache hit info.
func (r *Runner) ComputeLayout(ctx context.Context, events []event.Event, opts Options) ([]layout.Styled[event.Event], error) {
	styled, _, err := r.ComputeLayoutWithCacheInfo(ctx, events, opts)
	return styled, err
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, styled []layout.Styled[event.Event], opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return nil, false, err
	}
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	layoutData, err := json.Marshal(styled)
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeInternal, err, "serialize layout for cache key")
	}
	layoutHash := cache.Hash(layoutData)

	// Try to get all formats from cache
	allCached := true
	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		cacheKey := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			artifacts[format] = data
		} else {
			allCached = false
			break
		}
	}

	if allCached && len(artifacts) == len(opts.Formats) {
		observability.Cache().OnCacheHit(ctx, "artifact")
		return artifacts, true, nil // All artifacts from cache
	}

	rendered, err := renderFormats(styled, opts)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact)
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}

	return rendered, false, nil // Cache miss
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, styled []layout.Styled[event.Event], opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, styled, opts)
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

// HashEvents computes a stable content hash of an event slice for cache
// keys and API responses.
func HashEvents(events []event.Event) string {
	data, _ := json.Marshal(events)
	return cache.Hash(data)
}
