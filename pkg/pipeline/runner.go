package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/euclid-tools/densify/pkg/cache"
	"github.com/euclid-tools/densify/pkg/densify"
	"github.com/euclid-tools/densify/pkg/geom"
	pkgio "github.com/euclid-tools/densify/pkg/io"
	"github.com/euclid-tools/densify/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use this to avoid duplicating caching logic.
//
// The Runner holds no per-run state, so multiple goroutines can share one
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

// denseEntry is the cached form of a densify stage result.
type denseEntry struct {
	Graph json.RawMessage `json:"graph"`
	Stats densify.Stats   `json:"stats"`
}

// Execute runs the complete densify → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, g geom.Graph, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{
		RunID:     uuid.NewString(),
		GraphHash: graphHash(g),
	}
	logger := r.Logger.With("run", result.RunID)

	// Stage 1: Densify
	densifyStart := time.Now()
	dense, stats, hit, err := r.DensifyWithCacheInfo(ctx, g, opts)
	if err != nil {
		return nil, fmt.Errorf("densify: %w", err)
	}
	result.Dense = dense
	result.DenseHash = graphHash(dense)
	result.Stats.Stats = stats
	result.Stats.DensifyTime = time.Since(densifyStart)
	result.CacheInfo.DensifyHit = hit

	logger.Info("densified graph",
		"segments", stats.Input,
		"output", stats.Output,
		"cached", hit,
		"duration", result.Stats.DensifyTime)

	// Stage 2: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, g, dense, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// DensifyWithCacheInfo densifies g with caching and reports whether the
// result came from the cache. Refresh skips the lookup but still stores the
// fresh result.
func (r *Runner) DensifyWithCacheInfo(ctx context.Context, g geom.Graph, opts Options) (geom.Graph, densify.Stats, bool, error) {
	if err := opts.ValidateForDensify(); err != nil {
		return nil, densify.Stats{}, false, err
	}
	hooks := observability.Pipeline()
	cacheHooks := observability.Cache()

	cacheKey := r.Keyer.DenseKey(graphHash(g), opts.DenseKeyOpts())

	if !opts.Refresh {
		if dense, stats, ok := r.cachedDense(ctx, cacheKey); ok {
			cacheHooks.OnCacheHit(ctx, "dense")
			return dense, stats, true, nil
		}
		cacheHooks.OnCacheMiss(ctx, "dense")
	}

	start := time.Now()
	hooks.OnDensifyStart(ctx, len(g), opts.Step)
	dense, stats, err := densify.GraphStats(ctx, g, opts.Step, opts.DensifyOptions())
	hooks.OnDensifyComplete(ctx, stats.Output, stats.Points, time.Since(start), err)
	if err != nil {
		return nil, densify.Stats{}, false, err
	}

	if data, err := pkgio.MarshalGraph(dense); err == nil {
		if entry, err := json.Marshal(denseEntry{Graph: data, Stats: stats}); err == nil {
			if err := r.Cache.Set(ctx, cacheKey, entry, cache.TTLDense); err != nil {
				r.Logger.Warn("cache write failed", "key", cacheKey, "error", err)
			} else {
				cacheHooks.OnCacheSet(ctx, "dense", len(entry))
			}
		}
	}

	return dense, stats, false, nil
}

func (r *Runner) cachedDense(ctx context.Context, key string) (geom.Graph, densify.Stats, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "key", key, "error", err)
		return nil, densify.Stats{}, false
	}
	if !hit {
		return nil, densify.Stats{}, false
	}

	var entry denseEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		r.Logger.Debug("discarding cache entry", "key", key, "error", fmt.Errorf("%w: %w", cache.ErrCorrupt, err))
		return nil, densify.Stats{}, false
	}
	dense, err := pkgio.ReadJSON(bytes.NewReader(entry.Graph))
	if err != nil {
		r.Logger.Debug("discarding cache entry", "key", key, "error", fmt.Errorf("%w: %w", cache.ErrCorrupt, err))
		return nil, densify.Stats{}, false
	}
	return dense, entry.Stats, true
}

// Densify is a convenience wrapper that calls DensifyWithCacheInfo and discards the cache hit info.
func (r *Runner) Densify(ctx context.Context, g geom.Graph, opts Options) (geom.Graph, densify.Stats, error) {
	dense, stats, _, err := r.DensifyWithCacheInfo(ctx, g, opts)
	return dense, stats, err
}

// RenderWithCacheInfo generates artifacts with caching and reports whether
// every artifact came from the cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, original, dense geom.Graph, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	cacheHooks := observability.Cache()

	renderHash := cache.Hash([]byte(graphHash(original) + graphHash(dense)))

	artifacts := make(map[string][]byte, len(opts.Formats))
	var missing []string
	for _, format := range opts.Formats {
		if opts.Refresh {
			missing = append(missing, format)
			continue
		}
		key := r.Keyer.ArtifactKey(renderHash, opts.ArtifactKeyOpts(format))
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			cacheHooks.OnCacheHit(ctx, "artifact")
			artifacts[format] = data
		} else {
			cacheHooks.OnCacheMiss(ctx, "artifact")
			missing = append(missing, format)
		}
	}

	if len(missing) == 0 {
		return artifacts, true, nil
	}

	hooks := observability.Pipeline()
	start := time.Now()
	hooks.OnRenderStart(ctx, missing)
	renderOpts := opts
	renderOpts.Formats = missing
	rendered, err := Render(ctx, original, dense, renderOpts)
	hooks.OnRenderComplete(ctx, missing, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		key := r.Keyer.ArtifactKey(renderHash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err != nil {
			r.Logger.Warn("cache write failed", "key", key, "error", err)
		} else {
			cacheHooks.OnCacheSet(ctx, "artifact", len(data))
		}
		artifacts[format] = data
	}

	return artifacts, false, nil
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, original, dense geom.Graph, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, original, dense, opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// graphHash returns the content hash of g's compact JSON encoding.
func graphHash(g geom.Graph) string {
	data, err := pkgio.MarshalGraph(g)
	if err != nil {
		return ""
	}
	return cache.Hash(data)
}
