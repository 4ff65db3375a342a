package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/tagcloud/pkg/cache"
	"github.com/matzehuels/tagcloud/pkg/errors"
	"github.com/matzehuels/tagcloud/pkg/observability"
	"github.com/matzehuels/tagcloud/pkg/render/sink"
	"github.com/matzehuels/tagcloud/pkg/words"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and server use this to avoid duplicating caching logic.
//
// The Runner is stateless except for its collaborators; it doesn't store
// pipeline results. Multiple goroutines can safely use the same Runner with
// different options.
type Runner struct {
	Cache    cache.Cache
	Keyer    cache.Keyer
	Logger   *log.Logger
	Sources  *words.Registry
	Encoders sink.Encoders

	hooks observability.Hooks
}

// RunnerOption configures optional Runner collaborators.
type RunnerOption func(*Runner)

// WithHooks reports stage and cache events to h.
func WithHooks(h observability.Hooks) RunnerOption {
	return func(r *Runner) { r.hooks = h }
}

// WithSources replaces the word sources.
func WithSources(reg *words.Registry) RunnerOption {
	return func(r *Runner) { r.Sources = reg }
}

// WithEncoders replaces the raster encoders.
func WithEncoders(enc sink.Encoders) RunnerOption {
	return func(r *Runner) { r.Encoders = enc }
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer without prefix is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger, opts ...RunnerOption) *Runner {
	if keyer == nil {
		keyer = cache.NewKeyer("")
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	r := &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.Sources == nil {
		r.Sources = words.NewRegistry(words.DefaultSources()...)
	}
	if r.Encoders == nil {
		r.Encoders = sink.DefaultEncoders()
	}
	r.hooks = r.hooks.OrNoop()
	return r
}

// Execute runs the complete read → layout → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result := &Result{}

	// Stage 1: Read
	readStart := time.Now()
	freqs, raw, err := r.readWords(ctx, opts)
	if err != nil {
		return nil, err
	}
	result.Frequencies = freqs
	result.Stats.RawWords = raw
	result.Stats.UniqueWords = len(freqs)
	result.Stats.ReadTime = time.Since(readStart)

	r.Logger.Info("counted words",
		"raw", raw,
		"unique", len(freqs),
		"duration", result.Stats.ReadTime)

	// Stage 2: Layout
	layoutStart := time.Now()
	c, layoutHit, err := r.BuildCloudWithCacheInfo(ctx, freqs, opts)
	if err != nil {
		return nil, err
	}
	result.Cloud = c
	result.Stats.Placed = len(c.Tags)
	result.Stats.SpiralSteps = c.SpiralSteps
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.CacheInfo.LayoutHit = layoutHit

	r.Logger.Info("laid out cloud",
		"words", len(c.Tags),
		"spiral_steps", c.SpiralSteps,
		"cached", layoutHit,
		"duration", result.Stats.LayoutTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, c, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// cacheGet looks up key and reports the outcome to the cache hooks. Backend
// errors are logged and treated as misses.
func (r *Runner) cacheGet(ctx context.Context, keyType, key string, refresh bool) ([]byte, bool) {
	if refresh {
		return nil, false
	}
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "type", keyType, "error", err)
	}
	if err != nil || !hit {
		r.hooks.Cache.OnCacheMiss(ctx, keyType)
		return nil, false
	}
	r.hooks.Cache.OnCacheHit(ctx, keyType)
	return data, true
}

// cacheSet stores data under key. Failures are logged, never returned.
func (r *Runner) cacheSet(ctx context.Context, keyType, key string, data []byte, ttl time.Duration) {
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Warn("cache write failed", "type", keyType, "error", err)
		return
	}
	r.hooks.Cache.OnCacheSet(ctx, keyType, len(data))
}

// stageError wraps err unless it already carries a code or is a context
// error.
func stageError(err error, stage string) error {
	if err == nil || errors.GetCode(err) != "" || err == context.Canceled || err == context.DeadlineExceeded {
		return err
	}
	return errors.Wrap(errors.ErrCodeInternal, err, "%s", stage)
}
