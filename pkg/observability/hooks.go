// Package observability provides hooks for metrics and tracing.
//
// This package enables optional instrumentation without adding hard
// dependencies on specific observability backends. The pipeline and the
// cache call hook methods at stage boundaries; the HTTP server plugs in a
// Prometheus implementation, the CLI leaves the no-op defaults in place.
//
// # Architecture
//
//   - Hook interfaces per event category
//   - No-op implementations for every interface
//   - A [Hooks] bundle handed to the pipeline runner at construction
//
// There is no process-wide registry: two runners in one process may report
// to different backends.
//
// # Usage
//
//	hooks := observability.Hooks{Pipeline: myMetrics}
//	runner := pipeline.NewRunner(cache, nil, logger, pipeline.WithHooks(hooks))
//
// Libraries call hooks to emit events:
//
//	h.Pipeline.OnLayoutStart(ctx, len(freqs))
//	// ... lay out ...
//	h.Pipeline.OnLayoutComplete(ctx, placed, steps, duration, err)
package observability

import (
	"context"
	"time"
)

// =============================================================================
// Pipeline Hooks
// =============================================================================

// PipelineHooks receives events from the tag cloud pipeline.
type PipelineHooks interface {
	// Read events: source is the input path, or "inline" for text passed
	// directly.
	OnReadStart(ctx context.Context, source string)
	OnReadComplete(ctx context.Context, source string, words int, duration time.Duration, err error)

	// Layout events
	OnLayoutStart(ctx context.Context, words int)
	OnLayoutComplete(ctx context.Context, placed int, spiralSteps int, duration time.Duration, err error)

	// Render events
	OnRenderStart(ctx context.Context, formats []string)
	OnRenderComplete(ctx context.Context, formats []string, duration time.Duration, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache lookups. keyType is the pipeline
// stage, "cloud" or "artifact".
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopPipelineHooks is a no-op implementation of PipelineHooks.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnReadStart(context.Context, string) {}
func (NoopPipelineHooks) OnReadComplete(context.Context, string, int, time.Duration, error) {
}
func (NoopPipelineHooks) OnLayoutStart(context.Context, int) {}
func (NoopPipelineHooks) OnLayoutComplete(context.Context, int, int, time.Duration, error) {
}
func (NoopPipelineHooks) OnRenderStart(context.Context, []string) {}
func (NoopPipelineHooks) OnRenderComplete(context.Context, []string, time.Duration, error) {
}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// =============================================================================
// Bundle
// =============================================================================

// Hooks bundles the hook implementations used by one pipeline runner.
// Nil fields are replaced by no-ops in [Hooks.OrNoop].
type Hooks struct {
	Pipeline PipelineHooks
	Cache    CacheHooks
}

// Noop returns hooks that discard every event.
func Noop() Hooks {
	return Hooks{Pipeline: NoopPipelineHooks{}, Cache: NoopCacheHooks{}}
}

// OrNoop returns h with nil fields replaced by no-op implementations.
func (h Hooks) OrNoop() Hooks {
	if h.Pipeline == nil {
		h.Pipeline = NoopPipelineHooks{}
	}
	if h.Cache == nil {
		h.Cache = NoopCacheHooks{}
	}
	return h
}
