// Package observability lets a binary observe the pipeline, the cache, and
// the HTTP API without those packages importing a metrics or tracing
// backend.
//
// Each concern has a small hook interface and a no-op default. Register
// implementations once at startup, before any goroutine emits events:
//
//	observability.NewLogHooks(logger).Register()
//
// Emitters fetch the current hooks at the call site:
//
//	observability.Pipeline().OnDensifyStart(ctx, len(g), step)
package observability

import (
	"context"
	"time"
)

// PipelineHooks receives stage events from pipeline.Runner. Stages served
// from the cache emit no events.
type PipelineHooks interface {
	OnDensifyStart(ctx context.Context, segments int, step float64)
	OnDensifyComplete(ctx context.Context, segments, points int, duration time.Duration, err error)
	OnRenderStart(ctx context.Context, formats []string)
	OnRenderComplete(ctx context.Context, formats []string, duration time.Duration, err error)
}

// CacheHooks receives cache lookups and writes. keyType is the pipeline
// stage that owns the key: "dense" or "artifact".
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// HTTPHooks receives events from the HTTP API server.
// OnError fires before OnResponse for requests answered with an error body.
type HTTPHooks interface {
	OnRequest(ctx context.Context, method, path string)
	OnResponse(ctx context.Context, method, path string, statusCode int, duration time.Duration)
	OnError(ctx context.Context, method, path string, err error)
}

// NoopPipelineHooks ignores every event.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnDensifyStart(context.Context, int, float64) {}

func (NoopPipelineHooks) OnDensifyComplete(context.Context, int, int, time.Duration, error) {}

func (NoopPipelineHooks) OnRenderStart(context.Context, []string) {}

func (NoopPipelineHooks) OnRenderComplete(context.Context, []string, time.Duration, error) {}

// NoopCacheHooks ignores every event.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string) {}

func (NoopCacheHooks) OnCacheMiss(context.Context, string) {}

func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopHTTPHooks ignores every event.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string) {}

func (NoopHTTPHooks) OnResponse(context.Context, string, string, int, time.Duration) {}

func (NoopHTTPHooks) OnError(context.Context, string, string, error) {}
