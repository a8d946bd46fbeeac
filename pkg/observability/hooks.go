// Package observability lets the chart pipeline, the caches, the HTTP host and
// the interactive renderer report what they are doing without importing a
// metrics backend.
//
// Each event family has its own interface with a no-op default. A process
// swaps in real implementations once at startup; library code asks the
// package for the current hooks at the moment it emits an event.
//
// [PrometheusHooks] implements every interface on top of
// prometheus/client_golang and is what the serve command installs:
//
//	hooks := observability.NewPrometheusHooks(reg)
//	observability.SetPipelineHooks(hooks)
//	observability.SetInteractionHooks(hooks)
//	defer observability.Reset()
//
// Emitting an event looks like:
//
//	start := time.Now()
//	observability.Pipeline().OnRenderStart(ctx, formats)
//	observability.Pipeline().OnRenderComplete(ctx, formats, time.Since(start), err)
package observability

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// =============================================================================
// Pipeline Hooks
// =============================================================================

// PipelineHooks receives events from the chart pipeline.
type PipelineHooks interface {
	// OnAggregateStart fires before observations are summed.
	OnAggregateStart(ctx context.Context, observations int)
	// OnAggregateComplete reports the number of categories produced.
	OnAggregateComplete(ctx context.Context, categories int, duration time.Duration, err error)

	// OnRenderStart and OnRenderComplete bracket one artifact render.
	OnRenderStart(ctx context.Context, formats []string)
	OnRenderComplete(ctx context.Context, formats []string, duration time.Duration, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives cache lookups and writes. keyType is "summary" or
// "artifact"; size is the stored payload in bytes.
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from the HTTP server.
type HTTPHooks interface {
	// OnResponse records a served request.
	OnResponse(ctx context.Context, method, route string, statusCode int, duration time.Duration)
}

// =============================================================================
// Interaction Hooks
// =============================================================================

// InteractionHooks receives events from chart renderers. Renderers run on an
// event loop without a request context, so these hooks take none.
type InteractionHooks interface {
	// OnRedraw records a full chart rebuild.
	OnRedraw(categories int)

	// OnLookup records a nearest-point lookup and whether it found a bracket.
	OnLookup(hit bool)
}

// =============================================================================
// Defaults
// =============================================================================

// NoopPipelineHooks is a no-op implementation of PipelineHooks.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnAggregateStart(context.Context, int)                            {}
func (NoopPipelineHooks) OnAggregateComplete(context.Context, int, time.Duration, error)   {}
func (NoopPipelineHooks) OnRenderStart(context.Context, []string)                          {}
func (NoopPipelineHooks) OnRenderComplete(context.Context, []string, time.Duration, error) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnResponse(context.Context, string, string, int, time.Duration) {}

// NoopInteractionHooks is a no-op implementation of InteractionHooks.
type NoopInteractionHooks struct{}

func (NoopInteractionHooks) OnRedraw(int)  {}
func (NoopInteractionHooks) OnLookup(bool) {}

// =============================================================================
// Registry
// =============================================================================

// registry is an immutable snapshot of the installed hooks. Setters publish a
// modified copy; readers load the pointer.
type registry struct {
	pipeline    PipelineHooks
	cache       CacheHooks
	http        HTTPHooks
	interaction InteractionHooks
}

var defaults = registry{
	pipeline:    NoopPipelineHooks{},
	cache:       NoopCacheHooks{},
	http:        NoopHTTPHooks{},
	interaction: NoopInteractionHooks{},
}

var (
	current  atomic.Pointer[registry]
	updateMu sync.Mutex
)

func init() { Reset() }

func update(fn func(r *registry)) {
	updateMu.Lock()
	defer updateMu.Unlock()
	next := *current.Load()
	fn(&next)
	current.Store(&next)
}

// SetPipelineHooks installs pipeline hooks. A nil h is ignored.
func SetPipelineHooks(h PipelineHooks) {
	if h != nil {
		update(func(r *registry) { r.pipeline = h })
	}
}

// SetCacheHooks installs cache hooks. A nil h is ignored.
func SetCacheHooks(h CacheHooks) {
	if h != nil {
		update(func(r *registry) { r.cache = h })
	}
}

// SetHTTPHooks installs HTTP hooks. A nil h is ignored.
func SetHTTPHooks(h HTTPHooks) {
	if h != nil {
		update(func(r *registry) { r.http = h })
	}
}

// SetInteractionHooks installs interaction hooks. A nil h is ignored.
func SetInteractionHooks(h InteractionHooks) {
	if h != nil {
		update(func(r *registry) { r.interaction = h })
	}
}

// Pipeline returns the installed pipeline hooks.
func Pipeline() PipelineHooks { return current.Load().pipeline }

// Cache returns the installed cache hooks.
func Cache() CacheHooks { return current.Load().cache }

// HTTP returns the installed HTTP hooks.
func HTTP() HTTPHooks { return current.Load().http }

// Interaction returns the installed interaction hooks.
func Interaction() InteractionHooks { return current.Load().interaction }

// Reset reinstalls the no-op hooks. Tests call it from t.Cleanup.
func Reset() {
	updateMu.Lock()
	defer updateMu.Unlock()
	r := defaults
	current.Store(&r)
}
