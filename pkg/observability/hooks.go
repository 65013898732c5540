// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers register hooks at startup
// to receive events about partition mutations and export rendering.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// The partition engine and the CLI export path call the hooks; the CLI
// decides what to do with the events (it logs them at debug level).
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetEngineHooks(&myEngineHooks{})
//	    observability.SetRenderHooks(&myRenderHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Engine().OnSplit(matched, created, tiles, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Engine Hooks
// =============================================================================

// EngineHooks receives events from partition mutations. Engine operations are
// synchronous and carry no context.
type EngineHooks interface {
	// OnSplit records a split of matched tiles into created new tiles,
	// leaving tiles tiles in the partition. err is set when the split was
	// rejected; the partition is then unchanged.
	OnSplit(matched, created, tiles int, err error)

	// OnRecolor records a fill change of one tile.
	OnRecolor(index int, hex string, err error)

	// OnUndo records an undo request. restored is false when no snapshot was left.
	OnUndo(restored bool, remaining int)

	// OnOutline records an outline mode request. changed is false for no-ops.
	OnOutline(enabled, changed bool)
}

// =============================================================================
// Render Hooks
// =============================================================================

// RenderHooks receives events from export rendering.
type RenderHooks interface {
	OnRenderStart(ctx context.Context, format string, tiles int)
	OnRenderComplete(ctx context.Context, format string, size int, duration time.Duration, err error)

	// OnCacheError records a failed artifact cache read or write. The
	// conversion itself still goes ahead.
	OnCacheError(ctx context.Context, op, format string, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopEngineHooks is a no-op implementation of EngineHooks.
type NoopEngineHooks struct{}

func (NoopEngineHooks) OnSplit(int, int, int, error) {}
func (NoopEngineHooks) OnRecolor(int, string, error) {}
func (NoopEngineHooks) OnUndo(bool, int)             {}
func (NoopEngineHooks) OnOutline(bool, bool)         {}

// NoopRenderHooks is a no-op implementation of RenderHooks.
type NoopRenderHooks struct{}

func (NoopRenderHooks) OnRenderStart(context.Context, string, int) {}
func (NoopRenderHooks) OnRenderComplete(context.Context, string, int, time.Duration, error) {
}
func (NoopRenderHooks) OnCacheError(context.Context, string, string, error) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	engineHooks EngineHooks = NoopEngineHooks{}
	renderHooks RenderHooks = NoopRenderHooks{}
	hooksMu     sync.RWMutex
)

// SetEngineHooks registers custom engine hooks.
// This should be called once at application startup before any engine is used.
func SetEngineHooks(h EngineHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		engineHooks = h
	}
}

// SetRenderHooks registers custom render hooks.
func SetRenderHooks(h RenderHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		renderHooks = h
	}
}

// Engine returns the registered engine hooks.
func Engine() EngineHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return engineHooks
}

// Render returns the registered render hooks.
func Render() RenderHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return renderHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	engineHooks = NoopEngineHooks{}
	renderHooks = NoopRenderHooks{}
}
