// Package observability provides hooks for metrics, tracing, and logging.
//
// Library packages emit events through the registered hooks; nothing here
// depends on a specific backend. The defaults are no-ops, so a program that
// registers nothing pays only an interface call.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetLayoutHooks(&myLayoutHooks{})
//	    observability.SetExportHooks(&myExportHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Export().OnExportStart(ctx, "gif")
//	// ... capture, assemble ...
//	observability.Export().OnExportComplete(ctx, "gif", frames, size, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Layout Hooks
// =============================================================================

// LayoutHooks receives events from card composition.
type LayoutHooks interface {
	// OnCompose records one regeneration of a visual tree.
	OnCompose(ctx context.Context, lines, emoji, chars int, duration time.Duration)
}

// =============================================================================
// Export Hooks
// =============================================================================

// ExportHooks receives events from the exporter.
type ExportHooks interface {
	// OnExportStart records an export sequence starting; format is png or gif.
	OnExportStart(ctx context.Context, format string)

	// OnFrameCaptured records one captured frame.
	OnFrameCaptured(ctx context.Context, index int, size int)

	// OnExportComplete records the end of a sequence.
	OnExportComplete(ctx context.Context, format string, frames, size int, duration time.Duration, err error)

	// OnExportBusy records a trigger rejected because a sequence was running.
	OnExportBusy(ctx context.Context)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopLayoutHooks is a no-op implementation of LayoutHooks.
type NoopLayoutHooks struct{}

func (NoopLayoutHooks) OnCompose(context.Context, int, int, int, time.Duration) {}

// NoopExportHooks is a no-op implementation of ExportHooks.
type NoopExportHooks struct{}

func (NoopExportHooks) OnExportStart(context.Context, string)     {}
func (NoopExportHooks) OnFrameCaptured(context.Context, int, int) {}
func (NoopExportHooks) OnExportComplete(context.Context, string, int, int, time.Duration, error) {
}
func (NoopExportHooks) OnExportBusy(context.Context) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	layoutHooks LayoutHooks = NoopLayoutHooks{}
	exportHooks ExportHooks = NoopExportHooks{}
	hooksMu     sync.RWMutex
)

// SetLayoutHooks registers custom layout hooks. Nil is ignored.
func SetLayoutHooks(h LayoutHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		layoutHooks = h
	}
}

// SetExportHooks registers custom export hooks. Nil is ignored.
func SetExportHooks(h ExportHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		exportHooks = h
	}
}

// Layout returns the registered layout hooks.
func Layout() LayoutHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return layoutHooks
}

// Export returns the registered export hooks.
func Export() ExportHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return exportHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	layoutHooks = NoopLayoutHooks{}
	exportHooks = NoopExportHooks{}
}
