// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about notation conversion and the round-trip pipeline.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// Conversion hooks carry no context: encode, decode, check and validate are
// pure in-memory transforms. Pipeline hooks receive the request context.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetConvertHooks(&myConvertHooks{})
//	    observability.SetPipelineHooks(&myPipelineHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Convert().OnCoercion("node type", raw)
//	observability.Pipeline().OnApplyComplete(ctx, id, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Convert Hooks
// =============================================================================

// ConvertHooks receives events from the notation converter and validators.
type ConvertHooks interface {
	// OnEncode records a finished encode. skipped counts edges dropped
	// because an endpoint had no label.
	OnEncode(nodeCount, edgeCount, skipped int, duration time.Duration)

	// OnDecode records a finished decode. coerced counts type values that
	// fell back to a default.
	OnDecode(nodeCount, edgeCount, coerced int, duration time.Duration)

	// OnCoercion records a single type value that fell back to a default.
	// kind names the coerced value: "node type", "node class" or "edge type".
	OnCoercion(kind, raw string)

	// OnCheck records a finished syntax check.
	OnCheck(errorCount int, duration time.Duration)

	// OnValidate records a finished graph validation.
	OnValidate(errorCount int, duration time.Duration)
}

// =============================================================================
// Pipeline Hooks
// =============================================================================

// PipelineHooks receives events from the round-trip pipeline.
type PipelineHooks interface {
	OnApplyStart(ctx context.Context, procedureID string)
	OnApplyComplete(ctx context.Context, procedureID string, duration time.Duration, err error)

	// OnPersist records a graph written to the store under commitID.
	OnPersist(ctx context.Context, procedureID, commitID string)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopConvertHooks is a no-op implementation of ConvertHooks.
type NoopConvertHooks struct{}

func (NoopConvertHooks) OnEncode(int, int, int, time.Duration) {}
func (NoopConvertHooks) OnDecode(int, int, int, time.Duration) {}
func (NoopConvertHooks) OnCoercion(string, string)             {}
func (NoopConvertHooks) OnCheck(int, time.Duration)            {}
func (NoopConvertHooks) OnValidate(int, time.Duration)         {}

// NoopPipelineHooks is a no-op implementation of PipelineHooks.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnApplyStart(context.Context, string) {}
func (NoopPipelineHooks) OnApplyComplete(context.Context, string, time.Duration, error) {
}
func (NoopPipelineHooks) OnPersist(context.Context, string, string) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	convertHooks  ConvertHooks  = NoopConvertHooks{}
	pipelineHooks PipelineHooks = NoopPipelineHooks{}
	hooksMu       sync.RWMutex
)

// SetConvertHooks registers custom conversion hooks.
// This should be called once at application startup before any conversion.
func SetConvertHooks(h ConvertHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		convertHooks = h
	}
}

// SetPipelineHooks registers custom pipeline hooks.
// This should be called once at application startup before any pipeline operations.
func SetPipelineHooks(h PipelineHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		pipelineHooks = h
	}
}

// Convert returns the registered conversion hooks.
func Convert() ConvertHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return convertHooks
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return pipelineHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	convertHooks = NoopConvertHooks{}
	pipelineHooks = NoopPipelineHooks{}
}
