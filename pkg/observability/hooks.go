// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about anonymization runs and orbit computations.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// Hooks are registered by main, not by libraries, so the algorithm packages
// stay free of any metrics backend.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetAnonymizeHooks(&myAnonymizeHooks{})
//	    observability.SetEngineHooks(&myEngineHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Anonymize().OnAttempt(ctx, "degree", attempt)
//	// ... realize ...
//	observability.Anonymize().OnRealizationFailure(ctx, "degree", cause)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Anonymize Hooks
// =============================================================================

// AnonymizeHooks receives events from the anonymization algorithms.
type AnonymizeHooks interface {
	// OnAttempt records the start of a realization attempt (1-based).
	OnAttempt(ctx context.Context, algorithm string, attempt int)

	// OnRealizationFailure records a failed realization and its cause.
	OnRealizationFailure(ctx context.Context, algorithm, cause string)

	// OnNoise records noise injection; edges is the number of edges actually added.
	OnNoise(ctx context.Context, algorithm string, edges int)

	// OnOrbitCopy records one orbit copying pass.
	OnOrbitCopy(ctx context.Context, orbit, generation, added int)

	// OnComplete records the end of an anonymization run.
	OnComplete(ctx context.Context, algorithm string, vertices, edges int, duration time.Duration, err error)
}

// =============================================================================
// Engine Hooks
// =============================================================================

// EngineHooks receives events from automorphism engines.
type EngineHooks interface {
	// OnOrbitsComputed records a completed orbit computation.
	OnOrbitsComputed(ctx context.Context, vertices, orbits int, duration time.Duration)

	// OnCacheHit records an orbit cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records an orbit cache miss.
	OnCacheMiss(ctx context.Context, keyType string)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopAnonymizeHooks is a no-op implementation of AnonymizeHooks.
type NoopAnonymizeHooks struct{}

func (NoopAnonymizeHooks) OnAttempt(context.Context, string, int)               {}
func (NoopAnonymizeHooks) OnRealizationFailure(context.Context, string, string) {}
func (NoopAnonymizeHooks) OnNoise(context.Context, string, int)                 {}
func (NoopAnonymizeHooks) OnOrbitCopy(context.Context, int, int, int)           {}
func (NoopAnonymizeHooks) OnComplete(context.Context, string, int, int, time.Duration, error) {
}

// NoopEngineHooks is a no-op implementation of EngineHooks.
type NoopEngineHooks struct{}

func (NoopEngineHooks) OnOrbitsComputed(context.Context, int, int, time.Duration) {}
func (NoopEngineHooks) OnCacheHit(context.Context, string)                        {}
func (NoopEngineHooks) OnCacheMiss(context.Context, string)                       {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	anonymizeHooks AnonymizeHooks = NoopAnonymizeHooks{}
	engineHooks    EngineHooks    = NoopEngineHooks{}
	hooksMu        sync.RWMutex
)

// SetAnonymizeHooks registers custom anonymization hooks.
// This should be called once at application startup before any anonymization.
func SetAnonymizeHooks(h AnonymizeHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		anonymizeHooks = h
	}
}

// SetEngineHooks registers custom automorphism engine hooks.
func SetEngineHooks(h EngineHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		engineHooks = h
	}
}

// Anonymize returns the registered anonymization hooks.
func Anonymize() AnonymizeHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return anonymizeHooks
}

// Engine returns the registered engine hooks.
func Engine() EngineHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return engineHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	anonymizeHooks = NoopAnonymizeHooks{}
	engineHooks = NoopEngineHooks{}
}
