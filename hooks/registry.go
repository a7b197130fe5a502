package hooks

import (
	"context"

	"github.com/corralhq/corral"
)

// Registry manages a collection of hooks and dispatches events to them.
//
// # Overview
//
// Registry is the central coordination point for hooks. It:
//   - Stores registered hooks in order
//   - Dispatches events to hooks that implement the relevant interface
//
// Hooks can implement any combination of hook interfaces - they only receive
// events for the interfaces they implement.
//
// # Creating and Using
//
//	// Create a registry and register hooks
//	registry := hooks.NewRegistry()
//	registry.Register(&LoggingHook{})
//	registry.Register(&MetricsHook{})
//
//	// Attach to validators at construction
//	v, err := corral.New(reg, "length", corral.WithHooks(registry))
//
// # Hooks with Multiple Interfaces
//
// A single hook can implement multiple interfaces:
//
//	type FullHook struct {
//	    logger *log.Logger
//	}
//
//	func (h *FullHook) OnValidatorCalled(ctx context.Context, e corral.ValidatorCalledEvent) {
//	    h.logger.Printf("%s called", e.Validator)
//	}
//
//	func (h *FullHook) OnRemoteError(ctx context.Context, e corral.RemoteErrorEvent) {
//	    h.logger.Printf("%s degraded: status %d", e.Validator, e.StatusCode)
//	}
//
//	// Register once - receives both event types
//	registry.Register(&FullHook{logger: log.Default()})
//
// # Thread Safety
//
// Registry is NOT thread-safe. Register all hooks before handing the registry
// to validators. Fire methods should only be called by the validator runtime.
type Registry struct {
	hooks []any
}

// NewRegistry creates a new empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		hooks: make([]any, 0),
	}
}

// Register adds a hook to the registry. The hook can implement any combination
// of hook interfaces (ValidatorCalledHook, ValidatorResultHook,
// RemoteErrorHook).
//
// Hooks are called in the order they are registered.
func (r *Registry) Register(hook any) *Registry {
	r.hooks = append(r.hooks, hook)
	return r
}

// FireValidatorCalled dispatches a ValidatorCalledEvent to all registered
// ValidatorCalledHook implementations.
func (r *Registry) FireValidatorCalled(ctx context.Context, event corral.ValidatorCalledEvent) {
	for _, h := range r.hooks {
		if hook, ok := h.(corral.ValidatorCalledHook); ok {
			hook.OnValidatorCalled(ctx, event)
		}
	}
}

// FireValidatorResult dispatches a ValidatorResultEvent to all registered
// ValidatorResultHook implementations.
// This is informational only; hooks cannot alter the result.
func (r *Registry) FireValidatorResult(ctx context.Context, event corral.ValidatorResultEvent) {
	for _, h := range r.hooks {
		if hook, ok := h.(corral.ValidatorResultHook); ok {
			hook.OnValidatorResult(ctx, event)
		}
	}
}

// FireRemoteError dispatches a RemoteErrorEvent to all registered
// RemoteErrorHook implementations.
// This is informational only; the degraded response is returned regardless.
func (r *Registry) FireRemoteError(ctx context.Context, event corral.RemoteErrorEvent) {
	for _, h := range r.hooks {
		if hook, ok := h.(corral.RemoteErrorHook); ok {
			hook.OnRemoteError(ctx, event)
		}
	}
}

// Len returns the number of registered hooks.
func (r *Registry) Len() int {
	return len(r.hooks)
}

// Clear removes all registered hooks.
func (r *Registry) Clear() {
	r.hooks = make([]any, 0)
}

// Compile-time check that Registry satisfies the dispatcher contract.
var _ corral.HookDispatcher = (*Registry)(nil)
