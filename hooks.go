package corral

import "context"

// -----------------------------------------------------------------------------
// Hook Interfaces
// -----------------------------------------------------------------------------
//
// corral is a library: instead of binding a logging framework it exposes
// hooks, and the host application decides what to log, count or export.
// Implement the interfaces you care about, register the hook with
// hooks.NewRegistry(), then attach the registry to validators with
// WithHooks.
//
// Example:
//
//	type LoggingHook struct {
//	    logger *log.Logger
//	}
//
//	func (h *LoggingHook) OnValidatorResult(ctx context.Context, e corral.ValidatorResultEvent) {
//	    if _, failed := e.Result.(*corral.FailResult); failed {
//	        h.logger.Printf("validator %s rejected %v", e.Validator, e.Value)
//	    }
//	}
//
//	registry := hooks.NewRegistry()
//	registry.Register(&LoggingHook{logger: log.Default()})
//	v, err := corral.New(reg, "regex-match", corral.WithHooks(registry))
//
// Hooks should not panic; a panicking hook aborts the validation call.

// ValidatorCalledHook is implemented by hooks that want to observe
// validations before they run.
type ValidatorCalledHook interface {
	// OnValidatorCalled is called before each Validate.
	OnValidatorCalled(ctx context.Context, event ValidatorCalledEvent)
}

// ValidatorResultHook is implemented by hooks that want to observe
// validation outcomes.
type ValidatorResultHook interface {
	// OnValidatorResult is called after each Validate returns.
	OnValidatorResult(ctx context.Context, event ValidatorResultEvent)
}

// RemoteErrorHook is implemented by hooks that want to observe degraded
// remote inference calls. This is the library's only failure signal for
// remote transport errors, which are absorbed rather than raised.
type RemoteErrorHook interface {
	// OnRemoteError is called when a remote inference call fails.
	OnRemoteError(ctx context.Context, event RemoteErrorEvent)
}

// HookDispatcher fans events out to registered hooks. The hooks subpackage
// provides the standard implementation; the indirection keeps the root
// package free of a dependency on it.
type HookDispatcher interface {
	FireValidatorCalled(ctx context.Context, event ValidatorCalledEvent)
	FireValidatorResult(ctx context.Context, event ValidatorResultEvent)
	FireRemoteError(ctx context.Context, event RemoteErrorEvent)
}
