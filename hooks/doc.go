// Package hooks provides a registry for managing validation lifecycle hooks.
//
// Hooks allow you to observe events during validation. Each hook interface
// corresponds to a specific event type - implement only the interfaces you
// need.
//
// # Hook Interfaces
//
// Validation lifecycle hooks:
//   - [corral.ValidatorCalledHook] - Called before each validator runs
//   - [corral.ValidatorResultHook] - Called after each validator returns
//
// Remote inference hooks:
//   - [corral.RemoteErrorHook] - Called when a remote inference call degrades
//
// # Creating a Hook
//
// Create a hook by implementing any combination of interfaces:
//
//	type MetricsHook struct{}
//
//	func (h *MetricsHook) OnValidatorResult(
//	    ctx context.Context,
//	    event corral.ValidatorResultEvent,
//	) {
//	    if _, failed := event.Result.(*corral.FailResult); failed {
//	        metrics.RecordFailure(event.Validator)
//	    }
//	}
//
//	// Compile-time check
//	var _ corral.ValidatorResultHook = (*MetricsHook)(nil)
//
// # Registering Hooks
//
// Build a registry once at startup and share it across validators:
//
//	registry := hooks.NewRegistry()
//	registry.Register(&MetricsHook{})
//
//	v1, _ := corral.New(reg, "length", corral.WithHooks(registry))
//	v2, _ := corral.New(reg, "regex-match", corral.WithHooks(registry))
//
// See integrationtest/cli for a complete example hook that prints validation
// traffic to the terminal.
package hooks
