package corral

import "fmt"

// OnFailAction is the corrective behavior applied when a validator fails.
// Each [Validator] is configured with exactly one action, or with a custom
// callback (equivalent to [OnFailCustom]).
type OnFailAction string

const (
	// OnFailNoop passes the original value through unchanged. The
	// failure is still recorded in the FailureLog for reporting.
	OnFailNoop OnFailAction = "noop"

	// OnFailFix replaces the value with the validator's suggested fix,
	// falling back to the original value when no fix was supplied.
	OnFailFix OnFailAction = "fix"

	// OnFailFilter replaces the value with the Filtered sentinel. The
	// value is dropped from the output tree by RemoveFiltered.
	OnFailFilter OnFailAction = "filter"

	// OnFailRefrain replaces the value with the Refrained sentinel,
	// which discards the entire output once detected by ContainsRefrain.
	OnFailRefrain OnFailAction = "refrain"

	// OnFailException aborts validation of the current value by
	// returning a *ValidationError.
	OnFailException OnFailAction = "exception"

	// OnFailReask resolves to a *Reask marker; the orchestrator is
	// responsible for re-invoking the model with corrective guidance.
	OnFailReask OnFailAction = "reask"

	// OnFailFixReask resolves to a *Reask marker that also carries the
	// suggested fix, letting the orchestrator apply the fix and verify
	// it with a follow-up model call.
	OnFailFixReask OnFailAction = "fix_reask"

	// OnFailCustom invokes a user-supplied OnFailFunc and uses its
	// return value verbatim as the resolved value.
	OnFailCustom OnFailAction = "custom"
)

// OnFailFunc is the custom callback form of an on-fail policy. It receives
// the offending value and the failure, and its return value is used verbatim
// as the resolved value. Errors returned by the callback propagate to the
// caller unmodified.
type OnFailFunc func(value any, result *FailResult) (any, error)

// ParseOnFailAction converts a configuration string (as used in rail files)
// into an OnFailAction. The empty string maps to OnFailNoop, matching the
// default applied when a validator is constructed without a policy.
func ParseOnFailAction(s string) (OnFailAction, error) {
	switch OnFailAction(s) {
	case "":
		return OnFailNoop, nil
	case OnFailNoop, OnFailFix, OnFailFilter, OnFailRefrain,
		OnFailException, OnFailReask, OnFailFixReask, OnFailCustom:
		return OnFailAction(s), nil
	default:
		return "", fmt.Errorf("corral: unknown on-fail action %q", s)
	}
}
