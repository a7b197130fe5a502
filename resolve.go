package corral

import "time"

// Resolve maps a validation outcome to the concrete value that replaces the
// original in the output tree, according to the configured on-fail policy.
//
// For a [PassResult], the policy is never consulted: the result's FixedValue
// is returned when ValueOverride is set, otherwise the original value.
//
// For a [FailResult], the resolved value depends on the policy:
//
//	noop       original value unchanged (failure logged only)
//	fix        the suggested fix, or the original value when none given
//	filter     the Filtered sentinel
//	refrain    the Refrained sentinel
//	exception  (nil, *ValidationError) - aborts the current value
//	reask      a *Reask marker for the orchestrator
//	fix_reask  a *Reask marker carrying the suggested fix
//	custom     the custom callback's return value, verbatim
//
// Every FailResult is appended to log (when non-nil) before resolution, so
// pass-through policies still leave a reporting trail. validatorName may be
// empty when no validator identity is available.
//
// Errors returned by a custom callback propagate unmodified. An unknown
// policy resolves like noop; this cannot happen for validators built via
// [New], which validates the policy at construction.
func Resolve(
	log *FailureLog,
	validatorName string,
	result ValidationResult,
	policy OnFailAction,
	custom OnFailFunc,
	original any,
) (any, error) {
	switch r := result.(type) {
	case *PassResult:
		if r.ValueOverride {
			return r.FixedValue, nil
		}
		return original, nil

	case *FailResult:
		if log != nil {
			log.Record(FailureRecord{
				Validator: validatorName,
				Action:    policy,
				Result:    r,
				Value:     original,
				Time:      time.Now(),
			})
		}
		return resolveFail(r, policy, custom, original)

	default:
		// nil ("need more input") or a foreign implementation; the
		// original value stands.
		return original, nil
	}
}

func resolveFail(
	r *FailResult,
	policy OnFailAction,
	custom OnFailFunc,
	original any,
) (any, error) {
	if custom != nil {
		return custom(original, r)
	}

	switch policy {
	case OnFailFix:
		if r.HasFix {
			return r.FixValue, nil
		}
		return original, nil

	case OnFailFilter:
		return Filtered, nil

	case OnFailRefrain:
		return Refrained, nil

	case OnFailException:
		return nil, &ValidationError{Message: r.ErrorMessage}

	case OnFailReask, OnFailFixReask:
		return &Reask{
			Value:        original,
			Action:       policy,
			ErrorMessage: r.ErrorMessage,
			FixValue:     r.FixValue,
			HasFix:       r.HasFix,
			ErrorSpans:   r.ErrorSpans,
		}, nil

	default: // OnFailNoop and anything unrecognized
		return original, nil
	}
}
