package corral

// Sentinel is a placeholder leaf inserted into a partially validated value
// tree by the action resolver. Sentinels never appear in the tree delivered
// to the caller: the orchestrator runs [ContainsRefrain] and [RemoveFiltered]
// once per completed tree to eliminate them.
type Sentinel int

const (
	// Filtered marks a single value to be dropped from the output tree.
	Filtered Sentinel = iota + 1

	// Refrained marks the entire output for discard. Its presence
	// anywhere in a tree causes the whole response to be withheld.
	Refrained
)

func (s Sentinel) String() string {
	switch s {
	case Filtered:
		return "filtered"
	case Refrained:
		return "refrained"
	default:
		return "unknown"
	}
}

// Reask is the resolved value produced by the reask and fix_reask policies.
// The validation core never acts on it: the surrounding orchestrator turns
// it into a new model invocation with corrective guidance.
type Reask struct {
	// Value is the offending value that failed validation.
	Value any

	// Action is the policy that produced this marker, OnFailReask or
	// OnFailFixReask.
	Action OnFailAction

	// ErrorMessage is the failure's description, for prompt building.
	ErrorMessage string

	// FixValue is the validator's suggested correction, meaningful only
	// when HasFix is true. Set for fix_reask when the validator supplied
	// a fix.
	FixValue any

	// HasFix marks FixValue as present.
	HasFix bool

	// ErrorSpans locate the offending regions, ordered by start.
	ErrorSpans []ErrorSpan
}

// ValidationError is returned by Resolve under the exception policy. It
// aborts further validation of the current value and propagates to the
// orchestrator immediately.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return "corral: validation failed: " + e.Message
}
