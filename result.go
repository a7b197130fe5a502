package corral

// ValidationResult is the outcome of validating one value or one streamed
// unit. It is a sealed union with exactly two variants: [PassResult] and
// [FailResult]. Use a type switch to branch on the outcome:
//
//	switch r := result.(type) {
//	case *corral.PassResult:
//	    // value is acceptable; r.FixedValue may override it
//	case *corral.FailResult:
//	    // value failed; feed r into corral.Resolve with the on-fail policy
//	}
//
// A nil ValidationResult is returned by [Validator.ValidateStream] when not
// enough text has accumulated to form a validator-ready unit. nil is NOT a
// validation outcome - it means "need more input".
type ValidationResult interface {
	validationResult()
}

// PassResult indicates the value passed validation.
type PassResult struct {
	// FixedValue optionally replaces the original value even though
	// validation passed (e.g. a normalizing validator). It is only
	// honored when ValueOverride is true, so that a nil override can be
	// distinguished from "no override".
	FixedValue any

	// ValueOverride marks FixedValue as intentional.
	ValueOverride bool

	// ValidatedChunk is the streamed unit this result covers. Set by
	// ValidateStream when the validator's own Validate left it empty.
	ValidatedChunk string
}

func (*PassResult) validationResult() {}

// FailResult indicates the value failed validation. How the failure is
// handled is decided separately by [Resolve] using the validator's
// configured [OnFailAction].
type FailResult struct {
	// ErrorMessage describes why validation failed. Shown to the model
	// on reask and carried by ValidationError on the exception policy.
	ErrorMessage string

	// FixValue is the validator's suggested correction. Only meaningful
	// when HasFix is true.
	FixValue any

	// HasFix marks FixValue as present.
	HasFix bool

	// ValidatedChunk is the streamed unit this result covers. Set by
	// ValidateStream when the validator's own Validate left it empty.
	ValidatedChunk string

	// ErrorSpans locate the offending regions inside ValidatedChunk,
	// ordered by start position.
	ErrorSpans []ErrorSpan
}

func (*FailResult) validationResult() {}

// ErrorSpan marks a half-open byte range [Start, End) inside a validated
// chunk that caused a failure. Start is always <= End.
type ErrorSpan struct {
	Start  int
	End    int
	Reason string
}
