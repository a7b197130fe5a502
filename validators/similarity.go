package validators

import (
	"context"
	"fmt"
	"strings"

	"github.com/corralhq/corral"
	"github.com/pmezard/go-difflib/difflib"
)

// SimilarToDocument validates that a value stays textually close to a
// reference document, using a character-level diff ratio. On failure the
// error spans mark the ranges of the value that do not appear in the
// document, so callers can highlight exactly where the output diverged.
//
// Arguments:
//   - document (required): the reference text
//   - threshold (optional): minimum similarity ratio in [0, 1],
//     default 0.7
type SimilarToDocument struct {
	document  []string
	threshold float64
}

// NewSimilarToDocument is the constructor registered under
// "similar-to-document".
func NewSimilarToDocument(kwargs corral.Kwargs) (corral.Validation, error) {
	document, err := requireKwarg(kwargs, "document")
	if err != nil {
		return nil, err
	}

	threshold, ok, err := floatKwarg(kwargs, "threshold")
	if err != nil {
		return nil, err
	}
	if !ok {
		threshold = 0.7
	}
	if threshold < 0 || threshold > 1 {
		return nil, fmt.Errorf("argument %q must be within [0, 1], got %v", "threshold", threshold)
	}

	return &SimilarToDocument{
		document:  strings.Split(document, ""),
		threshold: threshold,
	}, nil
}

// Validate implements corral.Validation.
func (v *SimilarToDocument) Validate(_ context.Context, value any, _ map[string]any) corral.ValidationResult {
	s := asString(value)
	chars := strings.Split(s, "")

	matcher := difflib.NewMatcher(chars, v.document)
	ratio := matcher.Ratio()
	if ratio >= v.threshold {
		return &corral.PassResult{}
	}

	// Opcodes transform the value into the document: 'r' (replace) and
	// 'd' (delete) regions on the value side are the divergent ranges.
	var spans []corral.ErrorSpan
	for _, op := range matcher.GetOpCodes() {
		if op.Tag != 'r' && op.Tag != 'd' {
			continue
		}
		spans = append(spans, corral.ErrorSpan{
			Start:  op.I1,
			End:    op.I2,
			Reason: "text does not appear in the reference document",
		})
	}

	return &corral.FailResult{
		ErrorMessage: fmt.Sprintf(
			"Value is too dissimilar from the reference document (similarity %.2f, threshold %.2f).",
			ratio, v.threshold),
		ErrorSpans: spans,
	}
}
