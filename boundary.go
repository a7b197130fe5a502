package corral

import "strings"

// ChunkBoundaryFunc decides when enough streamed text has accumulated to
// form one validator-ready unit. It receives the full accumulated text and
// returns either nil/empty (not enough data yet) or exactly two elements:
// the complete unit to validate, and the leftover text that keeps
// accumulating.
//
// Implementations must be pure and must never panic on well-formed string
// input. A panicking boundary function is a programming defect, not a data
// problem; the accumulator lets the panic propagate rather than retrying.
//
// Boundaries should align with semantically meaningful text units
// (sentences) so that per-chunk validators are not evaluated against
// truncated words. A proper sentence tokenizer can be substituted for the
// default without touching accumulation logic.
type ChunkBoundaryFunc func(accumulated string) []string

// SplitSentence is the default chunk boundary: it splits at the first
// period, inclusive. With no period present it returns nil, signaling that
// more text is needed.
func SplitSentence(accumulated string) []string {
	idx := strings.Index(accumulated, ".")
	if idx < 0 {
		return nil
	}
	return []string{accumulated[:idx+1], accumulated[idx+1:]}
}
