package corral

import (
	"strings"
	"sync"
)

// ChunkAccumulator buffers incoming text fragments and releases
// validator-sized units according to a pluggable [ChunkBoundaryFunc].
//
// Each accumulator owns one logical stream. A single accumulator must not be
// driven by two concurrent streaming sessions: chunks of one value must
// arrive in order and be fed one at a time, because the boundary function
// depends on previously buffered content. Use one accumulator (or one
// Validator) per session, or call Reset between sessions.
//
// Usage:
//
//	acc := NewChunkAccumulator(nil) // default sentence boundary
//	for chunk := range chunks {
//	    if unit, ok := acc.Feed(chunk, false); ok {
//	        validate(unit)
//	    }
//	}
//	if unit, ok := acc.Feed("", true); ok { // flush the tail
//	    validate(unit)
//	}
type ChunkAccumulator struct {
	mu       sync.Mutex
	pending  string
	boundary ChunkBoundaryFunc
}

// NewChunkAccumulator creates an accumulator using the given boundary
// function, or [SplitSentence] when boundary is nil.
func NewChunkAccumulator(boundary ChunkBoundaryFunc) *ChunkAccumulator {
	if boundary == nil {
		boundary = SplitSentence
	}
	return &ChunkAccumulator{boundary: boundary}
}

// Feed appends chunk to the buffer and asks the boundary function whether a
// complete unit is available. It returns (unit, true) when one is, leaving
// the leftover text buffered, or ("", false) when more input is needed.
//
// When remainder is true the caller is signaling end-of-stream: all buffered
// text is released as one final unit regardless of the boundary function,
// and the buffer is cleared. After a remainder call the accumulator is done
// for this session; Reset (or a fresh accumulator) is required before reuse.
func (a *ChunkAccumulator) Feed(chunk string, remainder bool) (string, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	accumulated := a.pending + chunk

	if remainder {
		a.pending = ""
		return accumulated, true
	}

	split := a.boundary(accumulated)
	if len(split) == 0 {
		a.pending = accumulated
		return "", false
	}
	unit, leftover := split[0], ""
	if len(split) > 1 {
		leftover = strings.Join(split[1:], "")
	}
	a.pending = leftover
	return unit, true
}

// Pending returns the buffered text that has not yet formed a complete unit.
// Between Feed calls this is at most one partial fragment, never a
// fully-formed unit.
func (a *ChunkAccumulator) Pending() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.pending
}

// Reset clears the buffer so the accumulator can serve a new, unrelated
// streaming session.
func (a *ChunkAccumulator) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.pending = ""
}
