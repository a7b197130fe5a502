package corral

import (
	"sync"
	"time"
)

// FailureLog is a run-scoped, append-only record of validation failures.
//
// Every FailResult routed through [Resolve] is appended, including failures
// whose policy lets the value pass through (noop, fix). This is what allows
// downstream reporting to distinguish "passed" from "passed after fix" or
// "passed with an ignored failure".
//
// A FailureLog is safe for concurrent use; validators running in parallel
// over sibling values of a tree may share one log.
type FailureLog struct {
	mu       sync.Mutex
	failures []FailureRecord
}

// FailureRecord is a single logged validation failure.
type FailureRecord struct {
	// Validator is the rail alias of the failing validator, or "" when
	// the failure was resolved outside a Validator (package-level
	// Resolve with no identity available).
	Validator string

	// Action is the on-fail policy that handled the failure.
	Action OnFailAction

	// Result is the failure itself.
	Result *FailResult

	// Value is the original value that failed.
	Value any

	// Time is when the failure was resolved.
	Time time.Time
}

// NewFailureLog creates an empty FailureLog.
func NewFailureLog() *FailureLog {
	return &FailureLog{
		failures: make([]FailureRecord, 0),
	}
}

// Record appends a failure record.
func (l *FailureLog) Record(record FailureRecord) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.failures = append(l.failures, record)
}

// Failures returns a copy of all recorded failures in append order.
func (l *FailureLog) Failures() []FailureRecord {
	l.mu.Lock()
	defer l.mu.Unlock()
	result := make([]FailureRecord, len(l.failures))
	copy(result, l.failures)
	return result
}

// Len returns the number of recorded failures.
func (l *FailureLog) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.failures)
}

// Reset clears the log for reuse across runs.
func (l *FailureLog) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.failures = make([]FailureRecord, 0)
}
