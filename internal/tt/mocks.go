// Package tt provides shared test doubles for the validation runtime.
package tt

import (
	"context"
	"sync"

	"github.com/corralhq/corral"
)

// -----------------------------------------------------------------------------
// ScriptedValidation - implements corral.Validation with queued results
// -----------------------------------------------------------------------------

// ScriptedValidation is a configurable mock that implements corral.Validation.
// It returns queued results in order, repeating the last one when the queue
// runs out, and captures every value it was asked to validate.
type ScriptedValidation struct {
	results   []corral.ValidationResult
	callCount int

	// CapturedValues stores the value passed to each Validate call.
	CapturedValues []any

	// CapturedMetadata stores the metadata passed to each Validate call.
	CapturedMetadata []map[string]any
}

// NewScriptedValidation creates a ScriptedValidation with no queued results;
// with an empty queue every call passes.
func NewScriptedValidation() *ScriptedValidation {
	return &ScriptedValidation{}
}

// AddResult queues a result for the next Validate call.
func (s *ScriptedValidation) AddResult(result corral.ValidationResult) *ScriptedValidation {
	s.results = append(s.results, result)
	return s
}

// AddPass queues a plain pass.
func (s *ScriptedValidation) AddPass() *ScriptedValidation {
	return s.AddResult(&corral.PassResult{})
}

// AddFail queues a failure with the given message.
func (s *ScriptedValidation) AddFail(message string) *ScriptedValidation {
	return s.AddResult(&corral.FailResult{ErrorMessage: message})
}

// CallCount returns the number of times Validate has been called.
func (s *ScriptedValidation) CallCount() int {
	return s.callCount
}

// Validate implements corral.Validation.
func (s *ScriptedValidation) Validate(
	_ context.Context,
	value any,
	metadata map[string]any,
) corral.ValidationResult {
	idx := s.callCount
	s.callCount++
	s.CapturedValues = append(s.CapturedValues, value)
	s.CapturedMetadata = append(s.CapturedMetadata, metadata)

	if len(s.results) == 0 {
		return &corral.PassResult{}
	}
	if idx >= len(s.results) {
		idx = len(s.results) - 1
	}
	return s.results[idx]
}

// -----------------------------------------------------------------------------
// ScriptedInference - implements corral.LocalInference with queued outputs
// -----------------------------------------------------------------------------

// ScriptedInference is a configurable mock local inference engine. It returns
// queued outputs in order and captures every input.
type ScriptedInference struct {
	outputs   []any
	errors    []error
	callCount int

	// CapturedInputs stores the input passed to each Infer call.
	CapturedInputs []any
}

// NewScriptedInference creates an empty ScriptedInference.
func NewScriptedInference() *ScriptedInference {
	return &ScriptedInference{}
}

// AddOutput queues an output for the next Infer call.
func (s *ScriptedInference) AddOutput(output any) *ScriptedInference {
	for len(s.errors) < len(s.outputs) {
		s.errors = append(s.errors, nil)
	}
	s.outputs = append(s.outputs, output)
	return s
}

// AddError queues an error for the next Infer call.
func (s *ScriptedInference) AddError(err error) *ScriptedInference {
	for len(s.outputs) <= len(s.errors) {
		s.outputs = append(s.outputs, nil)
	}
	s.errors = append(s.errors, err)
	return s
}

// CallCount returns the number of times Infer has been called.
func (s *ScriptedInference) CallCount() int {
	return s.callCount
}

// Infer implements corral.LocalInference.
func (s *ScriptedInference) Infer(_ context.Context, input any) (any, error) {
	idx := s.callCount
	s.callCount++
	s.CapturedInputs = append(s.CapturedInputs, input)

	if idx >= len(s.outputs) {
		return nil, nil
	}
	var err error
	if idx < len(s.errors) {
		err = s.errors[idx]
	}
	return s.outputs[idx], err
}

// -----------------------------------------------------------------------------
// RecordingHook - captures every fired event
// -----------------------------------------------------------------------------

// RecordingHook implements every hook interface and records the events it
// receives, in order. Safe for concurrent use.
type RecordingHook struct {
	mu     sync.Mutex
	events []corral.HookEvent
}

// NewRecordingHook creates an empty RecordingHook.
func NewRecordingHook() *RecordingHook {
	return &RecordingHook{}
}

// OnValidatorCalled implements corral.ValidatorCalledHook.
func (h *RecordingHook) OnValidatorCalled(_ context.Context, event corral.ValidatorCalledEvent) {
	h.record(event)
}

// OnValidatorResult implements corral.ValidatorResultHook.
func (h *RecordingHook) OnValidatorResult(_ context.Context, event corral.ValidatorResultEvent) {
	h.record(event)
}

// OnRemoteError implements corral.RemoteErrorHook.
func (h *RecordingHook) OnRemoteError(_ context.Context, event corral.RemoteErrorEvent) {
	h.record(event)
}

func (h *RecordingHook) record(event corral.HookEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, event)
}

// Events returns a copy of the recorded events.
func (h *RecordingHook) Events() []corral.HookEvent {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]corral.HookEvent, len(h.events))
	copy(out, h.events)
	return out
}

// Len returns the number of recorded events.
func (h *RecordingHook) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.events)
}

var (
	_ corral.Validation          = (*ScriptedValidation)(nil)
	_ corral.LocalInference      = (*ScriptedInference)(nil)
	_ corral.ValidatorCalledHook = (*RecordingHook)(nil)
	_ corral.ValidatorResultHook = (*RecordingHook)(nil)
	_ corral.RemoteErrorHook     = (*RecordingHook)(nil)
)
