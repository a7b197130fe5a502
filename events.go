package corral

import "time"

// HookEvent is a marker interface for all hook events.
type HookEvent interface {
	hookEvent()
}

// ValidatorCalledEvent is emitted before a validator's Validate runs.
type ValidatorCalledEvent struct {
	// Validator is the rail alias of the validator being called.
	Validator string

	// Value is the value (or streamed unit) being validated.
	Value any

	// Timestamp is when the validation started.
	Timestamp time.Time
}

func (ValidatorCalledEvent) hookEvent() {}

// ValidatorResultEvent is emitted after a validator's Validate returns.
type ValidatorResultEvent struct {
	// Validator is the rail alias of the validator that ran.
	Validator string

	// Value is the value (or streamed unit) that was validated.
	Value any

	// Result is the validation outcome.
	Result ValidationResult

	// Timestamp is when the validation completed.
	Timestamp time.Time
}

func (ValidatorResultEvent) hookEvent() {}

// RemoteErrorEvent is emitted when a remote inference call fails or returns
// a non-success status. The call is not retried and no error is raised: the
// validator degrades to whatever partial response body was received, and
// this event is the only signal that something went wrong.
type RemoteErrorEvent struct {
	// Validator is the rail alias of the validator whose inference call
	// failed.
	Validator string

	// Endpoint is the remote inference URL that was called.
	Endpoint string

	// StatusCode is the HTTP status received, or 0 when the call itself
	// errored before a response arrived.
	StatusCode int

	// Err is the transport or status error.
	Err error

	// Timestamp is when the failure was observed.
	Timestamp time.Time
}

func (RemoteErrorEvent) hookEvent() {}
