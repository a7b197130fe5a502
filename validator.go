package corral

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Validation is the capability every validator implements: evaluate one
// value and return a Pass or Fail result.
//
// Implementations should be stateless with respect to individual values; all
// streaming state lives in the Validator's chunk accumulator. The metadata
// map carries caller-supplied context (e.g. source documents for a
// similarity check); declare mandatory keys via [MetadataRequirer].
type Validation interface {
	// Validate evaluates value and returns the outcome. It must return
	// a non-nil *PassResult or *FailResult.
	Validate(ctx context.Context, value any, metadata map[string]any) ValidationResult
}

// ValidationFunc adapts a bare function to the Validation interface, so
// function-based validators need no wrapper struct of their own:
//
//	reg.Register("no-shouting", func(corral.Kwargs) (corral.Validation, error) {
//	    return corral.ValidationFunc(func(_ context.Context, value any, _ map[string]any) corral.ValidationResult {
//	        s, _ := value.(string)
//	        if s == strings.ToUpper(s) && s != "" {
//	            return &corral.FailResult{ErrorMessage: "all-caps output"}
//	        }
//	        return &corral.PassResult{}
//	    }), nil
//	})
type ValidationFunc func(ctx context.Context, value any, metadata map[string]any) ValidationResult

// Validate implements Validation.
func (f ValidationFunc) Validate(ctx context.Context, value any, metadata map[string]any) ValidationResult {
	return f(ctx, value, metadata)
}

// -----------------------------------------------------------------------------
// Optional Validation capabilities
// -----------------------------------------------------------------------------

// InferenceBinder is implemented by Validations that dispatch to a machine
// learning model. New binds the owning Validator's Inference method after
// construction, so the Validation never decides local-vs-remote itself.
//
// Implementing this interface also marks the validator as inference-backed:
// when no execution mode is chosen explicitly, construction consults the
// credentials to pick one, and fails with PermissionError when there are
// none.
type InferenceBinder interface {
	Validation

	// BindInference supplies the dispatch function to use for model
	// calls. Called exactly once, during New.
	BindInference(fn InferenceFn)
}

// InferenceFn dispatches a model input to the validator's configured
// inference engine. See Validator.Inference for degradation semantics.
type InferenceFn func(ctx context.Context, input any) (any, error)

// MetadataRequirer is implemented by Validations that cannot run without
// certain metadata keys. Validate fails fast when a required key is missing.
type MetadataRequirer interface {
	Validation

	// RequiredMetadataKeys lists the metadata keys that must be present.
	RequiredMetadataKeys() []string
}

// ProcessIsolated is implemented by Validations whose inference is not safe
// to share process-global state with other validators. The core only exposes
// the flag; honoring it (running _validate in a separate process) is the
// orchestrator's job.
type ProcessIsolated interface {
	Validation

	// RunInSeparateProcess reports whether the orchestrator should
	// isolate this validator's Validate calls in their own process.
	RunInSeparateProcess() bool
}

// -----------------------------------------------------------------------------
// Kwargs
// -----------------------------------------------------------------------------

// Kwarg is one rail argument. Order is significant: the prompt rendering
// that defines validator identity preserves declaration order.
type Kwarg struct {
	Key   string
	Value string
}

// Kwargs is the ordered argument list a validator was declared with.
type Kwargs []Kwarg

// Get returns the value for key and whether it is present.
func (k Kwargs) Get(key string) (string, bool) {
	for _, kw := range k {
		if kw.Key == key {
			return kw.Value, true
		}
	}
	return "", false
}

// -----------------------------------------------------------------------------
// Validator
// -----------------------------------------------------------------------------

// DefaultHubURL is the base URL for hub-hosted inference endpoints.
const DefaultHubURL = "https://hub.api.corral.dev"

// Validator is a named, parameterized rule bound to an on-fail policy and a
// chunk accumulator. It is constructed once at schema-compile time via [New]
// and reused for every value it validates within one run.
//
// Identity is the pair (rail alias, ordered kwargs): two validators are
// equal iff their prompt renderings are equal (see ToPrompt and Equal).
//
// # Streaming sessions
//
// The accumulation buffer mutates on every ValidateStream call and is NOT
// reset automatically between independent streaming sessions. A single
// Validator must not be driven by two concurrent streams; serialize calls or
// use per-session instances, and call ResetStream before reusing an instance
// for an unrelated stream.
type Validator struct {
	railAlias  string
	kwargs     Kwargs
	validation Validation

	onFail   OnFailAction
	onFailFn OnFailFunc

	useLocal bool
	endpoint string
	local    LocalInference
	remote   RemoteInference
	creds    *Credentials

	requiredMetadataKeys []string
	runInSeparateProcess bool

	hooks HookDispatcher
	acc   *ChunkAccumulator
}

// Option configures a Validator during New.
type Option func(*validatorConfig)

type validatorConfig struct {
	kwargs   Kwargs
	onFail   OnFailAction
	onFailFn OnFailFunc

	useLocal    *bool
	endpoint    string
	local       LocalInference
	remote      RemoteInference
	creds       *Credentials
	credsLoaded bool

	requiredMetadataKeys []string
	separateProcess      *bool

	hooks    HookDispatcher
	boundary ChunkBoundaryFunc
}

// WithKwarg appends one rail argument. Declaration order is preserved and is
// part of the validator's identity.
func WithKwarg(key, value string) Option {
	return func(c *validatorConfig) {
		c.kwargs = append(c.kwargs, Kwarg{Key: key, Value: value})
	}
}

// WithKwargs appends a sequence of rail arguments in order.
func WithKwargs(kwargs Kwargs) Option {
	return func(c *validatorConfig) {
		c.kwargs = append(c.kwargs, kwargs...)
	}
}

// WithOnFail sets the on-fail policy. Defaults to OnFailNoop.
func WithOnFail(action OnFailAction) Option {
	return func(c *validatorConfig) {
		c.onFail = action
	}
}

// WithOnFailFunc sets a custom on-fail callback; the policy becomes
// OnFailCustom.
func WithOnFailFunc(fn OnFailFunc) Option {
	return func(c *validatorConfig) {
		c.onFail = OnFailCustom
		c.onFailFn = fn
	}
}

// WithLocalInference supplies the local inference engine and, unless
// overridden by WithUseLocal, selects local execution.
func WithLocalInference(engine LocalInference) Option {
	return func(c *validatorConfig) {
		c.local = engine
	}
}

// WithRemoteInference replaces the stock HubClient remote engine.
func WithRemoteInference(engine RemoteInference) Option {
	return func(c *validatorConfig) {
		c.remote = engine
	}
}

// WithUseLocal selects the execution mode explicitly, bypassing the
// credentials-based default.
func WithUseLocal(useLocal bool) Option {
	return func(c *validatorConfig) {
		c.useLocal = &useLocal
	}
}

// WithEndpoint overrides the remote inference endpoint URL.
func WithEndpoint(url string) Option {
	return func(c *validatorConfig) {
		c.endpoint = url
	}
}

// WithCredentials supplies credentials explicitly instead of loading them
// from the rc file. Pass nil to assert that no credentials exist.
func WithCredentials(creds *Credentials) Option {
	return func(c *validatorConfig) {
		c.creds = creds
		c.credsLoaded = true
	}
}

// WithRequiredMetadataKeys adds metadata keys that Validate requires, in
// addition to any declared by the Validation via MetadataRequirer.
func WithRequiredMetadataKeys(keys ...string) Option {
	return func(c *validatorConfig) {
		c.requiredMetadataKeys = append(c.requiredMetadataKeys, keys...)
	}
}

// WithSeparateProcess overrides the Validation's own ProcessIsolated
// declaration.
func WithSeparateProcess(isolate bool) Option {
	return func(c *validatorConfig) {
		c.separateProcess = &isolate
	}
}

// WithHooks attaches a hook dispatcher for validation and remote-error
// events.
func WithHooks(hooks HookDispatcher) Option {
	return func(c *validatorConfig) {
		c.hooks = hooks
	}
}

// WithBoundaryFunc replaces the default sentence boundary used by
// ValidateStream.
func WithBoundaryFunc(boundary ChunkBoundaryFunc) Option {
	return func(c *validatorConfig) {
		c.boundary = boundary
	}
}

// New constructs a Validator for the given rail alias.
//
// The alias must be registered in reg (deprecated aliases are resolved
// through the naming table first); otherwise New returns a *ConfigError.
// For inference-backed validators (Validations implementing
// InferenceBinder) with no explicit WithUseLocal, credentials decide the
// mode: remote when the account enables remote inference, local otherwise,
// and a *PermissionError when no credentials exist at all.
func New(reg *Registry, alias string, opts ...Option) (*Validator, error) {
	cfg := &validatorConfig{onFail: OnFailNoop}
	for _, opt := range opts {
		opt(cfg)
	}

	resolved := alias
	if replacement, ok := ReplacementFor(alias); ok {
		resolved = replacement.Alias
	}

	ctor, ok := reg.Lookup(resolved)
	if !ok {
		return nil, &ConfigError{
			Alias: alias,
			Err:   fmt.Errorf("validator is not registered"),
		}
	}

	if _, err := ParseOnFailAction(string(cfg.onFail)); err != nil {
		return nil, &ConfigError{Alias: alias, Err: err}
	}

	validation, err := ctor(cfg.kwargs)
	if err != nil {
		return nil, &ConfigError{Alias: alias, Err: err}
	}

	v := &Validator{
		railAlias:  resolved,
		kwargs:     cfg.kwargs,
		validation: validation,
		onFail:     cfg.onFail,
		onFailFn:   cfg.onFailFn,
		endpoint:   cfg.endpoint,
		local:      cfg.local,
		remote:     cfg.remote,
		hooks:      cfg.hooks,
		acc:        NewChunkAccumulator(cfg.boundary),
		useLocal:   true,
	}

	if mr, ok := validation.(MetadataRequirer); ok {
		v.requiredMetadataKeys = append(v.requiredMetadataKeys, mr.RequiredMetadataKeys()...)
	}
	v.requiredMetadataKeys = append(v.requiredMetadataKeys, cfg.requiredMetadataKeys...)

	if pi, ok := validation.(ProcessIsolated); ok {
		v.runInSeparateProcess = pi.RunInSeparateProcess()
	}
	if cfg.separateProcess != nil {
		v.runInSeparateProcess = *cfg.separateProcess
	}

	binder, needsInference := validation.(InferenceBinder)
	if needsInference {
		if err := v.configureInference(alias, cfg); err != nil {
			return nil, err
		}
		binder.BindInference(v.Inference)
	}

	return v, nil
}

// configureInference resolves the execution mode, endpoint and remote client
// for an inference-backed validator.
func (v *Validator) configureInference(alias string, cfg *validatorConfig) error {
	creds := cfg.creds
	if !cfg.credsLoaded {
		// Load errors are treated as absent credentials; construction
		// below decides whether that is fatal.
		creds, _ = LoadCredentials()
	}
	v.creds = creds

	switch {
	case cfg.useLocal != nil:
		v.useLocal = *cfg.useLocal
	case creds == nil:
		return &PermissionError{Alias: alias}
	default:
		v.useLocal = !creds.RemoteInferenceEnabled()
	}

	if v.endpoint == "" {
		validatorID := v.railAlias
		if idx := strings.LastIndex(validatorID, "/"); idx >= 0 {
			validatorID = validatorID[idx+1:]
		}
		v.endpoint = DefaultHubURL + "/validator/" + validatorID + "/inference"
	}
	if v.remote == nil {
		v.remote = NewHubClient(creds)
	}
	return nil
}

// RailAlias returns the validator's registered name (after deprecated-alias
// resolution).
func (v *Validator) RailAlias() string {
	return v.railAlias
}

// Kwargs returns the validator's ordered rail arguments.
func (v *Validator) Kwargs() Kwargs {
	return v.kwargs
}

// OnFail returns the configured on-fail policy.
func (v *Validator) OnFail() OnFailAction {
	return v.onFail
}

// RunInSeparateProcess reports whether the orchestrator should isolate this
// validator's Validate calls in their own process. The core does not
// implement the isolation itself.
func (v *Validator) RunInSeparateProcess() bool {
	return v.runInSeparateProcess
}

// Endpoint returns the remote inference URL in effect.
func (v *Validator) Endpoint() string {
	return v.endpoint
}

// UsesLocalInference reports the execution mode resolved at construction.
func (v *Validator) UsesLocalInference() bool {
	return v.useLocal
}

// Validate evaluates a single complete value.
//
// It checks required metadata keys (a missing key is a validation failure,
// not a panic), fires ValidatorCalled/ValidatorResult hooks, and delegates
// to the underlying Validation.
func (v *Validator) Validate(ctx context.Context, value any, metadata map[string]any) ValidationResult {
	for _, key := range v.requiredMetadataKeys {
		if _, ok := metadata[key]; !ok {
			return &FailResult{
				ErrorMessage: fmt.Sprintf(
					"validator %s requires metadata key %q", v.railAlias, key),
			}
		}
	}

	if v.hooks != nil {
		v.hooks.FireValidatorCalled(ctx, ValidatorCalledEvent{
			Validator: v.railAlias,
			Value:     value,
			Timestamp: time.Now(),
		})
	}

	result := v.validation.Validate(ctx, value, metadata)

	if v.hooks != nil {
		v.hooks.FireValidatorResult(ctx, ValidatorResultEvent{
			Validator: v.railAlias,
			Value:     value,
			Result:    result,
			Timestamp: time.Now(),
		})
	}
	return result
}

// ValidateStream validates one streamed text fragment.
//
// The fragment is appended to the validator's accumulation buffer; when the
// boundary function yields a complete unit, the unit is validated and the
// result returned, stamped with the unit as ValidatedChunk if the Validation
// did not set one. When no unit is ready yet, ValidateStream returns nil -
// the "need more input" signal, deliberately distinct from any validation
// outcome.
//
// Set remainder on the final call of a stream to flush all buffered text as
// one last unit regardless of the boundary function.
func (v *Validator) ValidateStream(
	ctx context.Context,
	chunk string,
	metadata map[string]any,
	remainder bool,
) ValidationResult {
	unit, ok := v.acc.Feed(chunk, remainder)
	if !ok {
		return nil
	}

	result := v.Validate(ctx, unit, metadata)
	switch r := result.(type) {
	case *PassResult:
		if r.ValidatedChunk == "" {
			r.ValidatedChunk = unit
		}
	case *FailResult:
		if r.ValidatedChunk == "" {
			r.ValidatedChunk = unit
		}
	}
	return result
}

// ResetStream reassigns a fresh accumulation buffer, preparing the validator
// for a new, unrelated streaming session.
func (v *Validator) ResetStream() {
	v.acc.Reset()
}

// PendingStream returns buffered text that has not yet formed a unit.
func (v *Validator) PendingStream() string {
	return v.acc.Pending()
}

// Resolve applies the validator's configured on-fail policy to a validation
// outcome. See the package-level [Resolve] for the full contract.
func (v *Validator) Resolve(log *FailureLog, result ValidationResult, original any) (any, error) {
	return Resolve(log, v.railAlias, result, v.onFail, v.onFailFn, original)
}

// Inference dispatches a model input to the inference engine selected at
// construction.
//
// Local execution is the default and the preferred path; remote dispatch is
// the exception requiring both a token and a remote-enabled account. Remote
// failures (transport errors, non-success statuses) are reported through the
// RemoteError hook and degrade to whatever partial response body was
// received - they are not retried and never surface as errors, so callers
// must handle a nil or incomplete response.
func (v *Validator) Inference(ctx context.Context, input any) (any, error) {
	if v.useLocal {
		if v.local == nil {
			return nil, &ConfigError{
				Alias: v.railAlias,
				Err:   fmt.Errorf("local inference selected but no local engine configured"),
			}
		}
		return v.local.Infer(ctx, input)
	}

	body, err := v.remote.Infer(ctx, v.endpoint, input)
	if err != nil {
		statusCode := 0
		if statusErr, ok := err.(*HubStatusError); ok {
			statusCode = statusErr.StatusCode
		}
		if v.hooks != nil {
			v.hooks.FireRemoteError(ctx, RemoteErrorEvent{
				Validator:  v.railAlias,
				Endpoint:   v.endpoint,
				StatusCode: statusCode,
				Err:        err,
				Timestamp:  time.Now(),
			})
		}
		return body, nil
	}
	return body, nil
}

// ToPrompt renders the validator's identity and parameters for embedding in
// model instructions.
//
// With keywords: "length: min=5 max=10". Without: "length: 5 10". A
// validator with no kwargs renders as its bare alias.
func (v *Validator) ToPrompt(withKeywords bool) string {
	if len(v.kwargs) == 0 {
		return v.railAlias
	}

	parts := make([]string, 0, len(v.kwargs))
	for _, kw := range v.kwargs {
		if withKeywords {
			parts = append(parts, kw.Key+"="+kw.Value)
		} else {
			parts = append(parts, kw.Value)
		}
	}
	return v.railAlias + ": " + strings.Join(parts, " ")
}

// Equal reports whether two validators are the same rule with the same
// parameters. Equality is defined as equality of prompt renderings.
func (v *Validator) Equal(other *Validator) bool {
	if other == nil {
		return false
	}
	return v.ToPrompt(true) == other.ToPrompt(true)
}
