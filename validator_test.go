package corral

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedValidation returns queued results in order, repeating the last.
type scriptedValidation struct {
	results   []ValidationResult
	callCount int
	captured  []any
}

func (s *scriptedValidation) Validate(_ context.Context, value any, _ map[string]any) ValidationResult {
	idx := s.callCount
	s.callCount++
	s.captured = append(s.captured, value)
	if len(s.results) == 0 {
		return &PassResult{}
	}
	if idx >= len(s.results) {
		idx = len(s.results) - 1
	}
	return s.results[idx]
}

// boundValidation is an inference-backed validation for construction tests.
type boundValidation struct {
	scriptedValidation
	infer InferenceFn
}

func (b *boundValidation) BindInference(fn InferenceFn) {
	b.infer = fn
}

// needyValidation declares required metadata keys.
type needyValidation struct {
	scriptedValidation
}

func (needyValidation) RequiredMetadataKeys() []string {
	return []string{"documents"}
}

// recordingHooks captures fired events without the hooks subpackage.
type recordingHooks struct {
	called  []ValidatorCalledEvent
	results []ValidatorResultEvent
	remote  []RemoteErrorEvent
}

func (r *recordingHooks) FireValidatorCalled(_ context.Context, e ValidatorCalledEvent) {
	r.called = append(r.called, e)
}

func (r *recordingHooks) FireValidatorResult(_ context.Context, e ValidatorResultEvent) {
	r.results = append(r.results, e)
}

func (r *recordingHooks) FireRemoteError(_ context.Context, e RemoteErrorEvent) {
	r.remote = append(r.remote, e)
}

func testRegistry(t *testing.T, validation Validation) *Registry {
	t.Helper()
	reg := NewRegistry()
	reg.Register("scripted", func(Kwargs) (Validation, error) {
		return validation, nil
	})
	return reg
}

func TestNew_UnregisteredAlias(t *testing.T) {
	reg := NewRegistry()

	v, err := New(reg, "nope")
	assert.Nil(t, v)

	var cerr *ConfigError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "nope", cerr.Alias)
}

func TestNew_ConstructorError(t *testing.T) {
	reg := NewRegistry()
	reg.Register("broken", func(Kwargs) (Validation, error) {
		return nil, errors.New("missing required argument \"regex\"")
	})

	_, err := New(reg, "broken")
	var cerr *ConfigError
	require.ErrorAs(t, err, &cerr)
	assert.Contains(t, err.Error(), "regex")
}

func TestNew_DeprecatedAliasResolution(t *testing.T) {
	reg := testRegistry(t, &scriptedValidation{})
	reg.Register("length", func(Kwargs) (Validation, error) {
		return &scriptedValidation{}, nil
	})

	v, err := New(reg, "valid-length")
	require.NoError(t, err)
	assert.Equal(t, "length", v.RailAlias())
}

func TestNew_KwargsArePassedToConstructor(t *testing.T) {
	var got Kwargs
	reg := NewRegistry()
	reg.Register("echo", func(kwargs Kwargs) (Validation, error) {
		got = kwargs
		return &scriptedValidation{}, nil
	})

	_, err := New(reg, "echo",
		WithKwarg("min", "1"),
		WithKwarg("max", "10"))
	require.NoError(t, err)

	min, ok := got.Get("min")
	assert.True(t, ok)
	assert.Equal(t, "1", min)
	_, ok = got.Get("absent")
	assert.False(t, ok)
}

func TestValidator_ToPromptAndEqual(t *testing.T) {
	type input struct {
		kwargs       []Option
		withKeywords bool
	}

	type expected struct {
		prompt string
	}

	tests := []struct {
		name     string
		input    input
		expected expected
	}{
		{
			name: "with keywords",
			input: input{
				kwargs:       []Option{WithKwarg("min", "5"), WithKwarg("max", "10")},
				withKeywords: true,
			},
			expected: expected{prompt: "scripted: min=5 max=10"},
		},
		{
			name: "without keywords",
			input: input{
				kwargs:       []Option{WithKwarg("min", "5"), WithKwarg("max", "10")},
				withKeywords: false,
			},
			expected: expected{prompt: "scripted: 5 10"},
		},
		{
			name:     "no kwargs renders the bare alias",
			input:    input{withKeywords: true},
			expected: expected{prompt: "scripted"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := testRegistry(t, &scriptedValidation{})
			v, err := New(reg, "scripted", tt.input.kwargs...)
			require.NoError(t, err)
			assert.Equal(t, tt.expected.prompt, v.ToPrompt(tt.input.withKeywords))
		})
	}
}

func TestValidator_Equal(t *testing.T) {
	reg := testRegistry(t, &scriptedValidation{})

	a, err := New(reg, "scripted", WithKwarg("min", "5"))
	require.NoError(t, err)
	b, err := New(reg, "scripted", WithKwarg("min", "5"))
	require.NoError(t, err)
	c, err := New(reg, "scripted", WithKwarg("min", "6"))
	require.NoError(t, err)

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.False(t, a.Equal(nil))

	// Kwarg order is part of identity.
	d, err := New(reg, "scripted", WithKwarg("min", "5"), WithKwarg("max", "9"))
	require.NoError(t, err)
	e, err := New(reg, "scripted", WithKwarg("max", "9"), WithKwarg("min", "5"))
	require.NoError(t, err)
	assert.False(t, d.Equal(e))
}

func TestValidator_RequiredMetadata(t *testing.T) {
	reg := testRegistry(t, &needyValidation{})

	v, err := New(reg, "scripted")
	require.NoError(t, err)

	// Missing key fails without reaching the validation.
	result := v.Validate(context.Background(), "value", nil)
	fail, ok := result.(*FailResult)
	require.True(t, ok)
	assert.Contains(t, fail.ErrorMessage, "documents")

	// Present key validates normally.
	result = v.Validate(context.Background(), "value", map[string]any{"documents": []string{"d"}})
	assert.IsType(t, &PassResult{}, result)
}

func TestValidator_ExtraRequiredMetadataKeys(t *testing.T) {
	reg := testRegistry(t, &scriptedValidation{})

	v, err := New(reg, "scripted", WithRequiredMetadataKeys("tenant"))
	require.NoError(t, err)

	result := v.Validate(context.Background(), "value", map[string]any{})
	fail, ok := result.(*FailResult)
	require.True(t, ok)
	assert.Contains(t, fail.ErrorMessage, "tenant")
}

func TestValidator_HooksFire(t *testing.T) {
	rec := &recordingHooks{}
	scripted := &scriptedValidation{
		results: []ValidationResult{&FailResult{ErrorMessage: "bad"}},
	}
	reg := testRegistry(t, scripted)

	v, err := New(reg, "scripted", WithHooks(rec))
	require.NoError(t, err)

	v.Validate(context.Background(), "value", nil)

	require.Len(t, rec.called, 1)
	assert.Equal(t, "scripted", rec.called[0].Validator)
	assert.Equal(t, "value", rec.called[0].Value)

	require.Len(t, rec.results, 1)
	fail, ok := rec.results[0].Result.(*FailResult)
	require.True(t, ok)
	assert.Equal(t, "bad", fail.ErrorMessage)
}

func TestValidator_ValidateStream(t *testing.T) {
	scripted := &scriptedValidation{}
	reg := testRegistry(t, scripted)

	v, err := New(reg, "scripted")
	require.NoError(t, err)
	ctx := context.Background()

	// Incomplete sentence: need more input.
	result := v.ValidateStream(ctx, "Hello wor", nil, false)
	assert.Nil(t, result)
	assert.Equal(t, 0, scripted.callCount)

	// Boundary reached: the completed unit is validated and stamped.
	result = v.ValidateStream(ctx, "ld. Next s", nil, false)
	require.NotNil(t, result)
	pass, ok := result.(*PassResult)
	require.True(t, ok)
	assert.Equal(t, "Hello world.", pass.ValidatedChunk)
	assert.Equal(t, []any{"Hello world."}, scripted.captured)
	assert.Equal(t, " Next s", v.PendingStream())

	// Remainder flushes the buffered tail.
	result = v.ValidateStream(ctx, "entence", nil, true)
	require.NotNil(t, result)
	pass, ok = result.(*PassResult)
	require.True(t, ok)
	assert.Equal(t, " Next sentence", pass.ValidatedChunk)
	assert.Equal(t, "", v.PendingStream())
}

func TestValidator_ValidateStreamStampsFailures(t *testing.T) {
	scripted := &scriptedValidation{
		results: []ValidationResult{&FailResult{ErrorMessage: "bad"}},
	}
	reg := testRegistry(t, scripted)

	v, err := New(reg, "scripted")
	require.NoError(t, err)

	result := v.ValidateStream(context.Background(), "Oops.", nil, false)
	fail, ok := result.(*FailResult)
	require.True(t, ok)
	assert.Equal(t, "Oops.", fail.ValidatedChunk)
}

func TestValidator_ValidateStreamKeepsExplicitChunk(t *testing.T) {
	scripted := &scriptedValidation{
		results: []ValidationResult{&PassResult{ValidatedChunk: "already set"}},
	}
	reg := testRegistry(t, scripted)

	v, err := New(reg, "scripted")
	require.NoError(t, err)

	result := v.ValidateStream(context.Background(), "Sentence.", nil, false)
	pass, ok := result.(*PassResult)
	require.True(t, ok)
	assert.Equal(t, "already set", pass.ValidatedChunk)
}

func TestValidator_ResetStream(t *testing.T) {
	reg := testRegistry(t, &scriptedValidation{})

	v, err := New(reg, "scripted")
	require.NoError(t, err)

	_ = v.ValidateStream(context.Background(), "dangling", nil, false)
	assert.Equal(t, "dangling", v.PendingStream())

	v.ResetStream()
	assert.Equal(t, "", v.PendingStream())
}

func TestValidator_ResolveConvenience(t *testing.T) {
	scripted := &scriptedValidation{
		results: []ValidationResult{&FailResult{ErrorMessage: "bad", FixValue: "fixed", HasFix: true}},
	}
	reg := testRegistry(t, scripted)

	v, err := New(reg, "scripted", WithOnFail(OnFailFix))
	require.NoError(t, err)

	log := NewFailureLog()
	result := v.Validate(context.Background(), "original", nil)
	value, err := v.Resolve(log, result, "original")
	require.NoError(t, err)
	assert.Equal(t, "fixed", value)
	require.Equal(t, 1, log.Len())
	assert.Equal(t, "scripted", log.Failures()[0].Validator)
}

func TestNew_InferenceModeSelection(t *testing.T) {
	remoteOn := true
	remoteOff := false

	type input struct {
		opts []Option
	}

	type expected struct {
		permissionErr bool
		useLocal      bool
	}

	tests := []struct {
		name     string
		input    input
		expected expected
	}{
		{
			name: "no credentials and no explicit mode is a permission error",
			input: input{opts: []Option{
				WithCredentials(nil),
			}},
			expected: expected{permissionErr: true},
		},
		{
			name: "explicit local needs no credentials",
			input: input{opts: []Option{
				WithCredentials(nil),
				WithUseLocal(true),
			}},
			expected: expected{useLocal: true},
		},
		{
			name: "remote-enabled credentials select remote",
			input: input{opts: []Option{
				WithCredentials(&Credentials{APIKey: "k", UseRemoteInference: &remoteOn}),
			}},
			expected: expected{useLocal: false},
		},
		{
			name: "remote-disabled credentials select local",
			input: input{opts: []Option{
				WithCredentials(&Credentials{APIKey: "k", UseRemoteInference: &remoteOff}),
			}},
			expected: expected{useLocal: true},
		},
		{
			name: "explicit mode wins over credentials",
			input: input{opts: []Option{
				WithCredentials(&Credentials{APIKey: "k", UseRemoteInference: &remoteOn}),
				WithUseLocal(true),
			}},
			expected: expected{useLocal: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := testRegistry(t, &boundValidation{})
			v, err := New(reg, "scripted", tt.input.opts...)

			if tt.expected.permissionErr {
				var perr *PermissionError
				require.ErrorAs(t, err, &perr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected.useLocal, v.UsesLocalInference())
		})
	}
}

func TestNew_BindsInference(t *testing.T) {
	binder := &boundValidation{}
	reg := testRegistry(t, binder)

	engine := LocalInferenceFunc(func(_ context.Context, input any) (any, error) {
		return fmt.Sprintf("echo: %v", input), nil
	})

	_, err := New(reg, "scripted",
		WithUseLocal(true),
		WithLocalInference(engine),
		WithCredentials(nil))
	require.NoError(t, err)
	require.NotNil(t, binder.infer)

	out, err := binder.infer(context.Background(), "ping")
	require.NoError(t, err)
	assert.Equal(t, "echo: ping", out)
}

func TestNew_DefaultEndpoint(t *testing.T) {
	reg := testRegistry(t, &boundValidation{})

	v, err := New(reg, "scripted",
		WithUseLocal(true),
		WithCredentials(nil))
	require.NoError(t, err)
	assert.Equal(t, DefaultHubURL+"/validator/scripted/inference", v.Endpoint())

	v, err = New(reg, "scripted",
		WithUseLocal(true),
		WithCredentials(nil),
		WithEndpoint("https://example.com/infer"))
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/infer", v.Endpoint())
}

func TestValidator_InferenceLocalWithoutEngine(t *testing.T) {
	reg := testRegistry(t, &boundValidation{})

	v, err := New(reg, "scripted",
		WithUseLocal(true),
		WithCredentials(nil))
	require.NoError(t, err)

	out, err := v.Inference(context.Background(), "input")
	assert.Nil(t, out)
	var cerr *ConfigError
	assert.ErrorAs(t, err, &cerr)
}

func TestValidator_PureValidatorDefaultsToLocal(t *testing.T) {
	// A validation without inference never consults credentials.
	reg := testRegistry(t, &scriptedValidation{})

	v, err := New(reg, "scripted")
	require.NoError(t, err)
	assert.True(t, v.UsesLocalInference())
}

func TestValidator_SeparateProcessOverride(t *testing.T) {
	reg := testRegistry(t, &scriptedValidation{})

	v, err := New(reg, "scripted")
	require.NoError(t, err)
	assert.False(t, v.RunInSeparateProcess())

	v, err = New(reg, "scripted", WithSeparateProcess(true))
	require.NoError(t, err)
	assert.True(t, v.RunInSeparateProcess())
}
