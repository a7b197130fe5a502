package corral

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve_PassResults(t *testing.T) {
	type input struct {
		result   ValidationResult
		original any
	}

	type expected struct {
		value any
	}

	tests := []struct {
		name     string
		input    input
		expected expected
	}{
		{
			name: "pass keeps the original value",
			input: input{
				result:   &PassResult{},
				original: "hello",
			},
			expected: expected{value: "hello"},
		},
		{
			name: "pass with override substitutes the fixed value",
			input: input{
				result:   &PassResult{FixedValue: "normalized", ValueOverride: true},
				original: "HELLO",
			},
			expected: expected{value: "normalized"},
		},
		{
			name: "nil result keeps the original value",
			input: input{
				result:   nil,
				original: "hello",
			},
			expected: expected{value: "hello"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log := NewFailureLog()
			value, err := Resolve(log, "test", tt.input.result, OnFailNoop, nil, tt.input.original)
			require.NoError(t, err)
			assert.Equal(t, tt.expected.value, value)
			assert.Equal(t, 0, log.Len())
		})
	}
}

func TestResolve_FailPolicies(t *testing.T) {
	type input struct {
		result   *FailResult
		policy   OnFailAction
		original any
	}

	type expected struct {
		value any
	}

	tests := []struct {
		name     string
		input    input
		expected expected
	}{
		{
			name: "noop keeps the original value",
			input: input{
				result:   &FailResult{ErrorMessage: "bad"},
				policy:   OnFailNoop,
				original: "original",
			},
			expected: expected{value: "original"},
		},
		{
			name: "fix substitutes the fix value",
			input: input{
				result:   &FailResult{ErrorMessage: "bad", FixValue: "X", HasFix: true},
				policy:   OnFailFix,
				original: "original",
			},
			expected: expected{value: "X"},
		},
		{
			name: "fix without a fix value keeps the original",
			input: input{
				result:   &FailResult{ErrorMessage: "bad"},
				policy:   OnFailFix,
				original: "original",
			},
			expected: expected{value: "original"},
		},
		{
			name: "filter yields the filtered sentinel",
			input: input{
				result:   &FailResult{ErrorMessage: "bad", FixValue: "X", HasFix: true},
				policy:   OnFailFilter,
				original: "original",
			},
			expected: expected{value: Filtered},
		},
		{
			name: "refrain yields the refrained sentinel",
			input: input{
				result:   &FailResult{ErrorMessage: "bad"},
				policy:   OnFailRefrain,
				original: "original",
			},
			expected: expected{value: Refrained},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log := NewFailureLog()
			value, err := Resolve(log, "test", tt.input.result, tt.input.policy, nil, tt.input.original)
			require.NoError(t, err)
			assert.Equal(t, tt.expected.value, value)
			assert.Equal(t, 1, log.Len())
		})
	}
}

func TestResolve_Exception(t *testing.T) {
	log := NewFailureLog()
	value, err := Resolve(log, "test",
		&FailResult{ErrorMessage: "totally wrong"},
		OnFailException, nil, "original")

	assert.Nil(t, value)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "totally wrong", verr.Message)
	assert.Equal(t, 1, log.Len())
}

func TestResolve_Reask(t *testing.T) {
	type input struct {
		policy OnFailAction
	}

	tests := []struct {
		name  string
		input input
	}{
		{name: "reask", input: input{policy: OnFailReask}},
		{name: "fix_reask", input: input{policy: OnFailFixReask}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log := NewFailureLog()
			value, err := Resolve(log, "test",
				&FailResult{ErrorMessage: "bad", FixValue: "fixed", HasFix: true},
				tt.input.policy, nil, "original")
			require.NoError(t, err)

			reask, ok := value.(*Reask)
			require.True(t, ok)
			assert.Equal(t, "original", reask.Value)
			assert.Equal(t, tt.input.policy, reask.Action)
			assert.Equal(t, "bad", reask.ErrorMessage)
			assert.Equal(t, "fixed", reask.FixValue)
			assert.True(t, reask.HasFix)
		})
	}
}

func TestResolve_CustomCallback(t *testing.T) {
	log := NewFailureLog()
	custom := func(value any, result *FailResult) (any, error) {
		return "from callback: " + result.ErrorMessage, nil
	}

	value, err := Resolve(log, "test",
		&FailResult{ErrorMessage: "bad"},
		OnFailCustom, custom, "original")
	require.NoError(t, err)
	assert.Equal(t, "from callback: bad", value)
}

func TestResolve_CustomCallbackError(t *testing.T) {
	log := NewFailureLog()
	boom := errors.New("callback exploded")
	custom := func(value any, result *FailResult) (any, error) {
		return nil, boom
	}

	value, err := Resolve(log, "test",
		&FailResult{ErrorMessage: "bad"},
		OnFailCustom, custom, "original")
	assert.Nil(t, value)
	assert.ErrorIs(t, err, boom)
}

func TestResolve_RecordsFailureDetails(t *testing.T) {
	log := NewFailureLog()
	fail := &FailResult{ErrorMessage: "too long"}

	_, err := Resolve(log, "length", fail, OnFailNoop, nil, "value under test")
	require.NoError(t, err)

	failures := log.Failures()
	require.Len(t, failures, 1)
	assert.Equal(t, "length", failures[0].Validator)
	assert.Equal(t, OnFailNoop, failures[0].Action)
	assert.Equal(t, fail, failures[0].Result)
	assert.Equal(t, "value under test", failures[0].Value)
	assert.False(t, failures[0].Time.IsZero())
}
