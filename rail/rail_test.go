package rail

import (
	"context"
	"strings"
	"testing"

	"github.com/corralhq/corral"
	"github.com/corralhq/corral/hooks"
	"github.com/corralhq/corral/internal/tt"
	"github.com/corralhq/corral/validators"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func builtinRegistry() *corral.Registry {
	reg := corral.NewRegistry()
	validators.RegisterBuiltins(reg)
	return reg
}

func TestLoad(t *testing.T) {
	doc := `
validators:
  - alias: length
    args:
      min: "1"
      max: "200"
    on_fail: fix
  - alias: regex-match
    args:
      regex: ^[A-Z]
    on_fail: exception
  - alias: lower-case
`

	vs, err := Load(strings.NewReader(doc), builtinRegistry())
	require.NoError(t, err)
	require.Len(t, vs, 3)

	assert.Equal(t, "length", vs[0].RailAlias())
	assert.Equal(t, corral.OnFailFix, vs[0].OnFail())
	assert.Equal(t, "length: min=1 max=200", vs[0].ToPrompt(true))

	assert.Equal(t, "regex-match", vs[1].RailAlias())
	assert.Equal(t, corral.OnFailException, vs[1].OnFail())

	// Omitted on_fail defaults to noop.
	assert.Equal(t, corral.OnFailNoop, vs[2].OnFail())
}

func TestLoad_PreservesArgumentOrder(t *testing.T) {
	doc := `
validators:
  - alias: length
    args:
      max: "9"
      min: "5"
`
	vs, err := Load(strings.NewReader(doc), builtinRegistry())
	require.NoError(t, err)
	require.Len(t, vs, 1)

	// Declaration order, not alphabetical order.
	assert.Equal(t, "length: max=9 min=5", vs[0].ToPrompt(true))
}

func TestLoad_ScalarValuesKeepRawText(t *testing.T) {
	// Unquoted numbers round-trip as written.
	doc := `
validators:
  - alias: valid-range
    args:
      min: 0
      max: 1.5
`
	vs, err := Load(strings.NewReader(doc), builtinRegistry())
	require.NoError(t, err)
	assert.Equal(t, "valid-range: min=0 max=1.5", vs[0].ToPrompt(true))
}

func TestLoad_DeprecatedAlias(t *testing.T) {
	doc := `
validators:
  - alias: valid-length
    args:
      max: "10"
`
	vs, err := Load(strings.NewReader(doc), builtinRegistry())
	require.NoError(t, err)
	assert.Equal(t, "length", vs[0].RailAlias())
}

func TestLoad_ExtraOptionsApply(t *testing.T) {
	rec := tt.NewRecordingHook()
	registry := hooks.NewRegistry()
	registry.Register(rec)

	doc := `
validators:
  - alias: lower-case
    on_fail: fix
`
	vs, err := Load(strings.NewReader(doc), builtinRegistry(),
		corral.WithHooks(registry))
	require.NoError(t, err)

	vs[0].Validate(context.Background(), "SHOUTING", nil)
	assert.Equal(t, 2, rec.Len())
}

func TestLoad_Errors(t *testing.T) {
	type input struct {
		doc string
	}

	type expected struct {
		errContains string
	}

	tests := []struct {
		name     string
		input    input
		expected expected
	}{
		{
			name:     "not yaml",
			input:    input{doc: "{{{"},
			expected: expected{errContains: "failed to parse"},
		},
		{
			name: "missing alias",
			input: input{doc: `
validators:
  - args:
      min: "1"
`},
			expected: expected{errContains: "no alias"},
		},
		{
			name: "unknown alias",
			input: input{doc: `
validators:
  - alias: not-a-thing
`},
			expected: expected{errContains: "not-a-thing"},
		},
		{
			name: "bad on_fail",
			input: input{doc: `
validators:
  - alias: lower-case
    on_fail: explode
`},
			expected: expected{errContains: "explode"},
		},
		{
			name: "non-scalar argument",
			input: input{doc: `
validators:
  - alias: length
    args:
      min: [1, 2]
`},
			expected: expected{errContains: "scalar"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tt.input.doc), builtinRegistry())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.expected.errContains)
		})
	}
}
