package corral

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContainsRefrain(t *testing.T) {
	type input struct {
		tree any
	}

	type expected struct {
		refrained bool
	}

	tests := []struct {
		name     string
		input    input
		expected expected
	}{
		{
			name:     "scalar refrain",
			input:    input{tree: Refrained},
			expected: expected{refrained: true},
		},
		{
			name:     "plain scalar",
			input:    input{tree: "hello"},
			expected: expected{refrained: false},
		},
		{
			name:     "nil tree",
			input:    input{tree: nil},
			expected: expected{refrained: false},
		},
		{
			name:     "filtered is not refrain",
			input:    input{tree: Filtered},
			expected: expected{refrained: false},
		},
		{
			name:     "refrain nested in list",
			input:    input{tree: []any{"a", []any{"b", Refrained}}},
			expected: expected{refrained: true},
		},
		{
			name: "refrain nested in map",
			input: input{tree: map[string]any{
				"outer": map[string]any{"inner": Refrained},
			}},
			expected: expected{refrained: true},
		},
		{
			name: "deep tree without refrain",
			input: input{tree: map[string]any{
				"list": []any{1, "two", map[string]any{"k": Filtered}},
			}},
			expected: expected{refrained: false},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected.refrained, ContainsRefrain(tt.input.tree))
		})
	}
}

func TestRemoveFiltered(t *testing.T) {
	type input struct {
		tree any
	}

	type expected struct {
		tree any
	}

	tests := []struct {
		name     string
		input    input
		expected expected
	}{
		{
			name:     "scalar passes through",
			input:    input{tree: "hello"},
			expected: expected{tree: "hello"},
		},
		{
			name:     "filtered entries are dropped from lists",
			input:    input{tree: []any{"a", Filtered, "b"}},
			expected: expected{tree: []any{"a", "b"}},
		},
		{
			name:     "all-filtered list becomes empty",
			input:    input{tree: []any{Filtered, Filtered}},
			expected: expected{tree: []any{}},
		},
		{
			name:     "filtered keys are dropped from maps",
			input:    input{tree: map[string]any{"keep": 1, "drop": Filtered}},
			expected: expected{tree: map[string]any{"keep": 1}},
		},
		{
			name: "map key with list filtering to empty is dropped",
			input: input{tree: map[string]any{
				"items": []any{Filtered, Filtered},
				"other": "x",
			}},
			expected: expected{tree: map[string]any{"other": "x"}},
		},
		{
			name: "map key with map filtering to empty is kept",
			input: input{tree: map[string]any{
				"nested": map[string]any{"gone": Filtered},
			}},
			expected: expected{tree: map[string]any{
				"nested": map[string]any{},
			}},
		},
		{
			name: "list entry filtering to empty container is dropped",
			input: input{tree: []any{
				[]any{Filtered},
				map[string]any{"k": Filtered},
				"kept",
			}},
			expected: expected{tree: []any{"kept"}},
		},
		{
			name: "mixed deep tree",
			input: input{tree: map[string]any{
				"a": []any{"x", Filtered, []any{Filtered}},
				"b": map[string]any{
					"c": Filtered,
					"d": "stay",
				},
			}},
			expected: expected{tree: map[string]any{
				"a": []any{"x"},
				"b": map[string]any{"d": "stay"},
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected.tree, RemoveFiltered(tt.input.tree))
		})
	}
}

func TestRemoveFiltered_Idempotent(t *testing.T) {
	tree := map[string]any{
		"a": []any{"x", Filtered},
		"b": map[string]any{"c": Filtered},
		"c": []any{Filtered},
	}

	once := RemoveFiltered(tree)
	twice := RemoveFiltered(once)
	assert.Equal(t, once, twice)
}

func TestRefrainScenario_BlankWholeResponse(t *testing.T) {
	// One refrained field blanks the entire structured response.
	tree := map[string]any{
		"answer":  "the answer",
		"summary": Refrained,
	}

	if ContainsRefrain(tree) {
		tree = nil
	}
	assert.Nil(t, tree)
}
