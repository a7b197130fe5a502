package validators

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/corralhq/corral"
)

// -----------------------------------------------------------------------------
// regex-match
// -----------------------------------------------------------------------------

// RegexMatch validates that a value matches a regular expression.
//
// Arguments:
//   - regex (required): the pattern, RE2 syntax
//   - match_type (optional): "search" (default, pattern anywhere) or
//     "fullmatch" (pattern must cover the whole value)
type RegexMatch struct {
	pattern   *regexp.Regexp
	matchType string
}

// NewRegexMatch is the constructor registered under "regex-match".
func NewRegexMatch(kwargs corral.Kwargs) (corral.Validation, error) {
	raw, err := requireKwarg(kwargs, "regex")
	if err != nil {
		return nil, err
	}

	matchType, ok := kwargs.Get("match_type")
	if !ok || matchType == "" {
		matchType = "search"
	}
	switch matchType {
	case "search":
	case "fullmatch":
		raw = "^(?:" + raw + ")$"
	default:
		return nil, fmt.Errorf("argument %q must be \"search\" or \"fullmatch\", got %q", "match_type", matchType)
	}

	pattern, err := regexp.Compile(raw)
	if err != nil {
		return nil, fmt.Errorf("argument %q is not a valid pattern: %w", "regex", err)
	}
	return &RegexMatch{pattern: pattern, matchType: matchType}, nil
}

// Validate implements corral.Validation.
func (v *RegexMatch) Validate(_ context.Context, value any, _ map[string]any) corral.ValidationResult {
	s := asString(value)
	if v.pattern.MatchString(s) {
		return &corral.PassResult{}
	}
	return &corral.FailResult{
		ErrorMessage: fmt.Sprintf("Result must match %s", v.pattern.String()),
	}
}

// -----------------------------------------------------------------------------
// length
// -----------------------------------------------------------------------------

// Length validates that a string's length (or a list's element count) falls
// within [min, max]. Both bounds are optional.
//
// Fixes: a too-long value is truncated to max; a too-short string is padded
// by repeating its last character. A too-short list has no fix.
type Length struct {
	min, max       int
	hasMin, hasMax bool
}

// NewLength is the constructor registered under "length".
func NewLength(kwargs corral.Kwargs) (corral.Validation, error) {
	min, hasMin, err := intKwarg(kwargs, "min")
	if err != nil {
		return nil, err
	}
	max, hasMax, err := intKwarg(kwargs, "max")
	if err != nil {
		return nil, err
	}
	if hasMin && hasMax && min > max {
		return nil, fmt.Errorf("argument %q (%d) exceeds %q (%d)", "min", min, "max", max)
	}
	return &Length{min: min, max: max, hasMin: hasMin, hasMax: hasMax}, nil
}

// Validate implements corral.Validation.
func (v *Length) Validate(_ context.Context, value any, _ map[string]any) corral.ValidationResult {
	if list, ok := value.([]any); ok {
		return v.validateList(list)
	}
	return v.validateString(asString(value))
}

func (v *Length) validateString(s string) corral.ValidationResult {
	runes := []rune(s)
	if v.hasMin && len(runes) < v.min {
		fail := &corral.FailResult{
			ErrorMessage: fmt.Sprintf(
				"Value has length less than %d. Please return a longer output.", v.min),
		}
		if len(runes) > 0 {
			last := runes[len(runes)-1]
			padded := s + strings.Repeat(string(last), v.min-len(runes))
			fail.FixValue = padded
			fail.HasFix = true
		}
		return fail
	}
	if v.hasMax && len(runes) > v.max {
		return &corral.FailResult{
			ErrorMessage: fmt.Sprintf(
				"Value has length greater than %d. Please return a shorter output.", v.max),
			FixValue: string(runes[:v.max]),
			HasFix:   true,
		}
	}
	return &corral.PassResult{}
}

func (v *Length) validateList(list []any) corral.ValidationResult {
	if v.hasMin && len(list) < v.min {
		return &corral.FailResult{
			ErrorMessage: fmt.Sprintf(
				"Value has fewer than %d elements. Please return a longer list.", v.min),
		}
	}
	if v.hasMax && len(list) > v.max {
		return &corral.FailResult{
			ErrorMessage: fmt.Sprintf(
				"Value has more than %d elements. Please return a shorter list.", v.max),
			FixValue: list[:v.max],
			HasFix:   true,
		}
	}
	return &corral.PassResult{}
}

// -----------------------------------------------------------------------------
// lower-case / upper-case
// -----------------------------------------------------------------------------

// LowerCase validates that a value is entirely lower case. The fix lowers it.
type LowerCase struct{}

// NewLowerCase is the constructor registered under "lower-case".
func NewLowerCase(corral.Kwargs) (corral.Validation, error) {
	return &LowerCase{}, nil
}

// Validate implements corral.Validation.
func (v *LowerCase) Validate(_ context.Context, value any, _ map[string]any) corral.ValidationResult {
	s := asString(value)
	if s == strings.ToLower(s) {
		return &corral.PassResult{}
	}
	return &corral.FailResult{
		ErrorMessage: fmt.Sprintf("Value %s is not lower case.", s),
		FixValue:     strings.ToLower(s),
		HasFix:       true,
	}
}

// UpperCase validates that a value is entirely upper case. The fix raises it.
type UpperCase struct{}

// NewUpperCase is the constructor registered under "upper-case".
func NewUpperCase(corral.Kwargs) (corral.Validation, error) {
	return &UpperCase{}, nil
}

// Validate implements corral.Validation.
func (v *UpperCase) Validate(_ context.Context, value any, _ map[string]any) corral.ValidationResult {
	s := asString(value)
	if s == strings.ToUpper(s) {
		return &corral.PassResult{}
	}
	return &corral.FailResult{
		ErrorMessage: fmt.Sprintf("Value %s is not upper case.", s),
		FixValue:     strings.ToUpper(s),
		HasFix:       true,
	}
}

// -----------------------------------------------------------------------------
// two-words
// -----------------------------------------------------------------------------

// TwoWords validates that a value is exactly two words. The fix keeps the
// first two.
type TwoWords struct{}

// NewTwoWords is the constructor registered under "two-words".
func NewTwoWords(corral.Kwargs) (corral.Validation, error) {
	return &TwoWords{}, nil
}

// Validate implements corral.Validation.
func (v *TwoWords) Validate(_ context.Context, value any, _ map[string]any) corral.ValidationResult {
	s := asString(value)
	words := strings.Fields(s)
	if len(words) == 2 {
		return &corral.PassResult{}
	}

	fail := &corral.FailResult{
		ErrorMessage: "Value must be exactly two words.",
	}
	if len(words) > 2 {
		fail.FixValue = strings.Join(words[:2], " ")
		fail.HasFix = true
	}
	return fail
}

// -----------------------------------------------------------------------------
// one-line
// -----------------------------------------------------------------------------

// OneLine validates that a value has no interior line breaks. The fix keeps
// the first non-empty line.
type OneLine struct{}

// NewOneLine is the constructor registered under "one-line".
func NewOneLine(corral.Kwargs) (corral.Validation, error) {
	return &OneLine{}, nil
}

// Validate implements corral.Validation.
func (v *OneLine) Validate(_ context.Context, value any, _ map[string]any) corral.ValidationResult {
	s := asString(value)
	if !strings.Contains(strings.TrimRight(s, "\n"), "\n") {
		return &corral.PassResult{}
	}

	fail := &corral.FailResult{
		ErrorMessage: "Value must be a single line.",
	}
	for _, line := range strings.Split(s, "\n") {
		if strings.TrimSpace(line) != "" {
			fail.FixValue = line
			fail.HasFix = true
			break
		}
	}
	return fail
}

// -----------------------------------------------------------------------------
// ends-with
// -----------------------------------------------------------------------------

// EndsWith validates that a value ends with a given suffix.
//
// Arguments:
//   - end (required): the expected suffix
type EndsWith struct {
	end string
}

// NewEndsWith is the constructor registered under "ends-with".
func NewEndsWith(kwargs corral.Kwargs) (corral.Validation, error) {
	end, err := requireKwarg(kwargs, "end")
	if err != nil {
		return nil, err
	}
	return &EndsWith{end: end}, nil
}

// Validate implements corral.Validation.
func (v *EndsWith) Validate(_ context.Context, value any, _ map[string]any) corral.ValidationResult {
	s := asString(value)
	if strings.HasSuffix(s, v.end) {
		return &corral.PassResult{}
	}
	return &corral.FailResult{
		ErrorMessage: fmt.Sprintf("Value must end with %s.", v.end),
		FixValue:     s + v.end,
		HasFix:       true,
	}
}
