package validators

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/corralhq/corral"
)

// -----------------------------------------------------------------------------
// valid-choices
// -----------------------------------------------------------------------------

// ValidChoices validates that a value is one of an allowed set.
//
// Arguments:
//   - choices (required): comma-separated allowed values
type ValidChoices struct {
	choices []string
}

// NewValidChoices is the constructor registered under "valid-choices".
func NewValidChoices(kwargs corral.Kwargs) (corral.Validation, error) {
	choices := listKwarg(kwargs, "choices")
	if len(choices) == 0 {
		return nil, fmt.Errorf("missing required argument %q", "choices")
	}
	return &ValidChoices{choices: choices}, nil
}

// Validate implements corral.Validation.
func (v *ValidChoices) Validate(_ context.Context, value any, _ map[string]any) corral.ValidationResult {
	s := asString(value)
	for _, choice := range v.choices {
		if s == choice {
			return &corral.PassResult{}
		}
	}
	return &corral.FailResult{
		ErrorMessage: fmt.Sprintf(
			"Value %s is not in choices %v.", s, v.choices),
	}
}

// -----------------------------------------------------------------------------
// valid-range
// -----------------------------------------------------------------------------

// ValidRange validates that a numeric value falls within [min, max]. Both
// bounds are optional. The fix clamps the value to the violated bound.
//
// String values are parsed as numbers; an unparseable value fails with no
// fix.
type ValidRange struct {
	min, max       float64
	hasMin, hasMax bool
}

// NewValidRange is the constructor registered under "valid-range".
func NewValidRange(kwargs corral.Kwargs) (corral.Validation, error) {
	min, hasMin, err := floatKwarg(kwargs, "min")
	if err != nil {
		return nil, err
	}
	max, hasMax, err := floatKwarg(kwargs, "max")
	if err != nil {
		return nil, err
	}
	if hasMin && hasMax && min > max {
		return nil, fmt.Errorf("argument %q (%v) exceeds %q (%v)", "min", min, "max", max)
	}
	return &ValidRange{min: min, max: max, hasMin: hasMin, hasMax: hasMax}, nil
}

// Validate implements corral.Validation.
func (v *ValidRange) Validate(_ context.Context, value any, _ map[string]any) corral.ValidationResult {
	n, ok := toFloat(value)
	if !ok {
		return &corral.FailResult{
			ErrorMessage: fmt.Sprintf("Value %v is not a number.", value),
		}
	}

	if v.hasMin && n < v.min {
		return &corral.FailResult{
			ErrorMessage: fmt.Sprintf("Value %v is less than %v.", n, v.min),
			FixValue:     v.min,
			HasFix:       true,
		}
	}
	if v.hasMax && n > v.max {
		return &corral.FailResult{
			ErrorMessage: fmt.Sprintf("Value %v is greater than %v.", n, v.max),
			FixValue:     v.max,
			HasFix:       true,
		}
	}
	return &corral.PassResult{}
}

// toFloat coerces the numeric types JSON decoding and rail parsing produce.
func toFloat(value any) (float64, bool) {
	switch n := value.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// -----------------------------------------------------------------------------
// valid-url
// -----------------------------------------------------------------------------

// ValidURL validates that a value parses as an absolute URL with a scheme
// and a host.
type ValidURL struct{}

// NewValidURL is the constructor registered under "valid-url".
func NewValidURL(corral.Kwargs) (corral.Validation, error) {
	return &ValidURL{}, nil
}

// Validate implements corral.Validation.
func (v *ValidURL) Validate(_ context.Context, value any, _ map[string]any) corral.ValidationResult {
	s := asString(value)
	parsed, err := url.ParseRequestURI(s)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return &corral.FailResult{
			ErrorMessage: fmt.Sprintf("Value %s is not a valid URL.", s),
		}
	}
	return &corral.PassResult{}
}

// -----------------------------------------------------------------------------
// profanity-free
// -----------------------------------------------------------------------------

// defaultBlockedTerms is deliberately tame; production deployments pass
// their own list via the "terms" argument.
var defaultBlockedTerms = []string{
	"damn", "hell", "crap",
}

// ProfanityFree validates that a value contains none of a set of blocked
// terms. Matching is case-insensitive substring matching, which keeps the
// rule predictable. The fix masks each occurrence.
//
// Arguments:
//   - terms (optional): comma-separated blocked terms, replacing the
//     default list
type ProfanityFree struct {
	terms []string
}

// NewProfanityFree is the constructor registered under "profanity-free".
func NewProfanityFree(kwargs corral.Kwargs) (corral.Validation, error) {
	terms := listKwarg(kwargs, "terms")
	if len(terms) == 0 {
		terms = defaultBlockedTerms
	}
	return &ProfanityFree{terms: terms}, nil
}

// Validate implements corral.Validation.
func (v *ProfanityFree) Validate(_ context.Context, value any, _ map[string]any) corral.ValidationResult {
	s := asString(value)
	lowered := strings.ToLower(s)

	var found []string
	fixed := s
	for _, term := range v.terms {
		if strings.Contains(lowered, strings.ToLower(term)) {
			found = append(found, term)
			fixed = replaceFold(fixed, term, "****")
		}
	}
	if len(found) == 0 {
		return &corral.PassResult{}
	}
	return &corral.FailResult{
		ErrorMessage: fmt.Sprintf("Value contains blocked terms: %s.", strings.Join(found, ", ")),
		FixValue:     fixed,
		HasFix:       true,
	}
}

// replaceFold replaces every case-insensitive occurrence of term in s.
func replaceFold(s, term, replacement string) string {
	loweredTerm := strings.ToLower(term)
	var b strings.Builder
	for {
		idx := strings.Index(strings.ToLower(s), loweredTerm)
		if idx < 0 {
			b.WriteString(s)
			return b.String()
		}
		b.WriteString(s[:idx])
		b.WriteString(replacement)
		s = s[idx+len(term):]
	}
}
