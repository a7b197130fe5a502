package validators

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/corralhq/corral"
)

// RegisterBuiltins registers every builtin validator on reg. Returns reg for
// chaining.
func RegisterBuiltins(reg *corral.Registry) *corral.Registry {
	reg.Register("regex-match", NewRegexMatch)
	reg.Register("length", NewLength)
	reg.Register("lower-case", NewLowerCase)
	reg.Register("upper-case", NewUpperCase)
	reg.Register("two-words", NewTwoWords)
	reg.Register("one-line", NewOneLine)
	reg.Register("ends-with", NewEndsWith)
	reg.Register("valid-choices", NewValidChoices)
	reg.Register("valid-range", NewValidRange)
	reg.Register("valid-url", NewValidURL)
	reg.Register("profanity-free", NewProfanityFree)
	reg.Register("json-schema", NewJSONSchema)
	reg.Register("similar-to-document", NewSimilarToDocument)
	reg.Register("on-topic", NewOnTopic)
	return reg
}

// asString coerces a validated value to text. Non-string scalars are
// rendered with fmt.Sprint so numeric outputs can flow through text rules.
func asString(value any) string {
	if s, ok := value.(string); ok {
		return s
	}
	return fmt.Sprint(value)
}

// requireKwarg fetches a mandatory rail argument.
func requireKwarg(kwargs corral.Kwargs, key string) (string, error) {
	v, ok := kwargs.Get(key)
	if !ok || v == "" {
		return "", fmt.Errorf("missing required argument %q", key)
	}
	return v, nil
}

// intKwarg parses an optional integer rail argument. Returns (0, false, nil)
// when absent.
func intKwarg(kwargs corral.Kwargs, key string) (int, bool, error) {
	raw, ok := kwargs.Get(key)
	if !ok || raw == "" {
		return 0, false, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, false, fmt.Errorf("argument %q must be an integer: %w", key, err)
	}
	return n, true, nil
}

// floatKwarg parses an optional float rail argument. Returns (0, false, nil)
// when absent.
func floatKwarg(kwargs corral.Kwargs, key string) (float64, bool, error) {
	raw, ok := kwargs.Get(key)
	if !ok || raw == "" {
		return 0, false, nil
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, false, fmt.Errorf("argument %q must be a number: %w", key, err)
	}
	return f, true, nil
}

// listKwarg parses a comma-separated rail argument into trimmed entries.
func listKwarg(kwargs corral.Kwargs, key string) []string {
	raw, ok := kwargs.Get(key)
	if !ok || raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
