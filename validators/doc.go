// Package validators provides the builtin validation rules.
//
// Call [RegisterBuiltins] on a registry during startup, then construct
// validators by alias:
//
//	reg := corral.NewRegistry()
//	validators.RegisterBuiltins(reg)
//
//	v, err := corral.New(reg, "regex-match",
//	    corral.WithKwarg("regex", `^\d{4}-\d{2}-\d{2}$`),
//	    corral.WithOnFail(corral.OnFailException),
//	)
//
// # Builtin Rules
//
// Format rules:
//   - regex-match: value matches a regular expression
//   - length: string or list length within [min, max], fixable
//   - lower-case / upper-case: casing, fixable
//   - two-words: exactly two words, fixable
//   - one-line: no interior line breaks, fixable
//   - ends-with: value ends with a given suffix, fixable
//
// Value rules:
//   - valid-choices: value is one of an allowed set
//   - valid-range: numeric value within [min, max], fixable by clamping
//   - valid-url: value parses as an absolute URL
//   - profanity-free: value contains no blocked terms, fixable
//
// Structure rules:
//   - json-schema: value conforms to a JSON Schema document
//   - similar-to-document: value is textually close to a reference document,
//     with error spans locating the divergent ranges
//
// Model-backed rules (implement corral.InferenceBinder):
//   - on-topic: an LLM judge confirms the value stays on allowed topics
package validators
