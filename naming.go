package corral

// Replacement describes the successor of a deprecated validator alias.
type Replacement struct {
	// Alias is the current rail alias to use instead.
	Alias string

	// DocURL points at the hub documentation for the replacement.
	DocURL string
}

// deprecatedAliases maps legacy rail aliases to their replacements. Pure
// data: New resolves legacy aliases through this table transparently, and
// tooling can surface the documentation link to users.
var deprecatedAliases = map[string]Replacement{
	"regex_match": {
		Alias:  "regex-match",
		DocURL: "https://hub.corral.dev/validator/regex_match",
	},
	"is-profanity-free": {
		Alias:  "profanity-free",
		DocURL: "https://hub.corral.dev/validator/profanity_free",
	},
	"valid-length": {
		Alias:  "length",
		DocURL: "https://hub.corral.dev/validator/valid_length",
	},
	"similar-to-list": {
		Alias:  "similar-to-document",
		DocURL: "https://hub.corral.dev/validator/similar_to_document",
	},
	"on_topic": {
		Alias:  "on-topic",
		DocURL: "https://hub.corral.dev/validator/on_topic",
	},
	"ends_with": {
		Alias:  "ends-with",
		DocURL: "https://hub.corral.dev/validator/ends_with",
	},
}

// ReplacementFor returns the replacement for a deprecated alias, and whether
// the alias is deprecated at all.
func ReplacementFor(alias string) (Replacement, bool) {
	r, ok := deprecatedAliases[alias]
	return r, ok
}
