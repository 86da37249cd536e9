package rules

import "regexp"

// TypeAnnotated rewrites a type-annotated identifier, e.g. `(err: Error) =>`.
// The identifier must be immediately followed by a colon, allowing for
// whitespace, which the rewrite collapses.
type TypeAnnotated struct{}

// Name implements Rule.
func (TypeAnnotated) Name() string {
	return "type-annotated"
}

// Apply implements Rule.
func (TypeAnnotated) Apply(line, identifier string) (string, bool) {
	re := regexp.MustCompile(`\b` + identPattern(identifier) + `\s*:`)

	return substitute(re, line, "_"+identReplacement(identifier)+":")
}
