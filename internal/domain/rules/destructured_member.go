package rules

import "regexp"

// DestructuredMember rewrites an identifier at the start of a destructuring
// pattern, e.g. `const { foo, bar } = obj;`. The identifier must immediately
// follow an opening brace, allowing for whitespace.
type DestructuredMember struct{}

// Name implements Rule.
func (DestructuredMember) Name() string {
	return "destructured-member"
}

// Apply implements Rule.
func (DestructuredMember) Apply(line, identifier string) (string, bool) {
	re := regexp.MustCompile(`\{(\s*)` + identPattern(identifier) + `\b`)

	return substitute(re, line, "{${1}_"+identReplacement(identifier))
}
