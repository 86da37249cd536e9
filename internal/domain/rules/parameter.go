package rules

import "regexp"

// Parameter rewrites an identifier inside a parenthesized parameter list,
// e.g. `function handler(event, data)`. Preceding parameters are preserved
// verbatim.
type Parameter struct{}

// Name implements Rule.
func (Parameter) Name() string {
	return "parameter"
}

// Apply implements Rule.
func (Parameter) Apply(line, identifier string) (string, bool) {
	re := regexp.MustCompile(`\(([^)]*)\b` + identPattern(identifier) + `\b`)

	return substitute(re, line, "(${1}_"+identReplacement(identifier))
}
