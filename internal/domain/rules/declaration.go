package rules

import "regexp"

// Declaration rewrites a plain variable declaration, e.g.
// `const result = compute();`. Recognizes the const, let and var keywords.
// The keyword is preserved; the separating whitespace collapses to a single
// space.
type Declaration struct{}

// Name implements Rule.
func (Declaration) Name() string {
	return "declaration"
}

// Apply implements Rule.
func (Declaration) Apply(line, identifier string) (string, bool) {
	re := regexp.MustCompile(`\b(const|let|var)\s+` + identPattern(identifier) + `\b`)

	return substitute(re, line, "${1} _"+identReplacement(identifier))
}
