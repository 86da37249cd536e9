package rules

import "regexp"

// ImportMember rewrites an identifier inside an import list, e.g.
// `import { Foo, Bar } from 'x'`. The identifier must be followed by a comma
// or a closing brace; the trailing delimiter is preserved.
type ImportMember struct{}

// Name implements Rule.
func (ImportMember) Name() string {
	return "import-member"
}

// Apply implements Rule.
func (ImportMember) Apply(line, identifier string) (string, bool) {
	re := regexp.MustCompile(`\b` + identPattern(identifier) + `\b(\s*,|\s*\})`)

	return substitute(re, line, "_"+identReplacement(identifier)+"${1}")
}
