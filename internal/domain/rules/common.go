package rules

import (
	"regexp"
	"strings"
)

// identPattern returns the identifier escaped for use inside a rule regex.
func identPattern(identifier string) string {
	return regexp.QuoteMeta(identifier)
}

// identReplacement returns the identifier escaped for use inside a
// replacement template. TypeScript identifiers may contain '$', which the
// regexp package would otherwise treat as a group reference.
func identReplacement(identifier string) string {
	return strings.ReplaceAll(identifier, "$", "$$")
}

// substitute runs the replacement and reports whether the line changed.
func substitute(re *regexp.Regexp, line, replacement string) (string, bool) {
	rewritten := re.ReplaceAllString(line, replacement)

	return rewritten, rewritten != line
}
