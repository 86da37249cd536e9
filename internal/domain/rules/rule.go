// Package rules holds the ordered lexical rewrite rules that silence an
// unused identifier by prefixing it with an underscore.
//
// The rules are regexes over a single line, not a parse: they cannot see
// scopes, multi-line declarations, or tell code from string/comment text
// containing the identifier. That is an accepted limitation of the tool.
package rules

// Rule rewrites a single source line for one identifier.
type Rule interface {
	// Name identifies the rule in reports and logs.
	Name() string
	// Apply returns the rewritten line and whether it differs from the input.
	// All occurrences matching the rule's pattern are rewritten.
	Apply(line, identifier string) (string, bool)
}

// Ordered returns the rules in priority order. The patcher accepts the first
// rule whose substitution actually changes the line and attempts no further
// rules after that.
func Ordered() []Rule {
	return []Rule{
		ImportMember{},
		DestructuredMember{},
		Declaration{},
		Parameter{},
		TypeAnnotated{},
	}
}
