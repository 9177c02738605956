// Package ignore compiles gitignore-style rule lines into an immutable RuleSet
// and decides whether paths relative to a traversal root are ignored.
//
// Decision policy:
//   - rules are evaluated in declaration order and the last matching rule wins
//   - a negated rule ("!pattern") re-includes a path
//   - a rule matching a directory also matches everything beneath it
//   - no matching rule means the path is kept
package ignore

const (
	// doubleStarSegment is the whole-segment token matching zero or more path segments.
	doubleStarSegment = "**"
	pathSeparator     = "/"
)

// Rule is one compiled ignore directive.
type Rule struct {
	// Source is the raw line the rule was compiled from.
	Source string
	// Line is the 1-based position of Source in the concatenated input.
	Line int
	// Pattern is the normalized pattern with negation, anchor and directory markers removed.
	Pattern string
	// Segments holds Pattern split on "/". Wildcards and escapes stay verbatim.
	Segments []string
	// Anchored rules match from the traversal root only.
	Anchored bool
	// DirectoryOnly rules match directories (and their contents) only.
	DirectoryOnly bool
	// Negated rules re-include matching paths.
	Negated bool
}

// PathCandidate is a path relative to the traversal root.
type PathCandidate struct {
	Path        string
	IsDirectory bool
}

// MatchResult describes the outcome of evaluating a candidate.
type MatchResult struct {
	// Ignored is the final decision.
	Ignored bool
	// Matched reports whether at least one rule matched.
	Matched bool
	// RuleIndex is the index of the deciding rule, -1 when nothing matched.
	RuleIndex int
}

// RuleSet is an ordered, immutable sequence of rules.
type RuleSet struct {
	rules []Rule
}

// Len returns the number of compiled rules.
func (ruleSet *RuleSet) Len() int {
	if ruleSet == nil {
		return 0
	}
	return len(ruleSet.rules)
}

// Rules returns a copy of the compiled rules in declaration order.
func (ruleSet *RuleSet) Rules() []Rule {
	if ruleSet == nil {
		return nil
	}
	copied := make([]Rule, len(ruleSet.rules))
	for index, rule := range ruleSet.rules {
		copied[index] = rule
		copied[index].Segments = append([]string(nil), rule.Segments...)
	}
	return copied
}

// Rule returns the rule at index.
func (ruleSet *RuleSet) Rule(index int) (Rule, bool) {
	if ruleSet == nil || index < 0 || index >= len(ruleSet.rules) {
		return Rule{}, false
	}
	return ruleSet.rules[index], true
}
