package ignore

import (
	"path"
	"strings"
)

// IsIgnored reports whether candidate is excluded by the rule set.
func (ruleSet *RuleSet) IsIgnored(candidate PathCandidate) bool {
	return ruleSet.Match(candidate).Ignored
}

// Match evaluates every rule against candidate and returns the decision of
// the last matching rule.
func (ruleSet *RuleSet) Match(candidate PathCandidate) MatchResult {
	result := MatchResult{RuleIndex: -1}
	if ruleSet == nil {
		return result
	}
	pathSegments := candidateSegments(candidate.Path)
	if len(pathSegments) == 0 {
		return result
	}
	for ruleIndex := range ruleSet.rules {
		if !ruleSet.rules[ruleIndex].matches(pathSegments, candidate.IsDirectory) {
			continue
		}
		result.Matched = true
		result.RuleIndex = ruleIndex
		result.Ignored = !ruleSet.rules[ruleIndex].Negated
	}
	return result
}

// matches reports whether the rule matches the path or one of its ancestor
// directories. Ancestors are directories by construction.
func (rule *Rule) matches(pathSegments []string, isDirectory bool) bool {
	for prefixLength := 1; prefixLength <= len(pathSegments); prefixLength++ {
		prefixIsDirectory := prefixLength < len(pathSegments) || isDirectory
		if rule.DirectoryOnly && !prefixIsDirectory {
			continue
		}
		if rule.matchesExactly(pathSegments[:prefixLength]) {
			return true
		}
	}
	return false
}

// matchesExactly matches the rule against a complete segment sequence.
func (rule *Rule) matchesExactly(pathSegments []string) bool {
	if rule.Anchored || rule.Segments[0] == doubleStarSegment {
		return matchSegments(rule.Segments, pathSegments)
	}
	// Unanchored rules have a single segment and behave as "**/<segment>".
	return matchGlob(rule.Segments[0], pathSegments[len(pathSegments)-1])
}

// matchSegments matches pattern segments against path segments, letting a
// "**" segment consume zero or more path segments. A trailing "**" consumes
// at least one so that "dir/**" matches the contents of dir, not dir itself.
func matchSegments(patternSegments []string, pathSegments []string) bool {
	for len(patternSegments) > 0 {
		if patternSegments[0] == doubleStarSegment {
			remainingPattern := patternSegments[1:]
			if len(remainingPattern) == 0 {
				return len(pathSegments) > 0
			}
			for skip := 0; skip <= len(pathSegments); skip++ {
				if matchSegments(remainingPattern, pathSegments[skip:]) {
					return true
				}
			}
			return false
		}
		if len(pathSegments) == 0 || !matchGlob(patternSegments[0], pathSegments[0]) {
			return false
		}
		patternSegments = patternSegments[1:]
		pathSegments = pathSegments[1:]
	}
	return len(pathSegments) == 0
}

// candidateSegments normalizes a relative path and splits it into segments.
func candidateSegments(candidatePath string) []string {
	normalized := strings.TrimPrefix(candidatePath, "./")
	normalized = strings.Trim(normalized, pathSeparator)
	if normalized == "" {
		return nil
	}
	normalized = path.Clean(normalized)
	if normalized == "." {
		return nil
	}
	return strings.Split(normalized, pathSeparator)
}
