package ignore

import (
	"strings"
)

// Compile parses user lines followed by the built-in tail into a RuleSet.
//
// Built-ins are appended so that they are evaluated last and therefore cannot
// be re-included by an earlier user negation.
func Compile(lines []string, builtins []string) *RuleSet {
	rules := make([]Rule, 0, len(lines)+len(builtins))
	lineNumber := 0
	for _, group := range [][]string{lines, builtins} {
		for _, rawLine := range group {
			lineNumber++
			rule, ok := compileLine(rawLine)
			if !ok {
				continue
			}
			rule.Line = lineNumber
			rules = append(rules, rule)
		}
	}
	return &RuleSet{rules: rules}
}

// CompileText splits text into lines and compiles it without built-ins.
func CompileText(text string) *RuleSet {
	return Compile(strings.Split(text, "\n"), nil)
}

// compileLine turns one raw line into a rule. The boolean is false for
// blank lines, comments and lines left empty after marker stripping.
func compileLine(rawLine string) (Rule, bool) {
	line := strings.TrimRight(rawLine, "\r")
	line = strings.TrimLeft(line, " \t")
	if line == "" || strings.HasPrefix(line, "#") {
		return Rule{}, false
	}
	line = trimUnescapedTrailingSpace(line)
	if line == "" {
		return Rule{}, false
	}

	rule := Rule{Source: rawLine}
	if strings.HasPrefix(line, "!") {
		rule.Negated = true
		line = line[1:]
	}

	if strings.HasSuffix(line, pathSeparator) && !strings.HasSuffix(line, `\`+pathSeparator) {
		rule.DirectoryOnly = true
		line = strings.TrimRight(line, pathSeparator)
	}
	if strings.HasPrefix(line, pathSeparator) {
		rule.Anchored = true
		line = strings.TrimLeft(line, pathSeparator)
	}
	if line == "" {
		return Rule{}, false
	}

	rule.Segments = splitSegments(line)
	if len(rule.Segments) == 0 {
		return Rule{}, false
	}
	if len(rule.Segments) > 1 {
		rule.Anchored = true
	}
	rule.Pattern = strings.Join(rule.Segments, pathSeparator)
	return rule, true
}

// splitSegments splits a pattern on "/", drops empty segments produced by
// repeated separators and collapses runs of "**".
func splitSegments(pattern string) []string {
	rawSegments := strings.Split(pattern, pathSeparator)
	segments := make([]string, 0, len(rawSegments))
	for _, segment := range rawSegments {
		if segment == "" {
			continue
		}
		if segment == doubleStarSegment && len(segments) > 0 && segments[len(segments)-1] == doubleStarSegment {
			continue
		}
		segments = append(segments, segment)
	}
	return segments
}

// trimUnescapedTrailingSpace removes trailing spaces and tabs unless the last
// one is escaped by a backslash, in which case the escape is kept so the
// glob matcher treats it as a literal space.
func trimUnescapedTrailingSpace(line string) string {
	for len(line) > 0 {
		last := line[len(line)-1]
		if last != ' ' && last != '\t' {
			break
		}
		if len(line) >= 2 && line[len(line)-2] == '\\' {
			break
		}
		line = line[:len(line)-1]
	}
	return line
}
