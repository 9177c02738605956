package ignore

// matchGlob matches a single-segment glob pattern against one path segment.
//
// Supported syntax: "*" (any run, never "/"), "?" (one character), "[...]"
// classes with ranges and "!" or "^" negation, and "\x" escapes. A "[" without
// a closing "]" is matched as a literal character.
func matchGlob(pattern string, name string) bool {
	patternRunes := []rune(pattern)
	nameRunes := []rune(name)

	patternIndex := 0
	nameIndex := 0
	// Backtracking point: the last star seen and where its next attempt starts.
	starPatternIndex := -1
	starNameIndex := 0

	for patternIndex < len(patternRunes) || nameIndex < len(nameRunes) {
		if patternIndex < len(patternRunes) {
			switch patternRunes[patternIndex] {
			case '*':
				starPatternIndex = patternIndex
				starNameIndex = nameIndex + 1
				patternIndex++
				continue
			case '?':
				if nameIndex < len(nameRunes) && nameRunes[nameIndex] != '/' {
					patternIndex++
					nameIndex++
					continue
				}
			case '[':
				if nameIndex < len(nameRunes) {
					class, width, ok := parseCharClass(patternRunes, patternIndex)
					if !ok {
						if nameRunes[nameIndex] == '[' {
							patternIndex++
							nameIndex++
							continue
						}
					} else if class.matches(nameRunes[nameIndex]) {
						patternIndex += width
						nameIndex++
						continue
					}
				}
			case '\\':
				literal := '\\'
				width := 1
				if patternIndex+1 < len(patternRunes) {
					literal = patternRunes[patternIndex+1]
					width = 2
				}
				if nameIndex < len(nameRunes) && nameRunes[nameIndex] == literal {
					patternIndex += width
					nameIndex++
					continue
				}
			default:
				if nameIndex < len(nameRunes) && nameRunes[nameIndex] == patternRunes[patternIndex] {
					patternIndex++
					nameIndex++
					continue
				}
			}
		}
		if starPatternIndex >= 0 && starNameIndex <= len(nameRunes) && nameRunes[starNameIndex-1] != '/' {
			patternIndex = starPatternIndex
			nameIndex = starNameIndex
			continue
		}
		return false
	}
	return true
}

// charRange is an inclusive range of runes inside a class.
type charRange struct {
	low  rune
	high rune
}

// charClass is a parsed "[...]" expression.
type charClass struct {
	negated bool
	ranges  []charRange
}

func (class charClass) matches(candidate rune) bool {
	if candidate == '/' {
		return false
	}
	found := false
	for _, item := range class.ranges {
		if candidate >= item.low && candidate <= item.high {
			found = true
			break
		}
	}
	return found != class.negated
}

// parseCharClass parses the class starting at start (which holds "[") and
// returns it together with its width in runes. ok is false when the class is
// not terminated.
func parseCharClass(pattern []rune, start int) (charClass, int, bool) {
	index := start + 1
	class := charClass{}
	if index < len(pattern) && (pattern[index] == '!' || pattern[index] == '^') {
		class.negated = true
		index++
	}

	first := true
	for index < len(pattern) {
		current := pattern[index]
		if current == ']' && !first {
			return class, index - start + 1, true
		}
		first = false

		low, next, ok := classRune(pattern, index)
		if !ok {
			return charClass{}, 0, false
		}
		index = next
		high := low
		if index+1 < len(pattern) && pattern[index] == '-' && pattern[index+1] != ']' {
			upper, afterUpper, upperOK := classRune(pattern, index+1)
			if !upperOK {
				return charClass{}, 0, false
			}
			high = upper
			index = afterUpper
		}
		if high < low {
			low, high = high, low
		}
		class.ranges = append(class.ranges, charRange{low: low, high: high})
	}
	return charClass{}, 0, false
}

// classRune reads one possibly escaped rune inside a class.
func classRune(pattern []rune, index int) (rune, int, bool) {
	if pattern[index] != '\\' {
		return pattern[index], index + 1, true
	}
	if index+1 >= len(pattern) {
		return 0, 0, false
	}
	return pattern[index+1], index + 2, true
}
