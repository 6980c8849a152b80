package survey

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var wordPattern = regexp.MustCompile(`\b\w+\b`)

// runeLen measures text length in characters, not bytes. All length
// thresholds in the heuristics are character counts.
func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}

// isQuestionLine determines whether a line is a question using layered
// heuristics: strong structural signals first (question numbering, trailing
// question mark, interrogative or imperative openers), then a weaker check
// for question-shaped lines without a question mark.
func isQuestionLine(text string) bool {
	if runeLen(strings.TrimSpace(text)) < 3 {
		return false
	}

	for _, pattern := range questionPatterns {
		if pattern.MatchString(text) {
			return true
		}
	}

	// Question-like structure without a question mark: a mid-length line
	// whose opening tokens include an interrogative or auxiliary word.
	if runeLen(text) > 10 && runeLen(text) < 200 {
		lower := strings.ToLower(strings.TrimSpace(text))
		words := wordPattern.FindAllString(lower, -1)
		if len(words) > 5 {
			words = words[:5]
		}
		for _, w := range words {
			if questionWords[w] {
				for _, exclude := range questionExcludePatterns {
					if exclude.MatchString(lower) {
						return false
					}
				}
				return true
			}
		}
	}

	return false
}

// isNoteOrInstruction determines whether a line is a note, instruction, or
// header that should surface as a note unit rather than a question.
func isNoteOrInstruction(text string) bool {
	lower := strings.ToLower(strings.TrimSpace(text))

	for _, pattern := range notePatterns {
		if pattern.MatchString(lower) {
			return true
		}
	}

	// Very long blocks without a question mark are almost always prose
	// instructions.
	if runeLen(text) > 300 && !strings.Contains(text, "?") {
		return true
	}

	return sectionHeaderPattern.MatchString(lower)
}

// isInstructionLine identifies lines that must be excluded from choice
// collection: formatting directives, interviewer guidance, and anything too
// long to be an answer option.
func isInstructionLine(text string) bool {
	if runeLen(text) > 120 {
		return true
	}

	lower := strings.ToLower(strings.TrimSpace(text))
	for _, pattern := range instructionLinePatterns {
		if pattern.MatchString(lower) {
			return true
		}
	}

	return false
}

// isSectionHeader reports whether the line opens with "section". Section
// headers are always emitted as notes and terminate lookahead windows.
func isSectionHeader(text string) bool {
	return strings.HasPrefix(strings.ToLower(text), "section")
}

// containsAny reports whether s contains any of the given substrings.
// Callers lowercase s; the keyword tables are already lowercase.
func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

// containsAnyFold is containsAny over the lowercased input.
func containsAnyFold(s string, keywords []string) bool {
	return containsAny(strings.ToLower(s), keywords)
}
