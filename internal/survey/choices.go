package survey

import "strings"

// ExtractChoices extracts answer options from the candidate lines collected
// under a question, falling back to choices embedded in the question text
// and finally to conservative Yes/No inference. The branch order is load
// bearing: structural extraction before inline-text extraction before binary
// inference. Looser orderings produce false Yes/No answer sets.
func ExtractChoices(lines []string, questionText string) []string {
	choices := []string{}

	// Drop blanks and instruction lines before looking for options.
	var cleaned []string
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if isInstructionLine(line) {
			continue
		}
		cleaned = append(cleaned, line)
	}

	// Branch 1: numbered/bulleted/lettered choice lines.
	for _, line := range cleaned {
		if isQuestionLine(line) {
			continue
		}
		if runeLen(line) > 150 {
			continue
		}
		if strings.HasSuffix(strings.TrimRight(line, " \t\n\r"), "?") {
			continue
		}

		if m := choiceLinePattern.FindStringSubmatch(line); m != nil {
			choiceText := strings.TrimSpace(m[1])
			choiceText = leadingBulletPattern.ReplaceAllString(choiceText, "")
			choiceText = trailingDashPattern.ReplaceAllString(choiceText, "")
			choiceText = strings.TrimSpace(choiceText)

			if containsAnyFold(choiceText, excludeMarkers) {
				continue
			}
			if choiceText != "" && runeLen(choiceText) > 1 {
				appendUnique(&choices, choiceText)
			}
		} else if n := runeLen(line); n >= 2 && n <= 100 &&
			!isQuestionLine(line) && !isInstructionLine(line) {
			// Short line without recognizable markers; accept it directly
			// unless it opens like a note or carries a format annotation.
			if !nonChoicePrefixPattern.MatchString(strings.ToLower(line)) &&
				!containsAnyFold(line, hardExcludeMarkers) {
				appendUnique(&choices, line)
			}
		}
	}

	// Branch 2: choices inline in the question text, e.g.
	// "What is your gender? (Male, Female, Other)".
	if len(choices) == 0 && questionText != "" {
		for _, pattern := range inlineChoicePatterns {
			for _, m := range pattern.FindAllStringSubmatch(questionText, -1) {
				for _, opt := range choiceTokenSplitPattern.Split(m[1], -1) {
					opt = strings.TrimSpace(opt)
					opt = trailingPunctPattern.ReplaceAllString(opt, "")
					if n := runeLen(opt); opt != "" && n >= 2 && n <= 100 {
						appendUnique(&choices, opt)
					}
				}
			}
		}
	}

	// Branch 3: infer Yes/No only when a strong binary phrasing is present
	// and no exclusion suggests the question expects something else.
	if len(choices) == 0 && questionText != "" {
		binary := false
		for _, pattern := range strongBinaryPatterns {
			if pattern.MatchString(questionText) {
				binary = true
				break
			}
		}
		if binary {
			for _, pattern := range binaryExcludePatterns {
				if pattern.MatchString(questionText) {
					binary = false
					break
				}
			}
		}
		if binary {
			choices = []string{"Yes", "No"}
		}
	}

	return choices
}

// appendUnique appends text to choices unless an equal choice is already
// present under case-insensitive comparison. Insertion order is the
// downstream answer-value order and is preserved.
func appendUnique(choices *[]string, text string) {
	for _, c := range *choices {
		if strings.EqualFold(c, text) {
			return
		}
	}
	*choices = append(*choices, text)
}

// ClassifyQuestionType determines the unit type from the question text, its
// extracted choices, and the raw context lines. Checks run in fixed order;
// the first match wins.
func ClassifyQuestionType(questionText string, choices, contextLines []string) Type {
	textLower := strings.ToLower(questionText)
	contextLower := make([]string, len(contextLines))
	for i, l := range contextLines {
		contextLower[i] = strings.ToLower(l)
	}
	combined := textLower + " " + strings.Join(contextLower, " ")

	if isNoteOrInstruction(questionText) {
		return TypeNote
	}

	if len(choices) > 0 {
		if containsAny(combined, multiSelectKeywords) {
			return TypeSelectMultiple
		}
		return TypeSelectOne
	}

	for _, pattern := range integerPatterns {
		if pattern.MatchString(textLower) {
			return TypeInteger
		}
	}

	if containsAny(textLower, openTextKeywords) {
		return TypeText
	}

	return TypeText
}
