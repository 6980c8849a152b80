package survey

import (
	"regexp"
	"strings"

	"github.com/rs/zerolog"

	"github.com/xlsforge/xlsforge/internal/docfile"
)

var (
	// codeMarkerPattern strips parenthetical coding annotations such as
	// "(SINGLE CODE)" or "(Open-End)" from question text.
	codeMarkerPattern = regexp.MustCompile(
		`(?i)\s*\([^)]*(?:SINGLE\s+CODE|MULTIPLE\s+CODE|Open-End|open-end|open\s+end)[^)]*\)`)

	// tableCodeMarkerPattern is the table-row variant. It is case sensitive
	// and narrower; table cells historically carried only the canonical
	// spellings.
	tableCodeMarkerPattern = regexp.MustCompile(
		`\s*\([^)]*(?:SINGLE\s+CODE|MULTIPLE\s+CODE|Open-End)[^)]*\)`)

	trailingUnderscorePattern = regexp.MustCompile(`\s*_+\s*$`)
	trailingColonPattern      = regexp.MustCompile(`:\s*$`)
	repeatedQuestionMarks     = regexp.MustCompile(`\?+`)

	openEndMarkerPattern = regexp.MustCompile(`(?i)\(open.?end\)`)

	interrogativeAnywhere = regexp.MustCompile(
		`\b(what|how|why|when|where|who|which|do|does|are|is|have|would|could)`)
)

// missedQuestionOpeners rescue ambiguous lines: a short unemitted line
// containing one of these in its opening characters is retried as a
// question.
var missedQuestionOpeners = []string{"what", "how", "which", "do you", "are you"}

// optionalMarkers force required="no" on a question.
var optionalMarkers = []string{"(optional)", "(not required)"}

// GenericExtractor walks a flat paragraph sequence, classifying each line
// as question, choice, note, or instruction, and groups trailing choice
// lines under the preceding question. Table rows are processed afterward,
// first cell as the question candidate and the remaining cells as choice
// candidates.
type GenericExtractor struct {
	logger zerolog.Logger
}

// NewGenericExtractor creates a generic questionnaire extractor.
func NewGenericExtractor(logger zerolog.Logger) *GenericExtractor {
	return &GenericExtractor{logger: logger}
}

// Name returns the strategy name.
func (e *GenericExtractor) Name() string { return StrategyGeneric }

// Extract produces the ordered unit sequence for one document.
func (e *GenericExtractor) Extract(doc *docfile.Document) []Unit {
	var results []Unit

	paragraphs := doc.Paragraphs
	i := 0
	for i < len(paragraphs) {
		text := paragraphs[i]

		// Standalone notes and instructions. Section headers are always
		// emitted; other instructions only when they are not context for a
		// following question.
		if isNoteOrInstruction(text) {
			if isSectionHeader(text) {
				results = append(results, noteUnit(FieldName(text), text))
				i++
				continue
			}
			if i+1 < len(paragraphs) {
				next := paragraphs[i+1]
				if !isQuestionLine(next) && runeLen(text) < 200 && !strings.Contains(text, "?") {
					results = append(results, noteUnit(FieldName(text), text))
				}
			}
			i++
			continue
		}

		if isQuestionLine(text) {
			unit, next := e.extractQuestion(paragraphs, i)
			results = append(results, unit)
			i = next
			continue
		}

		// Ambiguous line: possibly a question the primary heuristics
		// missed.
		if runeLen(text) < 300 && !alreadyEmitted(results, text) {
			opening := strings.ToLower(text)
			if runeLen(opening) > 50 {
				opening = string([]rune(opening)[:50])
			}
			if strings.Contains(text, "?") || containsAny(opening, missedQuestionOpeners) {
				choices := ExtractChoices(nil, text)
				qType := ClassifyQuestionType(text, choices, nil)
				fieldName := FieldName(text)
				results = append(results, Unit{
					FieldName:      fieldName,
					QuestionText:   text,
					Choices:        choices,
					ChoiceListName: listNameFor(fieldName, choices),
					Type:           qType,
					Required:       defaultRequired(qType),
				})
			}
		}
		i++
	}

	for _, table := range doc.Tables {
		results = append(results, e.extractTableRows(table)...)
	}

	results = mergeOrphanedChoices(results)

	e.logger.Info().Int("units", len(results)).Msg("extracted survey units")
	return results
}

// extractQuestion consumes the question at index i plus its lookahead
// window of choice and context lines, returning the finished unit and the
// index of the first unconsumed paragraph.
func (e *GenericExtractor) extractQuestion(paragraphs []string, i int) (Unit, int) {
	questionText := paragraphs[i]

	var contextLines []string
	j := i + 1
	for j < len(paragraphs) {
		next := paragraphs[j]

		if isQuestionLine(next) {
			break
		}
		// A section header or a long note terminates the window.
		if isNoteOrInstruction(next) && (isSectionHeader(next) || runeLen(next) > 200) {
			break
		}
		// Instruction lines between questions are consumed but never become
		// choice candidates.
		if isInstructionLine(next) {
			j++
			continue
		}
		if !isNoteOrInstruction(next) {
			if runeLen(next) <= 150 && !strings.HasSuffix(next, "?") &&
				!isQuestionLine(next) && !isInstructionLine(next) {
				contextLines = append(contextLines, next)
			} else if runeLen(next) <= 200 && !isInstructionLine(next) {
				contextLines = append(contextLines, next)
			}
		}
		j++
	}

	choices := ExtractChoices(contextLines, questionText)
	qType := ClassifyQuestionType(questionText, choices, contextLines)
	fieldName := FieldName(questionText)
	cleaned := cleanQuestionText(questionText)

	// An explicit (Open-End) marker overrides whatever was detected.
	if openEndMarkerPattern.MatchString(questionText) {
		qType = TypeText
		choices = []string{}
	}

	required := "yes"
	switch {
	case qType == TypeSelectMultiple:
		required = "no"
	case qType == TypeNote:
		required = ""
	case containsAnyFold(questionText, optionalMarkers):
		required = "no"
	}

	if cleaned == "" {
		cleaned = questionText
	}

	return Unit{
		FieldName:      fieldName,
		QuestionText:   cleaned,
		Choices:        choices,
		ChoiceListName: listNameFor(fieldName, choices),
		Type:           qType,
		Required:       required,
	}, j
}

// extractTableRows treats each row as a candidate question: first non-empty
// cell is the question text, remaining cells are choice candidates. Rows
// whose first cell fails question detection are skipped.
func (e *GenericExtractor) extractTableRows(table docfile.Table) []Unit {
	var units []Unit

	for _, row := range table.Rows {
		cells := nonEmptyCells(row)
		if len(cells) == 0 {
			continue
		}

		question := cells[0]
		potentialChoices := cells[1:]

		if !isQuestionLine(question) && !strings.Contains(question, "?") {
			continue
		}

		choices := ExtractChoices(potentialChoices, question)
		qType := ClassifyQuestionType(question, choices, potentialChoices)

		cleaned := strings.TrimSpace(tableCodeMarkerPattern.ReplaceAllString(question, ""))
		if cleaned == "" {
			cleaned = question
		}

		fieldName := FieldName(question)
		units = append(units, Unit{
			FieldName:      fieldName,
			QuestionText:   cleaned,
			Choices:        choices,
			ChoiceListName: listNameFor(fieldName, choices),
			Type:           qType,
			Required:       defaultRequired(qType),
		})
	}

	return units
}

// cleanQuestionText normalizes a question for display: coding markers and
// placeholder underscores are stripped, a trailing colon is promoted to a
// question mark when the line opens interrogatively, and repeated question
// marks collapse.
func cleanQuestionText(text string) string {
	clean := codeMarkerPattern.ReplaceAllString(text, "")
	clean = trailingUnderscorePattern.ReplaceAllString(clean, "")

	if strings.HasSuffix(strings.TrimRight(clean, " \t"), "?") {
		clean = trailingColonPattern.ReplaceAllString(clean, "")
	} else {
		opening := strings.ToLower(clean)
		if runeLen(opening) > 20 {
			opening = string([]rune(opening)[:20])
		}
		if interrogativeAnywhere.MatchString(opening) {
			clean = trailingColonPattern.ReplaceAllString(clean, "?")
		}
	}

	clean = repeatedQuestionMarks.ReplaceAllString(clean, "?")
	return strings.TrimSpace(clean)
}

// mergeOrphanedChoices performs the single post-extraction fix-up: when a
// select question ended up with no choices and the very next unit is a
// short choice-looking note, the note's text is re-parsed as choices and
// attached. At most one merge happens per document; the scan stops at the
// first success.
func mergeOrphanedChoices(results []Unit) []Unit {
	for i := 0; i < len(results)-1; i++ {
		if !results[i].IsSelect() || len(results[i].Choices) != 0 {
			continue
		}
		next := results[i+1]
		if next.Type != TypeNote || runeLen(next.QuestionText) >= 100 ||
			strings.Contains(next.QuestionText, "?") {
			continue
		}
		choices := ExtractChoices([]string{next.QuestionText}, results[i].QuestionText)
		if len(choices) == 0 {
			continue
		}
		results[i].Choices = choices
		results[i].ChoiceListName = results[i].FieldName + "_list"
		results = append(results[:i+1], results[i+2:]...)
		break
	}
	return results
}

// listNameFor derives the provisional choice list name for a unit.
func listNameFor(fieldName string, choices []string) string {
	if len(choices) == 0 {
		return ""
	}
	return fieldName + "_list"
}

// defaultRequired is the required value for units emitted outside the main
// question path (rescued lines and table rows).
func defaultRequired(qType Type) string {
	switch qType {
	case TypeNote:
		return ""
	case TypeSelectMultiple:
		return "no"
	default:
		return "yes"
	}
}

// alreadyEmitted reports whether a unit with exactly this question text was
// already produced.
func alreadyEmitted(results []Unit, text string) bool {
	for _, r := range results {
		if r.QuestionText == text {
			return true
		}
	}
	return false
}

// nonEmptyCells filters a table row down to its non-empty cell texts.
func nonEmptyCells(row []string) []string {
	var cells []string
	for _, c := range row {
		if c = strings.TrimSpace(c); c != "" {
			cells = append(cells, c)
		}
	}
	return cells
}
