package survey

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/xlsforge/xlsforge/internal/docfile"
)

var (
	// statementOpenerPattern matches the first-person/determiner openers
	// typical of Likert statements.
	statementOpenerPattern = regexp.MustCompile(`(?i)^(I|My|The|This|Your|You|We|They|It)`)

	// demographicChoiceOpenerPattern rejects statement-looking lines from
	// demographic choice gathering.
	demographicChoiceOpenerPattern = regexp.MustCompile(`(?i)^(I|My|The|This|Your|You|We)`)
)

// statementInstructionWords disqualify a line from being a statement.
var statementInstructionWords = []string{
	"please select", "please read", "please indicate", "please answer",
}

// statementInterrogatives qualify an interrogative line as a statement when
// it carries a question mark.
var statementInterrogatives = []string{"how", "what", "when", "where", "who"}

// demographicKeywords flag questions about the respondent rather than the
// survey topic.
var demographicKeywords = []string{
	"name", "age", "gender", "education", "occupation", "marital status",
	"religion", "income", "employment", "work experience", "job title",
	"company", "organization", "household", "family", "parent", "childhood",
	"birth", "location", "city", "state", "country", "language", "proficiency",
	"years", "months", "hours", "level", "position", "status",
}

// likertNoteKeywords emit leftover lines as notes.
var likertNoteKeywords = []string{"note:", "instruction", "please note", "important"}

// demographicIntegerKeywords and demographicTextKeywords type demographic
// questions; integer wins.
var (
	demographicIntegerKeywords = []string{
		"age", "years", "months", "hours", "number", "how many", "how long",
	}
	demographicTextKeywords = []string{
		"name", "specify", "describe", "provide", "write", "enter",
		"address", "occupation", "title",
	}
	demographicMultiKeywords = []string{"select all", "all that apply", "multiple"}
)

// Keyword sets for recognizing scale option cells in table headers.
var (
	tableScaleRowKeywords = []string{
		"strongly", "disagree", "agree", "somewhat", "neither",
		"never", "always", "poorly", "well", "groomed",
	}
	tableSecondRowScaleKeywords = []string{
		"strongly", "disagree", "agree", "somewhat", "neither",
		"never", "always", "well", "poorly",
	}
	tableHeaderCellNames = []string{"statement", "statements", "item", "items"}
)

// isStatement checks whether a line is a declarative statement answered
// against the active scale. Scale definitions, section headers, and
// instruction lines never qualify.
func isStatement(text string) bool {
	lower := strings.ToLower(strings.TrimSpace(text))

	if isScaleDefinition(lower) {
		return false
	}
	if strings.HasPrefix(lower, "section") || strings.Contains(lower, "demographic") {
		return false
	}
	if containsAny(lower, statementInstructionWords) {
		return false
	}

	if n := runeLen(text); n >= 10 && n <= 300 {
		if statementOpenerPattern.MatchString(text) {
			return true
		}
		if containsAny(lower, statementInterrogatives) && strings.Contains(text, "?") {
			return true
		}
	}

	return false
}

// isDemographicQuestion checks whether a line asks about the respondent.
// Statements take precedence: a line that reads as a statement is never
// demographic, even when it mentions a demographic keyword.
func isDemographicQuestion(text string) bool {
	if !containsAnyFold(text, demographicKeywords) {
		return false
	}
	return !isStatement(text)
}

// classifyDemographicType types a demographic question from its text and
// gathered choices.
func classifyDemographicType(text string, choices []string) Type {
	lower := strings.ToLower(text)

	if containsAny(lower, demographicIntegerKeywords) {
		return TypeInteger
	}
	if containsAny(lower, demographicTextKeywords) {
		return TypeText
	}
	if len(choices) > 0 {
		if containsAny(lower, demographicMultiKeywords) {
			return TypeSelectMultiple
		}
		return TypeSelectOne
	}
	return TypeText
}

// LikertExtractor is tuned for scale-based surveys: it detects scale
// definitions, remembers the active scale, classifies subsequent short
// declarative sentences as statements reusing that scale, and handles the
// interleaved demographic block with its own choice sets.
type LikertExtractor struct {
	logger zerolog.Logger
}

// NewLikertExtractor creates a Likert/employee-survey extractor.
func NewLikertExtractor(logger zerolog.Logger) *LikertExtractor {
	return &LikertExtractor{logger: logger}
}

// Name returns the strategy name.
func (e *LikertExtractor) Name() string { return StrategyLikert }

// Extract produces the ordered unit sequence for one document.
func (e *LikertExtractor) Extract(doc *docfile.Document) []Unit {
	var results []Unit

	var currentScale []string
	currentScaleName := ""

	paragraphs := doc.Paragraphs
	i := 0
	for i < len(paragraphs) {
		text := paragraphs[i]
		lower := strings.ToLower(text)

		// Section headers are always surfaced as notes.
		if strings.HasPrefix(lower, "section") || strings.Contains(lower, "demographic") {
			results = append(results, noteUnit(StatementFieldName(text), text))
			i++
			continue
		}

		// A scale definition updates the active scale and is kept as a
		// note so reviewers see the original instruction.
		if isScaleDefinition(text) {
			if options := scaleFromContext(text); options != nil {
				currentScale = options
				currentScaleName = scaleNameFor(lower, len(results))
				results = append(results, noteUnit(StatementFieldName(text), text))
			}
			i++
			continue
		}

		if isStatement(text) && currentScale != nil {
			results = append(results, Unit{
				FieldName:      StatementFieldName(text),
				QuestionText:   text,
				Choices:        append([]string(nil), currentScale...),
				ChoiceListName: currentScaleName,
				Type:           TypeSelectOne,
				Required:       "yes",
			})
			i++
			continue
		}

		if isDemographicQuestion(text) {
			unit, next := e.extractDemographic(paragraphs, i)
			results = append(results, unit)
			i = next
			continue
		}

		if runeLen(text) > 5 && containsAny(lower, likertNoteKeywords) {
			results = append(results, noteUnit(StatementFieldName(text), text))
		}
		i++
	}

	for tableIdx, table := range doc.Tables {
		results = append(results, e.extractTable(table, tableIdx)...)
	}

	e.logger.Info().Int("units", len(results)).Msg("extracted survey units")
	return results
}

// extractDemographic consumes a demographic question and scans up to 20
// following lines for literal choice candidates, stopping at the next
// demographic question, statement, or section header.
func (e *LikertExtractor) extractDemographic(paragraphs []string, i int) (Unit, int) {
	text := paragraphs[i]

	var choices []string
	j := i + 1
	for j < len(paragraphs) && j < i+20 {
		next := paragraphs[j]

		if isDemographicQuestion(next) || isStatement(next) || isSectionHeader(next) {
			break
		}

		if n := runeLen(next); n >= 10 && n <= 150 &&
			!strings.HasSuffix(next, "?") && !isScaleDefinition(next) {
			// Choices are taken literally; statement-shaped lines are not
			// choices.
			if !demographicChoiceOpenerPattern.MatchString(next) {
				choices = append(choices, next)
			}
		}
		j++
	}

	qType := classifyDemographicType(text, choices)
	fieldName := StatementFieldName(text)

	unitChoices := []string{}
	listName := ""
	if qType == TypeSelectOne || qType == TypeSelectMultiple {
		unitChoices = choices
		if len(choices) > 0 {
			listName = fieldName + "_list"
		}
	}

	return Unit{
		FieldName:      fieldName,
		QuestionText:   text,
		Choices:        unitChoices,
		ChoiceListName: listName,
		Type:           qType,
		Required:       requiredUnlessNote(qType),
	}, j
}

// extractTable handles statement batteries laid out as tables: the header
// row (or, failing that, the first data row) establishes a table-wide
// scale, and subsequent rows become statements against it, demographic
// rows, or generic question rows.
func (e *LikertExtractor) extractTable(table docfile.Table, tableIdx int) []Unit {
	var units []Unit

	if len(table.Rows) == 0 {
		return nil
	}

	tableScale, tableScaleName := e.sniffTableScale(table, tableIdx)

	for _, row := range table.Rows {
		cells := nonEmptyCells(row)
		if len(cells) == 0 {
			continue
		}

		statement := cells[0]
		if runeLen(statement) < 5 {
			continue
		}
		if matchesAnyFold(strings.ToLower(statement), tableHeaderCellNames) {
			continue
		}
		statement = flattenCell(statement)

		// Without an established scale, a row of scale-option cells is the
		// header defining one.
		if tableScale == nil {
			joined := strings.ToLower(strings.Join(cells, " "))
			if len(cells) >= 5 && containsAny(joined, tableScaleRowKeywords) {
				options := scaleOptionCells(cells[1:])
				if len(options) >= 3 {
					tableScale = options
					tableScaleName = rowScaleName(options, tableIdx)
				}
				continue
			}
		}

		if isStatement(statement) && tableScale != nil && !isDemographicQuestion(statement) {
			units = append(units, Unit{
				FieldName:      StatementFieldName(statement),
				QuestionText:   statement,
				Choices:        scaleOptionCells(tableScale),
				ChoiceListName: tableScaleName,
				Type:           TypeSelectOne,
				Required:       "yes",
			})
			continue
		}

		if isDemographicQuestion(statement) {
			potential := cells[1:]
			qType := classifyDemographicType(statement, potential)
			fieldName := StatementFieldName(statement)

			unitChoices := []string{}
			listName := ""
			if qType == TypeSelectOne || qType == TypeSelectMultiple {
				unitChoices = potential
				if len(potential) > 0 {
					listName = fieldName + "_list"
				}
			}
			units = append(units, Unit{
				FieldName:      fieldName,
				QuestionText:   statement,
				Choices:        unitChoices,
				ChoiceListName: listName,
				Type:           qType,
				Required:       requiredUnlessNote(qType),
			})
			continue
		}

		if strings.Contains(statement, "?") || runeLen(statement) > 10 {
			potential := cells[1:]
			if len(potential) > 0 && allShortCells(potential) {
				fieldName := StatementFieldName(statement)
				units = append(units, Unit{
					FieldName:      fieldName,
					QuestionText:   statement,
					Choices:        potential,
					ChoiceListName: fieldName + "_list",
					Type:           TypeSelectOne,
					Required:       "yes",
				})
			} else {
				units = append(units, Unit{
					FieldName:    StatementFieldName(statement),
					QuestionText: statement,
					Choices:      []string{},
					Type:         TypeText,
					Required:     "yes",
				})
			}
		}
	}

	return units
}

// sniffTableScale inspects the first row (and, if inconclusive, the
// second) for at least five cells of scale-option keywords establishing a
// table-wide scale.
func (e *LikertExtractor) sniffTableScale(table docfile.Table, tableIdx int) ([]string, string) {
	firstRow := nonEmptyCells(table.Rows[0])

	if len(firstRow) >= 5 {
		firstCol := strings.ToLower(firstRow[0])
		isHeaderRow := firstCol == "" ||
			matchesAnyFold(firstCol, tableHeaderCellNames) ||
			runeLen(firstCol) < 10

		if isHeaderRow {
			options := scaleOptionCells(firstRow[1:])
			if len(options) >= 3 {
				return options, firstRowScaleName(options, tableIdx)
			}
		}
	}

	if len(table.Rows) > 1 {
		secondRow := nonEmptyCells(table.Rows[1])
		if len(secondRow) >= 5 {
			candidates := scaleOptionCells(secondRow[1:])
			if len(candidates) >= 3 {
				joined := strings.ToLower(strings.Join(candidates, " "))
				if containsAny(joined, tableSecondRowScaleKeywords) {
					if anyCellContainsFold(candidates, "agree") || anyCellContainsFold(candidates, "disagree") {
						return candidates, "agree"
					}
					return candidates, "scale_" + strconv.Itoa(tableIdx)
				}
			}
		}
	}

	return nil, ""
}

// firstRowScaleName names a scale found in a table header row.
func firstRowScaleName(options []string, tableIdx int) string {
	switch {
	case anyCellContainsFold(options, "agree") || anyCellContainsFold(options, "disagree"):
		return "agree"
	case anyCellContainsFold(options, "groomed") || anyCellContainsFold(options, "well") ||
		anyCellContainsFold(options, "poorly"):
		return "rank"
	case anyCellContainsFold(options, "class"):
		return "class"
	case anyCellContainsFold(options, "never") || anyCellContainsFold(options, "always") ||
		anyCellContainsFold(options, "often"):
		return "frequency"
	default:
		return "scale_" + strconv.Itoa(tableIdx)
	}
}

// rowScaleName names a scale discovered mid-table.
func rowScaleName(options []string, tableIdx int) string {
	switch {
	case anyCellContainsFold(options, "agree") || anyCellContainsFold(options, "disagree"):
		return "agree"
	case anyCellContainsFold(options, "groomed") || anyCellContainsFold(options, "well") ||
		anyCellContainsFold(options, "poorly"):
		return "rank"
	default:
		return "scale_" + strconv.Itoa(tableIdx)
	}
}

// scaleOptionCells flattens candidate scale cells, keeping short non-empty
// ones.
func scaleOptionCells(cells []string) []string {
	var options []string
	for _, c := range cells {
		c = flattenCell(c)
		if c != "" && runeLen(c) < 50 {
			options = append(options, c)
		}
	}
	return options
}

// flattenCell collapses newlines inside a table cell.
func flattenCell(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\r", " ")
	return strings.TrimSpace(s)
}

func allShortCells(cells []string) bool {
	for _, c := range cells {
		if runeLen(c) >= 50 {
			return false
		}
	}
	return true
}

func anyCellContainsFold(cells []string, keyword string) bool {
	for _, c := range cells {
		if strings.Contains(strings.ToLower(c), keyword) {
			return true
		}
	}
	return false
}

func matchesAnyFold(s string, names []string) bool {
	for _, n := range names {
		if s == n {
			return true
		}
	}
	return false
}

func requiredUnlessNote(qType Type) string {
	if qType == TypeNote {
		return ""
	}
	return "yes"
}
