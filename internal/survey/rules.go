package survey

import "regexp"

// The classification heuristics are literal, ordered rule tables. Order
// matters: predicates are evaluated top to bottom and the extractors apply
// them in a fixed precedence, so reordering entries changes classification
// outcomes on ambiguous lines.

// questionPatterns are strong signals that a line is a question. Matched
// anywhere in the line unless anchored.
var questionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^[QR]\d+[.:]?\s*`),  // Q1, Q1., Q1:, R2.1
	regexp.MustCompile(`(?i)^question\s+\d+`),   // Question 1
	regexp.MustCompile(`\?$`),                   // ends with question mark
	regexp.MustCompile(`(?i)^what\s+`),
	regexp.MustCompile(`(?i)^how\s+`),
	regexp.MustCompile(`(?i)^why\s+`),
	regexp.MustCompile(`(?i)^when\s+`),
	regexp.MustCompile(`(?i)^where\s+`),
	regexp.MustCompile(`(?i)^who\s+`),
	regexp.MustCompile(`(?i)^which\s+`),
	regexp.MustCompile(`(?i)^do\s+you\s+`),
	regexp.MustCompile(`(?i)^does\s+`),
	regexp.MustCompile(`(?i)^have\s+you\s+`),
	regexp.MustCompile(`(?i)^are\s+you\s+`),
	regexp.MustCompile(`(?i)^is\s+there\s+`),
	regexp.MustCompile(`(?i)^would\s+you\s+`),
	regexp.MustCompile(`(?i)^could\s+you\s+`),
	regexp.MustCompile(`(?i)^please\s+tell`),
	regexp.MustCompile(`(?i)^please\s+specify`),
	regexp.MustCompile(`(?i)^please\s+describe`),
	regexp.MustCompile(`(?i)^please\s+state`),
	regexp.MustCompile(`(?i)^please\s+provide`),
	regexp.MustCompile(`(?i)^please\s+enter`),
	regexp.MustCompile(`(?i)^record\s+the`),
	regexp.MustCompile(`(?i)^tell\s+me\s+`),
	regexp.MustCompile(`(?i)^describe\s+`),
	regexp.MustCompile(`(?i)^specify\s+`),
	regexp.MustCompile(`(?i)^enter\s+`),
	regexp.MustCompile(`(?i)^write\s+`),
	regexp.MustCompile(`(?i)^state\s+`),
}

// questionWords feed the secondary question heuristic: a mid-length line
// whose first five tokens contain one of these is treated as a question
// unless an exclusion below fires.
var questionWords = map[string]bool{
	"what": true, "how": true, "why": true, "when": true, "where": true,
	"who": true, "which": true, "do": true, "does": true, "did": true,
	"have": true, "has": true, "are": true, "is": true, "was": true,
	"were": true, "would": true, "could": true, "should": true,
}

// questionExcludePatterns suppress the secondary question heuristic.
// Anchored at line start, evaluated against the lowercased line.
var questionExcludePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^(note|instruction|guidance|section|for enumerator|do not read|for office use)`),
	regexp.MustCompile(`^the next`),
	regexp.MustCompile(`^you may`),
	regexp.MustCompile(`^this is`),
	regexp.MustCompile(`^read each`),
	regexp.MustCompile(`^thank you`),
}

// notePatterns mark a line as a note/instruction/header. Anchored at line
// start, evaluated against the lowercased line.
var notePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^(note|instruction|guidance|section)\s+`),
	regexp.MustCompile(`^for enumerator`),
	regexp.MustCompile(`^do not read`),
	regexp.MustCompile(`^for office use`),
	regexp.MustCompile(`^training only`),
	regexp.MustCompile(`^copyright`),
	regexp.MustCompile(`^disclaimer`),
	regexp.MustCompile(`^namaste`),
	regexp.MustCompile(`^interviewer`),
	regexp.MustCompile(`^the next questions? are`),
	regexp.MustCompile(`^you may select`),
	regexp.MustCompile(`^please note`),
	regexp.MustCompile(`^read each`),
	regexp.MustCompile(`^thank you`),
	regexp.MustCompile(`^this is`),
	regexp.MustCompile(`^we are`),
	regexp.MustCompile(`^recruitment and`),
}

// sectionHeaderPattern matches "Section N" style headers.
var sectionHeaderPattern = regexp.MustCompile(`^section\s+\d+:?`)

// instructionLinePatterns exclude lines from choice collection. Evaluated
// against the lowercased line, matched anywhere unless anchored.
var instructionLinePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^(the next|you may|please note|read each|this is|we are|for enumerator)`),
	regexp.MustCompile(`select (all|more)`),
	regexp.MustCompile(`where applicable`),
	regexp.MustCompile(`open.?end`),
	regexp.MustCompile(`single code`),
	regexp.MustCompile(`multiple code`),
	regexp.MustCompile(`optional`),
	regexp.MustCompile(`required`),
	regexp.MustCompile(`please`),
}

// choiceLinePattern strips bullets, numeric markers (1), 1., (1)) and alpha
// markers (a), A)) from a candidate choice line, capturing the payload text.
var choiceLinePattern = regexp.MustCompile(
	`^\s*(?:[-•*●‣]\s*)?(?:\(?\d+[.)]\s*)?(?:[a-zA-Z][.)]\s*)?(.+?)$`)

var (
	leadingBulletPattern = regexp.MustCompile(`^[•\-*]\s+`)
	trailingDashPattern  = regexp.MustCompile(`\s+[–—\-]+$`)
)

// excludeMarkers are formatting annotations that survive bullet stripping
// but are not actual choices.
var excludeMarkers = []string{
	"open-end", "open end", "single code", "multiple code",
	"optional", "required", "specify", "other (specify)",
}

// nonChoicePrefixPattern drops non-choice lines in the direct-append branch
// of choice extraction.
var nonChoicePrefixPattern = regexp.MustCompile(`^(note|instruction|section|for|the next|open.?end)`)

// hardExcludeMarkers drop direct-append candidates outright.
var hardExcludeMarkers = []string{"open-end", "single code", "multiple code"}

// inlineChoicePatterns pull choice lists embedded in the question text
// itself: a parenthesized group, or everything after a colon up to a
// question mark.
var inlineChoicePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\(([^)]+)\)`),
	regexp.MustCompile(`:\s*([^?]+?)(?:\?|$)`),
}

var (
	choiceTokenSplitPattern = regexp.MustCompile(`,|/|\bor\b|\band\b`)
	trailingPunctPattern    = regexp.MustCompile(`[.,;:]+$`)
)

// strongBinaryPatterns gate Yes/No inference: only clearly binary phrasings
// qualify.
var strongBinaryPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(do you|does (it|this|that)|have you|are you|were you|did you)\s+`),
	regexp.MustCompile(`(?i)\bis there\b`),
	regexp.MustCompile(`(?i)\bare there\b`),
}

// binaryExcludePatterns veto Yes/No inference for questions that clearly
// expect some other answer shape.
var binaryExcludePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(what|which|how many|how much|how often|how long|when|where|who)\b`),
	regexp.MustCompile(`(?i)\b(specify|describe|explain|provide|state|enter|write|tell|list|name|select|choose)\b`),
	regexp.MustCompile(`(?i)\b(purpose|reason|type|kind|category|preference|option)\b`),
}

// multiSelectKeywords flip a choice question from select_one to
// select_multiple. Matched as substrings of the lowercased question plus
// its context lines.
var multiSelectKeywords = []string{
	"select all that apply",
	"select all",
	"select more than one",
	"more than one",
	"multiple options",
	"multiple choices",
	"all that apply",
	"all applicable",
	"you may select",
	"tick all",
	"check all",
}

// integerPatterns mark a choiceless question as numeric.
var integerPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b(how many|number of|count of|quantity of|total number|how much|amount of)\b`),
	regexp.MustCompile(`\bage\s+(in\s+)?years?\b`),
	regexp.MustCompile(`\byears?\s+old\b`),
	regexp.MustCompile(`\bage\b`),
	regexp.MustCompile(`\b\d+\s+to\s+\d+\s+years\b`), // age ranges
	regexp.MustCompile(`\bphone\s+number\b`),
	regexp.MustCompile(`\bmobile\s+number\b`),
	regexp.MustCompile(`\bpin\s+code\b`),
}

// openTextKeywords mark a choiceless question as free text. Matched as
// substrings of the lowercased question text.
var openTextKeywords = []string{
	"specify",
	"describe",
	"explain",
	"provide details",
	"state",
	"enter",
	"write",
	"tell me",
	"your answer",
	"response:",
	"open-end",
	"open end",
	"free text",
	"comments",
	"remarks",
	"other (specify)",
	"please explain",
	"please specify",
	"please describe",
	"please state",
	"please provide",
	"please enter",
	"please write",
	"full name",
	"address",
	"city",
	"name",
}
