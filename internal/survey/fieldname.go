package survey

import (
	"regexp"
	"strings"
)

var (
	questionNumberPrefix = regexp.MustCompile(`(?i)^[QR]\d+[.:]?\s*`)
	questionWordPrefix   = regexp.MustCompile(`(?i)^question\s+\d+[.:]?\s*`)

	interrogativePrefix = regexp.MustCompile(
		`(?i)^(what|how|why|when|where|who|which|do|does|did|are|is|was|were|have|has|would|could|should|please|tell|record)\s+`)
	imperativePrefix = regexp.MustCompile(
		`(?i)^(please|tell me|indicate|select|enter|write|provide|state|describe|specify)\s+`)

	parentheticalPattern = regexp.MustCompile(`\([^)]*\)`)
	bracketedPattern     = regexp.MustCompile(`\[[^\]]*\]`)
	punctuationPattern   = regexp.MustCompile(`[?.,'":;!]`)
	longDashPattern      = regexp.MustCompile(`[–—]`)
	underscoreRunPattern = regexp.MustCompile(`_+`)
	identWordPattern     = regexp.MustCompile(`[a-zA-Z0-9]+`)
)

// fieldNameStopWords are dropped from generic-extractor field names.
var fieldNameStopWords = map[string]bool{
	"the": true, "a": true, "an": true, "and": true, "or": true, "but": true,
	"in": true, "on": true, "at": true, "to": true, "for": true, "of": true,
	"with": true, "by": true, "from": true,
}

// statementStopWords additionally drop auxiliary verbs; used by the
// statement variant.
var statementStopWords = map[string]bool{
	"the": true, "a": true, "an": true, "and": true, "or": true, "but": true,
	"in": true, "on": true, "at": true, "to": true, "for": true, "of": true,
	"with": true, "by": true, "from": true, "is": true, "are": true,
	"was": true, "were": true,
}

// keyTermFields maps characteristic word combinations to canonical field
// names. Evaluated in order; all terms of an entry must be present.
var keyTermFields = []struct {
	terms []string
	name  string
}{
	{[]string{"gender"}, "gender"},
	{[]string{"age"}, "age"},
	{[]string{"hair", "type"}, "hair_type"},
	{[]string{"hair", "texture"}, "hair_texture"},
	{[]string{"education"}, "education"},
	{[]string{"internet", "improve"}, "internet_improve"},
	{[]string{"internet", "purpose"}, "internet_purpose"},
	{[]string{"internet", "often"}, "internet_frequency"},
	{[]string{"internet", "freq"}, "internet_frequency"},
	{[]string{"content", "type"}, "content_type"},
	{[]string{"free", "time"}, "free_time_activities"},
	{[]string{"activities"}, "activities"},
	{[]string{"satisfaction"}, "satisfaction"},
	{[]string{"satisf"}, "satisfaction"},
	{[]string{"device"}, "device"},
	{[]string{"habit"}, "habits"},
	{[]string{"name", "full"}, "full_name"},
	{[]string{"participant", "name"}, "participant_name"},
	{[]string{"address", "residential"}, "residential_address"},
	{[]string{"phone"}, "phone"},
	{[]string{"mobile"}, "mobile"},
	{[]string{"city"}, "city"},
	{[]string{"nccs"}, "nccs"},
}

// FieldName derives a short machine-readable identifier from question
// prose: question numbering and interrogative prefixes are stripped,
// parentheticals and punctuation removed, stop words dropped, and key terms
// mapped onto canonical names before falling back to the leading meaningful
// words.
func FieldName(text string) string {
	text = questionNumberPrefix.ReplaceAllString(text, "")
	text = questionWordPrefix.ReplaceAllString(text, "")
	text = interrogativePrefix.ReplaceAllString(text, "")

	text = parentheticalPattern.ReplaceAllString(text, "")
	text = bracketedPattern.ReplaceAllString(text, "")
	text = punctuationPattern.ReplaceAllString(text, "")
	text = longDashPattern.ReplaceAllString(text, "-")

	words := meaningfulWords(text, fieldNameStopWords, 0)

	wordSet := make(map[string]bool, len(words))
	for _, w := range words {
		wordSet[w] = true
	}
	for _, entry := range keyTermFields {
		all := true
		for _, term := range entry.terms {
			if !wordSet[term] {
				all = false
				break
			}
		}
		if all {
			return entry.name
		}
	}

	return joinFieldWords(words)
}

// StatementFieldName is the field-name rule set for Likert statements and
// demographic questions: a different prefix list, underscores removed, and
// single-letter words dropped. Kept separate so each pipeline's historical
// identifiers stay stable.
func StatementFieldName(text string) string {
	text = questionNumberPrefix.ReplaceAllString(text, "")
	text = questionWordPrefix.ReplaceAllString(text, "")
	text = imperativePrefix.ReplaceAllString(text, "")

	text = parentheticalPattern.ReplaceAllString(text, "")
	text = bracketedPattern.ReplaceAllString(text, "")
	text = punctuationPattern.ReplaceAllString(text, "")
	text = longDashPattern.ReplaceAllString(text, "-")
	text = underscoreRunPattern.ReplaceAllString(text, "")

	words := meaningfulWords(text, statementStopWords, 1)
	return joinFieldWords(words)
}

// meaningfulWords lowercases and tokenizes text, dropping stop words and
// words at or below minLen characters.
func meaningfulWords(text string, stopWords map[string]bool, minLen int) []string {
	raw := identWordPattern.FindAllString(strings.ToLower(text), -1)
	words := make([]string, 0, len(raw))
	for _, w := range raw {
		if stopWords[w] || runeLen(w) <= minLen {
			continue
		}
		words = append(words, w)
	}
	return words
}

// joinFieldWords joins the first few meaningful words into an identifier of
// at most 40 characters.
func joinFieldWords(words []string) string {
	if len(words) == 0 {
		return "field_unknown"
	}
	name := strings.Join(firstN(words, 4), "_")
	if len(name) <= 40 {
		return name
	}
	name = strings.Join(firstN(words, 3), "_")
	if len(name) > 40 {
		name = name[:40]
	}
	return name
}

func firstN(words []string, n int) []string {
	if len(words) <= n {
		return words
	}
	return words[:n]
}
