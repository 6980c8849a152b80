package survey

import (
	"regexp"
	"strconv"
	"strings"
)

// Canonical five-point scales. Scale-based surveys overwhelmingly use one
// of these four; keyword matching picks the closest and the agreement scale
// is the default whenever a scale is mentioned without a clearer topic.
var (
	scaleAgree     = []string{"Strongly disagree", "Somewhat disagree", "Neither", "Somewhat agree", "Strongly agree"}
	scaleFrequency = []string{"Never", "Rarely", "Sometimes", "Often", "Always"}
	scaleQuality   = []string{"Very poorly", "Poorly", "About average", "Well", "Very well"}
	scaleClass     = []string{"Lower class", "Lower middle class", "Middle class", "Upper middle class", "Upper class"}
)

// scalePatternGroups recognize spelled-out scales. A group counts as
// present when at least three of its five option patterns match.
var scalePatternGroups = [][]*regexp.Regexp{
	{
		regexp.MustCompile(`strongly\s+disagree`),
		regexp.MustCompile(`somewhat\s+disagree|disagree|slightly\s+disagree`),
		regexp.MustCompile(`neither|neutral|neither\s+agree\s+nor\s+disagree`),
		regexp.MustCompile(`somewhat\s+agree|agree|slightly\s+agree`),
		regexp.MustCompile(`strongly\s+agree`),
	},
	{
		regexp.MustCompile(`never`),
		regexp.MustCompile(`rarely|seldom`),
		regexp.MustCompile(`sometimes|occasionally`),
		regexp.MustCompile(`often|frequently`),
		regexp.MustCompile(`always|very\s+often`),
	},
	{
		regexp.MustCompile(`very\s+poorly|very\s+poor|poorly`),
		regexp.MustCompile(`poor|below\s+average`),
		regexp.MustCompile(`average|about\s+average|moderate`),
		regexp.MustCompile(`well|good|above\s+average`),
		regexp.MustCompile(`very\s+well|excellent|very\s+good`),
	},
	{
		regexp.MustCompile(`lower\s+class`),
		regexp.MustCompile(`lower\s+middle\s+class`),
		regexp.MustCompile(`middle\s+class`),
		regexp.MustCompile(`upper\s+middle\s+class`),
		regexp.MustCompile(`upper\s+class`),
	},
}

var pointScalePattern = regexp.MustCompile(`\d+\s*-?\s*point\s+scale`)

// scaleDefinitionIndicators mark a line as the instruction that establishes
// a scale for the statements that follow.
var scaleDefinitionIndicators = []string{
	"select the response",
	"circle the response",
	"point scale",
	"best reflects",
	"level of agreement",
	"extent you agree",
	"indicate to what extent",
	"select the response on the",
	"best describes",
}

// isScaleDefinition checks whether a line defines a response scale.
func isScaleDefinition(text string) bool {
	return containsAny(strings.ToLower(text), scaleDefinitionIndicators)
}

// detectScaleOptions recognizes a spelled-out or referenced scale in text,
// returning the canonical option list or nil.
func detectScaleOptions(text string) []string {
	lower := strings.ToLower(text)

	for _, group := range scalePatternGroups {
		matches := 0
		for _, pattern := range group {
			if pattern.MatchString(lower) {
				matches++
			}
		}
		if matches >= 3 {
			return scaleFromContext(text)
		}
	}

	// A bare "5-point scale" mention still resolves via topic keywords.
	if pointScalePattern.MatchString(lower) {
		return scaleFromContext(text)
	}

	return nil
}

// scaleFromContext picks the canonical scale whose topic keywords appear in
// text. Keyword groups are checked in fixed order; agreement wins ties and
// is the fallback when only "scale"/"point" appears.
func scaleFromContext(text string) []string {
	lower := strings.ToLower(text)

	switch {
	case containsAny(lower, []string{"agree", "disagree", "extent you agree"}):
		return append([]string(nil), scaleAgree...)
	case containsAny(lower, []string{"often", "frequently", "never", "always", "rarely"}):
		return append([]string(nil), scaleFrequency...)
	case containsAny(lower, []string{"groomed", "well", "poorly", "quality"}):
		return append([]string(nil), scaleQuality...)
	case containsAny(lower, []string{"class", "socioeconomic", "social class"}):
		return append([]string(nil), scaleClass...)
	}

	if strings.Contains(lower, "scale") || strings.Contains(lower, "point") {
		return append([]string(nil), scaleAgree...)
	}

	return nil
}

// scaleNameFor derives the reusable list name for a freshly established
// scale. unitCount disambiguates unrecognized scales per document position.
func scaleNameFor(lowerText string, unitCount int) string {
	switch {
	case strings.Contains(lowerText, "agree"):
		return "agree"
	case strings.Contains(lowerText, "frequency") || strings.Contains(lowerText, "often"):
		return "frequency"
	case strings.Contains(lowerText, "groomed") || strings.Contains(lowerText, "quality"):
		return "rank"
	case strings.Contains(lowerText, "class"):
		return "class"
	default:
		return "scale_" + strconv.Itoa(unitCount)
	}
}
