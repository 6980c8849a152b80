package survey

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/xlsforge/xlsforge/internal/docfile"
)

// Strategy names accepted by ForStrategy.
const (
	StrategyGeneric = "generic"
	StrategyLikert  = "likert"
	StrategyAuto    = "auto"
)

// Extractor converts a decoded document into an ordered sequence of survey
// units. Extraction never fails on merely ambiguous text: every line
// resolves to some classification or is dropped as unclassified filler.
type Extractor interface {
	Name() string
	Extract(doc *docfile.Document) []Unit
}

// ForStrategy returns the extractor for a named strategy. "auto" sniffs the
// document for scale definitions and picks the Likert extractor when it
// finds one, the generic extractor otherwise.
func ForStrategy(name string, logger zerolog.Logger) (Extractor, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case StrategyGeneric, "":
		return NewGenericExtractor(logger), nil
	case StrategyLikert:
		return NewLikertExtractor(logger), nil
	case StrategyAuto:
		return &autoExtractor{logger: logger}, nil
	default:
		return nil, fmt.Errorf("unknown extraction strategy %q", name)
	}
}

// autoExtractor defers the strategy decision until it has seen the
// document.
type autoExtractor struct {
	logger zerolog.Logger
}

func (a *autoExtractor) Name() string { return StrategyAuto }

func (a *autoExtractor) Extract(doc *docfile.Document) []Unit {
	for _, text := range doc.Paragraphs {
		if isScaleDefinition(text) || detectScaleOptions(text) != nil {
			a.logger.Debug().Msg("scale definition found, using likert extractor")
			return NewLikertExtractor(a.logger).Extract(doc)
		}
	}
	return NewGenericExtractor(a.logger).Extract(doc)
}
