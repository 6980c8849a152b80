package survey

import (
	"reflect"
	"testing"
)

func TestIsScaleDefinition(t *testing.T) {
	if !isScaleDefinition("Please select the response on the 5-point scale that best reflects your view") {
		t.Error("expected scale definition")
	}
	if isScaleDefinition("What is your age?") {
		t.Error("did not expect scale definition")
	}
}

func TestDetectScaleOptions(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			"spelled out agreement scale",
			"strongly disagree, disagree, neither, agree, strongly agree",
			scaleAgree,
		},
		{
			"point scale mention defaults to agreement",
			"rate each item on a 5-point scale",
			scaleAgree,
		},
		{"no scale", "tell me about your day", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := detectScaleOptions(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("detectScaleOptions(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestScaleFromContext(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"agreement keywords", "indicate to what extent you agree", scaleAgree},
		{"frequency keywords", "how often does this happen", scaleFrequency},
		{"quality keywords", "how well groomed is the respondent", scaleQuality},
		{"class keywords", "which social class describes your household", scaleClass},
		{"no keywords", "favourite colour", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := scaleFromContext(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("scaleFromContext(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestScaleNameFor(t *testing.T) {
	tests := []struct {
		lowerText string
		unitCount int
		want      string
	}{
		{"level of agreement", 0, "agree"},
		{"rate how often", 3, "frequency"},
		{"how well groomed", 1, "rank"},
		{"social class", 2, "class"},
		{"something unusual", 7, "scale_7"},
	}

	for _, tt := range tests {
		if got := scaleNameFor(tt.lowerText, tt.unitCount); got != tt.want {
			t.Errorf("scaleNameFor(%q, %d) = %q, want %q", tt.lowerText, tt.unitCount, got, tt.want)
		}
	}
}
