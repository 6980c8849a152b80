package survey

import (
	"reflect"
	"testing"

	"github.com/rs/zerolog"

	"github.com/xlsforge/xlsforge/internal/docfile"
)

func TestIsStatement(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{"first person opener", "I enjoy my current role at the company", true},
		{"possessive opener", "My manager supports my development", true},
		{"interrogative with question mark", "How satisfied are you with your manager?", true},
		{"instruction line", "Please indicate your agreement with each statement", false},
		{"section header", "Section 3: Engagement", false},
		{"too short", "Age", false},
		{"scale definition", "Select the response that best reflects your level of agreement", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isStatement(tt.text); got != tt.want {
				t.Errorf("isStatement(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestIsDemographicQuestion(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{"bare keyword", "Gender", true},
		{"experience question", "Years of work experience", true},
		{"statement wins over keyword", "I live with my family", false},
		{"unrelated", "Favourite colour", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isDemographicQuestion(tt.text); got != tt.want {
				t.Errorf("isDemographicQuestion(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestClassifyDemographicType(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		choices []string
		want    Type
	}{
		{"age is numeric", "What is your age?", nil, TypeInteger},
		{"name is free text", "What is your name?", nil, TypeText},
		{"choices give select one", "What is your gender?", []string{"Male", "Female"}, TypeSelectOne},
		{"multi keyword", "Marital status (select all that apply)", []string{"Single", "Married"}, TypeSelectMultiple},
		{"no signal no choices", "Religion", nil, TypeText},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifyDemographicType(tt.text, tt.choices)
			if got != tt.want {
				t.Errorf("classifyDemographicType(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestLikertExtractStatements(t *testing.T) {
	doc := &docfile.Document{
		Paragraphs: []string{
			"Section A: Work Environment",
			"Please select the response on the 5-point scale that best reflects your level of agreement.",
			"I feel valued at work",
			"My manager supports my development",
		},
	}

	units := NewLikertExtractor(zerolog.Nop()).Extract(doc)
	if len(units) != 4 {
		t.Fatalf("got %d units, want 4: %+v", len(units), units)
	}

	if units[0].Type != TypeNote || units[1].Type != TypeNote {
		t.Errorf("expected leading notes, got %v and %v", units[0].Type, units[1].Type)
	}

	for _, u := range units[2:] {
		if u.Type != TypeSelectOne {
			t.Errorf("statement %q type = %v, want select_one", u.QuestionText, u.Type)
		}
		if u.ChoiceListName != "agree" {
			t.Errorf("statement %q list = %q, want agree", u.QuestionText, u.ChoiceListName)
		}
		if !reflect.DeepEqual(u.Choices, scaleAgree) {
			t.Errorf("statement %q choices = %v", u.QuestionText, u.Choices)
		}
		if u.Required != "yes" {
			t.Errorf("statement %q required = %q, want yes", u.QuestionText, u.Required)
		}
	}

	if units[2].FieldName != "feel_valued_work" {
		t.Errorf("field name = %q, want feel_valued_work", units[2].FieldName)
	}
}

// Statements before any scale definition have no answer set to bind to and
// are dropped.
func TestLikertExtractStatementNeedsScale(t *testing.T) {
	doc := &docfile.Document{
		Paragraphs: []string{"I feel valued at work"},
	}

	units := NewLikertExtractor(zerolog.Nop()).Extract(doc)
	if len(units) != 0 {
		t.Fatalf("got %d units, want 0: %+v", len(units), units)
	}
}

func TestLikertExtractDemographic(t *testing.T) {
	doc := &docfile.Document{
		Paragraphs: []string{
			"Gender identity",
			"Male respondent",
			"Female respondent",
			"Section B: Statements",
		},
	}

	units := NewLikertExtractor(zerolog.Nop()).Extract(doc)
	if len(units) != 2 {
		t.Fatalf("got %d units, want 2: %+v", len(units), units)
	}

	q := units[0]
	if q.FieldName != "gender_identity" {
		t.Errorf("field name = %q, want gender_identity", q.FieldName)
	}
	if q.Type != TypeSelectOne {
		t.Errorf("type = %v, want select_one", q.Type)
	}
	if !reflect.DeepEqual(q.Choices, []string{"Male respondent", "Female respondent"}) {
		t.Errorf("choices = %v", q.Choices)
	}
	if q.ChoiceListName != "gender_identity_list" {
		t.Errorf("choice list name = %q", q.ChoiceListName)
	}

	if units[1].Type != TypeNote {
		t.Errorf("trailing section type = %v, want note", units[1].Type)
	}
}

func TestLikertExtractTable(t *testing.T) {
	doc := &docfile.Document{
		Tables: []docfile.Table{
			{Rows: [][]string{
				{"Statement", "Strongly disagree", "Somewhat disagree", "Neither", "Somewhat agree", "Strongly agree"},
				{"I receive regular feedback", "", "", "", "", ""},
				{"The workload is manageable", "", "", "", "", ""},
			}},
		},
	}

	units := NewLikertExtractor(zerolog.Nop()).Extract(doc)
	if len(units) != 2 {
		t.Fatalf("got %d units, want 2: %+v", len(units), units)
	}

	for _, u := range units {
		if u.Type != TypeSelectOne {
			t.Errorf("row %q type = %v, want select_one", u.QuestionText, u.Type)
		}
		if u.ChoiceListName != "agree" {
			t.Errorf("row %q list = %q, want agree", u.QuestionText, u.ChoiceListName)
		}
		if len(u.Choices) != 5 {
			t.Errorf("row %q has %d choices, want 5", u.QuestionText, len(u.Choices))
		}
	}
}

func TestForStrategy(t *testing.T) {
	for _, name := range []string{"generic", "likert", "auto", ""} {
		if _, err := ForStrategy(name, zerolog.Nop()); err != nil {
			t.Errorf("ForStrategy(%q) returned error: %v", name, err)
		}
	}
	if _, err := ForStrategy("bogus", zerolog.Nop()); err == nil {
		t.Error("ForStrategy(\"bogus\") should fail")
	}
}

// The auto strategy picks the statement extractor when the document opens
// with a scale definition.
func TestAutoStrategyPicksLikert(t *testing.T) {
	doc := &docfile.Document{
		Paragraphs: []string{
			"Please select the response on the 5-point scale that best reflects your level of agreement.",
			"I feel valued at work",
		},
	}

	ex, err := ForStrategy("auto", zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}
	units := ex.Extract(doc)
	if len(units) != 2 {
		t.Fatalf("got %d units, want 2: %+v", len(units), units)
	}
	if units[1].ChoiceListName != "agree" {
		t.Errorf("statement list = %q, want agree", units[1].ChoiceListName)
	}
}
