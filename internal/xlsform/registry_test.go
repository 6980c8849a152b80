package xlsform

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/xlsforge/xlsforge/internal/survey"
)

func selectUnit(field, listName string, choices ...string) survey.Unit {
	return survey.Unit{
		FieldName:      field,
		QuestionText:   field,
		Choices:        choices,
		ChoiceListName: listName,
		Type:           survey.TypeSelectOne,
		Required:       "yes",
	}
}

func TestRegistrySharesIdenticalTuples(t *testing.T) {
	scale := []string{"Strongly disagree", "Somewhat disagree", "Neither", "Somewhat agree", "Strongly agree"}

	r := NewListRegistry()
	first := r.Assign(selectUnit("s1", "", scale...))
	second := r.Assign(selectUnit("s2", "", scale...))
	third := r.Assign(selectUnit("s3", "", "Yes", "No"))

	assert.Equal(t, "s1_list", first)
	assert.Equal(t, first, second, "identical tuples must share one list")
	assert.Equal(t, "s3_list", third)
	assert.Equal(t, []string{"s1_list", "s3_list"}, r.Lists())
}

func TestRegistryExplicitNames(t *testing.T) {
	r := NewListRegistry()

	name := r.Assign(selectUnit("s1", "agree", "Disagree", "Agree"))
	assert.Equal(t, "agree", name)

	// Same explicit name, different tuple: the name is taken, a suffixed
	// variant is synthesized.
	other := r.Assign(selectUnit("s2", "agree", "Never", "Always"))
	assert.Equal(t, "agree_1", other)

	// Same explicit name, same tuple: reused verbatim.
	again := r.Assign(selectUnit("s3", "agree", "Disagree", "Agree"))
	assert.Equal(t, "agree", again)
}

func TestRegistrySuffixesCollidingFieldNames(t *testing.T) {
	r := NewListRegistry()

	first := r.Assign(selectUnit("q", "", "A", "B"))
	second := r.Assign(selectUnit("q", "", "C", "D"))

	assert.Equal(t, "q_list", first)
	assert.Equal(t, "q_list_1", second)
}

func TestRegistryTrimsChoiceIdentity(t *testing.T) {
	r := NewListRegistry()

	first := r.Assign(selectUnit("a", "", "Yes", "No"))
	second := r.Assign(selectUnit("b", "", " Yes ", "No "))

	assert.Equal(t, first, second, "whitespace must not split tuple identity")
}

func TestRegistryIgnoresNonSelectUnits(t *testing.T) {
	r := NewListRegistry()

	note := survey.Unit{FieldName: "intro", Type: survey.TypeNote, Choices: []string{}}
	assert.Empty(t, r.Assign(note))
	assert.Empty(t, r.Lists())
}
