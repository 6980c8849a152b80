package xlsform

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/xlsforge/xlsforge/internal/survey"
)

func sampleUnits() []survey.Unit {
	scale := []string{"Strongly disagree", "Somewhat disagree", "Neither", "Somewhat agree", "Strongly agree"}
	return []survey.Unit{
		{FieldName: "intro", QuestionText: "Section 1: About you", Choices: []string{}, Type: survey.TypeNote},
		{FieldName: "age", QuestionText: "What is your age?", Choices: []string{}, Type: survey.TypeInteger, Required: "yes"},
		{FieldName: "valued", QuestionText: "I feel valued at work", Choices: scale, ChoiceListName: "agree", Type: survey.TypeSelectOne, Required: "yes"},
		{FieldName: "supported", QuestionText: "My manager supports me", Choices: scale, ChoiceListName: "agree", Type: survey.TypeSelectOne, Required: "yes"},
		{FieldName: "devices", QuestionText: "Which devices do you own?", Choices: []string{"Phone", "Laptop"}, Type: survey.TypeSelectMultiple, Required: "no"},
	}
}

func TestBuildStandardLayout(t *testing.T) {
	data, err := Build(sampleUnits(), LayoutStandard)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("survey")
	require.NoError(t, err)
	require.Len(t, rows, 6)

	assert.Equal(t, []string{"type", "name", "label", "appearance", "relevance", "required"}, rows[0])
	assert.Equal(t, "note", rows[1][0])
	assert.Equal(t, "integer", rows[2][0])
	assert.Equal(t, "select_one agree", rows[3][0])
	assert.Equal(t, "select_one agree", rows[4][0])
	assert.Equal(t, "select_multiple devices_list", rows[5][0])

	choices, err := f.GetRows("choices")
	require.NoError(t, err)
	require.Len(t, choices, 8)
	assert.Equal(t, []string{"list_name", "value", "label"}, choices[0])
	assert.Equal(t, []string{"agree", "1", "Strongly disagree"}, choices[1])
	assert.Equal(t, []string{"agree", "5", "Strongly agree"}, choices[5])
	assert.Equal(t, []string{"devices_list", "1", "Phone"}, choices[6])
	assert.Equal(t, []string{"devices_list", "2", "Laptop"}, choices[7])
}

func TestBuildExtendedLayout(t *testing.T) {
	data, err := Build(sampleUnits(), LayoutExtended)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("survey")
	require.NoError(t, err)
	require.NotEmpty(t, rows)
	assert.Equal(t,
		[]string{"type", "name", "label", "required", "constraint", "relevant", "appearance", "hint"},
		rows[0])
}

func TestRoundTripRecoversChoices(t *testing.T) {
	units := sampleUnits()

	data, err := Build(units, LayoutStandard)
	require.NoError(t, err)

	decoded, err := Read(data)
	require.NoError(t, err)
	require.Len(t, decoded, len(units))

	for i, u := range units {
		got := decoded[i]
		assert.Equal(t, u.FieldName, got.FieldName, "row %d", i)
		assert.Equal(t, u.Type, got.Type, "row %d", i)
		assert.Equal(t, u.Required, got.Required, "row %d", i)
		if u.IsSelect() {
			assert.Equal(t, u.Choices, got.Choices, "row %d choices", i)
		}
	}
}

func TestReadRejectsGarbage(t *testing.T) {
	_, err := Read([]byte("not a workbook"))
	assert.Error(t, err)
}
