package xlsform

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/xlsforge/xlsforge/internal/survey"
)

const (
	surveySheet  = "survey"
	choicesSheet = "choices"
)

// Layout selects the survey sheet column set.
type Layout int

const (
	// LayoutStandard is the compact column set:
	// type, name, label, appearance, relevance, required.
	LayoutStandard Layout = iota
	// LayoutExtended is the full column set:
	// type, name, label, required, constraint, relevant, appearance, hint.
	LayoutExtended
)

var (
	standardHeader = []string{"type", "name", "label", "appearance", "relevance", "required"}
	extendedHeader = []string{"type", "name", "label", "required", "constraint", "relevant", "appearance", "hint"}
)

// Build serializes units into an xlsx workbook with a survey sheet and a
// choices sheet. Choice lists are registered in unit order; the choices
// sheet lists them grouped by list in first-registration order with 1-based
// values.
func Build(units []survey.Unit, layout Layout) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", surveySheet); err != nil {
		return nil, fmt.Errorf("rename survey sheet: %w", err)
	}
	if _, err := f.NewSheet(choicesSheet); err != nil {
		return nil, fmt.Errorf("create choices sheet: %w", err)
	}

	header := standardHeader
	if layout == LayoutExtended {
		header = extendedHeader
	}
	if err := setRow(f, surveySheet, 1, header); err != nil {
		return nil, err
	}

	registry := NewListRegistry()
	for i, u := range units {
		listName := registry.Assign(u)
		if err := setRow(f, surveySheet, i+2, surveyRow(u, listName, layout)); err != nil {
			return nil, err
		}
	}

	if err := setRow(f, choicesSheet, 1, []string{"list_name", "value", "label"}); err != nil {
		return nil, err
	}
	row := 2
	for _, name := range registry.Lists() {
		for i, label := range registry.Choices(name) {
			cells := []string{name, fmt.Sprintf("%d", i+1), label}
			if err := setRow(f, choicesSheet, row, cells); err != nil {
				return nil, err
			}
			row++
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// surveyRow renders one unit as survey sheet cells for the given layout.
func surveyRow(u survey.Unit, listName string, layout Layout) []string {
	typeCell := string(u.Type)
	if u.IsSelect() && listName != "" {
		typeCell = string(u.Type) + " " + listName
	}

	if layout == LayoutExtended {
		return []string{
			typeCell, u.FieldName, u.QuestionText,
			u.Required, "", u.Relevance, u.Appearance, "",
		}
	}
	return []string{
		typeCell, u.FieldName, u.QuestionText,
		u.Appearance, u.Relevance, u.Required,
	}
}

func setRow(f *excelize.File, sheet string, row int, cells []string) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("row coordinates: %w", err)
	}
	values := make([]interface{}, len(cells))
	for i, c := range cells {
		values[i] = c
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("write %s row %d: %w", sheet, row, err)
	}
	return nil
}
