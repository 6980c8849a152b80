package xlsform

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/xlsforge/xlsforge/internal/survey"
)

// Read parses a workbook produced by Build back into survey units. Both
// survey sheet layouts are accepted; columns are located by header name.
func Read(data []byte) ([]survey.Unit, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	lists, err := readChoiceLists(f)
	if err != nil {
		return nil, err
	}

	rows, err := f.GetRows(surveySheet)
	if err != nil {
		return nil, fmt.Errorf("read survey sheet: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("survey sheet has no header row")
	}

	col := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		col[strings.TrimSpace(name)] = i
	}
	for _, required := range []string{"type", "name", "label"} {
		if _, ok := col[required]; !ok {
			return nil, fmt.Errorf("survey sheet missing %q column", required)
		}
	}

	var units []survey.Unit
	for _, row := range rows[1:] {
		typeCell := cellAt(row, col["type"])
		if typeCell == "" {
			continue
		}

		unitType, listName := splitTypeCell(typeCell)
		u := survey.Unit{
			FieldName:      cellAt(row, col["name"]),
			QuestionText:   cellAt(row, col["label"]),
			Choices:        []string{},
			ChoiceListName: listName,
			Type:           unitType,
		}
		if i, ok := col["appearance"]; ok {
			u.Appearance = cellAt(row, i)
		}
		if i, ok := col["relevance"]; ok {
			u.Relevance = cellAt(row, i)
		} else if i, ok := col["relevant"]; ok {
			u.Relevance = cellAt(row, i)
		}
		if i, ok := col["required"]; ok {
			u.Required = cellAt(row, i)
		}
		if listName != "" {
			u.Choices = append(u.Choices, lists[listName]...)
		}

		units = append(units, u)
	}

	return units, nil
}

// readChoiceLists loads the choices sheet into label sequences keyed by
// list name, preserving row order.
func readChoiceLists(f *excelize.File) (map[string][]string, error) {
	rows, err := f.GetRows(choicesSheet)
	if err != nil {
		return nil, fmt.Errorf("read choices sheet: %w", err)
	}

	lists := make(map[string][]string)
	for i, row := range rows {
		if i == 0 {
			continue
		}
		name := cellAt(row, 0)
		label := cellAt(row, 2)
		if name == "" || label == "" {
			continue
		}
		lists[name] = append(lists[name], label)
	}
	return lists, nil
}

// splitTypeCell separates "select_one gender_list" into the unit type and
// the list name.
func splitTypeCell(cell string) (survey.Type, string) {
	parts := strings.Fields(cell)
	if len(parts) == 2 {
		t := survey.Type(parts[0])
		if t == survey.TypeSelectOne || t == survey.TypeSelectMultiple {
			return t, parts[1]
		}
	}
	return survey.Type(cell), ""
}

func cellAt(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
