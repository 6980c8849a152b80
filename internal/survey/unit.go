package survey

// Type represents the kind of a survey unit
type Type string

const (
	TypeSelectOne      Type = "select_one"
	TypeSelectMultiple Type = "select_multiple"
	TypeText           Type = "text"
	TypeInteger        Type = "integer"
	TypeNote           Type = "note"
)

// Unit represents one structured question or note record extracted from a
// questionnaire document. The sequence of units preserves source document
// order (paragraphs first, then tables); that ordering is the only
// correctness signal a reviewer has and is never reshuffled.
type Unit struct {
	FieldName      string   `json:"field_name"`
	QuestionText   string   `json:"question_text"`
	Choices        []string `json:"choices"`
	ChoiceListName string   `json:"choice_list_name"`
	Type           Type     `json:"type"`
	Appearance     string   `json:"appearance"`
	Relevance      string   `json:"relevance"`
	Required       string   `json:"required"`
}

// IsSelect reports whether the unit carries an answer choice list.
func (u Unit) IsSelect() bool {
	return u.Type == TypeSelectOne || u.Type == TypeSelectMultiple
}

// noteUnit builds a note record. Notes never carry choices and are never
// required.
func noteUnit(fieldName, text string) Unit {
	return Unit{
		FieldName:    fieldName,
		QuestionText: text,
		Choices:      []string{},
		Type:         TypeNote,
		Required:     "",
	}
}
