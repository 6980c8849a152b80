package docfile

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/unidoc/unioffice/document"
)

// ReadDocx decodes a .docx questionnaire from memory. Paragraph text is the
// concatenation of the paragraph's runs; empty paragraphs are dropped so the
// extractors see the same line sequence a reader would.
func ReadDocx(content []byte) (*Document, error) {
	doc, err := document.Read(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}

	result := &Document{}

	for _, para := range doc.Paragraphs() {
		var b strings.Builder
		for _, run := range para.Runs() {
			b.WriteString(run.Text())
		}
		text := strings.TrimSpace(b.String())
		if text != "" {
			result.Paragraphs = append(result.Paragraphs, text)
		}
	}

	for _, tbl := range doc.Tables() {
		table := Table{}
		for _, row := range tbl.Rows() {
			var cells []string
			for _, cell := range row.Cells() {
				cells = append(cells, cellText(cell))
			}
			table.Rows = append(table.Rows, cells)
		}
		result.Tables = append(result.Tables, table)
	}

	return result, nil
}

// cellText flattens a table cell's paragraphs into one trimmed string.
func cellText(cell document.Cell) string {
	var parts []string
	for _, para := range cell.Paragraphs() {
		var b strings.Builder
		for _, run := range para.Runs() {
			b.WriteString(run.Text())
		}
		if t := strings.TrimSpace(b.String()); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.TrimSpace(strings.Join(parts, " "))
}
