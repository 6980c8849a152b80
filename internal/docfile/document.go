// Package docfile decodes questionnaire documents into the neutral
// paragraph-and-table representation the extraction engine consumes. The
// extractors depend only on this representation, never on a concrete file
// format.
package docfile

import "errors"

// Document is the decoded content of one questionnaire file: the ordered
// paragraph texts (trimmed, blanks dropped) followed by the document's
// tables in source order.
type Document struct {
	Paragraphs []string
	Tables     []Table
}

// Table is one document table. Cells hold trimmed text; empty cells are
// kept so row positions stay meaningful.
type Table struct {
	Rows [][]string
}

var (
	// ErrUnsupportedFormat marks a file whose extension is not an accepted
	// questionnaire format. Surfaced to clients as a request error.
	ErrUnsupportedFormat = errors.New("unsupported document format")

	// ErrMalformedDocument marks a file with an accepted extension whose
	// container could not be decoded. The whole request fails; no partial
	// unit list is ever produced.
	ErrMalformedDocument = errors.New("malformed document")
)
