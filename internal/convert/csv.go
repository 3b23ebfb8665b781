package convert

import (
	"encoding/csv"
	"fmt"
	"strings"
)

// convertDelimited renders CSV or TSV content as a markdown table.
func convertDelimited(data []byte, sep rune) (*Result, error) {
	text := decodeText(data)

	r := csv.NewReader(strings.NewReader(text))
	r.Comma = sep
	r.FieldsPerRecord = -1 // allow variable fields
	r.LazyQuotes = true
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse delimited input: %w", err)
	}

	if len(records) == 0 {
		return &Result{Markdown: ""}, nil
	}

	return &Result{Markdown: renderMarkdownTable(records)}, nil
}

// renderMarkdownTable renders rows as a markdown table. The first row is
// the header; short rows are padded with empty cells.
func renderMarkdownTable(records [][]string) string {
	if len(records) == 0 {
		return ""
	}

	numCols := len(records[0])

	var b strings.Builder

	writeRow := func(row []string) {
		b.WriteString("| ")
		for i := 0; i < numCols; i++ {
			if i < len(row) {
				b.WriteString(row[i])
			}
			b.WriteString(" | ")
		}
		b.WriteString("\n")
	}

	writeRow(records[0])

	b.WriteString("| ")
	for i := 0; i < numCols; i++ {
		b.WriteString("--- | ")
	}
	b.WriteString("\n")

	for _, row := range records[1:] {
		writeRow(row)
	}

	return b.String()
}
