package convert

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// convertPDF extracts the text of each PDF page. Pages without readable
// text are skipped; a PDF with no extractable text at all still
// converts, with a placeholder note.
func convertPDF(data []byte) (*Result, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open PDF: %w", err)
	}

	var md strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		text := strings.TrimSpace(extractPageText(page))
		if text == "" {
			continue
		}
		md.WriteString(text)
		md.WriteString("\n\n")
	}

	if strings.TrimSpace(md.String()) == "" {
		return &Result{Markdown: "[No readable text content found in PDF]"}, nil
	}

	return &Result{Markdown: md.String()}, nil
}

// extractPageText extracts a page's text row by row. Empty strings
// between words mark word boundaries in the underlying content stream.
func extractPageText(page pdf.Page) string {
	rows, err := page.GetTextByRow()
	if err != nil {
		return ""
	}

	var result strings.Builder
	for _, row := range rows {
		var line strings.Builder
		sawGap := false
		for _, word := range row.Content {
			s := word.S
			if s == "" {
				sawGap = true
				continue
			}
			if line.Len() > 0 && sawGap && !strings.HasSuffix(line.String(), " ") {
				line.WriteString(" ")
			}
			line.WriteString(s)
			sawGap = false
		}
		if text := strings.TrimSpace(line.String()); text != "" {
			result.WriteString(text)
			result.WriteString("\n")
		}
	}
	return result.String()
}
