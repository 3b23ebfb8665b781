package convert

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/carabila/markitdown-server/internal/ooxml"
)

var reSlideName = regexp.MustCompile(`^ppt/slides/slide(\d+)\.xml$`)

// convertPptx extracts the text runs of each slide, in slide order.
// Shape geometry and formatting are not reproduced; each slide becomes
// a section with its paragraphs as lines.
func convertPptx(data []byte) (*Result, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open PPTX ZIP: %w", err)
	}

	type slideRef struct {
		name string
		num  int
	}
	var slides []slideRef
	for _, f := range zr.File {
		m := reSlideName.FindStringSubmatch(f.Name)
		if m == nil {
			continue
		}
		num, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		slides = append(slides, slideRef{name: f.Name, num: num})
	}
	if len(slides) == 0 {
		return nil, fmt.Errorf("no slides found in PPTX")
	}
	sort.Slice(slides, func(i, j int) bool { return slides[i].num < slides[j].num })

	var md strings.Builder
	for _, slide := range slides {
		part, err := ooxml.ReadFile(zr, slide.name)
		if err != nil {
			continue
		}

		paragraphs := slideParagraphs(part)
		if len(paragraphs) == 0 {
			continue
		}

		fmt.Fprintf(&md, "## Slide %d\n\n", slide.num)
		for _, p := range paragraphs {
			md.WriteString(p)
			md.WriteString("\n\n")
		}
	}

	return &Result{Markdown: md.String()}, nil
}

// slideParagraphs collects the text of each DrawingML paragraph (a:p)
// on a slide, joining its runs (a:t) in document order.
func slideParagraphs(part []byte) []string {
	decoder := xml.NewDecoder(bytes.NewReader(part))

	var paragraphs []string
	var current strings.Builder
	inText := false

	for {
		tok, err := decoder.Token()
		if err != nil {
			break
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "t" {
				inText = true
			}
		case xml.CharData:
			if inText {
				current.WriteString(string(t))
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				if text := strings.TrimSpace(current.String()); text != "" {
					paragraphs = append(paragraphs, text)
				}
				current.Reset()
			}
		}
	}

	return paragraphs
}
