package convert

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"

	"github.com/carabila/markitdown-server/internal/ooxml"
)

// convertDocx renders the main document part of a DOCX package as
// markdown: heading styles become ATX headings, bold/italic run
// properties become emphasis, hyperlinks resolve through the document
// relationships, and tables render as markdown tables. Embedded math
// and drawings degrade to their text runs.
func convertDocx(data []byte) (*Result, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open DOCX ZIP: %w", err)
	}

	rels, _ := ooxml.ParseRelationships(zr, "word/_rels/document.xml.rels")

	doc, err := ooxml.ReadFile(zr, "word/document.xml")
	if err != nil {
		return nil, fmt.Errorf("read document.xml: %w", err)
	}

	md, title := renderDocumentXML(doc, rels)
	return &Result{Markdown: md, Title: title}, nil
}

// docxWalker accumulates markdown while streaming through document.xml.
type docxWalker struct {
	md    strings.Builder
	rels  map[string]ooxml.Relationship
	title string

	// One builder per open text scope: paragraph at the bottom, then
	// hyperlink and run scopes as they nest. Text always goes to the top.
	scopes []*strings.Builder

	paraStyle string
	bold      bool
	italic    bool
	inText    bool

	linkTargets []string

	inTable bool
	table   [][]string
	row     []string
	cell    strings.Builder
	inCell  bool
}

func renderDocumentXML(doc []byte, rels map[string]ooxml.Relationship) (string, string) {
	w := &docxWalker{rels: rels}
	decoder := xml.NewDecoder(bytes.NewReader(doc))

	for {
		tok, err := decoder.Token()
		if err != nil {
			break
		}
		switch t := tok.(type) {
		case xml.StartElement:
			w.start(t)
		case xml.CharData:
			if w.inText && len(w.scopes) > 0 {
				w.top().WriteString(string(t))
			}
		case xml.EndElement:
			w.end(t)
		}
	}

	return w.md.String(), w.title
}

func (w *docxWalker) top() *strings.Builder {
	return w.scopes[len(w.scopes)-1]
}

func (w *docxWalker) push() {
	w.scopes = append(w.scopes, &strings.Builder{})
}

func (w *docxWalker) pop() string {
	s := w.top().String()
	w.scopes = w.scopes[:len(w.scopes)-1]
	return s
}

func (w *docxWalker) start(t xml.StartElement) {
	switch t.Name.Local {
	case "p":
		w.scopes = w.scopes[:0]
		w.push()
		w.paraStyle = ""
	case "pStyle":
		w.paraStyle = attrVal(t, "val")
	case "r":
		if len(w.scopes) > 0 {
			w.push()
			w.bold, w.italic = false, false
		}
	case "b":
		w.bold = attrEnabled(t)
	case "i":
		w.italic = attrEnabled(t)
	case "t":
		w.inText = true
	case "tab":
		if len(w.scopes) > 0 {
			w.top().WriteString("\t")
		}
	case "br", "cr":
		if len(w.scopes) > 0 {
			w.top().WriteString("\n")
		}
	case "hyperlink":
		if len(w.scopes) > 0 {
			target := ""
			if rel, ok := w.rels[attrVal(t, "id")]; ok {
				target = rel.Target
			}
			w.linkTargets = append(w.linkTargets, target)
			w.push()
		}
	case "tbl":
		w.inTable = true
		w.table = nil
	case "tr":
		if w.inTable {
			w.row = nil
		}
	case "tc":
		if w.inTable {
			w.inCell = true
			w.cell.Reset()
		}
	}
}

func (w *docxWalker) end(t xml.EndElement) {
	switch t.Name.Local {
	case "t":
		w.inText = false
	case "r":
		if len(w.scopes) > 1 {
			text := w.pop()
			if strings.TrimSpace(text) != "" {
				switch {
				case w.bold && w.italic:
					text = "***" + text + "***"
				case w.bold:
					text = "**" + text + "**"
				case w.italic:
					text = "*" + text + "*"
				}
			}
			w.top().WriteString(text)
		}
	case "hyperlink":
		if len(w.scopes) > 1 && len(w.linkTargets) > 0 {
			text := w.pop()
			target := w.linkTargets[len(w.linkTargets)-1]
			w.linkTargets = w.linkTargets[:len(w.linkTargets)-1]
			if target != "" && strings.TrimSpace(text) != "" {
				text = "[" + text + "](" + target + ")"
			}
			w.top().WriteString(text)
		}
	case "p":
		if len(w.scopes) == 0 {
			return
		}
		text := strings.TrimSpace(w.pop())
		if w.inCell {
			if text != "" {
				if w.cell.Len() > 0 {
					w.cell.WriteString(" ")
				}
				w.cell.WriteString(text)
			}
			return
		}
		if text == "" {
			return
		}
		prefix := headingPrefix(w.paraStyle)
		if prefix != "" && w.title == "" {
			w.title = text
		}
		w.md.WriteString(prefix)
		w.md.WriteString(text)
		w.md.WriteString("\n\n")
	case "tc":
		if w.inTable {
			w.row = append(w.row, w.cell.String())
			w.inCell = false
		}
	case "tr":
		if w.inTable && len(w.row) > 0 {
			w.table = append(w.table, w.row)
		}
	case "tbl":
		w.inTable = false
		if len(w.table) > 0 {
			w.md.WriteString(renderMarkdownTable(w.table))
			w.md.WriteString("\n")
		}
		w.table = nil
	}
}

// headingPrefix maps a paragraph style to an ATX heading prefix, or ""
// for body styles.
func headingPrefix(style string) string {
	s := strings.ToLower(style)
	if s == "title" {
		return "# "
	}
	if n, err := strconv.Atoi(strings.TrimPrefix(s, "heading")); err == nil && n >= 1 && n <= 6 {
		return strings.Repeat("#", n) + " "
	}
	return ""
}

func attrVal(t xml.StartElement, name string) string {
	for _, attr := range t.Attr {
		if attr.Name.Local == name {
			return attr.Value
		}
	}
	return ""
}

// attrEnabled interprets an OOXML toggle property: present means on
// unless val says otherwise.
func attrEnabled(t xml.StartElement) bool {
	switch attrVal(t, "val") {
	case "false", "0", "none":
		return false
	}
	return true
}
