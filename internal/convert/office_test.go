package convert

import (
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestConvertDocx(t *testing.T) {
	document := `<?xml version="1.0"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"
            xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships">
  <w:body>
    <w:p><w:pPr><w:pStyle w:val="Heading1"/></w:pPr><w:r><w:t>Intro</w:t></w:r></w:p>
    <w:p><w:r><w:rPr><w:b/></w:rPr><w:t>bold words</w:t></w:r><w:r><w:t xml:space="preserve"> and plain</w:t></w:r></w:p>
    <w:p><w:hyperlink r:id="rId1"><w:r><w:t>the site</w:t></w:r></w:hyperlink></w:p>
    <w:tbl>
      <w:tr><w:tc><w:p><w:r><w:t>Name</w:t></w:r></w:p></w:tc><w:tc><w:p><w:r><w:t>Value</w:t></w:r></w:p></w:tc></w:tr>
      <w:tr><w:tc><w:p><w:r><w:t>alpha</w:t></w:r></w:p></w:tc><w:tc><w:p><w:r><w:t>1</w:t></w:r></w:p></w:tc></w:tr>
    </w:tbl>
  </w:body>
</w:document>`
	rels := `<?xml version="1.0"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/hyperlink" Target="https://example.com" TargetMode="External"/>
</Relationships>`

	data := makeZip(t, [][2]string{
		{"[Content_Types].xml", `<?xml version="1.0"?><Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"/>`},
		{"word/document.xml", document},
		{"word/_rels/document.xml.rels", rels},
	})

	c := New()
	res, err := c.Convert(data, "docx")
	if err != nil {
		t.Fatalf("Convert() error: %v", err)
	}
	if res.Title != "Intro" {
		t.Errorf("Title = %q, want Intro", res.Title)
	}
	for _, want := range []string{
		"# Intro",
		"**bold words** and plain",
		"[the site](https://example.com)",
		"| Name | Value |",
		"| alpha | 1 |",
	} {
		if !strings.Contains(res.Markdown, want) {
			t.Errorf("Markdown missing %q:\n%s", want, res.Markdown)
		}
	}
}

func TestConvertPptxSlideOrder(t *testing.T) {
	slide := func(text string) string {
		return `<?xml version="1.0"?>
<p:sld xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main"
       xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main">
  <p:cSld><p:spTree><p:sp><p:txBody>
    <a:p><a:r><a:t>` + text + `</a:t></a:r></a:p>
  </p:txBody></p:sp></p:spTree></p:cSld>
</p:sld>`
	}

	// Archive order deliberately reversed; output must follow slide numbers.
	data := makeZip(t, [][2]string{
		{"ppt/slides/slide2.xml", slide("second slide text")},
		{"ppt/slides/slide1.xml", slide("first slide text")},
	})

	c := New()
	res, err := c.Convert(data, "pptx")
	if err != nil {
		t.Fatalf("Convert() error: %v", err)
	}

	first := strings.Index(res.Markdown, "## Slide 1")
	second := strings.Index(res.Markdown, "## Slide 2")
	if first < 0 || second < 0 {
		t.Fatalf("missing slide sections:\n%s", res.Markdown)
	}
	if first > second {
		t.Errorf("slides out of order:\n%s", res.Markdown)
	}
	for _, want := range []string{"first slide text", "second slide text"} {
		if !strings.Contains(res.Markdown, want) {
			t.Errorf("Markdown missing %q:\n%s", want, res.Markdown)
		}
	}
}

func TestConvertXlsx(t *testing.T) {
	f := excelize.NewFile()
	for cell, value := range map[string]string{
		"A1": "Region", "B1": "Total",
		"A2": "north", "B2": "42",
	} {
		if err := f.SetCellValue("Sheet1", cell, value); err != nil {
			t.Fatal(err)
		}
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatal(err)
	}

	c := New()
	res, err := c.Convert(buf.Bytes(), "xlsx")
	if err != nil {
		t.Fatalf("Convert() error: %v", err)
	}
	for _, want := range []string{"## Sheet1", "| Region | Total |", "| north | 42 |"} {
		if !strings.Contains(res.Markdown, want) {
			t.Errorf("Markdown missing %q:\n%s", want, res.Markdown)
		}
	}
}

func TestConvertEpub(t *testing.T) {
	container := `<?xml version="1.0"?>
<container version="1.0" xmlns="urn:oasis:names:tc:opendocument:xmlns:container">
  <rootfiles>
    <rootfile full-path="OEBPS/content.opf" media-type="application/oebps-package+xml"/>
  </rootfiles>
</container>`
	opf := `<?xml version="1.0"?>
<package xmlns="http://www.idpf.org/2007/opf" version="3.0">
  <metadata xmlns:dc="http://purl.org/dc/elements/1.1/">
    <dc:title>Sample Book</dc:title>
    <dc:creator>Jane Dev</dc:creator>
    <dc:language>en</dc:language>
  </metadata>
  <manifest>
    <item id="ch1" href="chapter1.xhtml" media-type="application/xhtml+xml"/>
  </manifest>
  <spine><itemref idref="ch1"/></spine>
</package>`
	chapter := `<html><body><h1>Chapter One</h1><p>It begins.</p></body></html>`

	data := makeZip(t, [][2]string{
		{"mimetype", "application/epub+zip"},
		{"META-INF/container.xml", container},
		{"OEBPS/content.opf", opf},
		{"OEBPS/chapter1.xhtml", chapter},
	})

	c := New()
	res, err := c.Convert(data, "epub")
	if err != nil {
		t.Fatalf("Convert() error: %v", err)
	}
	if res.Title != "Sample Book" {
		t.Errorf("Title = %q, want Sample Book", res.Title)
	}
	for _, want := range []string{"# Sample Book", "**Authors:** Jane Dev", "Chapter One", "It begins."} {
		if !strings.Contains(res.Markdown, want) {
			t.Errorf("Markdown missing %q:\n%s", want, res.Markdown)
		}
	}
}
