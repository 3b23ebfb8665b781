package convert

import (
	"archive/zip"
	"bytes"
	"strings"
	"testing"
)

func makeZip(t *testing.T, entries [][2]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, e := range entries {
		w, err := zw.Create(e[0])
		if err != nil {
			t.Fatal(err)
		}
		if _, err := w.Write([]byte(e[1])); err != nil {
			t.Fatal(err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestConvertUnsupportedFormat(t *testing.T) {
	c := New()

	for _, format := range []string{"png", "jpg", "mp3", "wav", "tar", "gz", "7z", "bin"} {
		t.Run(format, func(t *testing.T) {
			_, err := c.Convert([]byte{0x01, 0x02}, format)
			if err == nil {
				t.Fatal("Convert() succeeded, want UnsupportedFormatError")
			}
			if !IsUnsupportedFormat(err) {
				t.Errorf("IsUnsupportedFormat(%v) = false", err)
			}
		})
	}
}

func TestConvertibleMatchesSupports(t *testing.T) {
	c := New()
	for _, format := range Convertible() {
		if !c.Supports(format) {
			t.Errorf("Supports(%q) = false for listed format", format)
		}
	}
	if c.Supports("png") {
		t.Error("Supports(png) = true, want false")
	}
}

func TestConvertPlainTextPassthrough(t *testing.T) {
	c := New()

	res, err := c.Convert([]byte("héllo wörld\n"), "txt")
	if err != nil {
		t.Fatalf("Convert() error: %v", err)
	}
	if res.Markdown != "héllo wörld" {
		t.Errorf("Markdown = %q", res.Markdown)
	}
}

func TestConvertCSV(t *testing.T) {
	c := New()

	res, err := c.Convert([]byte("a,b,c\n1,2,3\n4,5,6\n"), "csv")
	if err != nil {
		t.Fatalf("Convert() error: %v", err)
	}

	want := "| a | b | c |\n| --- | --- | --- |\n| 1 | 2 | 3 |\n| 4 | 5 | 6 |"
	if res.Markdown != want {
		t.Errorf("Markdown =\n%q\nwant\n%q", res.Markdown, want)
	}
}

func TestConvertTSV(t *testing.T) {
	c := New()

	res, err := c.Convert([]byte("x\ty\n1\t2\n"), "tsv")
	if err != nil {
		t.Fatalf("Convert() error: %v", err)
	}
	for _, want := range []string{"| x | y |", "| 1 | 2 |"} {
		if !strings.Contains(res.Markdown, want) {
			t.Errorf("Markdown missing %q:\n%s", want, res.Markdown)
		}
	}
}

func TestConvertMarkdownNormalized(t *testing.T) {
	c := New()

	res, err := c.Convert([]byte("# Title   \r\n\r\n\r\n\r\nbody\r\n"), "md")
	if err != nil {
		t.Fatalf("Convert() error: %v", err)
	}
	if res.Markdown != "# Title\n\nbody" {
		t.Errorf("Markdown = %q", res.Markdown)
	}
}

func TestConvertHTML(t *testing.T) {
	c := New()

	html := `<html><head><title>The Title</title></head><body><h1>Header</h1><p>Some paragraph.</p></body></html>`
	res, err := c.Convert([]byte(html), "html")
	if err != nil {
		t.Fatalf("Convert() error: %v", err)
	}
	if res.Title != "The Title" {
		t.Errorf("Title = %q, want The Title", res.Title)
	}
	for _, want := range []string{"Header", "Some paragraph."} {
		if !strings.Contains(res.Markdown, want) {
			t.Errorf("Markdown missing %q:\n%s", want, res.Markdown)
		}
	}
	if strings.Contains(res.Markdown, "<h1>") {
		t.Errorf("Markdown still contains HTML tags:\n%s", res.Markdown)
	}
}

func TestConvertNotebook(t *testing.T) {
	c := New()

	nb := `{
		"metadata": {"kernelspec": {"language": "python"}},
		"cells": [
			{"cell_type": "markdown", "source": ["# Test Notebook\n", "intro"]},
			{"cell_type": "code", "source": "print(\"hi\")", "outputs": [{"output_type": "stream", "text": ["hi\n"]}]}
		]
	}`
	res, err := c.Convert([]byte(nb), "ipynb")
	if err != nil {
		t.Fatalf("Convert() error: %v", err)
	}
	if res.Title != "Test Notebook" {
		t.Errorf("Title = %q", res.Title)
	}
	for _, want := range []string{"# Test Notebook", "```python", `print("hi")`} {
		if !strings.Contains(res.Markdown, want) {
			t.Errorf("Markdown missing %q:\n%s", want, res.Markdown)
		}
	}
}

func TestConvertFeed(t *testing.T) {
	c := New()

	rss := `<?xml version="1.0"?>
<rss version="2.0">
  <channel>
    <title>Example Feed</title>
    <description>Things happening.</description>
    <item>
      <title>First Post</title>
      <description>Hello subscribers.</description>
    </item>
  </channel>
</rss>`
	res, err := c.Convert([]byte(rss), "rss")
	if err != nil {
		t.Fatalf("Convert() error: %v", err)
	}
	for _, want := range []string{"# Example Feed", "## First Post", "Hello subscribers."} {
		if !strings.Contains(res.Markdown, want) {
			t.Errorf("Markdown missing %q:\n%s", want, res.Markdown)
		}
	}
}

func TestConvertXMLFallsBackToPassthrough(t *testing.T) {
	c := New()

	// Not a feed: passthrough, not an error.
	res, err := c.Convert([]byte("<config><key>value</key></config>"), "xml")
	if err != nil {
		t.Fatalf("Convert() error: %v", err)
	}
	if !strings.Contains(res.Markdown, "<key>value</key>") {
		t.Errorf("Markdown = %q", res.Markdown)
	}
}

func TestConvertArchive(t *testing.T) {
	c := New()

	data := makeZip(t, [][2]string{
		{"notes.txt", "plain notes inside the archive\n"},
		{"table.csv", "a,b\n1,2\n"},
		{"blob.xyz", string([]byte{0xFE, 0xFF, 0xFE, 0xFF, 0xFE, 0xFF, 0xFE, 0xFF, 0xFE, 0xFF})},
	})

	res, err := c.Convert(data, "zip")
	if err != nil {
		t.Fatalf("Convert() error: %v", err)
	}
	for _, want := range []string{
		"## File: notes.txt",
		"plain notes inside the archive",
		"## File: table.csv",
		"| a | b |",
	} {
		if !strings.Contains(res.Markdown, want) {
			t.Errorf("Markdown missing %q:\n%s", want, res.Markdown)
		}
	}
	if strings.Contains(res.Markdown, "blob.xyz") {
		t.Errorf("unconvertible entry leaked into output:\n%s", res.Markdown)
	}
}

func TestConversionErrorWrapsFormat(t *testing.T) {
	c := New()

	_, err := c.Convert([]byte("%PDF-1.4 not actually a pdf"), "pdf")
	if err == nil {
		t.Fatal("Convert() succeeded on a broken PDF")
	}
	if !strings.Contains(err.Error(), "pdf") {
		t.Errorf("error %q does not name the attempted format", err)
	}
	if IsUnsupportedFormat(err) {
		t.Error("broken input misreported as unsupported format")
	}
}
