package detect

import (
	"strings"
	"testing"
)

func TestClassifyTextPrecedence(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		// JSON beats everything, including comma-heavy content.
		{"json object with commas", `{"a": 1, "b": 2, "c": 3}`, "json"},
		{"json array", `[1, 2, 3]`, "json"},
		{"json with surrounding whitespace", "\n\t {\"x\": true} \n", "json"},
		{"broken json falls through", `{"a": 1,`, "txt"},

		// Markup before looser heuristics.
		{"html doctype", "<!DOCTYPE html>\n<html><body>x</body></html>", "html"},
		{"html fragment", "<div class=\"a\">text</div>", "html"},
		{"xml declaration", "<?xml version=\"1.0\"?><root/>", "xml"},
		{"xhtml declared as xml", "<?xml version=\"1.0\"?><html><body/></html>", "html"},
		{"generic tags", "<note><to>Tove</to></note>", "xml"},
		{"lone angle bracket is not markup", "< not a tag honestly\nstill not a tag\n", "txt"},

		// CSV/TSV before Markdown.
		{"csv three fields", "a,b,c\n1,2,3\n4,5,6\n7,8,9\n", "csv"},
		{"tsv three fields", "a\tb\tc\n1\t2\t3\n", "tsv"},
		{"csv wins on comma majority", "a,b\tc,d\ne,f\tg,h\n", "csv"},
		{"tsv wins on tab majority", "a\tb,c\td\ne\tf,g\th\n", "tsv"},
		{"inconsistent commas are not csv", "a,b,c\n1,2\njust text\n", "txt"},
		{"single line is not csv", "a,b,c", "txt"},

		// Markdown markers.
		{"atx header", "# Title\n\nbody text here", "md"},
		{"fenced code", "some text\n```\ncode\n```\n", "md"},
		{"emphasis", "this is **important** stuff", "md"},
		{"list markers", "shopping:\n- eggs\n- milk\n", "md"},
		{"inline link", "see [docs](https://example.com) for more", "md"},

		// Markdown with an incidental comma line stays Markdown: the
		// delimiter heuristic needs consistent counts across lines.
		{"markdown with comma line", "# Notes\n\nred, green, blue\nplain line\n", "md"},

		// Fallback.
		{"plain prose", "The quick brown fox jumps over the lazy dog.\nTwice.\n", "txt"},
		{"whitespace only", "   \n\t\n", "txt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := classifyText(tt.text)
			if res.Format != tt.want {
				t.Errorf("classifyText(%q) = %q, want %q", truncateForLog(tt.text), res.Format, tt.want)
			}
			if res.Kind != KindText {
				t.Errorf("Kind = %v, want text", res.Kind)
			}
		})
	}
}

func TestClassifyDelimitedSampling(t *testing.T) {
	// Consistent over the sampled prefix is enough, even if later lines
	// diverge: only the first csvSampleLines non-empty lines are read.
	var b strings.Builder
	for i := 0; i < csvSampleLines; i++ {
		b.WriteString("x,y,z\n")
	}
	b.WriteString("this trailing line has no commas at all\n")

	if got := classifyDelimited(b.String()); got != "csv" {
		t.Errorf("classifyDelimited(sampled prefix) = %q, want csv", got)
	}

	// Blank lines are skipped, not counted against consistency.
	withBlanks := "a,b\n\n\n1,2\n"
	if got := classifyDelimited(withBlanks); got != "csv" {
		t.Errorf("classifyDelimited(with blanks) = %q, want csv", got)
	}
}

func truncateForLog(s string) string {
	if len(s) > 40 {
		return s[:40] + "..."
	}
	return s
}
