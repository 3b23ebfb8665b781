package detect

import (
	"encoding/json"
	"strings"
)

// csvSampleLines caps how many non-empty lines the delimiter heuristic
// inspects. Two consistent lines are required before a payload can be
// called CSV or TSV, so single comma-heavy lines inside prose or
// Markdown never match.
const (
	csvSampleLines = 8
	csvMinLines    = 2
)

// classifyText labels content that decoded as valid UTF-8. The checks
// run in fixed precedence: unambiguous syntaxes (JSON, XML/HTML) before
// looser heuristics (CSV/TSV, Markdown), plain text last.
func classifyText(text string) Result {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return Result{Format: "txt", Kind: KindText, Source: SourceFallback}
	}

	if isJSON(trimmed) {
		return Result{Format: "json", Kind: KindText, Source: SourceHeuristic}
	}

	if strings.HasPrefix(trimmed, "<") {
		if format := classifyMarkup(trimmed); format != "" {
			return Result{Format: format, Kind: KindText, Source: SourceHeuristic}
		}
	}

	if format := classifyDelimited(text); format != "" {
		return Result{Format: format, Kind: KindText, Source: SourceHeuristic}
	}

	if looksLikeMarkdown(text) {
		return Result{Format: "md", Kind: KindText, Source: SourceHeuristic}
	}

	return Result{Format: "txt", Kind: KindText, Source: SourceFallback}
}

// isJSON reports whether trimmed is a complete JSON document with an
// object or array root.
func isJSON(trimmed string) bool {
	first := trimmed[0]
	last := trimmed[len(trimmed)-1]
	if !(first == '{' && last == '}') && !(first == '[' && last == ']') {
		return false
	}
	return json.Valid([]byte(trimmed))
}

// classifyMarkup distinguishes XML from HTML for content opening with a
// tag. Returns "" when the content has no recognizable tag structure.
func classifyMarkup(trimmed string) string {
	lower := strings.ToLower(trimmed)
	if strings.HasPrefix(lower, "<?xml") {
		// An XML declaration may still front an XHTML document.
		if containsHTMLTag(lower) {
			return "html"
		}
		return "xml"
	}
	if containsHTMLTag(lower) {
		return "html"
	}
	if strings.Contains(trimmed, "</") || strings.HasSuffix(trimmed, "/>") {
		return "xml"
	}
	return ""
}

var htmlTagMarkers = []string{"<!doctype html", "<html", "<head", "<body", "<div", "<p>", "<p ", "<span"}

func containsHTMLTag(lower string) bool {
	for _, marker := range htmlTagMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

// classifyDelimited checks whether the sampled lines split into a
// consistent field count on commas (csv) or tabs (tsv). When both
// separators are consistent, the more frequent one wins, commas on a
// tie. Returns "" when neither qualifies.
func classifyDelimited(text string) string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
		if len(lines) == csvSampleLines {
			break
		}
	}
	if len(lines) < csvMinLines {
		return ""
	}

	commas, csvOK := separatorCount(lines, ",")
	tabs, tsvOK := separatorCount(lines, "\t")

	switch {
	case csvOK && tsvOK:
		if tabs > commas {
			return "tsv"
		}
		return "csv"
	case csvOK:
		return "csv"
	case tsvOK:
		return "tsv"
	}
	return ""
}

// separatorCount returns the per-line separator count and whether it is
// identical and non-zero across all lines.
func separatorCount(lines []string, sep string) (int, bool) {
	count := strings.Count(lines[0], sep)
	if count == 0 {
		return 0, false
	}
	for _, line := range lines[1:] {
		if strings.Count(line, sep) != count {
			return 0, false
		}
	}
	return count, true
}

// looksLikeMarkdown reports whether the content carries recognizable
// Markdown syntax: ATX headers or list markers at line start, fenced
// code blocks, emphasis, or inline links.
func looksLikeMarkdown(text string) bool {
	if strings.Contains(text, "```") ||
		strings.Contains(text, "**") ||
		strings.Contains(text, "__") ||
		strings.Contains(text, "](") {
		return true
	}
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimLeft(line, " \t")
		switch {
		case strings.HasPrefix(line, "# "),
			strings.HasPrefix(line, "## "),
			strings.HasPrefix(line, "### "),
			strings.HasPrefix(line, "- "),
			strings.HasPrefix(line, "* "),
			strings.HasPrefix(line, "1. "):
			return true
		}
	}
	return false
}
