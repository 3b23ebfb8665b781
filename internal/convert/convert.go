// Copyright 2026 Conductor OSS
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.

// Package convert turns classified document payloads into markdown. The
// caller supplies the format label decided by the detector; converters
// are keyed by label rather than probing the content themselves.
package convert

import (
	"sort"

	"github.com/carabila/markitdown-server/internal/detect"
)

// Result holds the markdown output of one conversion.
type Result struct {
	Markdown string
	Title    string
}

// Option configures a Converter.
type Option func(*Converter)

// WithKeepDataURIs configures whether HTML-derived output keeps full
// data URIs (default: false, which truncates them).
func WithKeepDataURIs(keep bool) Option {
	return func(c *Converter) {
		c.keepDataURIs = keep
	}
}

// Converter is the conversion facade. It owns a detector for recursing
// into archive entries.
type Converter struct {
	keepDataURIs bool
	detector     *detect.Detector
}

// New creates a Converter with the given options.
func New(opts ...Option) *Converter {
	c := &Converter{detector: detect.New()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// convertible lists every format label Convert accepts. Kept in sync
// with the dispatch switch below.
var convertible = []string{
	"atom", "csv", "docx", "epub", "htm", "html", "ipynb", "json", "jsonl",
	"markdown", "md", "pdf", "pptx", "rss", "tsv", "txt", "xls", "xlsx",
	"xml", "zip",
}

// Convertible returns the sorted format labels the facade can convert.
func Convertible() []string {
	out := make([]string, len(convertible))
	copy(out, convertible)
	sort.Strings(out)
	return out
}

// Supports reports whether format can be converted.
func (c *Converter) Supports(format string) bool {
	for _, f := range convertible {
		if f == format {
			return true
		}
	}
	return false
}

// Convert converts data, classified as format, to markdown. It returns
// *UnsupportedFormatError for labels the facade cannot convert and
// *ConversionError when a converter fails on accepted input.
func (c *Converter) Convert(data []byte, format string) (*Result, error) {
	var res *Result
	var err error

	switch format {
	case "pdf":
		res, err = convertPDF(data)
	case "docx":
		res, err = convertDocx(data)
	case "xlsx":
		res, err = convertXlsx(data)
	case "xls":
		res, err = convertXls(data)
	case "pptx":
		res, err = convertPptx(data)
	case "epub":
		res, err = c.convertEpub(data)
	case "html", "htm":
		res, err = c.convertHTML(data)
	case "csv":
		res, err = convertDelimited(data, ',')
	case "tsv":
		res, err = convertDelimited(data, '\t')
	case "ipynb":
		res, err = convertNotebook(data)
	case "rss", "atom":
		res, err = convertFeed(data)
	case "xml":
		// Feeds are the only XML dialect with a dedicated renderer;
		// everything else passes through as text.
		res, err = convertFeed(data)
		if err != nil {
			res, err = convertPlainText(data), nil
		}
	case "zip":
		res, err = c.convertArchive(data)
	case "txt", "md", "markdown", "json", "jsonl":
		res = convertPlainText(data)
	default:
		return nil, &UnsupportedFormatError{Format: format}
	}

	if err != nil {
		return nil, &ConversionError{Format: format, Err: err}
	}

	res.Markdown = normalizeOutput(res.Markdown)
	return res, nil
}
