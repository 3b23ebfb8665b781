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

// Package detect classifies raw document bytes into a format label and a
// text/binary content kind, using magic-byte signatures for binary
// formats and structural heuristics for text formats. Classification is
// a pure function of the input: no I/O, no shared mutable state.
package detect

import (
	"errors"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// ErrEmptyInput is returned for zero-length payloads.
var ErrEmptyInput = errors.New("empty input")

// ErrShortBinary is returned for undecodable content that matches no
// signature and is too short to be a plausible binary file.
var ErrShortBinary = errors.New("content too short to classify")

// Detector resolves payloads against an immutable signature table. The
// zero-cost read-only table makes a single Detector safe for
// unsynchronized concurrent use.
type Detector struct {
	table *Table
}

// New creates a Detector backed by the default signature table.
func New() *Detector {
	return NewWithTable(NewTable())
}

// NewWithTable creates a Detector with an injected table.
func NewWithTable(t *Table) *Detector {
	return &Detector{table: t}
}

// Classify determines the format of data. A magic-byte signature always
// wins; only when no signature matches is the payload tried as UTF-8
// text (so a PDF named anything is still a PDF, and "%PDF-" bytes are
// never mistaken for plain text). filename is an optional hint whose
// extension may override a fallback result but never a confident match.
func (d *Detector) Classify(data []byte, filename string) (Result, error) {
	if len(data) == 0 {
		return Result{}, ErrEmptyInput
	}

	res, matched := d.classifySignature(data)
	if !matched {
		if utf8.Valid(data) {
			res = classifyText(string(data))
		} else {
			var err error
			res, err = classifyUnknownBinary(data)
			if err != nil {
				return Result{}, err
			}
		}
	}

	return applyHint(res, filename), nil
}

// hintFormats maps recognized filename extensions to the content kind
// the override implies. Only extensions here can redirect a fallback
// result.
var hintFormats = map[string]ContentKind{
	"pdf": KindBinary, "docx": KindBinary, "xlsx": KindBinary, "pptx": KindBinary,
	"xls": KindBinary, "epub": KindBinary, "rtf": KindBinary, "zip": KindBinary,
	"jpg": KindBinary, "jpeg": KindBinary, "png": KindBinary, "gif": KindBinary,
	"bmp": KindBinary, "ico": KindBinary, "webp": KindBinary, "tiff": KindBinary,
	"wav": KindBinary, "mp3": KindBinary, "m4a": KindBinary, "flac": KindBinary,
	"ogg": KindBinary,
	"html": KindText, "htm": KindText, "txt": KindText, "csv": KindText,
	"tsv": KindText, "json": KindText, "xml": KindText, "md": KindText,
	"markdown": KindText, "ipynb": KindText,
}

// hintAliases folds extension spellings onto canonical format labels.
var hintAliases = map[string]string{
	"jpeg":     "jpg",
	"htm":      "html",
	"markdown": "md",
}

// applyHint overrides a fallback classification ("bin" or plain "txt")
// with the filename's extension when that extension is recognized.
// Signature and heuristic results are never overridden.
func applyHint(res Result, filename string) Result {
	if filename == "" || res.Source != SourceFallback {
		return res
	}
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	kind, ok := hintFormats[ext]
	if !ok {
		return res
	}
	if canonical, ok := hintAliases[ext]; ok {
		ext = canonical
	}
	return Result{Format: ext, Kind: kind, Source: SourceFilenameHint}
}
