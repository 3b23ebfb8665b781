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

package convert

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"strings"
)

// convertArchive converts a generic ZIP archive by classifying each
// entry with the detector and converting the ones the facade supports.
// Unconvertible or failing entries are skipped, not fatal.
func (c *Converter) convertArchive(data []byte) (*Result, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open ZIP: %w", err)
	}

	var md strings.Builder
	md.WriteString("Content from the zip file:\n\n")

	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}

		rc, err := f.Open()
		if err != nil {
			continue
		}
		entryData, err := io.ReadAll(rc)
		rc.Close()
		if err != nil || len(entryData) == 0 {
			continue
		}

		res, err := c.detector.Classify(entryData, f.Name)
		if err != nil {
			continue
		}
		if !c.Supports(res.Format) || res.Format == "zip" {
			// Nested archives are listed, not expanded.
			continue
		}

		converted, err := c.Convert(entryData, res.Format)
		if err != nil || strings.TrimSpace(converted.Markdown) == "" {
			continue
		}

		fmt.Fprintf(&md, "## File: %s\n", f.Name)
		md.WriteString(converted.Markdown)
		md.WriteString("\n\n")
	}

	return &Result{Markdown: md.String()}, nil
}
