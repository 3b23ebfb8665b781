package convert

import (
	"encoding/json"
	"fmt"
	"strings"
)

// notebook is the JSON structure of a Jupyter notebook.
type notebook struct {
	Metadata notebookMetadata `json:"metadata"`
	Cells    []notebookCell   `json:"cells"`
}

type notebookMetadata struct {
	KernelSpec *kernelSpec `json:"kernelspec"`
}

type kernelSpec struct {
	Language string `json:"language"`
}

type notebookCell struct {
	CellType string          `json:"cell_type"`
	Source   json.RawMessage `json:"source"`
	Outputs  []cellOutput    `json:"outputs"`
}

type cellOutput struct {
	OutputType string                     `json:"output_type"`
	Text       json.RawMessage            `json:"text"`
	Data       map[string]json.RawMessage `json:"data"`
}

// convertNotebook renders notebook cells: markdown cells verbatim, code
// cells as fenced blocks in the kernel language, text outputs as plain
// fenced blocks.
func convertNotebook(data []byte) (*Result, error) {
	var nb notebook
	if err := json.Unmarshal(data, &nb); err != nil {
		return nil, fmt.Errorf("parse notebook JSON: %w", err)
	}

	language := "python"
	if nb.Metadata.KernelSpec != nil && nb.Metadata.KernelSpec.Language != "" {
		language = nb.Metadata.KernelSpec.Language
	}

	var sections []string
	var title string

	for _, cell := range nb.Cells {
		source := cellSource(cell.Source)

		switch cell.CellType {
		case "markdown":
			sections = append(sections, source)
			if title == "" {
				for _, line := range strings.Split(source, "\n") {
					line = strings.TrimSpace(line)
					if strings.HasPrefix(line, "# ") {
						title = strings.TrimPrefix(line, "# ")
						break
					}
				}
			}

		case "code":
			if strings.TrimSpace(source) != "" {
				sections = append(sections, fmt.Sprintf("```%s\n%s\n```", language, source))
			}
			for _, output := range cell.Outputs {
				if text := outputText(output); text != "" {
					sections = append(sections, fmt.Sprintf("```\n%s\n```", text))
				}
			}

		case "raw":
			if strings.TrimSpace(source) != "" {
				sections = append(sections, fmt.Sprintf("```\n%s\n```", source))
			}
		}
	}

	return &Result{Markdown: strings.Join(sections, "\n\n"), Title: title}, nil
}

// cellSource decodes a notebook source field, which may be a string or
// an array of line strings.
func cellSource(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var lines []string
	if err := json.Unmarshal(raw, &lines); err == nil {
		return strings.Join(lines, "")
	}
	return ""
}

// outputText extracts plain-text output from a cell output, preferring
// the stream text field over rich display data.
func outputText(output cellOutput) string {
	if output.Text != nil {
		if text := cellSource(output.Text); text != "" {
			return strings.TrimRight(text, "\n")
		}
	}
	if raw, ok := output.Data["text/plain"]; ok {
		if text := cellSource(raw); text != "" {
			return strings.TrimRight(text, "\n")
		}
	}
	return ""
}
