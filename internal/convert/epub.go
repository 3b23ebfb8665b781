package convert

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"path"
	"strings"

	"github.com/carabila/markitdown-server/internal/ooxml"
)

// convertEpub renders an EPUB as markdown: package metadata first, then
// the spine documents in reading order through the HTML converter.
func (c *Converter) convertEpub(data []byte) (*Result, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open EPUB ZIP: %w", err)
	}

	opfPath, err := findOPFPath(zr)
	if err != nil {
		return nil, fmt.Errorf("find OPF: %w", err)
	}

	meta, manifest, spine, err := parseOPF(zr, opfPath)
	if err != nil {
		return nil, fmt.Errorf("parse OPF: %w", err)
	}

	var md strings.Builder
	if meta.title != "" {
		fmt.Fprintf(&md, "# %s\n\n", meta.title)
	}
	if len(meta.authors) > 0 {
		fmt.Fprintf(&md, "**Authors:** %s\n\n", strings.Join(meta.authors, ", "))
	}
	if meta.language != "" {
		fmt.Fprintf(&md, "**Language:** %s\n\n", meta.language)
	}
	if meta.description != "" {
		fmt.Fprintf(&md, "**Description:** %s\n\n", meta.description)
	}

	for _, idref := range spine {
		item, ok := manifest[idref]
		if !ok {
			continue
		}

		filePath := ooxml.ResolveTarget(opfPath, item.href)
		fileData, err := ooxml.ReadFile(zr, filePath)
		if err != nil {
			continue
		}

		ext := strings.ToLower(path.Ext(filePath))
		isHTML := ext == ".html" || ext == ".htm" || ext == ".xhtml" ||
			strings.Contains(item.mediaType, "html")
		if !isHTML {
			continue
		}

		result, err := c.convertHTMLString(string(fileData))
		if err != nil || strings.TrimSpace(result.Markdown) == "" {
			continue
		}
		md.WriteString(result.Markdown)
		md.WriteString("\n\n")
	}

	return &Result{Markdown: md.String(), Title: meta.title}, nil
}

type epubMetadata struct {
	title       string
	authors     []string
	language    string
	description string
}

type manifestItem struct {
	href      string
	mediaType string
}

// findOPFPath reads the package document path from META-INF/container.xml.
func findOPFPath(zr *zip.Reader) (string, error) {
	data, err := ooxml.ReadFile(zr, "META-INF/container.xml")
	if err != nil {
		return "", err
	}

	decoder := xml.NewDecoder(bytes.NewReader(data))
	for {
		tok, err := decoder.Token()
		if err != nil {
			break
		}
		se, ok := tok.(xml.StartElement)
		if !ok || se.Name.Local != "rootfile" {
			continue
		}
		for _, attr := range se.Attr {
			if attr.Name.Local == "full-path" {
				return attr.Value, nil
			}
		}
	}
	return "", fmt.Errorf("rootfile not found in container.xml")
}

// parseOPF extracts metadata, the manifest, and the spine reading order
// from the package document.
func parseOPF(zr *zip.Reader, opfPath string) (epubMetadata, map[string]manifestItem, []string, error) {
	data, err := ooxml.ReadFile(zr, opfPath)
	if err != nil {
		return epubMetadata{}, nil, nil, err
	}

	var meta epubMetadata
	manifest := make(map[string]manifestItem)
	var spine []string

	decoder := xml.NewDecoder(bytes.NewReader(data))
	var inMetadata bool
	var currentTag string

	for {
		tok, err := decoder.Token()
		if err != nil {
			break
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "metadata":
				inMetadata = true
			case "title", "creator", "language", "description":
				if inMetadata {
					currentTag = t.Name.Local
				}
			case "item":
				var id string
				var item manifestItem
				for _, attr := range t.Attr {
					switch attr.Name.Local {
					case "id":
						id = attr.Value
					case "href":
						item.href = attr.Value
					case "media-type":
						item.mediaType = attr.Value
					}
				}
				if id != "" {
					manifest[id] = item
				}
			case "itemref":
				for _, attr := range t.Attr {
					if attr.Name.Local == "idref" {
						spine = append(spine, attr.Value)
					}
				}
			}

		case xml.CharData:
			if !inMetadata || currentTag == "" {
				break
			}
			text := strings.TrimSpace(string(t))
			if text == "" {
				break
			}
			switch currentTag {
			case "title":
				meta.title = text
			case "creator":
				meta.authors = append(meta.authors, text)
			case "language":
				meta.language = text
			case "description":
				meta.description = text
			}

		case xml.EndElement:
			if t.Name.Local == "metadata" {
				inMetadata = false
			}
			currentTag = ""
		}
	}

	return meta, manifest, spine, nil
}
