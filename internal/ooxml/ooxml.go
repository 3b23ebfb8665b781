// Package ooxml has shared helpers for reading OOXML and EPUB packages:
// both are ZIP containers with XML parts wired together by relationship
// files and relative paths.
package ooxml

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"path"
	"strings"
)

// Relationship is one entry of a .rels part.
type Relationship struct {
	ID         string `xml:"Id,attr"`
	Type       string `xml:"Type,attr"`
	Target     string `xml:"Target,attr"`
	TargetMode string `xml:"TargetMode,attr"`
}

// Relationships is the root element of a .rels part.
type Relationships struct {
	XMLName       xml.Name       `xml:"Relationships"`
	Relationships []Relationship `xml:"Relationship"`
}

// ParseRelationships parses the named .rels part into a map keyed by
// relationship ID. A missing part yields an empty map, not an error.
func ParseRelationships(zr *zip.Reader, relsPath string) (map[string]Relationship, error) {
	for _, f := range zr.File {
		if f.Name != relsPath {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, err
		}
		defer rc.Close()

		var rels Relationships
		if err := xml.NewDecoder(rc).Decode(&rels); err != nil {
			return nil, fmt.Errorf("decode relationships: %w", err)
		}
		out := make(map[string]Relationship, len(rels.Relationships))
		for _, rel := range rels.Relationships {
			out[rel.ID] = rel
		}
		return out, nil
	}
	return make(map[string]Relationship), nil
}

// ReadFile reads one entry from the archive by exact name.
func ReadFile(zr *zip.Reader, name string) ([]byte, error) {
	for _, f := range zr.File {
		if f.Name == name {
			rc, err := f.Open()
			if err != nil {
				return nil, err
			}
			defer rc.Close()
			return io.ReadAll(rc)
		}
	}
	return nil, fmt.Errorf("entry %q not found in archive", name)
}

// ResolveTarget resolves a relative target path against the directory of
// basePath. Absolute targets are returned rooted at the archive.
func ResolveTarget(basePath, target string) string {
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(target, "/")
	}
	dir := path.Dir(basePath)
	return path.Join(dir, target)
}
