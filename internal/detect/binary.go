package detect

import (
	"archive/zip"
	"bytes"
	"io"
	"strings"
)

// minBinaryLen is the plausibility floor for unrecognized binary input.
// Content that fails text decoding, matches no signature and is shorter
// than this is rejected as garbage instead of classified as "bin".
const minBinaryLen = 8

// classifySignature matches data against the signature table. The bool
// result reports whether any signature matched.
func (d *Detector) classifySignature(data []byte) (Result, bool) {
	labels := d.table.Lookup(data)
	if len(labels) == 0 {
		return Result{}, false
	}
	return Result{Format: labels[0], Kind: KindBinary, Source: SourceSignature}, true
}

// classifyUnknownBinary handles content with no signature match that is
// not valid text. It never fails for plausible binary input; it only
// rejects payloads under the minimum length floor.
func classifyUnknownBinary(data []byte) (Result, error) {
	if len(data) < minBinaryLen {
		return Result{}, ErrShortBinary
	}
	return Result{Format: "bin", Kind: KindBinary, Source: SourceFallback}, nil
}

// refineZip resolves the concrete format of a ZIP container by
// inspecting its entries: OOXML path prefixes identify Office formats,
// an EPUB is identified by its mimetype entry or META-INF container.
func refineZip(data []byte) string {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		// Truncated or spanned archive: scan the raw local headers for
		// the same path markers.
		return refineZipRaw(data)
	}

	var docx, xlsx, pptx, epub bool
	for _, f := range zr.File {
		switch {
		case f.Name == "mimetype":
			if entryContains(f, "application/epub+zip") {
				epub = true
			}
		case f.Name == "META-INF/container.xml":
			epub = true
		case strings.HasPrefix(f.Name, "word/"):
			docx = true
		case strings.HasPrefix(f.Name, "xl/"):
			xlsx = true
		case strings.HasPrefix(f.Name, "ppt/"):
			pptx = true
		}
	}

	switch {
	case epub:
		return "epub"
	case docx:
		return "docx"
	case xlsx:
		return "xlsx"
	case pptx:
		return "pptx"
	}
	return "zip"
}

// entryContains reports whether the entry's content contains s.
func entryContains(f *zip.File, s string) bool {
	rc, err := f.Open()
	if err != nil {
		return false
	}
	defer rc.Close()
	content, err := io.ReadAll(io.LimitReader(rc, 256))
	if err != nil {
		return false
	}
	return strings.Contains(string(content), s)
}

// refineZipRaw scans the first bytes of a ZIP stream for entry-name
// markers when the central directory is unreadable. Local file headers
// store entry names inline, so the markers appear in the raw stream.
func refineZipRaw(data []byte) string {
	head := data
	if len(head) > 4096 {
		head = head[:4096]
	}
	s := strings.ToLower(string(head))
	switch {
	case strings.Contains(s, "application/epub+zip"), strings.Contains(s, "meta-inf/container.xml"):
		return "epub"
	case strings.Contains(s, "word/"):
		return "docx"
	case strings.Contains(s, "xl/"):
		return "xlsx"
	case strings.Contains(s, "ppt/"):
		return "pptx"
	}
	return "zip"
}

// refineRIFF reads the four-character format code at byte offset 8 of a
// RIFF container. Unknown codes default to wav, matching the broadest
// historical use of the container.
func refineRIFF(data []byte) string {
	if len(data) < 12 {
		return "wav"
	}
	switch string(data[8:12]) {
	case "WAVE":
		return "wav"
	case "AVI ":
		return "avi"
	case "WEBP":
		return "webp"
	}
	return "wav"
}
