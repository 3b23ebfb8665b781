package detect

import "bytes"

// signature is one entry in the magic-byte table: a byte pattern
// anchored at an offset, the format label it implies, and an optional
// refinement for container formats whose outer magic is ambiguous.
type signature struct {
	pattern []byte
	offset  int
	format  string
	refine  func(data []byte) string
}

func (s signature) matches(data []byte) bool {
	end := s.offset + len(s.pattern)
	if len(data) < end {
		return false
	}
	return bytes.Equal(data[s.offset:end], s.pattern)
}

// Table is the ordered magic-byte registry. It is immutable after
// construction and safe for concurrent use.
type Table struct {
	sigs []signature
}

// NewTable builds the default signature table. Entries are ordered most
// specific first; container entries (ZIP, RIFF, MP4 boxes) carry a
// refinement that inspects bytes past the outer magic.
func NewTable() *Table {
	return &Table{sigs: []signature{
		// Documents
		{pattern: []byte("%PDF-"), format: "pdf"},
		{pattern: []byte("{\\rtf"), format: "rtf"},

		// ZIP container family. Local file header, empty archive and
		// spanned archive markers all refine to docx/xlsx/pptx/epub/zip.
		{pattern: []byte{0x50, 0x4B, 0x03, 0x04}, format: "zip", refine: refineZip},
		{pattern: []byte{0x50, 0x4B, 0x05, 0x06}, format: "zip", refine: refineZip},
		{pattern: []byte{0x50, 0x4B, 0x07, 0x08}, format: "zip", refine: refineZip},

		// Legacy OLE2 compound files (xls/doc/ppt); xls is the only one
		// the converter handles, so it is the canonical label.
		{pattern: []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}, format: "xls"},

		// RIFF container family: wav/avi/webp share the outer magic.
		{pattern: []byte("RIFF"), format: "wav", refine: refineRIFF},

		// Images
		{pattern: []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}, format: "png"},
		{pattern: []byte{0xFF, 0xD8, 0xFF}, format: "jpg"},
		{pattern: []byte("GIF8"), format: "gif"},
		{pattern: []byte{0x49, 0x49, 0x2A, 0x00}, format: "tiff"},
		{pattern: []byte{0x4D, 0x4D, 0x00, 0x2A}, format: "tiff"},
		{pattern: []byte("BM"), format: "bmp"},
		{pattern: []byte{0x00, 0x00, 0x01, 0x00}, format: "ico"},
		{pattern: []byte{0x00, 0x00, 0x02, 0x00}, format: "cur"},

		// Audio
		{pattern: []byte("ID3"), format: "mp3"},
		{pattern: []byte{0xFF, 0xFB}, format: "mp3"},
		{pattern: []byte{0xFF, 0xF3}, format: "mp3"},
		{pattern: []byte{0xFF, 0xF2}, format: "mp3"},
		{pattern: []byte("fLaC"), format: "flac"},
		{pattern: []byte("OggS"), format: "ogg"},
		// MP4 box: the ftyp atom sits after the 4-byte box size.
		{pattern: []byte("ftyp"), offset: 4, format: "m4a"},

		// Archives
		{pattern: []byte{0x1F, 0x8B}, format: "gz"},
		{pattern: []byte("BZh"), format: "bz2"},
		{pattern: []byte{0xFD, 0x37, 0x7A, 0x58, 0x5A, 0x00}, format: "xz"},
		{pattern: []byte{0x37, 0x7A, 0xBC, 0xAF, 0x27, 0x1C}, format: "7z"},
		{pattern: []byte{0x52, 0x61, 0x72, 0x21, 0x1A, 0x07}, format: "rar"},
		// POSIX tar magic at the fixed header offset. Pre-POSIX tars have
		// no magic at all and are caught by the checksum probe in Lookup.
		{pattern: []byte("ustar"), offset: 257, format: "tar"},
	}}
}

// Lookup matches data against the table and returns candidate labels in
// priority order, most specific first. Container refinements are applied
// before the label is reported. Inputs shorter than a pattern never
// match it.
func (t *Table) Lookup(data []byte) []string {
	var labels []string
	for _, s := range t.sigs {
		if !s.matches(data) {
			continue
		}
		format := s.format
		if s.refine != nil {
			if refined := s.refine(data); refined != "" {
				format = refined
			}
		}
		labels = append(labels, format)
	}
	if len(labels) == 0 && isTarHeader(data) {
		labels = append(labels, "tar")
	}
	return labels
}

// isTarHeader reports whether data starts with a plausible tar header by
// validating the 512-byte header checksum (octal field at bytes
// 148..155, computed with the checksum field itself read as spaces).
func isTarHeader(data []byte) bool {
	if len(data) < 512 {
		return false
	}
	var want int64
	seen := false
	for _, b := range data[148:156] {
		if b >= '0' && b <= '7' {
			want = want*8 + int64(b-'0')
			seen = true
		} else if seen {
			break
		}
	}
	if !seen {
		return false
	}
	var sum int64
	for i, b := range data[:512] {
		if i >= 148 && i < 156 {
			sum += int64(' ')
		} else {
			sum += int64(b)
		}
	}
	return sum == want
}
