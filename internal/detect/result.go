package detect

import "sort"

// ContentKind partitions detected formats into text and binary payloads.
// It decides how the converter should receive the content: as decoded
// UTF-8 text or as an opaque binary file.
type ContentKind int

const (
	KindText ContentKind = iota
	KindBinary
)

func (k ContentKind) String() string {
	if k == KindText {
		return "text"
	}
	return "binary"
}

// Source records which stage of classification produced a result.
type Source int

const (
	// SourceSignature means a magic-byte signature matched.
	SourceSignature Source = iota
	// SourceHeuristic means a structural text heuristic matched.
	SourceHeuristic
	// SourceFilenameHint means a filename extension overrode a fallback.
	SourceFilenameHint
	// SourceFallback means no signature or heuristic matched.
	SourceFallback
)

func (s Source) String() string {
	switch s {
	case SourceSignature:
		return "signature"
	case SourceHeuristic:
		return "heuristic"
	case SourceFilenameHint:
		return "filename_hint"
	default:
		return "fallback"
	}
}

// Result is the outcome of classifying one payload.
type Result struct {
	Format string
	Kind   ContentKind
	Source Source
}

// Extension returns the file extension for the detected format, suitable
// as a temp-file suffix for downstream conversion.
func (r Result) Extension() string {
	return "." + r.Format
}

// Categories returns every format label the detector can produce,
// grouped for the discovery surface. The slices are fresh copies on
// every call.
func Categories() map[string][]string {
	return map[string][]string{
		"documents": {"pdf", "docx", "xls", "xlsx", "pptx", "html", "txt", "rtf", "epub"},
		"images":    {"jpg", "png", "gif", "bmp", "ico", "cur", "webp", "tiff"},
		"audio":     {"wav", "mp3", "m4a", "flac", "ogg"},
		"video":     {"avi"},
		"text_data": {"csv", "tsv", "json", "xml", "md"},
		"archives":  {"zip", "tar", "gz", "bz2", "xz", "7z", "rar"},
		"other":     {"bin"},
	}
}

// Detectable returns the flat, sorted set of labels from Categories.
func Detectable() []string {
	var out []string
	for _, labels := range Categories() {
		out = append(out, labels...)
	}
	sort.Strings(out)
	return out
}
