package convert

// convertPlainText passes text content through unchanged apart from
// charset normalization. Markdown and JSON payloads are already their
// own best markdown rendition.
func convertPlainText(data []byte) *Result {
	return &Result{Markdown: decodeText(data)}
}
