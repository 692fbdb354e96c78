package leaguedoc

// Converter renders clean HTML content as text.
type Converter interface {
	// Convert transforms HTML content into its output format, e.g. plain
	// text with blank lines collapsed, or Markdown. The input should be
	// clean HTML (e.g., from an Extractor).
	Convert(html string) (string, error)
}
