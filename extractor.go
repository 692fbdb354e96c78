package leaguedoc

// ExtractResult holds the extracted content from an HTML page.
type ExtractResult struct {
	// Title is the page title extracted from metadata.
	Title string

	// ContentHTML is the main content as clean HTML.
	// Boilerplate (nav, footer, sidebar, scripts) has been removed.
	ContentHTML string
}

// Extractor extracts main content from HTML pages, removing boilerplate.
// Alternate extraction strategies (per-site rules) can be substituted
// without touching the crawler.
type Extractor interface {
	// Extract processes raw HTML and returns the main content.
	// When no main-content container can be located, implementations fall
	// back to the whole page rather than returning nothing.
	Extract(html string) (*ExtractResult, error)
}
