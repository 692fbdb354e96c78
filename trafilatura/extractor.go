// Package trafilatura provides boilerplate-removing content extraction
// using go-trafilatura. It is the alternate strategy for pages where the
// structural article marker is absent or unreliable.
package trafilatura

import (
	"bytes"
	"strings"

	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"

	"github.com/leaguedoc/leaguedoc"
)

// Ensure Extractor implements leaguedoc.Extractor at compile time.
var _ leaguedoc.Extractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to extract main content from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the main content.
func (e *Extractor) Extract(rawHTML string) (*leaguedoc.ExtractResult, error) {
	if rawHTML == "" {
		return nil, leaguedoc.Errorf(leaguedoc.EINVALID, "empty HTML input")
	}

	opts := trafilatura.Options{
		EnableFallback: true,
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return nil, leaguedoc.Errorf(leaguedoc.EINVALID, "extracting content: %v", err)
	}

	var contentHTML string
	if result.ContentNode != nil {
		contentHTML, err = renderNode(result.ContentNode)
		if err != nil {
			return nil, leaguedoc.Errorf(leaguedoc.EINTERNAL, "rendering content: %v", err)
		}
	}

	return &leaguedoc.ExtractResult{
		Title:       result.Metadata.Title,
		ContentHTML: contentHTML,
	}, nil
}

// renderNode converts an html.Node to a string.
func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
