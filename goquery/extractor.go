// Package goquery provides the default HTML content extraction strategy.
// It targets the league website's article markup and degrades to generic
// containers, mirroring the site-specific rules the index was built for.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/leaguedoc/leaguedoc"
)

// mainContentSelectors are tried in order after the site-specific article
// marker. The first non-empty match wins; body is the whole-page fallback.
var mainContentSelectors = []string{"main", "article", "section", "body"}

// articleMarker identifies the published-article container on the league's
// WordPress pages.
const articleMarker = "article.status-publish"

// Ensure Extractor implements leaguedoc.Extractor at compile time.
var _ leaguedoc.Extractor = (*Extractor)(nil)

// Extractor locates the main article container of a page by structural
// marker and falls back to the whole page when absent.
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

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, leaguedoc.Errorf(leaguedoc.EINVALID, "parsing HTML: %v", err)
	}

	title := strings.TrimSpace(doc.Find("title").First().Text())

	// Non-content elements never survive extraction.
	doc.Find("script, style, noscript, template").Remove()

	content := doc.Find(articleMarker).First()
	if content.Length() == 0 {
		for _, sel := range mainContentSelectors {
			content = doc.Find(sel).First()
			if content.Length() > 0 {
				break
			}
		}
	}
	if content.Length() == 0 {
		content = doc.Selection
	}

	contentHTML, err := goquery.OuterHtml(content)
	if err != nil {
		return nil, leaguedoc.Errorf(leaguedoc.EINTERNAL, "rendering content: %v", err)
	}

	return &leaguedoc.ExtractResult{
		Title:       title,
		ContentHTML: contentHTML,
	}, nil
}
