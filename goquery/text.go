package goquery

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"

	"github.com/leaguedoc/leaguedoc"
)

var (
	spaceRe     = regexp.MustCompile(`[ \t]+`)
	blankLineRe = regexp.MustCompile(`(\n\s*){2,}`)
)

// Ensure TextConverter implements leaguedoc.Converter at compile time.
var _ leaguedoc.Converter = (*TextConverter)(nil)

// TextConverter renders HTML content as plain text. Text nodes are joined
// with newlines and consecutive blank lines are collapsed to at most one.
type TextConverter struct{}

// NewTextConverter creates a new TextConverter.
func NewTextConverter() *TextConverter {
	return &TextConverter{}
}

// Convert transforms HTML content into plain text.
func (c *TextConverter) Convert(rawHTML string) (string, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return "", leaguedoc.Errorf(leaguedoc.EINVALID, "empty HTML input")
	}

	root, err := html.Parse(strings.NewReader(rawHTML))
	if err != nil {
		return "", leaguedoc.Errorf(leaguedoc.EINVALID, "parsing HTML: %v", err)
	}

	var b strings.Builder
	collectText(root, &b)

	text := spaceRe.ReplaceAllString(b.String(), " ")
	text = blankLineRe.ReplaceAllString(text, "\n")
	return strings.TrimSpace(text), nil
}

// collectText appends the text content of n and its children, skipping
// non-content elements and separating text nodes with newlines.
func collectText(n *html.Node, b *strings.Builder) {
	if n.Type == html.ElementNode {
		switch n.Data {
		case "script", "style", "noscript", "template", "head":
			return
		}
	}
	if n.Type == html.TextNode {
		if trimmed := strings.TrimSpace(n.Data); trimmed != "" {
			b.WriteString(trimmed)
			b.WriteString("\n")
		}
		return
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		collectText(child, b)
	}
}
