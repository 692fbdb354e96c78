package crawl_test

import (
	"testing"

	"github.com/leaguedoc/leaguedoc/crawl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractLinks(t *testing.T) {
	t.Parallel()

	t.Run("resolves relative links against base", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
			<a href="/teams">Teams</a>
			<a href="standings">Standings</a>
			<a href="../schedule">Schedule</a>
		</body></html>`

		links, err := crawl.ExtractLinks(html, "https://example.com/league/news")

		require.NoError(t, err)
		assert.Equal(t, []string{
			"https://example.com/teams",
			"https://example.com/league/standings",
			"https://example.com/schedule",
		}, links)
	})

	t.Run("keeps absolute links as-is", func(t *testing.T) {
		t.Parallel()

		html := `<a href="https://other.example.org/page">Other</a>`

		links, err := crawl.ExtractLinks(html, "https://example.com/")

		require.NoError(t, err)
		assert.Equal(t, []string{"https://other.example.org/page"}, links)
	})

	t.Run("drops fragment-only and empty hrefs", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
			<a href="#section">Jump</a>
			<a href="">Empty</a>
			<a href="   ">Blank</a>
			<a href="/real">Real</a>
		</body></html>`

		links, err := crawl.ExtractLinks(html, "https://example.com/")

		require.NoError(t, err)
		assert.Equal(t, []string{"https://example.com/real"}, links)
	})

	t.Run("drops non-http schemes", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
			<a href="mailto:info@example.com">Mail</a>
			<a href="javascript:void(0)">JS</a>
			<a href="ftp://example.com/file">FTP</a>
			<a href="https://example.com/ok">OK</a>
		</body></html>`

		links, err := crawl.ExtractLinks(html, "https://example.com/")

		require.NoError(t, err)
		assert.Equal(t, []string{"https://example.com/ok"}, links)
	})

	t.Run("preserves document order", func(t *testing.T) {
		t.Parallel()

		html := `<a href="/c">c</a><a href="/a">a</a><a href="/b">b</a>`

		links, err := crawl.ExtractLinks(html, "https://example.com/")

		require.NoError(t, err)
		assert.Equal(t, []string{
			"https://example.com/c",
			"https://example.com/a",
			"https://example.com/b",
		}, links)
	})

	t.Run("returns error for invalid base URL", func(t *testing.T) {
		t.Parallel()

		_, err := crawl.ExtractLinks(`<a href="/a">a</a>`, "://bad")

		assert.Error(t, err)
	})

	t.Run("no anchors yields no links", func(t *testing.T) {
		t.Parallel()

		links, err := crawl.ExtractLinks("<html><body><p>nothing here</p></body></html>", "https://example.com/")

		require.NoError(t, err)
		assert.Empty(t, links)
	})
}
