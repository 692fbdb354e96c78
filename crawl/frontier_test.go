package crawl_test

import (
	"testing"

	"github.com/leaguedoc/leaguedoc"
	"github.com/leaguedoc/leaguedoc/crawl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrontier_PushPop(t *testing.T) {
	t.Parallel()

	t.Run("pops higher priority first", func(t *testing.T) {
		t.Parallel()

		f := crawl.NewFrontier(100, 0.01)
		assert.True(t, f.Push(leaguedoc.DiscoveredLink{URL: "https://example.com/low", Priority: 0.2}))
		assert.True(t, f.Push(leaguedoc.DiscoveredLink{URL: "https://example.com/high", Priority: 0.9}))
		assert.True(t, f.Push(leaguedoc.DiscoveredLink{URL: "https://example.com/mid", Priority: 0.5}))

		link, ok := f.Pop()
		require.True(t, ok)
		assert.Equal(t, "https://example.com/high", link.URL)

		link, ok = f.Pop()
		require.True(t, ok)
		assert.Equal(t, "https://example.com/mid", link.URL)

		link, ok = f.Pop()
		require.True(t, ok)
		assert.Equal(t, "https://example.com/low", link.URL)
	})

	t.Run("equal priority prefers shallower links", func(t *testing.T) {
		t.Parallel()

		f := crawl.NewFrontier(100, 0.01)
		f.Push(leaguedoc.DiscoveredLink{URL: "https://example.com/deep", Priority: 0.5, Depth: 3})
		f.Push(leaguedoc.DiscoveredLink{URL: "https://example.com/shallow", Priority: 0.5, Depth: 1})

		link, ok := f.Pop()
		require.True(t, ok)
		assert.Equal(t, "https://example.com/shallow", link.URL)
	})

	t.Run("rejects duplicate URLs", func(t *testing.T) {
		t.Parallel()

		f := crawl.NewFrontier(100, 0.01)
		assert.True(t, f.Push(leaguedoc.DiscoveredLink{URL: "https://example.com/page", Priority: 0.5}))
		assert.False(t, f.Push(leaguedoc.DiscoveredLink{URL: "https://example.com/page", Priority: 0.9}))
		assert.Equal(t, 1, f.Len())
	})

	t.Run("URLs differing only by fragment are duplicates", func(t *testing.T) {
		t.Parallel()

		f := crawl.NewFrontier(100, 0.01)
		assert.True(t, f.Push(leaguedoc.DiscoveredLink{URL: "https://example.com/page", Priority: 0.5}))
		assert.False(t, f.Push(leaguedoc.DiscoveredLink{URL: "https://example.com/page#results", Priority: 0.5}))
	})

	t.Run("pop on empty frontier returns false", func(t *testing.T) {
		t.Parallel()

		f := crawl.NewFrontier(100, 0.01)
		_, ok := f.Pop()
		assert.False(t, ok)
	})

	t.Run("seen reports pushed URLs", func(t *testing.T) {
		t.Parallel()

		f := crawl.NewFrontier(100, 0.01)
		f.Push(leaguedoc.DiscoveredLink{URL: "https://example.com/page", Priority: 0.5})

		assert.True(t, f.Seen("https://example.com/page"))
		assert.False(t, f.Seen("https://example.com/other"))
	})
}
