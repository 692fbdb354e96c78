package mcp

import (
	"context"
	"testing"

	"github.com/leaguedoc/leaguedoc"
	"github.com/leaguedoc/leaguedoc/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServer_handleSearch(t *testing.T) {
	ctx := context.Background()

	t.Run("returns search results", func(t *testing.T) {
		search := &mock.SearchService{
			SearchFn: func(_ context.Context, query string, opts leaguedoc.SearchOptions) ([]leaguedoc.SearchResult, error) {
				assert.Equal(t, "promotion rules", query)
				return []leaguedoc.SearchResult{{
					Chunk: &leaguedoc.Chunk{
						SourceURL: "https://example.com/rules",
						Content:   "Top two teams are promoted.",
					},
					Score: 0.91,
				}}, nil
			},
		}

		server, err := NewServer(search, nil)
		require.NoError(t, err)

		_, output, err := server.handleSearch(ctx, nil, SearchInput{Query: "promotion rules"})

		require.NoError(t, err)
		assert.Equal(t, 1, output.Count)
		require.Len(t, output.Results, 1)
		assert.Equal(t, "https://example.com/rules", output.Results[0].SourceURL)
		assert.Equal(t, "Top two teams are promoted.", output.Results[0].Text)
		assert.InDelta(t, 0.91, float64(output.Results[0].Score), 0.001)
	})

	t.Run("passes k, source and threshold through", func(t *testing.T) {
		var gotOpts leaguedoc.SearchOptions
		search := &mock.SearchService{
			SearchFn: func(_ context.Context, _ string, opts leaguedoc.SearchOptions) ([]leaguedoc.SearchResult, error) {
				gotOpts = opts
				return nil, nil
			},
		}

		server, err := NewServer(search, nil)
		require.NoError(t, err)

		input := SearchInput{Query: "fixtures", K: 3, Source: "rules", Threshold: 0.4}
		_, _, err = server.handleSearch(ctx, nil, input)

		require.NoError(t, err)
		assert.Equal(t, 3, gotOpts.K)
		require.NotNil(t, gotOpts.Source)
		assert.Equal(t, leaguedoc.SourceRules, *gotOpts.Source)
		assert.InDelta(t, 0.4, float64(gotOpts.MinScore), 0.001)
	})

	t.Run("returns error on search failure", func(t *testing.T) {
		search := &mock.SearchService{
			SearchFn: func(_ context.Context, _ string, _ leaguedoc.SearchOptions) ([]leaguedoc.SearchResult, error) {
				return nil, leaguedoc.Errorf(leaguedoc.EINTERNAL, "search failed")
			},
		}

		server, err := NewServer(search, nil)
		require.NoError(t, err)

		_, _, err = server.handleSearch(ctx, nil, SearchInput{Query: "anything"})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "search failed")
	})
}

func TestNewServer_RequiresSearch(t *testing.T) {
	_, err := NewServer(nil, nil)
	require.Error(t, err)
	assert.Equal(t, leaguedoc.EINVALID, leaguedoc.ErrorCode(err))
}
