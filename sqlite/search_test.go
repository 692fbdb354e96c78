package sqlite_test

import (
	"context"
	"testing"

	"github.com/leaguedoc/leaguedoc"
	"github.com/leaguedoc/leaguedoc/mock"
	"github.com/leaguedoc/leaguedoc/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// axisEmbedder maps known texts to fixed unit vectors so similarity
// rankings in tests are exact.
func axisEmbedder(vectors map[string][]float32) *mock.Embedder {
	return &mock.Embedder{
		EmbedTextsFn: func(_ context.Context, texts []string) ([][]float32, error) {
			out := make([][]float32, len(texts))
			for i, text := range texts {
				vec, ok := vectors[text]
				if !ok {
					vec = []float32{0, 0, 0}
				}
				out[i] = vec
			}
			return out, nil
		},
	}
}

func TestSearchService_Search(t *testing.T) {
	t.Parallel()

	t.Run("returns nearest chunks first", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		chunks := sqlite.NewChunkService(db)
		ctx := context.Background()

		require.NoError(t, chunks.CreateChunks(ctx, []*leaguedoc.Chunk{
			testChunk("chunk_a", []float32{1, 0, 0}),
			testChunk("chunk_b", []float32{0.9, 0.1, 0}),
			testChunk("chunk_c", []float32{0, 1, 0}),
		}))

		embedder := axisEmbedder(map[string][]float32{"query": {1, 0, 0}})
		search := sqlite.NewSearchService(db, embedder)

		results, err := search.Search(ctx, "query", leaguedoc.SearchOptions{K: 2})
		require.NoError(t, err)
		require.Len(t, results, 2)
		assert.Equal(t, "chunk_a", results[0].Chunk.ID)
		assert.Equal(t, "chunk_b", results[1].Chunk.ID)
		assert.Greater(t, results[0].Score, results[1].Score)
		assert.InDelta(t, 1.0, float64(results[0].Score), 0.001)
	})

	t.Run("empty store returns empty slice", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		embedder := axisEmbedder(map[string][]float32{"query": {1, 0, 0}})
		search := sqlite.NewSearchService(db, embedder)

		results, err := search.Search(context.Background(), "query", leaguedoc.SearchOptions{})
		require.NoError(t, err)
		assert.NotNil(t, results)
		assert.Empty(t, results)
	})

	t.Run("defaults K when unset", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		chunks := sqlite.NewChunkService(db)
		ctx := context.Background()

		var batch []*leaguedoc.Chunk
		for i := 0; i < leaguedoc.DefaultSearchK+3; i++ {
			batch = append(batch, testChunk("chunk_"+string(rune('a'+i)), []float32{1, float32(i) * 0.01, 0}))
		}
		require.NoError(t, chunks.CreateChunks(ctx, batch))

		embedder := axisEmbedder(map[string][]float32{"query": {1, 0, 0}})
		search := sqlite.NewSearchService(db, embedder)

		results, err := search.Search(ctx, "query", leaguedoc.SearchOptions{})
		require.NoError(t, err)
		assert.Len(t, results, leaguedoc.DefaultSearchK)
	})

	t.Run("filters by source", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		chunks := sqlite.NewChunkService(db)
		ctx := context.Background()

		rules := testChunk("chunk_rules", []float32{1, 0, 0})
		rules.Source = leaguedoc.SourceRules
		require.NoError(t, chunks.CreateChunks(ctx, []*leaguedoc.Chunk{
			testChunk("chunk_site", []float32{1, 0, 0}),
			rules,
		}))

		embedder := axisEmbedder(map[string][]float32{"query": {1, 0, 0}})
		search := sqlite.NewSearchService(db, embedder)

		source := leaguedoc.SourceRules
		results, err := search.Search(ctx, "query", leaguedoc.SearchOptions{Source: &source})
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "chunk_rules", results[0].Chunk.ID)
	})

	t.Run("drops results below the score threshold", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		chunks := sqlite.NewChunkService(db)
		ctx := context.Background()

		require.NoError(t, chunks.CreateChunks(ctx, []*leaguedoc.Chunk{
			testChunk("chunk_near", []float32{1, 0, 0}),
			testChunk("chunk_far", []float32{0, 1, 0}),
		}))

		embedder := axisEmbedder(map[string][]float32{"query": {1, 0, 0}})
		search := sqlite.NewSearchService(db, embedder)

		results, err := search.Search(ctx, "query", leaguedoc.SearchOptions{MinScore: 0.5})
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "chunk_near", results[0].Chunk.ID)
	})

	t.Run("zero threshold keeps negative-similarity results", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		chunks := sqlite.NewChunkService(db)
		ctx := context.Background()

		require.NoError(t, chunks.CreateChunks(ctx, []*leaguedoc.Chunk{
			testChunk("chunk_opposite", []float32{-1, 0, 0}),
		}))

		embedder := axisEmbedder(map[string][]float32{"query": {1, 0, 0}})
		search := sqlite.NewSearchService(db, embedder)

		results, err := search.Search(ctx, "query", leaguedoc.SearchOptions{})
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Less(t, results[0].Score, float32(0))
	})

	t.Run("rejects empty query", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		embedder := axisEmbedder(nil)
		search := sqlite.NewSearchService(db, embedder)

		_, err := search.Search(context.Background(), "", leaguedoc.SearchOptions{})
		require.Error(t, err)
		assert.Equal(t, leaguedoc.EINVALID, leaguedoc.ErrorCode(err))
	})

	t.Run("rejects query dimensionality mismatch", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		chunks := sqlite.NewChunkService(db)
		ctx := context.Background()

		require.NoError(t, chunks.CreateChunks(ctx, []*leaguedoc.Chunk{
			testChunk("chunk_1", []float32{1, 0, 0}),
		}))

		embedder := axisEmbedder(map[string][]float32{"query": {1, 0}})
		search := sqlite.NewSearchService(db, embedder)

		_, err := search.Search(ctx, "query", leaguedoc.SearchOptions{})
		require.Error(t, err)
		assert.Equal(t, leaguedoc.EINTERNAL, leaguedoc.ErrorCode(err))
	})
}
