package sqlite

import (
	"context"
	"math"
	"sort"

	"github.com/leaguedoc/leaguedoc"
)

// Compile-time interface verification.
var _ leaguedoc.SearchService = (*SearchService)(nil)

// SearchService implements leaguedoc.SearchService with a brute-force
// cosine scan over the stored embeddings. The corpus is a handful of
// league websites, small enough that a linear scan beats maintaining
// an index.
type SearchService struct {
	db       *DB
	embedder leaguedoc.Embedder
}

// NewSearchService creates a new SearchService. The embedder must be
// the same one used at ingest time; vectors from different models are
// not comparable.
func NewSearchService(db *DB, embedder leaguedoc.Embedder) *SearchService {
	return &SearchService{db: db, embedder: embedder}
}

// Search embeds the query and returns the K nearest chunks, nearest first.
func (s *SearchService) Search(ctx context.Context, query string, opts leaguedoc.SearchOptions) ([]leaguedoc.SearchResult, error) {
	if query == "" {
		return nil, leaguedoc.Errorf(leaguedoc.EINVALID, "search query required")
	}

	k := opts.K
	if k <= 0 {
		k = leaguedoc.DefaultSearchK
	}

	vectors, err := s.embedder.EmbedTexts(ctx, []string{query})
	if err != nil {
		return nil, err
	}
	if len(vectors) != 1 {
		return nil, leaguedoc.Errorf(leaguedoc.EINTERNAL, "embedder returned %d vectors for one query", len(vectors))
	}
	queryVec := vectors[0]

	sql := `
		SELECT id, document_id, source_url, source, content, tokens, position, embedding
		FROM chunks
	`
	var args []any
	if opts.Source != nil {
		sql += " WHERE source = ?"
		args = append(args, string(*opts.Source))
	}

	rows, err := s.db.QueryContext(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := []leaguedoc.SearchResult{}
	for rows.Next() {
		var chunk leaguedoc.Chunk
		var source string
		var embedding []byte

		if err := rows.Scan(&chunk.ID, &chunk.DocumentID, &chunk.SourceURL, &source,
			&chunk.Content, &chunk.Tokens, &chunk.Position, &embedding); err != nil {
			return nil, err
		}
		chunk.Source = leaguedoc.Source(source)

		vec, err := decodeVector(embedding)
		if err != nil {
			return nil, err
		}
		if len(vec) != len(queryVec) {
			return nil, leaguedoc.Errorf(leaguedoc.EINTERNAL,
				"stored embedding has %d dimensions, query has %d", len(vec), len(queryVec))
		}

		score := cosineSimilarity(queryVec, vec)
		if opts.MinScore > 0 && score < opts.MinScore {
			continue
		}

		chunk.Embedding = vec
		results = append(results, leaguedoc.SearchResult{Chunk: &chunk, Score: score})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if len(results) > k {
		results = results[:k]
	}

	return results, nil
}

// cosineSimilarity computes the cosine similarity between two vectors
// of equal length. A zero vector yields 0.
func cosineSimilarity(a, b []float32) float32 {
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return float32(dot / (math.Sqrt(normA) * math.Sqrt(normB)))
}
