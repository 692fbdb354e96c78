package sqlite

import (
	"context"
	"database/sql"
	"strconv"

	"github.com/leaguedoc/leaguedoc"
)

// Compile-time interface verification.
var _ leaguedoc.ChunkService = (*ChunkService)(nil)

// ChunkService implements leaguedoc.ChunkService using SQLite.
// Embeddings are stored inline as float32 blobs.
type ChunkService struct {
	db *DB
}

// NewChunkService creates a new ChunkService.
func NewChunkService(db *DB) *ChunkService {
	return &ChunkService{db: db}
}

// CreateChunks upserts chunks in a single transaction. The first batch
// ever written fixes the store's embedding dimensionality; later
// batches must match it or the whole batch is rejected before any row
// is written.
func (s *ChunkService) CreateChunks(ctx context.Context, chunks []*leaguedoc.Chunk) error {
	if len(chunks) == 0 {
		return nil
	}

	for _, chunk := range chunks {
		if err := chunk.Validate(); err != nil {
			return err
		}
		if len(chunk.Embedding) == 0 {
			return leaguedoc.Errorf(leaguedoc.EINVALID, "chunk %s has no embedding", chunk.ID)
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	dim, err := s.dimension(ctx, tx)
	if err != nil {
		return err
	}
	if dim == 0 {
		dim = len(chunks[0].Embedding)
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO meta (key, value) VALUES ('embedding_dim', ?)",
			strconv.Itoa(dim)); err != nil {
			return err
		}
	}
	for _, chunk := range chunks {
		if len(chunk.Embedding) != dim {
			return leaguedoc.Errorf(leaguedoc.EINVALID,
				"chunk %s embedding has %d dimensions, store expects %d",
				chunk.ID, len(chunk.Embedding), dim)
		}
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR REPLACE INTO chunks (id, document_id, source_url, source, content, tokens, position, embedding)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, chunk := range chunks {
		if _, err := stmt.ExecContext(ctx, chunk.ID, chunk.DocumentID, chunk.SourceURL,
			string(chunk.Source), chunk.Content, chunk.Tokens, chunk.Position,
			encodeVector(chunk.Embedding)); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// dimension returns the store's embedding dimensionality, or 0 when no
// chunks have been written yet.
func (s *ChunkService) dimension(ctx context.Context, tx *sql.Tx) (int, error) {
	var value string
	err := tx.QueryRowContext(ctx,
		"SELECT value FROM meta WHERE key = 'embedding_dim'").Scan(&value)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(value)
}

// FindChunkByID retrieves a chunk by ID.
func (s *ChunkService) FindChunkByID(ctx context.Context, id string) (*leaguedoc.Chunk, error) {
	var chunk leaguedoc.Chunk
	var source string
	var embedding []byte

	err := s.db.QueryRowContext(ctx, `
		SELECT id, document_id, source_url, source, content, tokens, position, embedding
		FROM chunks
		WHERE id = ?
	`, id).Scan(&chunk.ID, &chunk.DocumentID, &chunk.SourceURL, &source,
		&chunk.Content, &chunk.Tokens, &chunk.Position, &embedding)

	if err == sql.ErrNoRows {
		return nil, leaguedoc.Errorf(leaguedoc.ENOTFOUND, "chunk not found")
	}
	if err != nil {
		return nil, err
	}

	chunk.Source = leaguedoc.Source(source)
	chunk.Embedding, err = decodeVector(embedding)
	if err != nil {
		return nil, err
	}

	return &chunk, nil
}

// CountChunks returns the number of stored chunks.
func (s *ChunkService) CountChunks(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM chunks").Scan(&count)
	return count, err
}

// DeleteChunksByDocument removes all chunks for a document.
func (s *ChunkService) DeleteChunksByDocument(ctx context.Context, documentID string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM chunks WHERE document_id = ?", documentID)
	return err
}
