package leaguedoc

import "context"

// Chunk is a token-bounded span of a document, sized for embedding.
// The ID is a deterministic digest of the source URL and content, so
// re-ingesting identical content produces the same ID.
type Chunk struct {
	ID         string    `json:"id"`
	DocumentID string    `json:"documentId"`
	SourceURL  string    `json:"sourceUrl"`
	Source     Source    `json:"source,omitempty"`
	Content    string    `json:"content"`
	Tokens     int       `json:"tokens"`
	Position   int       `json:"position"`
	Embedding  []float32 `json:"embedding,omitempty"`
}

// Validate returns an error if the chunk contains invalid fields.
func (c *Chunk) Validate() error {
	if c.ID == "" {
		return Errorf(EINVALID, "chunk ID required")
	}
	if c.SourceURL == "" {
		return Errorf(EINVALID, "chunk source URL required")
	}
	if c.Content == "" {
		return Errorf(EINVALID, "chunk content required")
	}
	return nil
}

// ChunkService represents a service for managing chunks and their embeddings.
type ChunkService interface {
	// CreateChunks upserts chunks in a single transaction. All chunks must
	// carry embeddings of the store's dimensionality; a mismatch fails the
	// whole batch before anything is written.
	CreateChunks(ctx context.Context, chunks []*Chunk) error

	// FindChunkByID retrieves a chunk by ID.
	// Returns ENOTFOUND if chunk does not exist.
	FindChunkByID(ctx context.Context, id string) (*Chunk, error)

	// CountChunks returns the number of stored chunks.
	CountChunks(ctx context.Context) (int, error)

	// DeleteChunksByDocument removes all chunks for a document.
	DeleteChunksByDocument(ctx context.Context, documentID string) error
}

// SearchService provides nearest-neighbor retrieval over stored chunks.
type SearchService interface {
	// Search embeds the query and returns the K nearest chunks, nearest
	// first. An empty store returns an empty slice, not an error.
	Search(ctx context.Context, query string, opts SearchOptions) ([]SearchResult, error)
}

// DefaultSearchK is how many results Search returns when K is unset.
const DefaultSearchK = 5

// SearchOptions configures search behavior.
type SearchOptions struct {
	// K is the maximum number of results to return. Defaults to DefaultSearchK.
	K int `json:"k,omitempty"`

	// Source restricts results to chunks from one source.
	Source *Source `json:"source,omitempty"`

	// MinScore drops results with cosine similarity below the threshold.
	// Zero disables the filter, so even negative-similarity matches are
	// returned.
	MinScore float32 `json:"minScore,omitempty"`
}

// SearchResult represents a search match.
type SearchResult struct {
	Chunk *Chunk  `json:"chunk"`
	Score float32 `json:"score"`
}
