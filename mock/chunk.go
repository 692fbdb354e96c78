package mock

import (
	"context"

	"github.com/leaguedoc/leaguedoc"
)

var _ leaguedoc.ChunkService = (*ChunkService)(nil)

// ChunkService is a mock implementation of leaguedoc.ChunkService.
type ChunkService struct {
	CreateChunksFn           func(ctx context.Context, chunks []*leaguedoc.Chunk) error
	FindChunkByIDFn          func(ctx context.Context, id string) (*leaguedoc.Chunk, error)
	CountChunksFn            func(ctx context.Context) (int, error)
	DeleteChunksByDocumentFn func(ctx context.Context, documentID string) error
}

func (s *ChunkService) CreateChunks(ctx context.Context, chunks []*leaguedoc.Chunk) error {
	return s.CreateChunksFn(ctx, chunks)
}

func (s *ChunkService) FindChunkByID(ctx context.Context, id string) (*leaguedoc.Chunk, error) {
	return s.FindChunkByIDFn(ctx, id)
}

func (s *ChunkService) CountChunks(ctx context.Context) (int, error) {
	return s.CountChunksFn(ctx)
}

func (s *ChunkService) DeleteChunksByDocument(ctx context.Context, documentID string) error {
	return s.DeleteChunksByDocumentFn(ctx, documentID)
}

var _ leaguedoc.SearchService = (*SearchService)(nil)

// SearchService is a mock implementation of leaguedoc.SearchService.
type SearchService struct {
	SearchFn func(ctx context.Context, query string, opts leaguedoc.SearchOptions) ([]leaguedoc.SearchResult, error)
}

func (s *SearchService) Search(ctx context.Context, query string, opts leaguedoc.SearchOptions) ([]leaguedoc.SearchResult, error) {
	return s.SearchFn(ctx, query, opts)
}
