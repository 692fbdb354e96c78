package mock

import (
	"context"

	"github.com/leaguedoc/leaguedoc"
)

var _ leaguedoc.TokenCounter = (*TokenCounter)(nil)

// TokenCounter is a mock implementation of leaguedoc.TokenCounter.
type TokenCounter struct {
	CountTokensFn func(ctx context.Context, text string) (int, error)
}

func (t *TokenCounter) CountTokens(ctx context.Context, text string) (int, error) {
	return t.CountTokensFn(ctx, text)
}

var _ leaguedoc.Embedder = (*Embedder)(nil)

// Embedder is a mock implementation of leaguedoc.Embedder.
type Embedder struct {
	EmbedTextsFn func(ctx context.Context, texts []string) ([][]float32, error)
}

func (e *Embedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	return e.EmbedTextsFn(ctx, texts)
}
