package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/leaguedoc/leaguedoc"
)

// Ensure LoggingEmbedder implements leaguedoc.Embedder.
var _ leaguedoc.Embedder = (*LoggingEmbedder)(nil)

// LoggingEmbedder wraps an Embedder with debug logging.
type LoggingEmbedder struct {
	next   leaguedoc.Embedder
	logger *slog.Logger
}

// NewLoggingEmbedder creates a new LoggingEmbedder.
func NewLoggingEmbedder(next leaguedoc.Embedder, logger *slog.Logger) *LoggingEmbedder {
	return &LoggingEmbedder{next: next, logger: logger}
}

// EmbedTexts delegates to the wrapped embedder and logs the operation.
func (e *LoggingEmbedder) EmbedTexts(ctx context.Context, texts []string) (vectors [][]float32, err error) {
	defer func(begin time.Time) {
		dim := 0
		if len(vectors) > 0 {
			dim = len(vectors[0])
		}
		e.logger.Info("embed",
			"texts", len(texts),
			"dimensions", dim,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.EmbedTexts(ctx, texts)
}
