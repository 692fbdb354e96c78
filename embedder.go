package leaguedoc

import "context"

// Embedder converts texts into fixed-dimensionality vectors.
//
// Ingestion and query must share one Embedder instance: vectors from
// different models are not comparable and mixing them produces
// meaningless similarity scores.
type Embedder interface {
	// EmbedTexts returns one vector per input text, in input order.
	// All vectors in one response have the same dimensionality; a short
	// response, an empty vector, or a mixed-dimensionality batch is an
	// EINTERNAL error and no partial result is returned.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}
