// Package gemini provides an embedder backed by the Gemini API.
package gemini

import (
	"context"

	"github.com/leaguedoc/leaguedoc"
	"google.golang.org/genai"
)

// DefaultModel is the embedding model used when none is configured.
const DefaultModel = "gemini-embedding-001"

// Ensure Embedder implements leaguedoc.Embedder at compile time.
var _ leaguedoc.Embedder = (*Embedder)(nil)

// Embedder implements leaguedoc.Embedder using Google Gemini.
type Embedder struct {
	client *genai.Client
	model  string
}

// NewEmbedder creates a new Embedder. An empty model selects DefaultModel.
func NewEmbedder(client *genai.Client, model string) *Embedder {
	if model == "" {
		model = DefaultModel
	}
	return &Embedder{client: client, model: model}
}

// EmbedTexts returns one vector per input text, in input order.
func (e *Embedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return [][]float32{}, nil
	}

	contents := make([]*genai.Content, len(texts))
	for i, text := range texts {
		contents[i] = genai.NewContentFromText(text, "user")
	}

	result, err := e.client.Models.EmbedContent(ctx, e.model, contents, nil)
	if err != nil {
		return nil, leaguedoc.Errorf(leaguedoc.EINTERNAL, "creating embeddings: %v", err)
	}
	if result == nil || len(result.Embeddings) != len(texts) {
		return nil, leaguedoc.Errorf(leaguedoc.EINTERNAL,
			"embedding response has %d vectors for %d texts", embeddingCount(result), len(texts))
	}

	vectors := make([][]float32, len(texts))
	dim := 0
	for i, emb := range result.Embeddings {
		if emb == nil || len(emb.Values) == 0 {
			return nil, leaguedoc.Errorf(leaguedoc.EINTERNAL, "embedding response contains an empty vector")
		}
		if dim == 0 {
			dim = len(emb.Values)
		} else if len(emb.Values) != dim {
			return nil, leaguedoc.Errorf(leaguedoc.EINTERNAL,
				"embedding response mixes dimensionalities %d and %d", dim, len(emb.Values))
		}
		vectors[i] = emb.Values
	}

	return vectors, nil
}

func embeddingCount(result *genai.EmbedContentResponse) int {
	if result == nil {
		return 0
	}
	return len(result.Embeddings)
}
