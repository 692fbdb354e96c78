// Package openai provides an embedder backed by the OpenAI embeddings API.
package openai

import (
	"context"

	"github.com/leaguedoc/leaguedoc"
	openai "github.com/sashabaranov/go-openai"
)

// DefaultModel is the embedding model used when none is configured.
const DefaultModel = openai.SmallEmbedding3

var _ leaguedoc.Embedder = (*Embedder)(nil)

// Embedder implements leaguedoc.Embedder using the OpenAI API.
type Embedder struct {
	client *openai.Client
	model  openai.EmbeddingModel
}

// Option configures an Embedder.
type Option func(*config)

type config struct {
	model   openai.EmbeddingModel
	baseURL string
}

// WithModel overrides the embedding model.
func WithModel(model openai.EmbeddingModel) Option {
	return func(c *config) {
		c.model = model
	}
}

// WithBaseURL overrides the API base URL, e.g. for a proxy or a test server.
func WithBaseURL(baseURL string) Option {
	return func(c *config) {
		c.baseURL = baseURL
	}
}

// NewEmbedder creates an Embedder using the given API key.
func NewEmbedder(apiKey string, opts ...Option) *Embedder {
	cfg := config{model: DefaultModel}
	for _, opt := range opts {
		opt(&cfg)
	}

	clientCfg := openai.DefaultConfig(apiKey)
	if cfg.baseURL != "" {
		clientCfg.BaseURL = cfg.baseURL
	}

	return &Embedder{
		client: openai.NewClientWithConfig(clientCfg),
		model:  cfg.model,
	}
}

// EmbedTexts returns one vector per input text, in input order.
func (e *Embedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return [][]float32{}, nil
	}

	resp, err := e.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: texts,
		Model: e.model,
	})
	if err != nil {
		return nil, leaguedoc.Errorf(leaguedoc.EINTERNAL, "creating embeddings: %v", err)
	}

	if len(resp.Data) != len(texts) {
		return nil, leaguedoc.Errorf(leaguedoc.EINTERNAL,
			"embedding response has %d vectors for %d texts", len(resp.Data), len(texts))
	}

	vectors := make([][]float32, len(texts))
	dim := 0
	for _, item := range resp.Data {
		if item.Index < 0 || item.Index >= len(texts) {
			return nil, leaguedoc.Errorf(leaguedoc.EINTERNAL, "embedding response index %d out of range", item.Index)
		}
		if len(item.Embedding) == 0 {
			return nil, leaguedoc.Errorf(leaguedoc.EINTERNAL, "embedding response contains an empty vector")
		}
		if dim == 0 {
			dim = len(item.Embedding)
		} else if len(item.Embedding) != dim {
			return nil, leaguedoc.Errorf(leaguedoc.EINTERNAL,
				"embedding response mixes dimensionalities %d and %d", dim, len(item.Embedding))
		}
		vectors[item.Index] = item.Embedding
	}

	return vectors, nil
}
