package openai_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/leaguedoc/leaguedoc"
	"github.com/leaguedoc/leaguedoc/openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type embeddingData struct {
	Object    string    `json:"object"`
	Index     int       `json:"index"`
	Embedding []float32 `json:"embedding"`
}

type embeddingResponse struct {
	Object string          `json:"object"`
	Data   []embeddingData `json:"data"`
	Model  string          `json:"model"`
}

func newEmbeddingServer(t *testing.T, vectors [][]float32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/embeddings", r.URL.Path)

		resp := embeddingResponse{Object: "list", Model: "text-embedding-3-small"}
		for i, vec := range vectors {
			resp.Data = append(resp.Data, embeddingData{Object: "embedding", Index: i, Embedding: vec})
		}
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestEmbedder_EmbedTexts(t *testing.T) {
	t.Parallel()

	t.Run("returns one vector per text in order", func(t *testing.T) {
		t.Parallel()

		srv := newEmbeddingServer(t, [][]float32{{0.1, 0.2}, {0.3, 0.4}})
		e := openai.NewEmbedder("test-key", openai.WithBaseURL(srv.URL))

		vectors, err := e.EmbedTexts(context.Background(), []string{"first", "second"})

		require.NoError(t, err)
		require.Len(t, vectors, 2)
		assert.Equal(t, []float32{0.1, 0.2}, vectors[0])
		assert.Equal(t, []float32{0.3, 0.4}, vectors[1])
	})

	t.Run("empty input returns empty result without a request", func(t *testing.T) {
		t.Parallel()

		e := openai.NewEmbedder("test-key", openai.WithBaseURL("http://127.0.0.1:1"))

		vectors, err := e.EmbedTexts(context.Background(), nil)

		require.NoError(t, err)
		assert.Empty(t, vectors)
	})

	t.Run("short response is EINTERNAL", func(t *testing.T) {
		t.Parallel()

		srv := newEmbeddingServer(t, [][]float32{{0.1, 0.2}})
		e := openai.NewEmbedder("test-key", openai.WithBaseURL(srv.URL))

		_, err := e.EmbedTexts(context.Background(), []string{"first", "second"})

		require.Error(t, err)
		assert.Equal(t, leaguedoc.EINTERNAL, leaguedoc.ErrorCode(err))
	})

	t.Run("mixed dimensionality is EINTERNAL", func(t *testing.T) {
		t.Parallel()

		srv := newEmbeddingServer(t, [][]float32{{0.1, 0.2}, {0.3}})
		e := openai.NewEmbedder("test-key", openai.WithBaseURL(srv.URL))

		_, err := e.EmbedTexts(context.Background(), []string{"first", "second"})

		require.Error(t, err)
		assert.Equal(t, leaguedoc.EINTERNAL, leaguedoc.ErrorCode(err))
	})

	t.Run("API failure is EINTERNAL", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, `{"error":{"message":"rate limited"}}`, http.StatusTooManyRequests)
		}))
		t.Cleanup(srv.Close)
		e := openai.NewEmbedder("test-key", openai.WithBaseURL(srv.URL))

		_, err := e.EmbedTexts(context.Background(), []string{"text"})

		require.Error(t, err)
		assert.Equal(t, leaguedoc.EINTERNAL, leaguedoc.ErrorCode(err))
	})
}
