// Package tiktoken counts tokens using OpenAI's BPE encodings. Chunk
// budgets and embedding batch limits are defined in this token space,
// so the ingest pipeline and the splitter share one counter.
package tiktoken

import (
	"context"

	"github.com/leaguedoc/leaguedoc"
	"github.com/pkoukk/tiktoken-go"
)

// DefaultEncoding is the encoding used by OpenAI embedding models.
const DefaultEncoding = "cl100k_base"

var _ leaguedoc.TokenCounter = (*TokenCounter)(nil)

// TokenCounter counts tokens using a tiktoken BPE encoding.
type TokenCounter struct {
	enc *tiktoken.Tiktoken
}

// NewTokenCounter creates a TokenCounter for the given encoding name,
// e.g. "cl100k_base".
func NewTokenCounter(encoding string) (*TokenCounter, error) {
	enc, err := tiktoken.GetEncoding(encoding)
	if err != nil {
		return nil, leaguedoc.Errorf(leaguedoc.EINTERNAL, "loading encoding %q: %v", encoding, err)
	}
	return &TokenCounter{enc: enc}, nil
}

// CountTokens counts the number of tokens in the given text.
func (tc *TokenCounter) CountTokens(_ context.Context, text string) (int, error) {
	if text == "" {
		return 0, nil
	}
	return len(tc.enc.Encode(text, nil, nil)), nil
}
