package leaguedoc

import "context"

// TokenCounter counts tokens in text for a specific model.
// The same counter must be used for chunk budgeting and embedding batch
// limits so both measure the same token space.
type TokenCounter interface {
	CountTokens(ctx context.Context, text string) (int, error)
}
