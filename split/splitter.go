// Package split turns documents into token-bounded chunks for
// embedding. Splitting prefers natural boundaries, paragraph breaks
// first, then lines, sentences and words, and falls back to fixed
// windows only when a single run of text has no boundaries at all.
package split

import (
	"context"
	"fmt"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/leaguedoc/leaguedoc"
)

const (
	// DefaultChunkSize is the maximum chunk size in tokens.
	DefaultChunkSize = 8000

	// DefaultOverlap is how many tokens consecutive chunks share.
	DefaultOverlap = 500
)

// separators are tried in order. Each level is only used for pieces
// that are too large at the previous level.
var separators = []string{"\n\n", "\n", ". ", " "}

// Splitter splits documents into chunks bounded by a token budget.
type Splitter struct {
	TokenCounter leaguedoc.TokenCounter

	// ChunkSize is the maximum tokens per chunk. Defaults to DefaultChunkSize.
	ChunkSize int

	// Overlap is the token overlap between consecutive chunks.
	// Defaults to DefaultOverlap.
	Overlap int
}

// Split chunks a single document. Chunks never span documents, and the
// chunk ID is derived from the source URL and content so re-splitting
// unchanged content yields the same IDs.
func (s *Splitter) Split(ctx context.Context, doc *leaguedoc.Document) ([]*leaguedoc.Chunk, error) {
	if err := doc.Validate(); err != nil {
		return nil, err
	}

	pieces, err := s.splitText(ctx, doc.Content, separators)
	if err != nil {
		return nil, err
	}

	chunks := make([]*leaguedoc.Chunk, 0, len(pieces))
	for _, piece := range pieces {
		if strings.TrimSpace(piece.text) == "" {
			continue
		}
		chunks = append(chunks, &leaguedoc.Chunk{
			ID:         ChunkID(doc.SourceURL, piece.text),
			DocumentID: doc.ID,
			SourceURL:  doc.SourceURL,
			Source:     doc.Source,
			Content:    piece.text,
			Tokens:     piece.tokens,
			Position:   len(chunks),
		})
	}
	return chunks, nil
}

// SplitDocuments chunks each document independently and returns the
// chunks in document order.
func (s *Splitter) SplitDocuments(ctx context.Context, docs []*leaguedoc.Document) ([]*leaguedoc.Chunk, error) {
	var all []*leaguedoc.Chunk
	for _, doc := range docs {
		chunks, err := s.Split(ctx, doc)
		if err != nil {
			return nil, err
		}
		all = append(all, chunks...)
	}
	return all, nil
}

// ChunkID derives a stable chunk identifier from the source URL and
// chunk content.
func ChunkID(sourceURL, content string) string {
	h := xxhash.New()
	h.WriteString(sourceURL)
	h.Write([]byte{0})
	h.WriteString(content)
	return fmt.Sprintf("chunk_%x", h.Sum64())
}

func (s *Splitter) chunkSize() int {
	if s.ChunkSize > 0 {
		return s.ChunkSize
	}
	return DefaultChunkSize
}

func (s *Splitter) overlap() int {
	if s.Overlap > 0 {
		return s.Overlap
	}
	return DefaultOverlap
}

// piece is a run of text with its token count, so merging does not
// recount text it has already measured.
type piece struct {
	text   string
	tokens int
}

func (s *Splitter) splitText(ctx context.Context, text string, seps []string) ([]piece, error) {
	tokens, err := s.TokenCounter.CountTokens(ctx, text)
	if err != nil {
		return nil, err
	}
	if tokens <= s.chunkSize() {
		return []piece{{text: text, tokens: tokens}}, nil
	}
	if len(seps) == 0 {
		return s.splitWindows(ctx, text)
	}

	parts := splitKeep(text, seps[0])
	var pieces []piece
	for _, part := range parts {
		n, err := s.TokenCounter.CountTokens(ctx, part)
		if err != nil {
			return nil, err
		}
		if n <= s.chunkSize() {
			pieces = append(pieces, piece{text: part, tokens: n})
			continue
		}
		sub, err := s.splitText(ctx, part, seps[1:])
		if err != nil {
			return nil, err
		}
		pieces = append(pieces, sub...)
	}
	return s.merge(pieces), nil
}

// merge greedily packs pieces into chunks up to the token budget,
// seeding each new chunk with trailing pieces of the previous one up
// to the overlap budget.
func (s *Splitter) merge(pieces []piece) []piece {
	var (
		merged  []piece
		current []piece
		total   int
	)

	flush := func() {
		if len(current) == 0 {
			return
		}
		var b strings.Builder
		for _, p := range current {
			b.WriteString(p.text)
		}
		merged = append(merged, piece{text: b.String(), tokens: total})
	}

	for _, p := range pieces {
		if total+p.tokens > s.chunkSize() && len(current) > 0 {
			flush()
			// Carry trailing pieces into the next chunk as overlap.
			var tail []piece
			tailTokens := 0
			for i := len(current) - 1; i >= 0; i-- {
				if tailTokens+current[i].tokens > s.overlap() {
					break
				}
				tailTokens += current[i].tokens
				tail = append([]piece{current[i]}, tail...)
			}
			current = tail
			total = tailTokens
		}
		current = append(current, p)
		total += p.tokens
	}
	flush()
	return merged
}

// splitWindows cuts text into fixed rune windows. A token is never
// shorter than one rune, so a window of chunkSize runes cannot exceed
// the token budget.
func (s *Splitter) splitWindows(ctx context.Context, text string) ([]piece, error) {
	runes := []rune(text)
	size := s.chunkSize()
	step := size - s.overlap()
	if step <= 0 {
		step = size
	}

	var pieces []piece
	for start := 0; start < len(runes); start += step {
		end := start + size
		if end > len(runes) {
			end = len(runes)
		}
		window := string(runes[start:end])
		n, err := s.TokenCounter.CountTokens(ctx, window)
		if err != nil {
			return nil, err
		}
		pieces = append(pieces, piece{text: window, tokens: n})
		if end == len(runes) {
			break
		}
	}
	return pieces, nil
}

// splitKeep splits text on sep, keeping the separator attached to the
// preceding part so rejoining the parts reproduces the input.
func splitKeep(text, sep string) []string {
	parts := strings.Split(text, sep)
	out := make([]string, 0, len(parts))
	for i, p := range parts {
		if i < len(parts)-1 {
			p += sep
		}
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
