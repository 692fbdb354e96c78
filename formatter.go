package leaguedoc

import (
	"fmt"
	"strings"
)

// FormatResults formats search results for display or LLM context.
// Results are numbered in retrieval order (nearest first) and separated
// by blank lines.
func FormatResults(results []SearchResult) string {
	if len(results) == 0 {
		return ""
	}

	parts := make([]string, 0, len(results))
	for i, r := range results {
		var b strings.Builder
		fmt.Fprintf(&b, "## Result %d (score %.3f)\n", i+1, r.Score)
		fmt.Fprintf(&b, "Source: %s\n\n", r.Chunk.SourceURL)
		b.WriteString(r.Chunk.Content)
		parts = append(parts, b.String())
	}

	return strings.Join(parts, "\n\n")
}
