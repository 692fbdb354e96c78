package mcp

import (
	"context"

	"github.com/leaguedoc/leaguedoc"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// SearchInput is the input schema for the league_search tool.
type SearchInput struct {
	Query     string  `json:"query" jsonschema:"the question or phrase to search league documentation for"`
	K         int     `json:"k,omitempty" jsonschema:"maximum number of results to return (default 5)"`
	Source    string  `json:"source,omitempty" jsonschema:"restrict results to one source: website, rules or repository"`
	Threshold float32 `json:"threshold,omitempty" jsonschema:"drop results whose similarity score is below this value"`
}

// SearchOutput is the output schema for the league_search tool.
type SearchOutput struct {
	Results []SearchResultOutput `json:"results"`
	Count   int                  `json:"count"`
}

// SearchResultOutput represents a single search result.
type SearchResultOutput struct {
	SourceURL string  `json:"source_url"`
	Text      string  `json:"text"`
	Score     float32 `json:"score"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "league_search",
		Description: "Search the indexed league websites for standings, fixtures, rules and announcements",
	}, s.handleSearch)
}

// handleSearch handles the league_search tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	opts := leaguedoc.SearchOptions{
		K:        input.K,
		MinScore: input.Threshold,
	}
	if input.Source != "" {
		source := leaguedoc.Source(input.Source)
		opts.Source = &source
	}

	results, err := s.search.Search(ctx, input.Query, opts)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	output := SearchOutput{
		Results: make([]SearchResultOutput, len(results)),
		Count:   len(results),
	}
	for i, r := range results {
		output.Results[i] = SearchResultOutput{
			SourceURL: r.Chunk.SourceURL,
			Text:      r.Chunk.Content,
			Score:     r.Score,
		}
	}

	return nil, output, nil
}
