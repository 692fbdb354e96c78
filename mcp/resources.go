package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/leaguedoc/leaguedoc"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const uriScheme = "leaguedoc://"

// fullTextSources are the corpora exposed as full-text resources.
var fullTextSources = []leaguedoc.Source{
	leaguedoc.SourceWebsite,
	leaguedoc.SourceRules,
	leaguedoc.SourceRepository,
}

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "urls",
		Name:        "urls",
		Description: "URLs of all indexed documents",
		MIMEType:    "application/json",
	}, s.handleURLsResource)

	for _, source := range fullTextSources {
		s.server.AddResource(&mcp.Resource{
			URI:         uriScheme + "full-text/" + string(source),
			Name:        "full-text-" + string(source),
			Description: "Full text of all indexed " + string(source) + " documents",
			MIMEType:    "text/plain",
		}, func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
			return s.handleFullTextResource(ctx, req, source)
		})
	}
}

// handleFullTextResource concatenates the stored text of one source.
func (s *Server) handleFullTextResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
	source leaguedoc.Source,
) (*mcp.ReadResourceResult, error) {
	if s.documents == nil {
		return textContents(req.Params.URI, ""), nil
	}

	docs, err := s.documents.FindDocuments(ctx, leaguedoc.DocumentFilter{Source: &source})
	if err != nil {
		return nil, fmt.Errorf("listing %s documents: %w", source, err)
	}

	var b strings.Builder
	for i, doc := range docs {
		if i > 0 {
			b.WriteString("\n\n" + strings.Repeat("=", 70) + "\n\n")
		}
		fmt.Fprintf(&b, "SOURCE: %s\n\n%s", doc.SourceURL, doc.Content)
	}
	return textContents(req.Params.URI, b.String()), nil
}

func textContents(uri, text string) *mcp.ReadResourceResult {
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "text/plain",
			Text:     text,
		}},
	}
}

// handleURLsResource returns every indexed document's source URL.
func (s *Server) handleURLsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.documents == nil {
		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{{
				URI:      req.Params.URI,
				MIMEType: "application/json",
				Text:     "[]",
			}},
		}, nil
	}

	docs, err := s.documents.FindDocuments(ctx, leaguedoc.DocumentFilter{})
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}

	type urlInfo struct {
		URL       string `json:"url"`
		Title     string `json:"title,omitempty"`
		Source    string `json:"source"`
		FetchedAt string `json:"fetched_at"`
	}

	infos := make([]urlInfo, len(docs))
	for i, doc := range docs {
		infos[i] = urlInfo{
			URL:       doc.SourceURL,
			Title:     doc.Title,
			Source:    string(doc.Source),
			FetchedAt: doc.FetchedAt.Format("2006-01-02"),
		}
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling URLs: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
