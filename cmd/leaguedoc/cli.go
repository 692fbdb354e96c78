package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/leaguedoc/leaguedoc"
	"github.com/leaguedoc/leaguedoc/ingest"
	"github.com/leaguedoc/leaguedoc/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	Logger    *slog.Logger
	DB        *sqlite.DB
	Documents leaguedoc.DocumentService
	Chunks    leaguedoc.ChunkService
	Search    leaguedoc.SearchService
	Sitemaps  leaguedoc.SitemapService
	Pipeline  *ingest.Pipeline
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose     bool   `short:"v" help:"Enable debug logging"`
	Embedder    string `default:"openai" enum:"openai,gemini" help:"Embedding backend (openai or gemini)"`
	Render      bool   `help:"Render pages with headless Chrome instead of plain HTTP"`
	Extractor   string `default:"article" enum:"article,trafilatura" help:"Content extraction strategy (article marker or trafilatura boilerplate removal)"`
	Markdown    bool   `help:"Store crawled content as Markdown instead of plain text"`
	Concurrency int    `short:"c" default:"10" help:"Concurrent fetch limit"`
	Depth       int    `short:"d" default:"5" help:"Maximum link depth when crawling"`

	Sources SourcesCmd `cmd:"" help:"Discover crawlable URLs from a sitemap and save them to a file"`
	Crawl   CrawlCmd   `cmd:"" help:"Crawl a URL list into extracted documents"`
	Index   IndexCmd   `cmd:"" help:"Embed crawled documents and store them for search"`
	Search  SearchCmd  `cmd:"" help:"Search the indexed documentation"`
	Run     RunCmd     `cmd:"" help:"Discover, crawl and index in one pass"`
	Serve   ServeCmd   `cmd:"" help:"Serve search to MCP clients"`
}

// SourcesCmd is the "sources" subcommand.
type SourcesCmd struct {
	URL       string   `arg:"" help:"Sitemap URL (sitemap.xml or a sitemap index)"`
	Seed      []string `short:"s" help:"Extra seed URL included even if absent from the sitemap (repeatable)"`
	Filter    []string `short:"F" name:"filter" help:"Keep only URLs matching this regex (repeatable)"`
	Exclude   []string `short:"x" help:"Drop URLs matching this regex (repeatable)"`
	Blacklist []string `short:"b" help:"Drop URLs containing this keyword (repeatable)"`
	Output    string   `short:"o" default:"urls.txt" help:"Output file"`
}

// CrawlCmd is the "crawl" subcommand.
type CrawlCmd struct {
	Input  string `short:"i" default:"urls.txt" help:"URL list produced by 'sources'"`
	Output string `short:"o" default:"documents.json" help:"Output file"`
	Dump   string `help:"Also write a plain-text dump of all documents to this file"`
	Source string `default:"website" enum:"website,rules,repository" help:"Source label attached to crawled documents"`
}

// IndexCmd is the "index" subcommand.
type IndexCmd struct {
	Input string `short:"i" default:"documents.json" help:"Documents file produced by 'crawl'"`
}

// SearchCmd is the "search" subcommand.
type SearchCmd struct {
	Query     string  `arg:"" help:"Question or phrase to search for"`
	K         int     `short:"k" default:"5" help:"Number of results"`
	Source    string  `help:"Restrict to one source: website, rules or repository"`
	Threshold float32 `help:"Drop results scoring below this similarity"`
}

// RunCmd is the "run" subcommand.
type RunCmd struct {
	URL       string   `arg:"" help:"Sitemap URL (sitemap.xml or a sitemap index)"`
	Seed      []string `short:"s" help:"Extra seed URL (repeatable)"`
	Filter    []string `short:"F" name:"filter" help:"Keep only URLs matching this regex (repeatable)"`
	Exclude   []string `short:"x" help:"Drop URLs matching this regex (repeatable)"`
	Blacklist []string `short:"b" help:"Drop URLs containing this keyword (repeatable)"`
	Source    string   `default:"website" enum:"website,rules,repository" help:"Source label attached to crawled documents"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	HTTP string `help:"Serve over HTTP on this address instead of stdio (e.g. :8080)"`
}
