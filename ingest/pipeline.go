// Package ingest wires discovery, crawling, chunking and embedding
// into a pipeline. Each stage can run on its own so intermediate
// results can be saved to disk and resumed, or the whole pipeline can
// run end to end.
package ingest

import (
	"context"
	"log/slog"

	"github.com/leaguedoc/leaguedoc"
	"github.com/leaguedoc/leaguedoc/crawl"
)

// DefaultMaxBatchTokens caps how many tokens one embedding request may
// carry, staying under the API's per-request limit.
const DefaultMaxBatchTokens = 300000

// Crawler turns seed URL records into documents.
type Crawler interface {
	Crawl(ctx context.Context, seeds []leaguedoc.URLRecord, progress crawl.ProgressFunc) ([]*leaguedoc.Document, *crawl.Result, error)
}

// Splitter turns documents into chunks.
type Splitter interface {
	SplitDocuments(ctx context.Context, docs []*leaguedoc.Document) ([]*leaguedoc.Chunk, error)
}

// Pipeline runs the ingestion stages.
type Pipeline struct {
	Sitemaps  leaguedoc.SitemapService
	Crawler   Crawler
	Splitter  Splitter
	Embedder  leaguedoc.Embedder
	Documents leaguedoc.DocumentService
	Chunks    leaguedoc.ChunkService
	Logger    *slog.Logger

	// MaxBatchTokens caps tokens per embedding request.
	// Defaults to DefaultMaxBatchTokens.
	MaxBatchTokens int
}

// IndexResult summarizes an Index stage run.
type IndexResult struct {
	Documents int
	Chunks    int
	Batches   int
	Tokens    int
}

// RunResult summarizes a full pipeline run.
type RunResult struct {
	URLs  int
	Crawl *crawl.Result
	Index *IndexResult
}

func (p *Pipeline) logger() *slog.Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return slog.New(slog.DiscardHandler)
}

func (p *Pipeline) maxBatchTokens() int {
	if p.MaxBatchTokens > 0 {
		return p.MaxBatchTokens
	}
	return DefaultMaxBatchTokens
}

// Sources resolves the crawl seed list. When sitemapURL is set, the
// sitemap is expanded and merged with the explicit seeds; seeds always
// survive, even when the sitemap omits them.
func (p *Pipeline) Sources(ctx context.Context, sitemapURL string, seeds []string, filter *leaguedoc.URLFilter) ([]leaguedoc.URLRecord, error) {
	var discovered []leaguedoc.URLRecord
	if sitemapURL != "" {
		var err error
		discovered, err = p.Sitemaps.DiscoverURLs(ctx, sitemapURL, filter)
		if err != nil {
			return nil, err
		}
		p.logger().Info("discovered sitemap URLs", "sitemap", sitemapURL, "count", len(discovered))
	}

	records := leaguedoc.MergeURLs(seeds, discovered)
	if len(records) == 0 {
		return nil, leaguedoc.Errorf(leaguedoc.EINVALID, "no URLs to crawl")
	}
	p.logger().Info("resolved crawl sources", "count", len(records))
	return records, nil
}

// Fetch crawls the given URL records into documents, labelling each
// with the source so searches can be restricted to one corpus.
// An empty source defaults to the website label.
func (p *Pipeline) Fetch(ctx context.Context, records []leaguedoc.URLRecord, source leaguedoc.Source, progress crawl.ProgressFunc) ([]*leaguedoc.Document, *crawl.Result, error) {
	docs, result, err := p.Crawler.Crawl(ctx, records, progress)
	if err != nil {
		return nil, nil, err
	}
	if source == "" {
		source = leaguedoc.SourceWebsite
	}
	for _, doc := range docs {
		doc.Source = source
	}
	p.logger().Info("crawl finished", "source", source,
		"saved", result.Saved, "failed", result.Failed,
		"bytes", result.Bytes, "tokens", result.Tokens)
	return docs, result, nil
}

// Index persists documents, splits them into chunks, embeds the chunks
// in token-bounded batches and stores the vectors. Chunk IDs derive
// from content, so re-indexing unchanged pages overwrites in place.
func (p *Pipeline) Index(ctx context.Context, docs []*leaguedoc.Document) (*IndexResult, error) {
	result := &IndexResult{}

	for _, doc := range docs {
		if err := p.Documents.CreateDocument(ctx, doc); err != nil {
			return nil, err
		}
		result.Documents++
	}

	chunks, err := p.Splitter.SplitDocuments(ctx, docs)
	if err != nil {
		return nil, err
	}
	p.logger().Info("split documents", "documents", len(docs), "chunks", len(chunks))

	var batch []*leaguedoc.Chunk
	batchTokens := 0
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := p.embedBatch(ctx, batch); err != nil {
			return err
		}
		if err := p.Chunks.CreateChunks(ctx, batch); err != nil {
			return err
		}
		result.Batches++
		result.Chunks += len(batch)
		result.Tokens += batchTokens
		p.logger().Info("indexed batch", "chunks", len(batch), "tokens", batchTokens)
		batch = nil
		batchTokens = 0
		return nil
	}

	for _, chunk := range chunks {
		if len(batch) > 0 && batchTokens+chunk.Tokens > p.maxBatchTokens() {
			if err := flush(); err != nil {
				return nil, err
			}
		}
		batch = append(batch, chunk)
		batchTokens += chunk.Tokens
	}
	if err := flush(); err != nil {
		return nil, err
	}

	return result, nil
}

func (p *Pipeline) embedBatch(ctx context.Context, batch []*leaguedoc.Chunk) error {
	texts := make([]string, len(batch))
	for i, chunk := range batch {
		texts[i] = chunk.Content
	}

	vectors, err := p.Embedder.EmbedTexts(ctx, texts)
	if err != nil {
		return err
	}
	if len(vectors) != len(batch) {
		return leaguedoc.Errorf(leaguedoc.EINTERNAL,
			"embedder returned %d vectors for %d chunks", len(vectors), len(batch))
	}
	for i, chunk := range batch {
		chunk.Embedding = vectors[i]
	}
	return nil
}

// Run executes the full pipeline: discover, crawl, index.
func (p *Pipeline) Run(ctx context.Context, sitemapURL string, seeds []string, filter *leaguedoc.URLFilter, source leaguedoc.Source, progress crawl.ProgressFunc) (*RunResult, error) {
	records, err := p.Sources(ctx, sitemapURL, seeds, filter)
	if err != nil {
		return nil, err
	}

	docs, crawlResult, err := p.Fetch(ctx, records, source, progress)
	if err != nil {
		return nil, err
	}

	indexResult, err := p.Index(ctx, docs)
	if err != nil {
		return nil, err
	}

	return &RunResult{
		URLs:  len(records),
		Crawl: crawlResult,
		Index: indexResult,
	}, nil
}
