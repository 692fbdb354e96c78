// Package crawl provides crawling orchestration for the ingestion
// pipeline. It turns a list of seed URL records into extracted Documents,
// following same-origin links up to a depth bound.
package crawl

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/leaguedoc/leaguedoc"
	"golang.org/x/sync/errgroup"
)

// Frontier configuration.
const (
	// frontierExpectedURLs is the expected number of URLs for Bloom filter sizing.
	frontierExpectedURLs = 10000
	// frontierFalsePositiveRate is the acceptable false positive rate for deduplication.
	frontierFalsePositiveRate = 0.01
	// maxCrawlURLs limits the number of URLs processed to prevent runaway crawls.
	maxCrawlURLs = 1000
)

// DefaultMaxDepth bounds link recursion from each seed.
const DefaultMaxDepth = 5

// Crawler fetches pages reachable from seed URLs and extracts their
// content into Documents. It has no persistence side effect: documents
// are returned and the caller decides where they go.
type Crawler struct {
	Fetcher      leaguedoc.Fetcher
	Extractor    leaguedoc.Extractor
	Converter    leaguedoc.Converter
	TokenCounter leaguedoc.TokenCounter
	Limiter      leaguedoc.DomainLimiter

	// MaxDepth bounds recursive link discovery. Seeds are depth 0.
	// Defaults to DefaultMaxDepth.
	MaxDepth int

	// Concurrency is the number of parallel page workers. Defaults to 10.
	Concurrency int

	// RetryDelays overrides the fetch retry backoff. Defaults to
	// DefaultRetryDelays().
	RetryDelays []time.Duration
}

// Result holds the outcome of a crawl operation.
type Result struct {
	Saved  int
	Failed int
	Bytes  int
	Tokens int
}

// ProgressEvent reports progress during a crawl operation.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	URL       string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting crawl progress.
type ProgressFunc func(event ProgressEvent)

// crawlResult holds the outcome of processing a single URL.
type crawlResult struct {
	url        string
	depth      int
	title      string
	text       string
	hash       string
	tokens     int
	discovered []string
	err        error
}

// Crawl traverses pages reachable from the seeds up to MaxDepth and
// returns one Document per unique, successfully fetched page. Per-page
// failures are reported through progress and counted, never fatal;
// only an invalid seed set or canceled context aborts the crawl.
func (c *Crawler) Crawl(ctx context.Context, seeds []leaguedoc.URLRecord, progress ProgressFunc) ([]*leaguedoc.Document, *Result, error) {
	if len(seeds) == 0 {
		return nil, &Result{}, nil
	}

	maxDepth := c.MaxDepth
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	concurrency := c.Concurrency
	if concurrency <= 0 {
		concurrency = 10
	}
	delays := c.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}

	// Crawl scope is the set of seed hosts.
	hosts := make(map[string]bool, len(seeds))
	frontier := NewFrontier(frontierExpectedURLs, frontierFalsePositiveRate)
	for _, seed := range seeds {
		u, err := url.Parse(seed.URL)
		if err != nil || u.Host == "" {
			return nil, nil, leaguedoc.Errorf(leaguedoc.EINVALID, "invalid seed URL %q", seed.URL)
		}
		hosts[u.Host] = true
		frontier.Push(leaguedoc.DiscoveredLink{URL: seed.URL, Priority: seed.Priority, Depth: 0})
	}

	if progress != nil {
		progress(ProgressEvent{Type: ProgressStarted})
	}

	workCh := make(chan leaguedoc.DiscoveredLink, concurrency)
	resultCh := make(chan crawlResult)

	var g errgroup.Group
	for i := 0; i < concurrency; i++ {
		g.Go(func() error {
			for link := range workCh {
				result := c.processURL(ctx, link, maxDepth, delays)
				select {
				case resultCh <- result:
				case <-ctx.Done():
					return ctx.Err()
				}
			}
			return nil
		})
	}

	go func() {
		_ = g.Wait()
		close(resultCh)
	}()

	var (
		docs      []*leaguedoc.Document
		result    Result
		completed int
	)

	handleResult := func(res crawlResult) {
		// Queue in-scope links before accounting, so failures still
		// contribute their discoveries.
		for _, raw := range res.discovered {
			u, err := url.Parse(raw)
			if err != nil || !hosts[u.Host] {
				continue
			}
			frontier.Push(leaguedoc.DiscoveredLink{
				URL:      raw,
				Priority: leaguedoc.DefaultPriority,
				Depth:    res.depth + 1,
			})
		}

		completed++
		if res.err != nil {
			result.Failed++
			if progress != nil {
				progress(ProgressEvent{Type: ProgressFailed, Completed: completed, URL: res.url, Error: res.err})
			}
			return
		}

		docs = append(docs, &leaguedoc.Document{
			SourceURL:   res.url,
			Title:       res.title,
			Content:     res.text,
			ContentHash: res.hash,
			Tokens:      res.tokens,
			Position:    len(docs),
			ContentType: "text/html",
			FetchedAt:   time.Now().UTC(),
		})
		result.Saved++
		result.Bytes += len(res.text)
		result.Tokens += res.tokens
		if progress != nil {
			progress(ProgressEvent{Type: ProgressCompleted, Completed: completed, URL: res.url})
		}
	}

	// Coordinator: dispatch work and collect results until the frontier
	// drains and no work is pending. Links are popped only while the URL
	// budget allows, so dispatched never exceeds maxCrawlURLs.
	dispatched := 0
	pending := 0
	var next *leaguedoc.DiscoveredLink

	for {
		if next == nil && dispatched < maxCrawlURLs {
			if link, ok := frontier.Pop(); ok {
				next = &link
			}
		}
		if next == nil && pending == 0 {
			break
		}
		if ctx.Err() != nil {
			break
		}

		if next != nil {
			select {
			case <-ctx.Done():
			case workCh <- *next:
				dispatched++
				pending++
				next = nil
			case res := <-resultCh:
				pending--
				handleResult(res)
			}
		} else {
			select {
			case <-ctx.Done():
			case res := <-resultCh:
				pending--
				handleResult(res)
			}
		}
	}

	close(workCh)

	if progress != nil {
		progress(ProgressEvent{Type: ProgressFinished, Completed: completed})
	}

	if ctx.Err() != nil {
		return docs, &result, ctx.Err()
	}
	return docs, &result, nil
}

// processURL fetches and processes a single URL.
func (c *Crawler) processURL(ctx context.Context, link leaguedoc.DiscoveredLink, maxDepth int, delays []time.Duration) crawlResult {
	result := crawlResult{url: link.URL, depth: link.Depth}

	linkURL, err := url.Parse(link.URL)
	if err != nil {
		result.err = err
		return result
	}

	if c.Limiter != nil {
		if err := c.Limiter.Wait(ctx, linkURL.Host); err != nil {
			result.err = err
			return result
		}
	}

	fetchFn := func(ctx context.Context, url string) (string, error) {
		return c.Fetcher.Fetch(ctx, url)
	}
	html, err := FetchWithRetryDelays(ctx, link.URL, fetchFn, nil, delays)
	if err != nil {
		result.err = err
		return result
	}

	// Discover links only while below the depth bound.
	if link.Depth < maxDepth {
		if links, err := ExtractLinks(html, link.URL); err == nil {
			result.discovered = links
		}
	}

	extracted, err := c.Extractor.Extract(html)
	if err != nil {
		result.err = err
		return result
	}

	text, err := c.Converter.Convert(extracted.ContentHTML)
	if err != nil {
		result.err = err
		return result
	}

	result.title = extracted.Title
	result.text = text
	result.hash = ComputeHash(text)

	if c.TokenCounter != nil {
		if tokens, err := c.TokenCounter.CountTokens(ctx, text); err == nil {
			result.tokens = tokens
		}
	}

	return result
}

// ComputeHash computes a hash of the content using xxhash.
func ComputeHash(content string) string {
	return fmt.Sprintf("%x", xxhash.Sum64String(content))
}

// TruncateURL shortens a URL for display, keeping the end which is more informative.
func TruncateURL(url string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if maxLen < 4 {
		return url[:min(len(url), maxLen)]
	}
	if len(url) <= maxLen {
		return url
	}
	return "..." + url[len(url)-maxLen+3:]
}

// FormatBytes formats bytes in human-readable form.
func FormatBytes(bytes int) string {
	const (
		kb = 1024
		mb = kb * 1024
	)
	switch {
	case bytes >= mb:
		return fmt.Sprintf("%.1f MB", float64(bytes)/float64(mb))
	case bytes >= kb:
		return fmt.Sprintf("%.1f KB", float64(bytes)/float64(kb))
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}

// FormatTokens formats token count in human-readable form.
func FormatTokens(tokens int) string {
	if tokens < 1000 {
		return fmt.Sprintf("~%d tokens", tokens)
	}
	return fmt.Sprintf("~%dk tokens", (tokens+500)/1000)
}
