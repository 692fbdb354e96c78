// Package http provides HTTP-based implementations of leaguedoc services:
// sitemap URL discovery and static page fetching.
package http

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/beevik/etree"
	"github.com/leaguedoc/leaguedoc"
)

// Ensure SitemapService implements leaguedoc.SitemapService.
var _ leaguedoc.SitemapService = (*SitemapService)(nil)

// SitemapService extracts URL records from website sitemaps via HTTP.
type SitemapService struct {
	client *http.Client
	logger *slog.Logger
}

// NewSitemapService creates a new SitemapService with the given HTTP client.
// If client is nil, http.DefaultClient is used. If logger is nil, skipped
// sub-sitemaps are logged to the default logger.
func NewSitemapService(client *http.Client, logger *slog.Logger) *SitemapService {
	if client == nil {
		client = http.DefaultClient
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &SitemapService{client: client, logger: logger}
}

// DiscoverURLs fetches and parses the sitemap at sitemapURL.
//
// A <sitemapindex> root is resolved recursively; failure to fetch or parse
// one sub-sitemap is logged and skipped so the remaining sub-sitemaps still
// contribute. Failure at the top level returns EUNAVAILABLE (fetch) or
// EINVALID (parse). The result is deduplicated by URL, in document order.
func (s *SitemapService) DiscoverURLs(ctx context.Context, sitemapURL string, filter *leaguedoc.URLFilter) ([]leaguedoc.URLRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if sitemapURL == "" {
		return nil, leaguedoc.Errorf(leaguedoc.EINVALID, "sitemap URL required")
	}

	seenSitemaps := make(map[string]bool)
	seenURLs := make(map[string]bool)

	records, err := s.processSitemap(ctx, sitemapURL, seenSitemaps, seenURLs, true)
	if err != nil {
		return nil, err
	}

	if filter == nil {
		return records, nil
	}

	filtered := make([]leaguedoc.URLRecord, 0, len(records))
	for _, rec := range records {
		if filter.Match(rec.URL) {
			filtered = append(filtered, rec)
		}
	}
	return filtered, nil
}

// processSitemap fetches and parses one sitemap document, recursing into
// sub-sitemaps when the root is a <sitemapindex>. topLevel controls whether
// failures propagate or are absorbed.
func (s *SitemapService) processSitemap(ctx context.Context, sitemapURL string, seenSitemaps, seenURLs map[string]bool, topLevel bool) ([]leaguedoc.URLRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Guard against sitemap-index cycles.
	if seenSitemaps[sitemapURL] {
		return nil, nil
	}
	seenSitemaps[sitemapURL] = true

	body, err := s.fetchURL(ctx, sitemapURL)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(body); err != nil {
		return nil, leaguedoc.Errorf(leaguedoc.EINVALID, "parsing sitemap XML at %s: %v", sitemapURL, err)
	}

	root := doc.Root()
	if root == nil {
		return nil, leaguedoc.Errorf(leaguedoc.EINVALID, "empty sitemap XML at %s", sitemapURL)
	}

	if root.Tag == "sitemapindex" {
		return s.processSitemapIndex(ctx, root, seenSitemaps, seenURLs)
	}

	return parseURLSet(root, seenURLs), nil
}

// processSitemapIndex resolves a <sitemapindex> element. A failing
// sub-sitemap reduces but never zeroes the result.
func (s *SitemapService) processSitemapIndex(ctx context.Context, root *etree.Element, seenSitemaps, seenURLs map[string]bool) ([]leaguedoc.URLRecord, error) {
	var all []leaguedoc.URLRecord

	for _, sitemap := range root.SelectElements("sitemap") {
		loc := sitemap.SelectElement("loc")
		if loc == nil {
			continue
		}
		subURL := strings.TrimSpace(loc.Text())
		if subURL == "" {
			continue
		}

		records, err := s.processSitemap(ctx, subURL, seenSitemaps, seenURLs, false)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			s.logger.Warn("skipping sub-sitemap", "url", subURL, "err", err)
			continue
		}
		all = append(all, records...)
	}

	return all, nil
}

// parseURLSet extracts URL records from a <urlset> element.
// Entries missing <loc> are skipped; priority defaults to 0.5.
func parseURLSet(root *etree.Element, seenURLs map[string]bool) []leaguedoc.URLRecord {
	var records []leaguedoc.URLRecord
	for _, urlEl := range root.SelectElements("url") {
		loc := urlEl.SelectElement("loc")
		if loc == nil {
			continue
		}
		u := strings.TrimSpace(loc.Text())
		if u == "" || seenURLs[u] {
			continue
		}
		seenURLs[u] = true

		rec := leaguedoc.URLRecord{URL: u, Priority: leaguedoc.DefaultPriority}

		if el := urlEl.SelectElement("lastmod"); el != nil {
			if t, ok := parseLastmod(strings.TrimSpace(el.Text())); ok {
				rec.LastModified = &t
			}
		}
		if el := urlEl.SelectElement("changefreq"); el != nil {
			rec.ChangeFrequency = strings.TrimSpace(el.Text())
		}
		if el := urlEl.SelectElement("priority"); el != nil {
			if p, err := strconv.ParseFloat(strings.TrimSpace(el.Text()), 64); err == nil {
				rec.Priority = p
			}
		}

		records = append(records, rec)
	}
	return records
}

// parseLastmod parses the W3C datetime formats sitemaps use for <lastmod>.
func parseLastmod(value string) (time.Time, bool) {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05-07:00", "2006-01-02"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// fetchURL fetches a URL and returns the response body.
func (s *SitemapService) fetchURL(ctx context.Context, targetURL string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return nil, leaguedoc.Errorf(leaguedoc.EINVALID, "creating request for %s: %v", targetURL, err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, leaguedoc.Errorf(leaguedoc.EUNAVAILABLE, "fetching %s: %v", targetURL, err)
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, leaguedoc.Errorf(leaguedoc.EUNAVAILABLE, "HTTP %d for %s", resp.StatusCode, targetURL)
	}

	return resp.Body, nil
}
