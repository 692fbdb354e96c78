package leaguedoc

import (
	"context"
	"regexp"
	"strings"
	"time"
)

// DefaultPriority is assigned to sitemap entries without a <priority> element.
const DefaultPriority = 0.5

// URLRecord is a single entry extracted from a sitemap.
type URLRecord struct {
	URL             string     `json:"url"`
	LastModified    *time.Time `json:"lastModified,omitempty"`
	ChangeFrequency string     `json:"changeFrequency,omitempty"`
	Priority        float64    `json:"priority"`
}

// SitemapService extracts URL records from website sitemaps.
type SitemapService interface {
	// DiscoverURLs fetches and parses the sitemap at sitemapURL.
	// Sitemap indexes are resolved recursively; a failing sub-sitemap is
	// skipped without aborting the whole operation. Entries missing a
	// location are skipped. The result is deduplicated by URL.
	//
	// The filter can be used to include/exclude URLs by pattern.
	// If filter is nil, all URLs are returned.
	DiscoverURLs(ctx context.Context, sitemapURL string, filter *URLFilter) ([]URLRecord, error)
}

// URLFilter specifies patterns for including/excluding URLs.
type URLFilter struct {
	// Include patterns - if set, only URLs matching at least one pattern are included.
	Include []*regexp.Regexp

	// Exclude patterns - URLs matching any pattern are excluded.
	// Exclude is applied after Include.
	Exclude []*regexp.Regexp

	// Blacklist keywords - URLs containing any of these substrings are excluded.
	Blacklist []string
}

// Match returns true if the URL passes the filter.
// If the filter is nil, all URLs pass.
func (f *URLFilter) Match(url string) bool {
	if f == nil {
		return true
	}

	if len(f.Include) > 0 {
		matched := false
		for _, re := range f.Include {
			if re.MatchString(url) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}

	for _, re := range f.Exclude {
		if re.MatchString(url) {
			return false
		}
	}

	for _, keyword := range f.Blacklist {
		if keyword != "" && strings.Contains(url, keyword) {
			return false
		}
	}

	return true
}

// MergeURLs combines seed URLs with discovered records, deduplicating by
// exact URL. Seeds come first; discovered records keep their metadata and
// seeds get DefaultPriority. Order within each group is preserved.
func MergeURLs(seeds []string, discovered []URLRecord) []URLRecord {
	seen := make(map[string]bool, len(seeds)+len(discovered))
	merged := make([]URLRecord, 0, len(seeds)+len(discovered))

	for _, u := range seeds {
		if u == "" || seen[u] {
			continue
		}
		seen[u] = true
		merged = append(merged, URLRecord{URL: u, Priority: DefaultPriority})
	}

	for _, rec := range discovered {
		if rec.URL == "" || seen[rec.URL] {
			continue
		}
		seen[rec.URL] = true
		merged = append(merged, rec)
	}

	return merged
}
