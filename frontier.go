package leaguedoc

import "context"

// DiscoveredLink represents a URL queued for crawling.
type DiscoveredLink struct {
	URL string

	// Priority orders the crawl queue (higher first). Sitemap priorities
	// map onto this scale.
	Priority float64

	// Depth is the link distance from the nearest seed. Seeds are depth 0.
	Depth int
}

// URLFrontier manages a crawl queue with deduplication.
// Implementations must be safe for concurrent use.
type URLFrontier interface {
	// Push adds a link to the frontier.
	// Returns false if the URL has already been seen.
	Push(link DiscoveredLink) bool

	// Pop returns the next URL by priority.
	// Returns false if the frontier is empty.
	Pop() (DiscoveredLink, bool)

	// Len returns the number of URLs in the queue.
	Len() int

	// Seen returns true if the URL has been processed or queued.
	Seen(url string) bool
}

// DomainLimiter provides per-domain rate limiting.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}
