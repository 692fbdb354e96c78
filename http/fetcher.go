package http

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/leaguedoc/leaguedoc"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = 10 * time.Second

// Ensure Fetcher implements leaguedoc.Fetcher at compile time.
var _ leaguedoc.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves HTML content from URLs using plain HTTP requests.
// Unlike rod.Fetcher, this does not execute JavaScript and is suitable
// for static sites only.
type Fetcher struct {
	client  *http.Client
	timeout time.Duration
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithClient sets the underlying HTTP client, overriding the timeout-based
// default. Useful for tests with httptest servers.
func WithClient(client *http.Client) Option {
	return func(f *Fetcher) {
		f.client = client
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout: DefaultFetchTimeout,
	}
	for _, opt := range opts {
		opt(f)
	}

	if f.client == nil {
		f.client = &http.Client{
			Timeout: f.timeout,
		}
	}

	return f
}

// Fetch retrieves the HTML content from the given URL.
// Non-2xx responses and non-HTML content types return EUNAVAILABLE so the
// crawler can skip the page.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", leaguedoc.Errorf(leaguedoc.EINVALID, "creating request for %s: %v", url, err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", leaguedoc.Errorf(leaguedoc.EUNAVAILABLE, "fetching %s: %v", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", leaguedoc.Errorf(leaguedoc.EUNAVAILABLE, "HTTP %d for %s", resp.StatusCode, url)
	}

	if ct := resp.Header.Get("Content-Type"); ct != "" && !isHTML(ct) {
		return "", leaguedoc.Errorf(leaguedoc.EUNAVAILABLE, "skipping non-HTML content type %q for %s", ct, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", leaguedoc.Errorf(leaguedoc.EUNAVAILABLE, "reading %s: %v", url, err)
	}

	return string(body), nil
}

// isHTML reports whether a Content-Type header describes an HTML page.
func isHTML(contentType string) bool {
	ct := strings.ToLower(contentType)
	return strings.Contains(ct, "text/html") || strings.Contains(ct, "application/xhtml")
}

// Close releases resources. For HTTP fetcher this is a no-op since
// http.Client doesn't require explicit cleanup.
func (f *Fetcher) Close() error {
	return nil
}
