package mock

import (
	"context"

	"github.com/leaguedoc/leaguedoc"
)

var _ leaguedoc.SitemapService = (*SitemapService)(nil)

// SitemapService is a mock implementation of leaguedoc.SitemapService.
type SitemapService struct {
	DiscoverURLsFn func(ctx context.Context, sitemapURL string, filter *leaguedoc.URLFilter) ([]leaguedoc.URLRecord, error)
}

func (s *SitemapService) DiscoverURLs(ctx context.Context, sitemapURL string, filter *leaguedoc.URLFilter) ([]leaguedoc.URLRecord, error) {
	return s.DiscoverURLsFn(ctx, sitemapURL, filter)
}
