// Package slog provides logging decorators for leaguedoc services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/leaguedoc/leaguedoc"
)

// Ensure LoggingSitemapService implements leaguedoc.SitemapService.
var _ leaguedoc.SitemapService = (*LoggingSitemapService)(nil)

// LoggingSitemapService wraps a SitemapService with debug logging.
type LoggingSitemapService struct {
	next   leaguedoc.SitemapService
	logger *slog.Logger
}

// NewLoggingSitemapService creates a new LoggingSitemapService.
func NewLoggingSitemapService(next leaguedoc.SitemapService, logger *slog.Logger) *LoggingSitemapService {
	return &LoggingSitemapService{next: next, logger: logger}
}

// DiscoverURLs delegates to the wrapped service and logs the operation.
func (s *LoggingSitemapService) DiscoverURLs(ctx context.Context, sitemapURL string, filter *leaguedoc.URLFilter) (records []leaguedoc.URLRecord, err error) {
	defer func(begin time.Time) {
		s.logger.Info("sitemap discovery",
			"url", sitemapURL,
			"count", len(records),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.DiscoverURLs(ctx, sitemapURL, filter)
}
