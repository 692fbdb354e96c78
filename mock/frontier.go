package mock

import (
	"context"

	"github.com/leaguedoc/leaguedoc"
)

var _ leaguedoc.URLFrontier = (*URLFrontier)(nil)

// URLFrontier is a mock implementation of leaguedoc.URLFrontier.
type URLFrontier struct {
	PushFn func(link leaguedoc.DiscoveredLink) bool
	PopFn  func() (leaguedoc.DiscoveredLink, bool)
	LenFn  func() int
	SeenFn func(url string) bool
}

func (f *URLFrontier) Push(link leaguedoc.DiscoveredLink) bool {
	return f.PushFn(link)
}

func (f *URLFrontier) Pop() (leaguedoc.DiscoveredLink, bool) {
	return f.PopFn()
}

func (f *URLFrontier) Len() int {
	return f.LenFn()
}

func (f *URLFrontier) Seen(url string) bool {
	return f.SeenFn(url)
}

var _ leaguedoc.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter is a mock implementation of leaguedoc.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (l *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return l.WaitFn(ctx, domain)
}
