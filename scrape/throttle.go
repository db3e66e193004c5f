package scrape

import (
	"context"
	"io"
	"time"

	"github.com/civicdata/clean"
	"golang.org/x/time/rate"
)

var _ clean.Limiter = (*Throttle)(nil)

// Throttle enforces a fixed delay between requests using a burst-1 token
// bucket. No jitter, no backoff, no distinction between success and
// failure outcomes.
type Throttle struct {
	limiter *rate.Limiter
}

// NewThrottle creates a Throttle allowing one request per delay.
// A non-positive delay never blocks.
func NewThrottle(delay time.Duration) *Throttle {
	if delay <= 0 {
		return &Throttle{limiter: rate.NewLimiter(rate.Inf, 1)}
	}
	return &Throttle{limiter: rate.NewLimiter(rate.Every(delay), 1)}
}

// Wait blocks until the next request is allowed.
func (t *Throttle) Wait(ctx context.Context) error {
	return t.limiter.Wait(ctx)
}

var _ clean.Fetcher = (*ThrottledFetcher)(nil)

// ThrottledFetcher decorates a Fetcher so that every request, page or
// asset, waits on the same limiter. Wrapping the fetcher rather than the
// call sites guarantees the delay applies uniformly to each network
// request the pipeline makes.
type ThrottledFetcher struct {
	next    clean.Fetcher
	limiter clean.Limiter
}

// NewThrottledFetcher creates a throttled Fetcher decorator.
func NewThrottledFetcher(next clean.Fetcher, limiter clean.Limiter) *ThrottledFetcher {
	return &ThrottledFetcher{next: next, limiter: limiter}
}

// Fetch waits for the limiter and delegates.
func (f *ThrottledFetcher) Fetch(ctx context.Context, url string) (string, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return "", err
	}
	return f.next.Fetch(ctx, url)
}

// FetchAsset waits for the limiter and delegates.
func (f *ThrottledFetcher) FetchAsset(ctx context.Context, url string) (io.ReadCloser, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return f.next.FetchAsset(ctx, url)
}

// Close delegates to the wrapped fetcher.
func (f *ThrottledFetcher) Close() error {
	return f.next.Close()
}
