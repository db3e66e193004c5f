package clean

import (
	"context"
	"io"
)

// Fetcher retrieves content from URLs over HTTP.
type Fetcher interface {
	// Fetch performs a GET and returns the response body as a string.
	// Non-2xx responses return an EUNAVAILABLE error.
	Fetch(ctx context.Context, url string) (html string, err error)

	// FetchAsset performs a GET and returns the response body as a
	// stream, for binary assets too large to hold in memory. The caller
	// must close the returned reader.
	FetchAsset(ctx context.Context, url string) (io.ReadCloser, error)

	// Close releases client resources.
	Close() error
}

// Limiter throttles outbound requests. Implementations block in Wait
// until the next request is allowed.
type Limiter interface {
	// Wait blocks until the rate limit allows a request.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context) error
}
