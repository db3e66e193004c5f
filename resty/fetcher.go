// Package resty provides an HTTP implementation of clean.Fetcher using
// github.com/go-resty/resty. Both sites the scraper talks to serve static
// HTML, so a plain HTTP client is sufficient.
package resty

import (
	"context"
	"io"
	"time"

	"github.com/civicdata/clean"
	"github.com/go-resty/resty/v2"
)

// DefaultTimeout is the default timeout for page fetches. Asset downloads
// are not subject to it; large video files can legitimately take longer.
const DefaultTimeout = 30 * time.Second

// Ensure Fetcher implements clean.Fetcher at compile time.
var _ clean.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves pages and asset bytes over HTTP.
type Fetcher struct {
	client *resty.Client
	assets *resty.Client
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for page fetches.
// Defaults to DefaultTimeout if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.client.SetTimeout(d)
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		client: resty.New().SetTimeout(DefaultTimeout),
		// Asset responses are streamed, not buffered, so the client
		// must not parse or close the body.
		assets: resty.New().SetDoNotParseResponse(true),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch retrieves the page at url and returns its body.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	res, err := f.client.R().
		SetContext(ctx).
		Get(url)
	if err != nil {
		return "", clean.Errorf(clean.EUNAVAILABLE, "fetch %s: %v", url, err)
	}
	if res.IsError() {
		return "", clean.Errorf(clean.EUNAVAILABLE, "fetch %s: HTTP %d", url, res.StatusCode())
	}
	return res.String(), nil
}

// FetchAsset retrieves the asset at url as a stream.
// The caller must close the returned reader.
func (f *Fetcher) FetchAsset(ctx context.Context, url string) (io.ReadCloser, error) {
	res, err := f.assets.R().
		SetContext(ctx).
		Get(url)
	if err != nil {
		return nil, clean.Errorf(clean.EUNAVAILABLE, "fetch asset %s: %v", url, err)
	}
	if res.StatusCode() < 200 || res.StatusCode() > 299 {
		body := res.RawBody()
		if body != nil {
			body.Close()
		}
		return nil, clean.Errorf(clean.EUNAVAILABLE, "fetch asset %s: HTTP %d", url, res.StatusCode())
	}
	return res.RawBody(), nil
}

// Close releases client resources. The underlying transports hold no
// state beyond idle connections, so this is a no-op.
func (f *Fetcher) Close() error {
	return nil
}
