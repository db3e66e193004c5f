package mock

import (
	"context"
	"io"

	"github.com/civicdata/clean"
)

var _ clean.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of clean.Fetcher.
type Fetcher struct {
	FetchFn      func(ctx context.Context, url string) (string, error)
	FetchAssetFn func(ctx context.Context, url string) (io.ReadCloser, error)
	CloseFn      func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) FetchAsset(ctx context.Context, url string) (io.ReadCloser, error) {
	return f.FetchAssetFn(ctx, url)
}

func (f *Fetcher) Close() error {
	if f.CloseFn == nil {
		return nil
	}
	return f.CloseFn()
}
