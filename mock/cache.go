package mock

import (
	"context"

	"github.com/civicdata/clean"
)

var _ clean.Cache = (*Cache)(nil)

// Cache is a mock implementation of clean.Cache.
type Cache struct {
	ReadFn      func(path string) (string, error)
	WriteJSONFn func(path string, v any) error
	ReadJSONFn  func(path string, v any) error
	DownloadFn  func(ctx context.Context, path string, url string) (*clean.StoredAsset, error)
}

func (c *Cache) Read(path string) (string, error) {
	return c.ReadFn(path)
}

func (c *Cache) WriteJSON(path string, v any) error {
	return c.WriteJSONFn(path, v)
}

func (c *Cache) ReadJSON(path string, v any) error {
	return c.ReadJSONFn(path, v)
}

func (c *Cache) Download(ctx context.Context, path string, url string) (*clean.StoredAsset, error) {
	return c.DownloadFn(ctx, path, url)
}
