package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/civicdata/clean"
)

// Ensure LoggingCache implements clean.Cache.
var _ clean.Cache = (*LoggingCache)(nil)

// LoggingCache wraps a Cache with download logging. Reads and JSON writes
// are quiet; downloads are the interesting events (cache hit vs network).
type LoggingCache struct {
	next   clean.Cache
	logger *slog.Logger
}

// NewLoggingCache creates a new LoggingCache.
func NewLoggingCache(next clean.Cache, logger *slog.Logger) *LoggingCache {
	return &LoggingCache{next: next, logger: logger}
}

// Read delegates to the wrapped cache.
func (c *LoggingCache) Read(path string) (string, error) {
	return c.next.Read(path)
}

// WriteJSON delegates to the wrapped cache.
func (c *LoggingCache) WriteJSON(path string, v any) error {
	return c.next.WriteJSON(path, v)
}

// ReadJSON delegates to the wrapped cache.
func (c *LoggingCache) ReadJSON(path string, v any) error {
	return c.next.ReadJSON(path, v)
}

// Download delegates to the wrapped cache and logs the outcome.
func (c *LoggingCache) Download(ctx context.Context, path string, url string) (asset *clean.StoredAsset, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"path", path,
			"url", url,
			"duration", time.Since(begin),
			"err", err,
		}
		if asset != nil {
			attrs = append(attrs, "bytes", asset.Size, "cached", asset.FromCache)
		}
		c.logger.Info("download", attrs...)
	}(time.Now())
	return c.next.Download(ctx, path, url)
}
