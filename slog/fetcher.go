// Package slog provides logging decorators for the scraper's collaborators.
package slog

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/civicdata/clean"
)

// Ensure LoggingFetcher implements clean.Fetcher.
var _ clean.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with request logging.
type LoggingFetcher struct {
	next   clean.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next clean.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch delegates to the wrapped fetcher and logs the request.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (html string, err error) {
	defer func(begin time.Time) {
		f.logger.Info("fetch page",
			"url", url,
			"bytes", len(html),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.Fetch(ctx, url)
}

// FetchAsset delegates to the wrapped fetcher and logs the request.
// The body is streamed by the caller, so only the request itself is timed.
func (f *LoggingFetcher) FetchAsset(ctx context.Context, url string) (body io.ReadCloser, err error) {
	defer func(begin time.Time) {
		f.logger.Info("fetch asset",
			"url", url,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.FetchAsset(ctx, url)
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}
