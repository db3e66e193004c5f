package mock

import (
	"context"

	"github.com/civicdata/clean"
)

var _ clean.LedgerService = (*LedgerService)(nil)

// LedgerService is a mock implementation of clean.LedgerService.
type LedgerService struct {
	RecordDownloadFn func(ctx context.Context, d *clean.Download) error
	FindDownloadsFn  func(ctx context.Context, filter clean.DownloadFilter) ([]*clean.Download, error)
}

func (s *LedgerService) RecordDownload(ctx context.Context, d *clean.Download) error {
	return s.RecordDownloadFn(ctx, d)
}

func (s *LedgerService) FindDownloads(ctx context.Context, filter clean.DownloadFilter) ([]*clean.Download, error) {
	return s.FindDownloadsFn(ctx, filter)
}
