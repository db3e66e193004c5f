package clean

import (
	"context"
	"time"
)

// Download is a ledger record of one realized asset download.
type Download struct {
	ID          string    `json:"id"`
	Agency      string    `json:"agency"`
	AssetURL    string    `json:"assetUrl"`
	LocalPath   string    `json:"localPath"`
	ContentHash string    `json:"contentHash"`
	Size        int64     `json:"size"`
	FromCache   bool      `json:"fromCache"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Validate returns an error if the download contains invalid fields.
func (d *Download) Validate() error {
	if d.Agency == "" {
		return Errorf(EINVALID, "download agency required")
	}
	if d.AssetURL == "" {
		return Errorf(EINVALID, "download asset URL required")
	}
	if d.LocalPath == "" {
		return Errorf(EINVALID, "download local path required")
	}
	return nil
}

// LedgerService records realized downloads and answers queries about past
// runs. The ledger is an observer of the pipeline: a failed ledger write
// must not undo a completed download.
type LedgerService interface {
	// RecordDownload appends a download to the ledger.
	RecordDownload(ctx context.Context, d *Download) error

	// FindDownloads retrieves downloads matching the filter, newest first.
	FindDownloads(ctx context.Context, filter DownloadFilter) ([]*Download, error)
}

// DownloadFilter represents a filter for FindDownloads.
type DownloadFilter struct {
	Agency *string `json:"agency"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
