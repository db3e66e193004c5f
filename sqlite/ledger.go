package sqlite

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/civicdata/clean"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ clean.LedgerService = (*LedgerService)(nil)

// LedgerService implements clean.LedgerService using SQLite.
type LedgerService struct {
	db *DB
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(db *DB) *LedgerService {
	return &LedgerService{db: db}
}

// RecordDownload appends a download to the ledger.
func (s *LedgerService) RecordDownload(ctx context.Context, d *clean.Download) error {
	if err := d.Validate(); err != nil {
		return err
	}

	d.ID = uuid.New().String()
	d.CreatedAt = time.Now().UTC()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO downloads (id, agency, asset_url, local_path, content_hash, size, from_cache, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, d.ID, d.Agency, d.AssetURL, d.LocalPath, d.ContentHash, d.Size, boolToInt(d.FromCache),
		d.CreatedAt.Format(time.RFC3339))

	return err
}

// FindDownloads retrieves downloads matching the filter, newest first.
func (s *LedgerService) FindDownloads(ctx context.Context, filter clean.DownloadFilter) ([]*clean.Download, error) {
	var query strings.Builder
	var args []any

	query.WriteString(`
		SELECT id, agency, asset_url, local_path, content_hash, size, from_cache, created_at
		FROM downloads
		WHERE 1=1`)

	if filter.Agency != nil {
		query.WriteString(" AND agency = ?")
		args = append(args, *filter.Agency)
	}

	query.WriteString(" ORDER BY created_at DESC, id")

	if filter.Limit > 0 {
		query.WriteString(" LIMIT ?")
		args = append(args, filter.Limit)
	}
	if filter.Offset > 0 {
		query.WriteString(" OFFSET ?")
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var downloads []*clean.Download
	for rows.Next() {
		var d clean.Download
		var fromCache int
		var createdAt string

		if err := rows.Scan(&d.ID, &d.Agency, &d.AssetURL, &d.LocalPath, &d.ContentHash,
			&d.Size, &fromCache, &createdAt); err != nil {
			return nil, err
		}

		d.FromCache = fromCache != 0
		d.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse created_at: %w", err)
		}

		downloads = append(downloads, &d)
	}
	return downloads, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
