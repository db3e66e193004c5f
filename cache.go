package clean

import "context"

// StoredAsset describes a file materialized in the cache.
type StoredAsset struct {
	// Path is the absolute local path of the stored file.
	Path string

	// ContentHash is the xxhash of the file contents, hex encoded.
	ContentHash string

	// Size is the file size in bytes.
	Size int64

	// FromCache is true when the file was already present and no
	// network request was made.
	FromCache bool
}

// Cache is a path-addressed local store for fetched pages, structured
// metadata, and downloaded file assets. All reads and downloads are keyed
// by paths relative to the cache root; structured data may live outside
// the cache root (the metadata index lives in the data directory).
//
// The cache assumes a single process and a single goroutine; it performs
// no locking.
type Cache interface {
	// Read returns the contents of a previously stored file.
	Read(path string) (string, error)

	// WriteJSON marshals v and writes it to path, creating parent
	// directories as needed. The path is used as given.
	WriteJSON(path string, v any) error

	// ReadJSON reads the file at path and unmarshals it into v.
	// Returns ENOTFOUND if the file does not exist.
	ReadJSON(path string, v any) error

	// Download fetches url into path (relative to the cache root) and
	// returns the realized file. If the target already exists the
	// download is skipped entirely and FromCache is true.
	Download(ctx context.Context, path string, url string) (*StoredAsset, error)
}
