// Package fs provides the disk-backed cache for fetched pages, metadata
// files, and downloaded assets.
package fs

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
	"github.com/civicdata/clean"
)

// Ensure Cache implements clean.Cache at compile time.
var _ clean.Cache = (*Cache)(nil)

// Cache stores files under a root directory, keyed by relative path.
// Downloads are idempotent: a path that already exists on disk is never
// fetched again. The cache assumes a single process and performs no
// locking.
type Cache struct {
	root    string
	fetcher clean.Fetcher
}

// NewCache creates a Cache rooted at dir. The fetcher supplies asset
// bytes for Download.
func NewCache(dir string, fetcher clean.Fetcher) *Cache {
	return &Cache{root: dir, fetcher: fetcher}
}

// Path returns the absolute path for a relative cache key.
func (c *Cache) Path(path string) string {
	return filepath.Join(c.root, path)
}

// Read returns the contents of a previously stored file.
func (c *Cache) Read(path string) (string, error) {
	b, err := os.ReadFile(c.Path(path))
	if os.IsNotExist(err) {
		return "", clean.Errorf(clean.ENOTFOUND, "cached file %q not found", path)
	} else if err != nil {
		return "", clean.Errorf(clean.EINTERNAL, "read cached file %q: %v", path, err)
	}
	return string(b), nil
}

// WriteJSON marshals v and writes it to path, creating parent directories
// as needed. The path is used as given, so callers may write outside the
// cache root (the metadata index lives in the data directory).
func (c *Cache) WriteJSON(path string, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return clean.Errorf(clean.EINTERNAL, "marshal %q: %v", path, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return clean.Errorf(clean.EINTERNAL, "create directory for %q: %v", path, err)
	}
	if err := os.WriteFile(path, b, 0644); err != nil {
		return clean.Errorf(clean.EINTERNAL, "write %q: %v", path, err)
	}
	return nil
}

// ReadJSON reads the file at path and unmarshals it into v.
func (c *Cache) ReadJSON(path string, v any) error {
	b, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return clean.Errorf(clean.ENOTFOUND, "metadata file %q not found", path)
	} else if err != nil {
		return clean.Errorf(clean.EINTERNAL, "read %q: %v", path, err)
	}
	if err := json.Unmarshal(b, v); err != nil {
		return clean.Errorf(clean.EMALFORMED, "parse %q: %v", path, err)
	}
	return nil
}

// Download fetches url into path unless the target already exists.
// Bytes stream through an xxhash digest to a temporary sibling file which
// is renamed into place, so an interrupted download never leaves a
// truncated file that would satisfy the existence check on the next run.
func (c *Cache) Download(ctx context.Context, path string, url string) (*clean.StoredAsset, error) {
	fullPath := c.Path(path)

	if info, err := os.Stat(fullPath); err == nil {
		hash, err := hashFile(fullPath)
		if err != nil {
			return nil, err
		}
		return &clean.StoredAsset{
			Path:        fullPath,
			ContentHash: hash,
			Size:        info.Size(),
			FromCache:   true,
		}, nil
	}

	body, err := c.fetcher.FetchAsset(ctx, url)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return nil, clean.Errorf(clean.EINTERNAL, "create directory for %q: %v", path, err)
	}

	tmpPath := fullPath + ".tmp"
	f, err := os.Create(tmpPath)
	if err != nil {
		return nil, clean.Errorf(clean.EINTERNAL, "create %q: %v", tmpPath, err)
	}

	digest := xxhash.New()
	size, err := io.Copy(io.MultiWriter(f, digest), body)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(tmpPath)
		return nil, clean.Errorf(clean.EINTERNAL, "store %q: %v", path, err)
	}

	if err := os.Rename(tmpPath, fullPath); err != nil {
		os.Remove(tmpPath)
		return nil, clean.Errorf(clean.EINTERNAL, "finalize %q: %v", path, err)
	}

	return &clean.StoredAsset{
		Path:        fullPath,
		ContentHash: fmt.Sprintf("%x", digest.Sum64()),
		Size:        size,
		FromCache:   false,
	}, nil
}

// hashFile computes the xxhash of an existing file.
func hashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", clean.Errorf(clean.EINTERNAL, "open %q: %v", path, err)
	}
	defer f.Close()

	digest := xxhash.New()
	if _, err := io.Copy(digest, f); err != nil {
		return "", clean.Errorf(clean.EINTERNAL, "hash %q: %v", path, err)
	}
	return fmt.Sprintf("%x", digest.Sum64()), nil
}
