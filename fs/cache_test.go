package fs_test

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/civicdata/clean"
	"github.com/civicdata/clean/fs"
	"github.com/civicdata/clean/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Story: Idempotent fetch-and-store
// A download happens at most once per cache path; re-runs resume instead
// of redoing work.

func TestCache_Download_FetchesOnFirstCall(t *testing.T) {
	t.Parallel()

	// Given an empty cache
	var fetches int
	fetcher := &mock.Fetcher{
		FetchAssetFn: func(_ context.Context, url string) (io.ReadCloser, error) {
			fetches++
			return io.NopCloser(strings.NewReader("asset bytes")), nil
		},
	}
	cache := fs.NewCache(t.TempDir(), fetcher)

	// When I download an asset
	asset, err := cache.Download(context.Background(), "ca_oakland_pd/assets/42/report.pdf", "https://records.example.com/docs/report.pdf")

	// Then the file is materialized with its hash and size
	require.NoError(t, err)
	assert.Equal(t, 1, fetches)
	assert.False(t, asset.FromCache)
	assert.EqualValues(t, len("asset bytes"), asset.Size)
	assert.NotEmpty(t, asset.ContentHash)

	content, err := os.ReadFile(asset.Path)
	require.NoError(t, err)
	assert.Equal(t, "asset bytes", string(content))

	// And no temp file is left behind
	_, err = os.Stat(asset.Path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestCache_Download_SkipsExistingFile(t *testing.T) {
	t.Parallel()

	// Given a cache that already holds the target path
	var fetches int
	fetcher := &mock.Fetcher{
		FetchAssetFn: func(_ context.Context, url string) (io.ReadCloser, error) {
			fetches++
			return io.NopCloser(strings.NewReader("asset bytes")), nil
		},
	}
	cache := fs.NewCache(t.TempDir(), fetcher)

	first, err := cache.Download(context.Background(), "slug/assets/1/a.pdf", "https://example.com/a.pdf")
	require.NoError(t, err)

	// When I download the same path again
	second, err := cache.Download(context.Background(), "slug/assets/1/a.pdf", "https://example.com/a.pdf")

	// Then zero additional network requests were made and the same local
	// path comes back
	require.NoError(t, err)
	assert.Equal(t, 1, fetches)
	assert.True(t, second.FromCache)
	assert.Equal(t, first.Path, second.Path)
	assert.Equal(t, first.ContentHash, second.ContentHash)
}

func TestCache_Download_FetchErrorLeavesNoFile(t *testing.T) {
	t.Parallel()

	fetcher := &mock.Fetcher{
		FetchAssetFn: func(_ context.Context, url string) (io.ReadCloser, error) {
			return nil, clean.Errorf(clean.EUNAVAILABLE, "fetch asset %s: HTTP 503", url)
		},
	}
	cache := fs.NewCache(t.TempDir(), fetcher)

	_, err := cache.Download(context.Background(), "slug/assets/1/a.pdf", "https://example.com/a.pdf")
	require.Error(t, err)
	assert.Equal(t, clean.EUNAVAILABLE, clean.ErrorCode(err))

	_, err = os.Stat(cache.Path("slug/assets/1/a.pdf"))
	assert.True(t, os.IsNotExist(err))
}

func TestCache_ReadReturnsStoredContents(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cache := fs.NewCache(dir, &mock.Fetcher{})

	require.NoError(t, os.MkdirAll(filepath.Join(dir, "slug"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "slug", "index.html"), []byte("<html/>"), 0644))

	html, err := cache.Read("slug/index.html")
	require.NoError(t, err)
	assert.Equal(t, "<html/>", html)
}

func TestCache_Read_Missing(t *testing.T) {
	t.Parallel()

	cache := fs.NewCache(t.TempDir(), &mock.Fetcher{})

	_, err := cache.Read("slug/missing.html")
	require.Error(t, err)
	assert.Equal(t, clean.ENOTFOUND, clean.ErrorCode(err))
}

func TestCache_JSONRoundTrip(t *testing.T) {
	t.Parallel()

	cache := fs.NewCache(t.TempDir(), &mock.Fetcher{})
	path := filepath.Join(t.TempDir(), "data", "ca_oakland_pd.json")

	records := []clean.AssetRecord{
		{AssetURL: "/cases/1", Name: "IAD 19-0001"},
		{AssetURL: "/cases/2", Name: "IAD 19-0002"},
	}
	require.NoError(t, cache.WriteJSON(path, records))

	var got []clean.AssetRecord
	require.NoError(t, cache.ReadJSON(path, &got))
	assert.Equal(t, records, got)
}

func TestCache_ReadJSON_Missing(t *testing.T) {
	t.Parallel()

	cache := fs.NewCache(t.TempDir(), &mock.Fetcher{})

	var got []clean.AssetRecord
	err := cache.ReadJSON(filepath.Join(t.TempDir(), "absent.json"), &got)
	require.Error(t, err)
	assert.Equal(t, clean.ENOTFOUND, clean.ErrorCode(err))
}
