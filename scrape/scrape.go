// Package scrape provides the crawl-and-download pipeline for an agency's
// public-records disclosures. It coordinates metadata extraction from the
// disclosure index, resolution of case-detail pages into the linked
// records-request platform, paginated listing traversal, and idempotent
// asset downloads through the cache.
package scrape

import (
	"context"
	"log/slog"
	"net/url"
	stdpath "path"
	"path/filepath"
	"strings"

	"github.com/civicdata/clean"
)

// Marker strings the two sites use. The case link text and anchor classes
// are stable parts of the portal's markup.
const (
	// caseLinkText is the display text of the anchor on a case-detail
	// page that leads to the records-request platform.
	caseLinkText = "Internal Affairs Case No."

	// documentLinkClass marks downloadable document anchors on the
	// records platform, and the listing entry link on its landing page.
	documentLinkClass = "document-link"

	// nextPageClass marks the pagination anchor on a listing page.
	nextPageClass = "next"

	// caseLinkColumn is the index of the index-table column that holds
	// the case link.
	caseLinkColumn = 2
)

// Scraper runs the disclosure pipeline for a single agency.
//
// Execution is strictly sequential: pagination discovery depends on the
// previous page's content, and the cache is single-writer. The Fetcher is
// expected to carry the inter-request throttle (see NewThrottledFetcher),
// so every network request observes the same delay.
type Scraper struct {
	Agency  clean.Agency
	Cache   clean.Cache
	Fetcher clean.Fetcher
	Parser  clean.Parser

	// Ledger, when set, records every realized download. Ledger write
	// failures are logged, never fatal.
	Ledger clean.LedgerService

	// DataDir is where the metadata index file is written.
	DataDir string

	// ContinueOnError isolates child-page failures: a failed branch is
	// logged and the run proceeds to the next case. When false (the
	// default) the first branch failure aborts the whole run.
	ContinueOnError bool

	// Logger used for branch failures and ledger warnings.
	// Defaults to slog.Default.
	Logger *slog.Logger
}

// ScrapeMeta gathers metadata on downloadable files for the agency.
// It fetches the disclosure index page through the cache, extracts one
// AssetRecord per qualifying table row, and writes the records as a JSON
// array to <DataDir>/<slug>.json. Returns the path of the index file.
func (s *Scraper) ScrapeMeta(ctx context.Context) (string, error) {
	if err := s.Agency.Validate(); err != nil {
		return "", err
	}

	key := stdpath.Join(s.Agency.Slug, indexPageName(s.Agency.DisclosureURL))
	if _, err := s.Cache.Download(ctx, key, s.Agency.DisclosureURL); err != nil {
		return "", err
	}
	html, err := s.Cache.Read(key)
	if err != nil {
		return "", err
	}

	doc, err := s.Parser.Parse(html)
	if err != nil {
		return "", err
	}

	// A missing table means the page no longer matches our assumptions;
	// that must surface, not silently produce an empty index.
	rows, err := doc.TableRows()
	if err != nil {
		return "", err
	}

	records := []clean.AssetRecord{}
	for _, row := range rows {
		if len(row.Cells) <= caseLinkColumn {
			continue
		}
		link := row.Cells[caseLinkColumn].Link
		if link == nil {
			continue
		}
		records = append(records, clean.AssetRecord{
			AssetURL: link.Href,
			Name:     link.Text,
		})
	}

	out := s.indexPath()
	if err := s.Cache.WriteJSON(out, records); err != nil {
		return "", err
	}
	return out, nil
}

// Scrape downloads file assets for every case in the metadata index.
// The index must have been written by a prior ScrapeMeta run. A non-empty
// filter restricts downloads to document links whose absolute URL or
// display name contains the filter as a substring.
// Returns the local paths of all realized downloads, in discovery order.
func (s *Scraper) Scrape(ctx context.Context, filter string) ([]string, error) {
	if err := s.Agency.Validate(); err != nil {
		return nil, err
	}

	pages, err := s.childPages()
	if err != nil {
		return nil, err
	}

	downloaded := []string{}
	for _, page := range pages {
		paths, err := s.scrapeChild(ctx, page, filter)
		if err != nil {
			if !s.ContinueOnError {
				return nil, err
			}
			s.logger().Error("child page failed",
				"agency", s.Agency.Slug,
				"case", page.SourceName,
				"url", page.URL,
				"err", err,
			)
			continue
		}
		downloaded = append(downloaded, paths...)
	}
	return downloaded, nil
}

// scrapeChild runs one full traversal for a single case page.
func (s *Scraper) scrapeChild(ctx context.Context, page clean.ChildPage, filter string) ([]string, error) {
	entry, ok, err := s.resolveListingEntry(ctx, page)
	if err != nil {
		return nil, err
	}
	if !ok {
		// No records-platform link on this case page.
		return nil, nil
	}

	var paths []string
	walker := newListingWalker(s.Fetcher, s.Parser, entry)
	for {
		listing, ok, err := walker.next(ctx)
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}

		for _, link := range listing.links {
			fileURL, err := resolveRef(listing.url, link.Href)
			if err != nil {
				return nil, err
			}
			if !matchesFilter(fileURL, link.Text, filter) {
				continue
			}

			target := stdpath.Join(s.Agency.Slug, "assets", listing.folder, link.Text)
			asset, err := s.Cache.Download(ctx, target, fileURL)
			if err != nil {
				return nil, err
			}
			paths = append(paths, asset.Path)
			s.recordDownload(ctx, fileURL, asset)
		}
	}
	return paths, nil
}

// childPages reloads the metadata index and resolves each record into an
// absolute case-detail URL.
func (s *Scraper) childPages() ([]clean.ChildPage, error) {
	var records []clean.AssetRecord
	if err := s.Cache.ReadJSON(s.indexPath(), &records); err != nil {
		return nil, err
	}

	pages := make([]clean.ChildPage, 0, len(records))
	for _, record := range records {
		u, err := resolveRef(s.Agency.BaseURL, record.AssetURL)
		if err != nil {
			return nil, err
		}
		pages = append(pages, clean.ChildPage{
			SourceName: record.Name,
			URL:        u,
		})
	}
	return pages, nil
}

// recordDownload appends a download to the ledger, if one is configured.
func (s *Scraper) recordDownload(ctx context.Context, fileURL string, asset *clean.StoredAsset) {
	if s.Ledger == nil {
		return
	}
	d := &clean.Download{
		Agency:      s.Agency.Slug,
		AssetURL:    fileURL,
		LocalPath:   asset.Path,
		ContentHash: asset.ContentHash,
		Size:        asset.Size,
		FromCache:   asset.FromCache,
	}
	if err := s.Ledger.RecordDownload(ctx, d); err != nil {
		s.logger().Warn("ledger write failed", "url", fileURL, "err", err)
	}
}

// indexPath is the location of the agency's metadata index file.
func (s *Scraper) indexPath() string {
	return filepath.Join(s.DataDir, s.Agency.Slug+".json")
}

func (s *Scraper) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}

// matchesFilter reports whether a document link passes the download
// filter. The empty filter matches everything.
func matchesFilter(fileURL, name, filter string) bool {
	if filter == "" {
		return true
	}
	return strings.Contains(fileURL, filter) || strings.Contains(name, filter)
}

// indexPageName derives a stable cache file name for the disclosure index
// page from the last segment of its URL path.
func indexPageName(rawURL string) string {
	name := "index"
	if u, err := url.Parse(rawURL); err == nil {
		if base := stdpath.Base(u.Path); base != "" && base != "/" && base != "." {
			name = base
		}
	}
	return name + ".html"
}
