package scrape

import (
	"context"
	"strings"

	"github.com/civicdata/clean"
)

// listingPage is one fetched page of the records platform's paginated
// document listing.
type listingPage struct {
	// url the page was fetched from. Document hrefs resolve against it.
	url string

	// folder namespaces this page's downloads on disk.
	folder string

	// links are the page's document anchors, hrefs as written.
	links []clean.Link
}

// listingWalker traverses a pagination chain one page at a time. Each
// traversal owns a fresh visited set, so a "next" link pointing back at an
// earlier page terminates the walk instead of looping.
type listingWalker struct {
	fetcher clean.Fetcher
	parser  clean.Parser

	current string
	visited map[string]bool
}

func newListingWalker(fetcher clean.Fetcher, parser clean.Parser, entryURL string) *listingWalker {
	return &listingWalker{
		fetcher: fetcher,
		parser:  parser,
		current: entryURL,
		visited: make(map[string]bool),
	}
}

// next fetches the current listing page and advances to the one after it.
// The bool result is false once the traversal is done: no further pages,
// or the next URL was already visited this traversal.
func (w *listingWalker) next(ctx context.Context) (*listingPage, bool, error) {
	if w.current == "" || w.visited[w.current] {
		return nil, false, nil
	}
	w.visited[w.current] = true

	html, err := w.fetcher.Fetch(ctx, w.current)
	if err != nil {
		return nil, false, err
	}
	doc, err := w.parser.Parse(html)
	if err != nil {
		return nil, false, err
	}

	links := doc.LinksByClass(documentLinkClass)
	if len(links) == 0 {
		// A listing page we were led to must carry document links;
		// an empty one means the page structure changed under us.
		return nil, false, clean.Errorf(clean.EMALFORMED, "no document links on listing page %s", w.current)
	}

	page := &listingPage{
		url:    w.current,
		folder: folderIdentifier(w.current),
		links:  links,
	}

	// Advance. The next href resolves against the current listing URL,
	// not the agency's base URL.
	if nextLinks := doc.LinksByClass(nextPageClass); len(nextLinks) > 0 {
		resolved, err := resolveRef(w.current, nextLinks[0].Href)
		if err != nil {
			return nil, false, err
		}
		w.current = resolved
	} else {
		w.current = ""
	}

	return page, true, nil
}

// folderIdentifier extracts the disk-namespacing folder from a listing URL
// by taking everything after the last "folder_filter=" query marker. When
// the marker is absent the whole URL is used. This mirrors the records
// platform's URL shape and is a known-fragile heuristic, not a contract.
func folderIdentifier(listingURL string) string {
	const marker = "folder_filter="
	if i := strings.LastIndex(listingURL, marker); i >= 0 {
		return listingURL[i+len(marker):]
	}
	return listingURL
}
