package scrape

import (
	"context"

	"github.com/civicdata/clean"
)

// resolveListingEntry follows a case-detail page to the records-request
// platform and returns the entry URL of its paginated document listing.
//
// Case pages are fetched live, not through the cache; only the index page
// and final assets are cached. The bool result is false when the case page
// carries no records link, which means no records are available for the
// case and the branch is skipped. A landing page without a listing link is
// a broken assumption and returns EMALFORMED.
func (s *Scraper) resolveListingEntry(ctx context.Context, page clean.ChildPage) (string, bool, error) {
	html, err := s.Fetcher.Fetch(ctx, page.URL)
	if err != nil {
		return "", false, err
	}
	doc, err := s.Parser.Parse(html)
	if err != nil {
		return "", false, err
	}

	caseLink, ok := doc.LinkByText(caseLinkText)
	if !ok {
		return "", false, nil
	}

	landingURL, err := resolveRef(s.Agency.BaseURL, caseLink.Href)
	if err != nil {
		return "", false, err
	}

	landingHTML, err := s.Fetcher.Fetch(ctx, landingURL)
	if err != nil {
		return "", false, err
	}
	landing, err := s.Parser.Parse(landingHTML)
	if err != nil {
		return "", false, err
	}

	links := landing.LinksByClass(documentLinkClass)
	if len(links) == 0 {
		return "", false, clean.Errorf(clean.EMALFORMED, "listing entry not found on %s for case %q", landingURL, page.SourceName)
	}

	entry, err := resolveRef(landingURL, links[0].Href)
	if err != nil {
		return "", false, err
	}
	return entry, true, nil
}
