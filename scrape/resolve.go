package scrape

import (
	"net/url"

	"github.com/civicdata/clean"
)

// resolveRef resolves a possibly relative href against a base URL.
// Absolute hrefs pass through unchanged.
func resolveRef(baseURL, href string) (string, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return "", clean.Errorf(clean.EINVALID, "invalid base URL %q: %v", baseURL, err)
	}
	ref, err := url.Parse(href)
	if err != nil {
		return "", clean.Errorf(clean.EINVALID, "invalid href %q: %v", href, err)
	}
	return base.ResolveReference(ref).String(), nil
}
