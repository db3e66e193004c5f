package main

import "github.com/civicdata/clean"

// builtinAgencies lists the disclosure surfaces this binary knows how to
// scrape, keyed by slug. The scraper itself is agency-agnostic; new
// agencies whose portals share this shape only need an entry here.
var builtinAgencies = map[string]clean.Agency{
	"ca_oakland_pd": {
		Slug:          "ca_oakland_pd",
		Name:          "Oakland Police Department",
		BaseURL:       "https://www.oaklandca.gov",
		DisclosureURL: "https://www.oaklandca.gov/resources/oakland-police-officers-and-related-sb-1421-16-incidents",
	},
}

// agencyBySlug resolves a slug against the registry.
func agencyBySlug(agencies map[string]clean.Agency, slug string) (clean.Agency, error) {
	agency, ok := agencies[slug]
	if !ok {
		return clean.Agency{}, clean.Errorf(clean.ENOTFOUND, "unknown agency %q", slug)
	}
	return agency, nil
}
