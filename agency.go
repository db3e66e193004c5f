package clean

// Agency describes a single agency's public-records disclosure surface.
type Agency struct {
	// Slug namespaces everything the scraper writes for this agency:
	// the metadata index file and the cache subtree (e.g. "ca_oakland_pd").
	Slug string `json:"slug"`

	// Name is the agency's display name.
	Name string `json:"name"`

	// BaseURL is the root of the agency's public site. Relative hrefs
	// found on the index and case-detail pages resolve against it.
	BaseURL string `json:"baseUrl"`

	// DisclosureURL is the index page enumerating disclosure cases.
	DisclosureURL string `json:"disclosureUrl"`
}

// Validate returns an error if the agency contains invalid fields.
func (a *Agency) Validate() error {
	if a.Slug == "" {
		return Errorf(EINVALID, "agency slug required")
	}
	if a.BaseURL == "" {
		return Errorf(EINVALID, "agency base URL required")
	}
	if a.DisclosureURL == "" {
		return Errorf(EINVALID, "agency disclosure URL required")
	}
	return nil
}
