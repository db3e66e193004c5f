package clean

// AssetRecord is one entry of an agency's metadata index: a case link
// scraped from the disclosure index page. Records are persisted in row
// order as a JSON array at <data_dir>/<agency_slug>.json and overwritten
// wholesale on every metadata scrape.
type AssetRecord struct {
	// AssetURL is the case link's href, relative or absolute.
	AssetURL string `json:"asset_url"`

	// Name is the trimmed display text of the case link. Uniqueness is
	// best-effort only; collisions are not deduplicated.
	Name string `json:"name"`
}

// ChildPage is a case-detail page derived from an AssetRecord at scrape
// time. It is never persisted; it is reconstructed from the metadata
// index on every run.
type ChildPage struct {
	// SourceName is the display name of the case the page belongs to.
	SourceName string

	// URL is the absolute case-detail URL.
	URL string
}

// DownloadTarget pairs a discovered document link with the local path it
// will be stored at.
type DownloadTarget struct {
	// LocalPath is relative to the cache root:
	// <agency_slug>/assets/<folder_identifier>/<display_name>.
	LocalPath string

	// RemoteURL is the absolute document URL.
	RemoteURL string

	// Name is the document link's trimmed display text.
	Name string
}
