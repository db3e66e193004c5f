package clean

// Link is an anchor extracted from a page.
type Link struct {
	// Href as written in the document, relative or absolute.
	Href string

	// Text is the anchor's trimmed display text.
	Text string
}

// TableCell is one cell of a table row.
type TableCell struct {
	// Text is the cell's trimmed text content.
	Text string

	// Link is the first anchor inside the cell, nil if the cell
	// contains none.
	Link *Link
}

// TableRow is one row of the first table on a page.
type TableRow struct {
	Cells []TableCell
}

// Document is a parsed HTML page. It exposes only the queries the
// scraper needs, so it can be implemented over any HTML library.
type Document interface {
	// TableRows returns the rows of the first table on the page, in
	// document order. Returns EMALFORMED if the page has no table.
	TableRows() ([]TableRow, error)

	// LinkByText returns the first anchor whose trimmed display text
	// exactly equals text. The bool result is false if none matches.
	LinkByText(text string) (Link, bool)

	// LinksByClass returns every anchor carrying the given class, in
	// document order.
	LinksByClass(class string) []Link
}

// Parser parses raw HTML into a queryable Document.
type Parser interface {
	Parse(html string) (Document, error)
}
