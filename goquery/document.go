// Package goquery implements the clean.Parser HTML capability on top of
// github.com/PuerkitoBio/goquery.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/civicdata/clean"
)

// Ensure Parser implements clean.Parser at compile time.
var _ clean.Parser = (*Parser)(nil)

// Parser parses HTML into queryable documents.
type Parser struct{}

// NewParser creates a new Parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse parses raw HTML.
func (p *Parser) Parse(html string) (clean.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, clean.Errorf(clean.EINVALID, "failed to parse HTML: %v", err)
	}
	return &document{doc: doc}, nil
}

// document implements clean.Document over a parsed goquery document.
type document struct {
	doc *goquery.Document
}

// TableRows returns the rows of the first table on the page.
func (d *document) TableRows() ([]clean.TableRow, error) {
	table := d.doc.Find("table").First()
	if table.Length() == 0 {
		return nil, clean.Errorf(clean.EMALFORMED, "no table found on page")
	}

	var rows []clean.TableRow
	table.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		var row clean.TableRow
		tr.Find("td").Each(func(_ int, td *goquery.Selection) {
			cell := clean.TableCell{Text: strings.TrimSpace(td.Text())}
			if link, ok := firstLink(td); ok {
				cell.Link = &link
			}
			row.Cells = append(row.Cells, cell)
		})
		rows = append(rows, row)
	})
	return rows, nil
}

// LinkByText returns the first anchor whose trimmed text equals text.
func (d *document) LinkByText(text string) (clean.Link, bool) {
	var found clean.Link
	var ok bool
	d.doc.Find("a[href]").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		if strings.TrimSpace(sel.Text()) != text {
			return true
		}
		found = toLink(sel)
		ok = true
		return false
	})
	return found, ok
}

// LinksByClass returns every anchor carrying the given class.
func (d *document) LinksByClass(class string) []clean.Link {
	var links []clean.Link
	d.doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		if !sel.HasClass(class) {
			return
		}
		links = append(links, toLink(sel))
	})
	return links
}

// firstLink returns the first anchor with an href inside the selection.
func firstLink(sel *goquery.Selection) (clean.Link, bool) {
	a := sel.Find("a[href]").First()
	if a.Length() == 0 {
		return clean.Link{}, false
	}
	return toLink(a), true
}

func toLink(sel *goquery.Selection) clean.Link {
	href, _ := sel.Attr("href")
	return clean.Link{
		Href: href,
		Text: strings.TrimSpace(sel.Text()),
	}
}
