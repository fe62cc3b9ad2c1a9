package innebandy

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/cockroachdb/errors"
	"golang.org/x/net/html"

	"github.com/tyler180/floorball-appearances/internal/logging"
)

// Cell is the visible text of a table cell plus the first link inside it.
type Cell struct {
	Text string
	Href string
}

// Table is one <table>: header texts (may be empty) and body rows.
type Table struct {
	Headers []string
	Rows    [][]Cell
}

// Heading is a heading element. Table is the index into Page.Tables of the
// table that directly follows it, or -1.
type Heading struct {
	Level int
	Text  string
	Table int
}

// Link is an anchor with an href.
type Link struct {
	Text string
	Href string
}

// Page is the structured content of a fetched page.
type Page struct {
	URL      string
	Headings []Heading
	Tables   []Table
	Links    []Link
}

// ParsePage parses raw HTML into a Page.
func ParsePage(pageURL, rawHTML string) (*Page, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, errors.Wrapf(err, "parse %s", pageURL)
	}
	return PageFromDocument(pageURL, doc), nil
}

// PageFromDocument converts an already parsed goquery document.
func PageFromDocument(pageURL string, doc *goquery.Document) *Page {
	p := &Page{URL: pageURL}

	index := map[*html.Node]int{}
	doc.Find("table").Each(func(i int, t *goquery.Selection) {
		index[t.Nodes[0]] = i
		p.Tables = append(p.Tables, readTable(t))
	})

	doc.Find("h1,h2,h3,h4,h5,h6").Each(func(_ int, h *goquery.Selection) {
		name := goquery.NodeName(h)
		hd := Heading{
			Level: int(name[1] - '0'),
			Text:  strings.TrimSpace(h.Text()),
			Table: -1,
		}
		if next := h.Next(); next.Length() > 0 && goquery.NodeName(next) == "table" {
			if i, ok := index[next.Nodes[0]]; ok {
				hd.Table = i
			}
		}
		p.Headings = append(p.Headings, hd)
	})

	doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		p.Links = append(p.Links, Link{
			Text: strings.TrimSpace(a.Text()),
			Href: strings.TrimSpace(a.AttrOr("href", "")),
		})
	})
	return p
}

func readTable(t *goquery.Selection) Table {
	var tbl Table
	t.Find("thead th").Each(func(_ int, th *goquery.Selection) {
		tbl.Headers = append(tbl.Headers, strings.TrimSpace(th.Text()))
	})
	t.Find("tbody tr").Each(func(_ int, tr *goquery.Selection) {
		var row []Cell
		tr.Find("td").Each(func(_ int, td *goquery.Selection) {
			c := Cell{Text: strings.TrimSpace(td.Text())}
			if href, ok := td.Find("a").First().Attr("href"); ok {
				c.Href = strings.TrimSpace(href)
			}
			row = append(row, c)
		})
		tbl.Rows = append(tbl.Rows, row)
	})
	return tbl
}

// DumpTablesForDebug logs each table's heading and header row at debug level.
func DumpTablesForDebug(log *logging.Logger, p *Page, pageTag string) {
	if p == nil {
		return
	}
	headingFor := map[int]string{}
	for _, h := range p.Headings {
		if h.Table >= 0 {
			headingFor[h.Table] = h.Text
		}
	}
	for i, t := range p.Tables {
		log.Debug("table",
			"page", pageTag,
			"index", i,
			"heading", headingFor[i],
			"headers", strings.Join(t.Headers, "|"),
			"rows", len(t.Rows),
		)
	}
}
