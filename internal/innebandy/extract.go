package innebandy

import (
	"strings"

	"github.com/cockroachdb/errors"
)

// ErrNoTable is returned by SelectTable when no strategy matches.
var ErrNoTable = errors.New("no table on page")

// Fields is one extracted row keyed by semantic field.
type Fields map[Field]string

// ExtractResult is the outcome of running the extractor over a page.
// LowConfidence is set when the table was picked by a fallback strategy
// rather than by the season heading.
type ExtractResult struct {
	Rows          []Fields
	Strategy      string
	LowConfidence bool
}

// tableStrategy locates the table to extract. Strategies are tried in order
// and the first hit wins.
type tableStrategy struct {
	name          string
	lowConfidence bool
	find          func(p *Page, label string) (int, bool)
}

var tableStrategies = []tableStrategy{
	{name: "section-heading", find: findBySectionHeading},
	{name: "first-table", lowConfidence: true, find: findFirstTable},
}

func findBySectionHeading(p *Page, label string) (int, bool) {
	if label == "" {
		return -1, false
	}
	for _, h := range p.Headings {
		if h.Table >= 0 && strings.Contains(h.Text, label) {
			return h.Table, true
		}
	}
	return -1, false
}

func findFirstTable(p *Page, _ string) (int, bool) {
	if len(p.Tables) == 0 {
		return -1, false
	}
	return 0, true
}

// Selection is the table a strategy picked.
type Selection struct {
	Index         int
	Strategy      string
	LowConfidence bool
}

// SelectTable runs the strategy chain and returns the first hit.
func SelectTable(p *Page, label string) (Selection, error) {
	if p == nil {
		return Selection{}, ErrNoTable
	}
	for _, s := range tableStrategies {
		if i, ok := s.find(p, label); ok {
			return Selection{Index: i, Strategy: s.name, LowConfidence: s.lowConfidence}, nil
		}
	}
	return Selection{}, ErrNoTable
}

// ResolveColumns maps each configured field to a column index: the position
// of its header when present, otherwise the configured fallback.
func (s Site) ResolveColumns(headers []string) map[Field]int {
	byName := make(map[string]int, len(headers))
	for i, h := range headers {
		byName[strings.ToLower(strings.TrimSpace(h))] = i
	}
	out := make(map[Field]int, len(s.Columns))
	for _, c := range s.Columns {
		if i, ok := byName[c.Header]; ok {
			out[c.Field] = i
			continue
		}
		out[c.Field] = c.Fallback
	}
	return out
}

// ExtractRows selects the season table on p (label may be empty) and
// converts its rows into field mappings. A page without tables yields an
// empty result.
func (s Site) ExtractRows(p *Page, label string) ExtractResult {
	sel, err := SelectTable(p, label)
	if err != nil {
		return ExtractResult{}
	}
	tbl := p.Tables[sel.Index]
	cols := s.ResolveColumns(tbl.Headers)

	res := ExtractResult{Strategy: sel.Strategy, LowConfidence: sel.LowConfidence}
	for _, row := range tbl.Rows {
		// truncated or malformed
		if len(row) == 0 || len(row) < len(tbl.Headers) {
			continue
		}
		f := make(Fields, len(cols))
		for field, ci := range cols {
			if ci >= 0 && ci < len(row) {
				f[field] = strings.TrimSpace(row[ci].Text)
			} else {
				f[field] = ""
			}
		}
		res.Rows = append(res.Rows, f)
	}
	return res
}
