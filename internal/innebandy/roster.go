package innebandy

import (
	"regexp"
	"strings"
)

var (
	headerIconRe = regexp.MustCompile(`(expand_less|unfold_more)`)
	hrefIDRe     = regexp.MustCompile(`/(\d{3,})\b`)
)

// cleanHeader lower-cases a roster header and drops the sort-icon ligature
// text the site renders inside <th>.
func cleanHeader(h string) string {
	h = strings.ToLower(h)
	h = headerIconRe.ReplaceAllString(h, "")
	return strings.TrimSpace(h)
}

// IDFromHref returns the first 3+ digit path segment of href, or "".
func IDFromHref(href string) string {
	if m := hrefIDRe.FindStringSubmatch(href); m != nil {
		return m[1]
	}
	return ""
}

// ExtractRoster reads the roster table (first table on the page). Columns
// nr/namn/position are looked up by header with positional fallbacks for id
// and name; every other column is kept in Extra.
func ExtractRoster(p *Page) []RawRosterRow {
	if p == nil || len(p.Tables) == 0 {
		return nil
	}
	tbl := p.Tables[0]

	idx := make(map[string]int, len(tbl.Headers))
	for i, h := range tbl.Headers {
		idx[cleanHeader(h)] = i
	}
	get := func(cells []Cell, key string, def int) (string, int) {
		i, ok := idx[key]
		if !ok {
			i = def
		}
		if i < 0 || i >= len(cells) {
			return "", -1
		}
		return cells[i].Text, i
	}

	out := make([]RawRosterRow, 0, len(tbl.Rows))
	for _, cells := range tbl.Rows {
		if len(cells) < 2 {
			continue
		}
		extra := make(map[string]string, len(idx))
		for h, i := range idx {
			if i < len(cells) {
				extra[h] = cells[i].Text
			}
		}
		id, _ := get(cells, "nr", 0)
		name, _ := get(cells, "namn", 1)
		pos, _ := get(cells, "position", -1)

		href := ""
		if i, ok := idx["namn"]; ok && i < len(cells) {
			href = cells[i].Href
		}
		if strings.TrimSpace(id) == "" {
			id = IDFromHref(href)
		}
		out = append(out, RawRosterRow{
			PlayerID: id,
			Name:     name,
			Position: pos,
			Href:     href,
			Extra:    extra,
		})
	}
	return out
}

// ClassifyPosition maps free-text position to a Position by
// case-insensitive substring.
func ClassifyPosition(raw string) Position {
	p := strings.ToLower(raw)
	switch {
	case strings.Contains(p, "forw"):
		return PositionForward
	case strings.Contains(p, "back"):
		return PositionBack
	case strings.Contains(p, "mål"):
		return PositionGoalkeeper
	}
	return PositionUnknown
}

// ResolveLink turns a roster href into an absolute URL. Blank hrefs resolve
// to "".
func (s Site) ResolveLink(href string) string {
	href = strings.TrimSpace(href)
	switch {
	case href == "":
		return ""
	case strings.HasPrefix(href, "/"):
		return s.BaseURL + href
	case strings.HasPrefix(href, "http://"), strings.HasPrefix(href, "https://"):
		return href
	}
	return s.BaseURL + "/" + href
}

// NormalizeRoster cleans raw rows into roster entries, preserving order.
func (s Site) NormalizeRoster(rows []RawRosterRow) []RosterEntry {
	out := make([]RosterEntry, 0, len(rows))
	for _, r := range rows {
		out = append(out, RosterEntry{
			PlayerID:    strings.TrimSpace(r.PlayerID),
			Name:        NormalizeName(r.Name),
			RawPosition: strings.TrimSpace(r.Position),
			Position:    ClassifyPosition(r.Position),
			Link:        s.ResolveLink(r.Href),
		})
	}
	return out
}

// FilterByName keeps rows whose name contains substr, case-insensitively.
// An empty substr keeps everything.
func FilterByName(rows []RawRosterRow, substr string) []RawRosterRow {
	if substr == "" {
		return rows
	}
	want := strings.ToLower(substr)
	out := make([]RawRosterRow, 0, len(rows))
	for _, r := range rows {
		if strings.Contains(strings.ToLower(r.Name), want) {
			out = append(out, r)
		}
	}
	return out
}
