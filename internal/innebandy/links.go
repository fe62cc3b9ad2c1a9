package innebandy

import "strings"

// ExtractLinks returns anchors whose href contains token, skipping empty
// text and duplicate (href, text) pairs. Order follows the page.
func ExtractLinks(p *Page, token string) []Link {
	if p == nil {
		return nil
	}
	type key struct{ href, text string }
	seen := make(map[key]struct{}, len(p.Links))
	out := make([]Link, 0, len(p.Links))
	for _, l := range p.Links {
		if !strings.Contains(l.Href, token) || l.Text == "" {
			continue
		}
		k := key{l.Href, l.Text}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, l)
	}
	return out
}
