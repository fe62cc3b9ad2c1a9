package report

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/tyler180/floorball-appearances/internal/innebandy"
)

func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(w)
	return t
}

// RenderDivisions prints the capped player x division matrix with a total
// column per player.
func RenderDivisions(w io.Writer, m *Matrix) {
	if m.Empty() {
		return
	}
	t := newTable(w)
	t.SetTitle("Matches per player and division")
	header := table.Row{"Player"}
	for _, c := range m.Cols {
		header = append(header, c)
	}
	t.AppendHeader(append(header, "Total"))
	for _, r := range m.Rows {
		row := table.Row{r}
		for _, c := range m.Cols {
			row = append(row, m.Get(r, c))
		}
		t.AppendRow(append(row, m.RowSum(r)))
	}
	t.Render()
}

// RenderParticipation prints distinct players per division.
func RenderParticipation(w io.Writer, m *Matrix) {
	if m.Empty() {
		return
	}
	t := newTable(w)
	t.SetTitle("Distinct players per division")
	t.AppendHeader(table.Row{"Division", "Players"})
	for _, d := range m.Rows {
		t.AppendRow(table.Row{d, m.RowSum(d)})
	}
	t.Render()
}

// RenderMismatches lists validation warnings, if any.
func RenderMismatches(w io.Writer, ms []Mismatch) {
	if len(ms) == 0 {
		return
	}
	t := newTable(w)
	t.SetTitle("Division sum vs TOTALT")
	t.AppendHeader(table.Row{"Player", "TOTALT", "Sum"})
	for _, m := range ms {
		t.AppendRow(table.Row{m.Player, m.Expected, m.Computed})
	}
	t.Render()
}

// RenderRoster prints the first n roster entries. n <= 0 prints all.
func RenderRoster(w io.Writer, entries []innebandy.RosterEntry, n int) {
	if n <= 0 || n > len(entries) {
		n = len(entries)
	}
	t := newTable(w)
	t.SetTitle(fmt.Sprintf("Roster (%d of %d)", n, len(entries)))
	t.AppendHeader(table.Row{"Nr", "Name", "Position", "Link"})
	for _, e := range entries[:n] {
		t.AppendRow(table.Row{e.PlayerID, e.Name, e.RawPosition, e.Link})
	}
	t.Render()
}

// RenderLinks prints extracted anchors, as the schedule command does.
func RenderLinks(w io.Writer, links []innebandy.Link, n int) {
	if n <= 0 || n > len(links) {
		n = len(links)
	}
	t := newTable(w)
	t.AppendHeader(table.Row{"Text", "Href"})
	for _, l := range links[:n] {
		t.AppendRow(table.Row{l.Text, l.Href})
	}
	t.Render()
}
