package innebandy

import (
	"testing"

	"github.com/cockroachdb/errors"
)

func TestExtractRows_SeasonHeading(t *testing.T) {
	site := DefaultSite()
	p := mustParse(t, seasonPageHTML)

	res := site.ExtractRows(p, "2025/26")
	if res.LowConfidence {
		t.Fatalf("expected confident match, got strategy %q", res.Strategy)
	}
	if res.Strategy != "section-heading" {
		t.Fatalf("strategy = %q", res.Strategy)
	}
	// the short row is dropped
	if len(res.Rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(res.Rows))
	}
	r := res.Rows[0]
	checks := map[Field]string{
		FieldCompetition: "Div 1",
		FieldTeam:        "IBK X",
		FieldMatches:     "12",
		FieldGoals:       "3",
		FieldAssists:     "4",
		FieldPoints:      "7",
		FieldPenalty:     "2",
	}
	for f, want := range checks {
		if r[f] != want {
			t.Errorf("%s = %q, want %q", f, r[f], want)
		}
	}
	if res.Rows[1][FieldCompetition] != "TOTALT" {
		t.Fatalf("second row = %v", res.Rows[1])
	}
}

func TestExtractRows_FallbackIsLowConfidence(t *testing.T) {
	site := DefaultSite()
	p := mustParse(t, seasonPageHTML)

	res := site.ExtractRows(p, "2030/31")
	if !res.LowConfidence || res.Strategy != "first-table" {
		t.Fatalf("got strategy %q low=%v, want first-table fallback", res.Strategy, res.LowConfidence)
	}
	if len(res.Rows) != 1 || res.Rows[0][FieldCompetition] != "Div 2" {
		t.Fatalf("rows = %v, want the first table", res.Rows)
	}

	res = site.ExtractRows(p, "")
	if !res.LowConfidence {
		t.Fatalf("empty label must fall back")
	}
}

func TestExtractRows_HeaderOrderWins(t *testing.T) {
	site := DefaultSite()
	p := mustParse(t, `<h2>2025/26</h2><table>
<thead><tr><th>Lag</th><th>Tävling</th><th>MA</th></tr></thead>
<tbody><tr><td>IBK Y</td><td>Div 3</td><td>5</td><td>g</td><td>a</td><td>p</td><td>u</td></tr></tbody>
</table>`)

	res := site.ExtractRows(p, "2025/26")
	if len(res.Rows) != 1 {
		t.Fatalf("rows = %d", len(res.Rows))
	}
	r := res.Rows[0]
	if r[FieldCompetition] != "Div 3" || r[FieldTeam] != "IBK Y" || r[FieldMatches] != "5" {
		t.Fatalf("mapped row = %v", r)
	}
	// unnamed fields use their positional defaults
	if r[FieldGoals] != "g" || r[FieldPenalty] != "u" {
		t.Fatalf("positional fields = %v", r)
	}
}

func TestExtractRows_HeaderlessUsesPositions(t *testing.T) {
	site := DefaultSite()
	p := mustParse(t, `<table>
<tr><td>Div 4</td><td>IBK Z</td><td>8</td><td>1</td><td>2</td><td>3</td><td>4</td></tr>
<tr><td>Cup</td><td>IBK Z</td><td>2</td></tr>
</table>`)

	res := site.ExtractRows(p, DefaultSeasonLabel)
	if len(res.Rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(res.Rows))
	}
	if r := res.Rows[0]; r[FieldCompetition] != "Div 4" || r[FieldPenalty] != "4" {
		t.Fatalf("row 0 = %v", r)
	}
	if r := res.Rows[1]; r[FieldMatches] != "2" || r[FieldGoals] != "" {
		t.Fatalf("row 1 = %v", r)
	}
}

func TestExtractRows_NoTables(t *testing.T) {
	site := DefaultSite()
	p := mustParse(t, `<p>nothing here</p>`)
	res := site.ExtractRows(p, DefaultSeasonLabel)
	if len(res.Rows) != 0 || res.Strategy != "" {
		t.Fatalf("got %+v, want empty", res)
	}
	if _, err := SelectTable(p, DefaultSeasonLabel); !errors.Is(err, ErrNoTable) {
		t.Fatalf("err = %v, want ErrNoTable", err)
	}
}

func TestResolveColumns_CaseInsensitive(t *testing.T) {
	site := DefaultSite()
	cols := site.ResolveColumns([]string{" UTV ", "P", "Ass", "Må", "Ma", "Lag", "TÄVLING"})
	want := map[Field]int{
		FieldPenalty:     0,
		FieldPoints:      1,
		FieldAssists:     2,
		FieldGoals:       3,
		FieldMatches:     4,
		FieldTeam:        5,
		FieldCompetition: 6,
	}
	for f, i := range want {
		if cols[f] != i {
			t.Errorf("%s -> %d, want %d", f, cols[f], i)
		}
	}
}
