package report

import (
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/tyler180/floorball-appearances/internal/innebandy"
)

// ErrEmpty is returned by Analyze when no record survives filtering.
var ErrEmpty = errors.New("no division appearance data")

type Options struct {
	// MaxDivisions caps the per-player chart's division columns; 0 keeps all.
	MaxDivisions int
	// MaxLeagues caps the participation chart's division rows; 0 keeps all.
	MaxLeagues int
}

func DefaultOptions() Options {
	return Options{MaxDivisions: 8, MaxLeagues: 12}
}

// Mismatch is a player whose division sum disagrees with the site total.
type Mismatch struct {
	Player   string
	Expected int
	Computed int
}

// Result carries everything the renderers and the summary need.
type Result struct {
	Working []innebandy.AppearanceRecord
	Totals  []innebandy.AppearanceRecord
	// PlayerDivision is the full player x division match sum.
	PlayerDivision *Matrix
	// Divisions is PlayerDivision after the column cap.
	Divisions *Matrix
	// Participation is the division x player 0/1 matrix after the row cap.
	Participation *Matrix
	Mismatches    []Mismatch
}

// SplitTotals separates TOTALT records from the rest, preserving order.
func SplitTotals(recs []innebandy.AppearanceRecord) (working, totals []innebandy.AppearanceRecord) {
	for _, r := range recs {
		if r.IsTotal() {
			totals = append(totals, r)
			continue
		}
		working = append(working, r)
	}
	return working, totals
}

// FilterWorking keeps records with a division and at least one match.
func FilterWorking(recs []innebandy.AppearanceRecord) []innebandy.AppearanceRecord {
	out := make([]innebandy.AppearanceRecord, 0, len(recs))
	for _, r := range recs {
		if strings.TrimSpace(r.Division) == "" || r.Matches <= 0 {
			continue
		}
		out = append(out, r)
	}
	return out
}

func byPlayer(r innebandy.AppearanceRecord) string   { return r.Player }
func byDivision(r innebandy.AppearanceRecord) string { return r.Division }
func matches(r innebandy.AppearanceRecord) int       { return r.Matches }

func played(r innebandy.AppearanceRecord) int {
	if r.Matches > 0 {
		return 1
	}
	return 0
}

// PlayerDivision sums matches per (player, division) across teams.
func PlayerDivision(recs []innebandy.AppearanceRecord) *Matrix {
	return pivot(recs, byPlayer, byDivision, matches, sum)
}

// Participation marks (division, player) with 1 when the player has any
// match there. Several teams in one division still count once.
func Participation(recs []innebandy.AppearanceRecord) *Matrix {
	return pivot(recs, byDivision, byPlayer, played, maxOf)
}

// CapColumns keeps the n columns with the largest totals, largest first.
// Ties go to the column whose first record came earlier.
func CapColumns(m *Matrix, n int) *Matrix {
	return m.selectCols(topN(m.Cols, n, m.ColSum, m.colSeen))
}

// CapRows keeps the n rows with the largest totals, largest first.
func CapRows(m *Matrix, n int) *Matrix {
	return m.selectRows(topN(m.Rows, n, m.RowSum, m.rowSeen))
}

// Validate compares each player's row sum against the first total record
// seen for that player. Players without a total are skipped.
func Validate(m *Matrix, totals []innebandy.AppearanceRecord) []Mismatch {
	ref := make(map[string]int, len(totals))
	for _, t := range totals {
		if _, ok := ref[t.Player]; !ok {
			ref[t.Player] = t.Matches
		}
	}
	var out []Mismatch
	for _, p := range m.Rows {
		want, ok := ref[p]
		if !ok {
			continue
		}
		if got := m.RowSum(p); got != want {
			out = append(out, Mismatch{Player: p, Expected: want, Computed: got})
		}
	}
	return out
}

// Analyze runs split, filter, pivot, cap and validation over records.
// It returns ErrEmpty when nothing is left to chart.
func Analyze(recs []innebandy.AppearanceRecord, opts Options) (Result, error) {
	working, totals := SplitTotals(recs)
	working = FilterWorking(working)

	res := Result{Working: working, Totals: totals}
	res.PlayerDivision = PlayerDivision(working)
	if res.PlayerDivision.Empty() {
		return res, ErrEmpty
	}
	res.Divisions = CapColumns(res.PlayerDivision, opts.MaxDivisions)
	res.Participation = CapRows(Participation(working), opts.MaxLeagues)
	res.Mismatches = Validate(res.PlayerDivision, totals)
	return res, nil
}
