package report

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tyler180/floorball-appearances/internal/innebandy"
)

func rec(player, division, team string, matches int) innebandy.AppearanceRecord {
	return innebandy.AppearanceRecord{Player: player, Division: division, Team: team, Matches: matches}
}

func TestCapColumns_KeepsLargestInOrder(t *testing.T) {
	m := PlayerDivision([]innebandy.AppearanceRecord{
		rec("F-A", "Div A", "X", 10),
		rec("F-A", "Div B", "X", 5),
		rec("F-A", "Div C", "X", 50),
		rec("F-A", "Div D", "X", 1),
	})
	require.Equal(t, []string{"Div A", "Div B", "Div C", "Div D"}, m.Cols)

	capped := CapColumns(m, 2)
	require.Equal(t, []string{"Div C", "Div A"}, capped.Cols)
	require.Equal(t, 50, capped.Get("F-A", "Div C"))

	require.Len(t, CapColumns(m, 0).Cols, 4)
	require.Len(t, CapColumns(m, 10).Cols, 4)
}

func TestCapColumns_TiesKeepEncounterOrder(t *testing.T) {
	m := PlayerDivision([]innebandy.AppearanceRecord{
		rec("F-A", "Z div", "X", 5),
		rec("F-A", "A div", "X", 5),
		rec("F-B", "M div", "X", 7),
	})
	require.Equal(t, []string{"A div", "M div", "Z div"}, m.Cols)

	require.Equal(t, []string{"M div"}, CapColumns(m, 1).Cols)
	require.Equal(t, []string{"M div", "Z div"}, CapColumns(m, 2).Cols)
}

func TestCapRows_TiesKeepEncounterOrder(t *testing.T) {
	m := Participation([]innebandy.AppearanceRecord{
		rec("F-A", "Serie Y", "t", 1),
		rec("F-A", "Serie B", "t", 1),
	})
	require.Equal(t, []string{"Serie Y"}, CapRows(m, 1).Rows)
}

func TestCapRows_ByDistinctPlayers(t *testing.T) {
	m := Participation([]innebandy.AppearanceRecord{
		rec("F-A", "X", "t", 1), rec("F-B", "X", "t", 2), rec("F-C", "X", "t", 3),
		rec("F-A", "Y", "t", 9),
		rec("F-A", "Z", "t", 1), rec("F-B", "Z", "t", 1),
	})
	capped := CapRows(m, 2)
	require.Equal(t, []string{"X", "Z"}, capped.Rows)
	require.Equal(t, 3, capped.RowSum("X"))
}

func TestValidate(t *testing.T) {
	totals := []innebandy.AppearanceRecord{rec("F-A", "TOTALT", "", 20)}

	ok := PlayerDivision([]innebandy.AppearanceRecord{rec("F-A", "A", "x", 10), rec("F-A", "B", "x", 10)})
	require.Empty(t, Validate(ok, totals))

	bad := PlayerDivision([]innebandy.AppearanceRecord{rec("F-A", "A", "x", 10), rec("F-A", "B", "x", 5)})
	require.Equal(t, []Mismatch{{Player: "F-A", Expected: 20, Computed: 15}}, Validate(bad, totals))

	// only the first total per player counts
	dup := append(totals, rec("F-A", "TOTALT", "", 15))
	require.Len(t, Validate(bad, dup), 1)

	// a negative total is compared as reported
	neg := []innebandy.AppearanceRecord{rec("F-A", "TOTALT", "", -1)}
	require.Equal(t, []Mismatch{{Player: "F-A", Expected: -1, Computed: 15}}, Validate(bad, neg))

	// players without a total are not checked
	require.Empty(t, Validate(bad, nil))
}

func TestParticipation_IsBinary(t *testing.T) {
	m := Participation([]innebandy.AppearanceRecord{
		rec("F-A", "Div1", "Team 1", 4),
		rec("F-A", "Div1", "Team 2", 7),
		rec("B-B", "Div1", "Team 1", 0),
		rec("B-B", "Div2", "Team 1", 2),
	})
	require.Equal(t, []string{"Div1", "Div2"}, m.Rows)
	require.Equal(t, []string{"B-B", "F-A"}, m.Cols)
	for _, d := range m.Rows {
		for _, p := range m.Cols {
			v := m.Get(d, p)
			require.Contains(t, []int{0, 1}, v)
		}
	}
	require.Equal(t, 1, m.Get("Div1", "F-A"))
	require.Equal(t, 0, m.Get("Div1", "B-B"))
	require.Equal(t, 1, m.Get("Div2", "B-B"))
}

func TestPlayerDivision_RowSumMatchesRecords(t *testing.T) {
	var recs []innebandy.AppearanceRecord
	want := map[string]int{}
	for i := 0; i < 60; i++ {
		p := fmt.Sprintf("F-P%d", i%7)
		r := rec(p, fmt.Sprintf("Div %d", i%5), fmt.Sprintf("T%d", i%3), (i*13)%11)
		recs = append(recs, r)
		want[p] += r.Matches
	}
	m := PlayerDivision(recs)
	for p, n := range want {
		require.Equal(t, n, m.RowSum(p), p)
	}
	for _, r := range m.Rows {
		for _, c := range m.Cols {
			require.GreaterOrEqual(t, m.Get(r, c), 0)
		}
	}
}

func TestAnalyze_SinglePlayer(t *testing.T) {
	res, err := Analyze([]innebandy.AppearanceRecord{
		rec("F-Anna Svensson", "Div1", "X", 3),
		rec("F-Anna Svensson", "TOTALT", "", 3),
	}, DefaultOptions())
	require.NoError(t, err)

	require.Equal(t, []innebandy.AppearanceRecord{rec("F-Anna Svensson", "Div1", "X", 3)}, res.Working)
	require.Len(t, res.Totals, 1)
	require.Equal(t, []string{"F-Anna Svensson"}, res.PlayerDivision.Rows)
	require.Equal(t, []string{"Div1"}, res.PlayerDivision.Cols)
	require.Equal(t, 3, res.PlayerDivision.Get("F-Anna Svensson", "Div1"))
	require.Empty(t, res.Mismatches)
	require.Equal(t, 1, res.Participation.Get("Div1", "F-Anna Svensson"))
}

func TestAnalyze_ValidatesBeforeColumnCap(t *testing.T) {
	res, err := Analyze([]innebandy.AppearanceRecord{
		rec("F-A", "A", "x", 4),
		rec("F-A", "B", "x", 6),
		rec("F-A", "TOTALT", "", 10),
	}, Options{MaxDivisions: 1})
	require.NoError(t, err)
	require.Equal(t, []string{"B"}, res.Divisions.Cols)
	require.Empty(t, res.Mismatches)
}

func TestAnalyze_Empty(t *testing.T) {
	_, err := Analyze(nil, DefaultOptions())
	require.ErrorIs(t, err, ErrEmpty)

	_, err = Analyze([]innebandy.AppearanceRecord{
		rec("F-A", "TOTALT", "", 0),
		rec("F-A", "Div1", "X", 0),
		rec("F-B", " ", "X", 4),
	}, DefaultOptions())
	require.ErrorIs(t, err, ErrEmpty)
}

func TestRenderSummaries(t *testing.T) {
	res, err := Analyze([]innebandy.AppearanceRecord{
		rec("F-Anna Svensson", "Div1", "X", 3),
		rec("F-Anna Svensson", "TOTALT", "", 5),
	}, DefaultOptions())
	require.NoError(t, err)

	var buf bytes.Buffer
	RenderDivisions(&buf, res.Divisions)
	RenderParticipation(&buf, res.Participation)
	RenderMismatches(&buf, res.Mismatches)
	out := buf.String()
	require.Contains(t, out, "F-Anna Svensson")
	require.Contains(t, out, "Div1")
	require.Contains(t, out, "TOTALT")

	buf.Reset()
	RenderRoster(&buf, []innebandy.RosterEntry{{PlayerID: "5", Name: "Anna Svensson", RawPosition: "Forward"}}, 10)
	require.Contains(t, buf.String(), "Roster (1 of 1)")
}
