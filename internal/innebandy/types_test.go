package innebandy

import (
	"strconv"
	"testing"
)

func TestCoerceMatches(t *testing.T) {
	for n := -50; n <= 500; n++ {
		if got := CoerceMatches(strconv.Itoa(n)); got != n {
			t.Fatalf("CoerceMatches(%d) = %d", n, got)
		}
	}
	for _, in := range []string{"", " ", "-", "abc", "3.5", "1 2", "--4"} {
		if got := CoerceMatches(in); got != 0 {
			t.Errorf("CoerceMatches(%q) = %d, want 0", in, got)
		}
	}
	if got := CoerceMatches(" 14 "); got != 14 {
		t.Fatalf("padded value = %d", got)
	}
}

func TestNormalizeName(t *testing.T) {
	cases := map[string]string{
		"  Anna  Svensson ":              "Anna Svensson",
		"\uff2c\uff49\uff53\uff41  Berg": "Lisa Berg",
		"Eva\tEk":                        "Eva Ek",
		"":                               "",
	}
	for in, want := range cases {
		if got := NormalizeName(in); got != want {
			t.Errorf("NormalizeName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestRecordFromFields_CompetitionFilter(t *testing.T) {
	for _, comp := range []string{"", "   ", "2024", "12", "١٢"} {
		if _, ok := RecordFromFields("F-A", Fields{FieldCompetition: comp, FieldMatches: "3"}); ok {
			t.Errorf("competition %q should be dropped", comp)
		}
	}
	for _, comp := range []string{"Div 1", "TOTALT", "P15 2010"} {
		if _, ok := RecordFromFields("F-A", Fields{FieldCompetition: comp}); !ok {
			t.Errorf("competition %q should be kept", comp)
		}
	}
}

func TestRecordFromFields_Values(t *testing.T) {
	rec, ok := RecordFromFields("B-Eva Ek", Fields{
		FieldCompetition: " Div 2 ",
		FieldTeam:        "IBK Z",
		FieldMatches:     "x",
		FieldGoals:       "1",
		FieldAssists:     "2",
		FieldPoints:      "3",
		FieldPenalty:     "4",
	})
	if !ok {
		t.Fatalf("record dropped")
	}
	want := AppearanceRecord{
		Player: "B-Eva Ek", Division: "Div 2", Team: "IBK Z", Matches: 0,
		Goals: "1", Assists: "2", Points: "3", Penalty: "4",
	}
	if rec != want {
		t.Fatalf("got %+v, want %+v", rec, want)
	}
	if rec.IsTotal() {
		t.Fatalf("not a total row")
	}
	if !(AppearanceRecord{Division: "totalt"}).IsTotal() {
		t.Fatalf("TOTALT match is case-insensitive")
	}
}

func TestNewSite_Defaults(t *testing.T) {
	s := NewSite("", "", 0)
	if s.BaseURL != DefaultBaseURL || s.SeasonLabel != DefaultSeasonLabel {
		t.Fatalf("defaults not applied: %+v", s)
	}
	s = NewSite("https://x.test///", "2024/25", 0)
	if s.BaseURL != "https://x.test" {
		t.Fatalf("base = %q", s.BaseURL)
	}
	// columns are copied, not shared
	s.Columns[0].Fallback = 99
	if DefaultSite().Columns[0].Fallback != 0 {
		t.Fatalf("default column table mutated")
	}
}
