package innebandy

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

const ua = "Mozilla/5.0 (compatible; FloorballStatsBot/1.0; +https://example.com/bot)"

// Position is the coarse roster category used to prefix player labels.
type Position int

const (
	PositionUnknown Position = iota
	PositionForward
	PositionBack
	PositionGoalkeeper
)

func (p Position) String() string {
	switch p {
	case PositionForward:
		return "forward"
	case PositionBack:
		return "back"
	case PositionGoalkeeper:
		return "goalkeeper"
	}
	return "unknown"
}

// Prefix is the single-letter label prefix used to disambiguate same-named
// players across charts.
func (p Position) Prefix() string {
	switch p {
	case PositionForward:
		return "F"
	case PositionBack:
		return "B"
	case PositionGoalkeeper:
		return "M"
	}
	return "?"
}

// RawRosterRow is a roster row as read from the roster page or a roster CSV.
type RawRosterRow struct {
	PlayerID string
	Name     string
	Position string
	Href     string
	Extra    map[string]string
}

// RosterEntry is a cleaned roster row. Link is empty when the player has no
// profile page and cannot be fetched.
type RosterEntry struct {
	PlayerID    string
	Name        string
	RawPosition string
	Position    Position
	Link        string
}

// Label is the position-prefixed display name, e.g. "F-Jane Doe".
func (e RosterEntry) Label() string {
	return e.Position.Prefix() + "-" + e.Name
}

// AppearanceRecord is one (player, division, team) line of a player's season.
// Goals, Assists, Points and Penalty are passed through untouched.
type AppearanceRecord struct {
	Player   string
	Division string
	Team     string
	Matches  int
	Goals    string
	Assists  string
	Points   string
	Penalty  string
}

// TotalDivision marks the per-player grand total row.
const TotalDivision = "TOTALT"

// IsTotal reports whether the record is the synthetic grand-total row.
func (r AppearanceRecord) IsTotal() bool {
	return strings.EqualFold(strings.TrimSpace(r.Division), TotalDivision)
}

// Atoi parses s as an integer and returns def on failure.
func Atoi(s string, def int) int {
	i, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return def
	}
	return i
}

// CoerceMatches converts a raw match-count cell. Valid integers pass
// through unchanged; anything unparseable becomes 0.
func CoerceMatches(s string) int {
	return Atoi(s, 0)
}

var wsRe = regexp.MustCompile(`\s+`)

// NormalizeName applies NFKC, trims, and collapses internal whitespace runs.
func NormalizeName(s string) string {
	s = norm.NFKC.String(s)
	return wsRe.ReplaceAllString(strings.TrimSpace(s), " ")
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
