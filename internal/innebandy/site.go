package innebandy

import (
	"strings"
	"time"
)

// Field is a semantic column of a player's season table.
type Field string

const (
	FieldCompetition Field = "competition"
	FieldTeam        Field = "team"
	FieldMatches     Field = "matches"
	FieldGoals       Field = "goals"
	FieldAssists     Field = "assists"
	FieldPoints      Field = "points"
	FieldPenalty     Field = "penalty"
)

// FieldColumn binds a semantic field to the header text that names it and
// the column index used when that header is missing.
type FieldColumn struct {
	Field    Field
	Header   string
	Fallback int
}

const (
	DefaultBaseURL     = "https://stats.innebandy.se"
	DefaultSeasonLabel = "2025/26"
	DefaultRosterURL   = "https://stats.innebandy.se/sasong/43/lag/24067/trupp"
	DefaultScheduleURL = "https://stats.innebandy.se/sasong/43/lag/24067/spelprogram"
)

// Site holds everything the extractor and normalizer assume about the
// target site. Treat it as read-only once built.
type Site struct {
	BaseURL         string
	SeasonLabel     string
	Columns         []FieldColumn
	CookieSelectors []string
	PlayerSettle    time.Duration
	RosterSettle    time.Duration
	CookieSettle    time.Duration
	PlayerDelay     time.Duration
}

var defaultColumns = []FieldColumn{
	{Field: FieldCompetition, Header: "tävling", Fallback: 0},
	{Field: FieldTeam, Header: "lag", Fallback: 1},
	{Field: FieldMatches, Header: "ma", Fallback: 2},
	{Field: FieldGoals, Header: "må", Fallback: 3},
	{Field: FieldAssists, Header: "ass", Fallback: 4},
	{Field: FieldPoints, Header: "p", Fallback: 5},
	{Field: FieldPenalty, Header: "utv", Fallback: 6},
}

var defaultCookieSelectors = []string{
	"button:has-text('Acceptera alla')",
	"button:has-text('Acceptera')",
	"#onetrust-accept-btn-handler",
	"button.cookie-accept",
}

// NewSite builds a Site for baseURL and seasonLabel with the stock column
// table and cookie selectors. Empty arguments fall back to the defaults.
func NewSite(baseURL, seasonLabel string, playerDelay time.Duration) Site {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultBaseURL
	}
	if strings.TrimSpace(seasonLabel) == "" {
		seasonLabel = DefaultSeasonLabel
	}
	cols := make([]FieldColumn, len(defaultColumns))
	copy(cols, defaultColumns)
	sels := make([]string, len(defaultCookieSelectors))
	copy(sels, defaultCookieSelectors)
	return Site{
		BaseURL:         strings.TrimRight(baseURL, "/"),
		SeasonLabel:     seasonLabel,
		Columns:         cols,
		CookieSelectors: sels,
		PlayerSettle:    500 * time.Millisecond,
		RosterSettle:    800 * time.Millisecond,
		CookieSettle:    250 * time.Millisecond,
		PlayerDelay:     playerDelay,
	}
}

// DefaultSite is NewSite with every default applied.
func DefaultSite() Site {
	return NewSite(DefaultBaseURL, DefaultSeasonLabel, 200*time.Millisecond)
}
