package innebandy

import (
	"context"
	"strings"
	"time"

	"github.com/tyler180/floorball-appearances/internal/logging"
)

// Collection is the result of walking a roster.
type Collection struct {
	Records       []AppearanceRecord
	Failures      []FetchFailure
	NoLink        int
	LowConfidence []string
}

// Collector fetches each roster entry's profile page and turns the season
// table into appearance records. It is strictly sequential.
type Collector struct {
	site    Site
	fetcher PageFetcher
	log     *logging.Logger
	sleep   func(time.Duration)
}

func NewCollector(site Site, fetcher PageFetcher, log *logging.Logger) *Collector {
	return &Collector{site: site, fetcher: fetcher, log: log, sleep: time.Sleep}
}

// Collect walks entries in order. A failed fetch is logged and recorded;
// the walk continues with the next player.
func (c *Collector) Collect(ctx context.Context, entries []RosterEntry) Collection {
	var out Collection
	fetched := 0
	for _, e := range entries {
		if e.Link == "" {
			out.NoLink++
			continue
		}
		if ctx.Err() != nil {
			c.log.Warn("collection interrupted", "remaining_from", e.Label(), "error", ctx.Err())
			break
		}
		if fetched > 0 && c.site.PlayerDelay > 0 {
			c.sleep(c.site.PlayerDelay)
		}
		fetched++

		label := e.Label()
		c.log.Info("fetching appearances", "player", label, "url", e.Link)
		page, err := c.fetcher.Fetch(ctx, e.Link)
		if err != nil {
			c.log.Warn("fetch failed", "player", label, "url", e.Link, "error", err)
			out.Failures = append(out.Failures, FetchFailure{Label: label, URL: e.Link, Err: err})
			continue
		}
		DumpTablesForDebug(c.log, page, label)

		res := c.site.ExtractRows(page, c.site.SeasonLabel)
		if res.LowConfidence {
			c.log.Warn("season table not found by heading, using fallback",
				"player", label, "season", c.site.SeasonLabel, "strategy", res.Strategy)
			out.LowConfidence = append(out.LowConfidence, label)
		}
		recs := RecordsFromRows(label, res.Rows)
		c.log.Debug("extracted rows", "player", label, "rows", len(res.Rows), "records", len(recs))
		out.Records = append(out.Records, recs...)
	}
	return out
}

// RecordsFromRows converts extracted rows for one player into records,
// dropping rows whose competition is blank or purely numeric.
func RecordsFromRows(label string, rows []Fields) []AppearanceRecord {
	out := make([]AppearanceRecord, 0, len(rows))
	for _, f := range rows {
		if r, ok := RecordFromFields(label, f); ok {
			out = append(out, r)
		}
	}
	return out
}

// RecordFromFields builds one record. ok is false for noise rows.
func RecordFromFields(label string, f Fields) (AppearanceRecord, bool) {
	comp := strings.TrimSpace(f[FieldCompetition])
	if comp == "" || isAllDigits(comp) {
		return AppearanceRecord{}, false
	}
	return AppearanceRecord{
		Player:   label,
		Division: comp,
		Team:     f[FieldTeam],
		Matches:  CoerceMatches(f[FieldMatches]),
		Goals:    f[FieldGoals],
		Assists:  f[FieldAssists],
		Points:   f[FieldPoints],
		Penalty:  f[FieldPenalty],
	}, true
}
