package pipeline

import (
	"context"

	"github.com/cockroachdb/errors"

	"github.com/tyler180/floorball-appearances/internal/innebandy"
	"github.com/tyler180/floorball-appearances/internal/logging"
)

// ScrapeRoster fetches a team roster page and returns its rows with names
// normalized.
func ScrapeRoster(ctx context.Context, f innebandy.PageFetcher, teamURL string, log *logging.Logger) ([]innebandy.RawRosterRow, error) {
	log.Info("fetching roster", "url", teamURL)
	page, err := f.Fetch(ctx, teamURL)
	if err != nil {
		return nil, errors.Wrapf(err, "fetch roster %s", teamURL)
	}
	innebandy.DumpTablesForDebug(log, page, "roster")

	rows := innebandy.ExtractRoster(page)
	for i := range rows {
		rows[i].Name = innebandy.NormalizeName(rows[i].Name)
	}
	log.Info("roster extracted", "rows", len(rows))
	return rows, nil
}

// ScrapeLinks fetches pageURL and returns anchors whose href contains token.
func ScrapeLinks(ctx context.Context, f innebandy.PageFetcher, pageURL, token string, log *logging.Logger) ([]innebandy.Link, error) {
	log.Info("fetching page", "url", pageURL, "contains", token)
	page, err := f.Fetch(ctx, pageURL)
	if err != nil {
		return nil, errors.Wrapf(err, "fetch %s", pageURL)
	}
	links := innebandy.ExtractLinks(page, token)
	log.Info("links extracted", "count", len(links))
	return links, nil
}
