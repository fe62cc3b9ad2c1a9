// Package pipeline runs one analysis: roster, player pages, appearance
// table, pivots, charts and the optional AWS sinks.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/cockroachdb/errors"

	"github.com/tyler180/floorball-appearances/internal/chart"
	"github.com/tyler180/floorball-appearances/internal/innebandy"
	"github.com/tyler180/floorball-appearances/internal/logging"
	"github.com/tyler180/floorball-appearances/internal/report"
	"github.com/tyler180/floorball-appearances/internal/store"
)

// ErrNoData marks a run that ended early because there was nothing to
// analyze. Callers treat it as a clean exit.
var ErrNoData = errors.New("no data")

const (
	msgNoRoster      = "Roster file not found."
	msgNoAppearances = "No appearance rows found for any player."
	msgNoDivisions   = "No division appearance data to plot."

	appearancesFile = "appearances.csv"
	previewRows     = 10
)

func noData(msg string) error {
	return errors.Mark(errors.New(msg), ErrNoData)
}

type Options struct {
	// RosterCSV is read when TeamURL is empty.
	RosterCSV string
	// TeamURL, when set, scrapes the roster live.
	TeamURL      string
	OutPrefix    string
	PlayerFilter string
	Report       report.Options
}

// Sinks are optional destinations besides the local files.
type Sinks struct {
	DynamoDB store.DynamoDBAPI
	Table    string
	Uploader *store.Uploader
}

// Summary describes what a run did, including runs that hit ErrNoData.
type Summary struct {
	Roster        int
	NoLink        int
	Records       int
	Failures      []innebandy.FetchFailure
	LowConfidence []string
	Mismatches    []report.Mismatch
	Files         []string
	Stored        int
	Uploaded      []string
}

type Runner struct {
	Site  innebandy.Site
	Open  OpenFunc
	Log   *logging.Logger
	Out   io.Writer
	Sinks Sinks
}

// Run executes one analysis. A nil error or ErrNoData (check with
// errors.Is) are both normal outcomes.
func (r *Runner) Run(ctx context.Context, opts Options) (Summary, error) {
	var sum Summary
	sess := &lazySession{open: r.Open}
	defer func() {
		if cerr := sess.Close(); cerr != nil {
			r.Log.Warn("closing fetch session", "error", cerr)
		}
	}()

	raw, err := r.loadRoster(ctx, sess, opts)
	if err != nil {
		return sum, err
	}
	if len(raw) == 0 {
		r.Log.Info(msgNoAppearances, "roster_rows", 0)
		return sum, noData(msgNoAppearances)
	}
	if raw = innebandy.FilterByName(raw, opts.PlayerFilter); len(raw) == 0 {
		msg := fmt.Sprintf("No players matching %q found in roster.", opts.PlayerFilter)
		r.Log.Info(msg)
		return sum, noData(msg)
	}

	entries := r.Site.NormalizeRoster(raw)
	sum.Roster = len(entries)
	report.RenderRoster(r.out(), entries, previewRows)

	s, err := sess.get(ctx)
	if err != nil {
		return sum, errors.Wrap(err, "open fetch session")
	}
	col := innebandy.NewCollector(r.Site, s, r.Log).Collect(ctx, entries)
	sum.NoLink = col.NoLink
	sum.Failures = col.Failures
	sum.LowConfidence = col.LowConfidence
	sum.Records = len(col.Records)
	r.Log.Info("collection finished",
		"players", len(entries),
		"records", len(col.Records),
		"failures", len(col.Failures),
		"no_link", col.NoLink,
		"low_confidence", len(col.LowConfidence),
	)

	if len(col.Records) == 0 {
		r.Log.Info(msgNoAppearances)
		return sum, noData(msgNoAppearances)
	}

	csvPath := opts.OutPrefix + appearancesFile
	if err := store.WriteFile(csvPath, func(w io.Writer) error {
		return store.WriteAppearances(w, col.Records)
	}); err != nil {
		return sum, err
	}
	sum.Files = append(sum.Files, csvPath)
	r.Log.Info("wrote appearances", "path", csvPath, "rows", len(col.Records))

	if r.Sinks.DynamoDB != nil && r.Sinks.Table != "" {
		n, err := store.PutAppearances(ctx, r.Sinks.DynamoDB, r.Sinks.Table, r.Site.SeasonLabel, col.Records)
		sum.Stored = n
		if err != nil {
			return sum, errors.Wrap(err, "store appearances")
		}
		r.Log.Info("stored appearances", "table", r.Sinks.Table, "items", n)
	}

	return r.finish(ctx, col.Records, opts, sum)
}

// Report runs pivot, validation, charts and upload over records that were
// collected earlier, e.g. loaded back from DynamoDB.
func (r *Runner) Report(ctx context.Context, recs []innebandy.AppearanceRecord, opts Options) (Summary, error) {
	sum := Summary{Records: len(recs)}
	if len(recs) == 0 {
		r.Log.Info(msgNoAppearances)
		return sum, noData(msgNoAppearances)
	}
	return r.finish(ctx, recs, opts, sum)
}

func (r *Runner) finish(ctx context.Context, recs []innebandy.AppearanceRecord, opts Options, sum Summary) (Summary, error) {
	res, err := report.Analyze(recs, opts.Report)
	if errors.Is(err, report.ErrEmpty) {
		r.Log.Info(msgNoDivisions)
		return sum, noData(msgNoDivisions)
	}
	if err != nil {
		return sum, err
	}

	sum.Mismatches = res.Mismatches
	for _, m := range res.Mismatches {
		r.Log.Warn("division sum does not match TOTALT",
			"player", m.Player, "expected", m.Expected, "computed", m.Computed)
	}
	report.RenderDivisions(r.out(), res.Divisions)
	report.RenderParticipation(r.out(), res.Participation)
	report.RenderMismatches(r.out(), res.Mismatches)

	files := chart.FileNames(opts.OutPrefix)
	if err := chart.PlayerDivisions(res.Divisions, files.Divisions); err != nil {
		return sum, errors.Wrap(err, "render division chart")
	}
	sum.Files = append(sum.Files, files.Divisions)
	r.Log.Info("saved stacked chart", "path", files.Divisions)

	if err := chart.Participation(res.Participation, files.Participation); err != nil {
		return sum, errors.Wrap(err, "render players-per-league chart")
	}
	sum.Files = append(sum.Files, files.Participation)
	r.Log.Info("saved players-per-league chart", "path", files.Participation)

	if u := r.Sinks.Uploader; u != nil && u.Bucket != "" {
		keys, err := u.UploadFiles(ctx, sum.Files...)
		sum.Uploaded = keys
		if err != nil {
			return sum, errors.Wrap(err, "upload artifacts")
		}
		r.Log.Info("uploaded artifacts", "bucket", u.Bucket, "keys", keys)
	}
	return sum, nil
}

func (r *Runner) loadRoster(ctx context.Context, sess *lazySession, opts Options) ([]innebandy.RawRosterRow, error) {
	if opts.TeamURL != "" {
		s, err := sess.get(ctx)
		if err != nil {
			return nil, errors.Wrap(err, "open fetch session")
		}
		return ScrapeRoster(ctx, s.RosterFetcher(), opts.TeamURL, r.Log)
	}

	rows, err := store.ReadRosterFile(opts.RosterCSV)
	if errors.Is(err, os.ErrNotExist) {
		r.Log.Info("roster file not found; run the roster command or pass a team URL", "path", opts.RosterCSV)
		return nil, noData(msgNoRoster)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "read roster %s", opts.RosterCSV)
	}
	r.Log.Info("loaded roster", "path", opts.RosterCSV, "rows", len(rows))
	return rows, nil
}

func (r *Runner) out() io.Writer {
	if r.Out == nil {
		return io.Discard
	}
	return r.Out
}

// IsNoData reports whether err is a clean early exit.
func IsNoData(err error) bool {
	return errors.Is(err, ErrNoData)
}
