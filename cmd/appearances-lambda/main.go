package main

import (
	"context"
	"io"
	"path/filepath"
	"strings"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/cockroachdb/errors"

	"github.com/tyler180/floorball-appearances/internal/config"
	"github.com/tyler180/floorball-appearances/internal/innebandy"
	"github.com/tyler180/floorball-appearances/internal/logging"
	"github.com/tyler180/floorball-appearances/internal/pipeline"
	"github.com/tyler180/floorball-appearances/internal/report"
)

// Event overrides the env configuration for one invocation.
type Event struct {
	TeamURL      string `json:"team_url"`
	Player       string `json:"player"`
	OutPrefix    string `json:"out_prefix"`
	MaxDivisions *int   `json:"max_divisions"`
	MaxLeagues   *int   `json:"max_leagues"`
}

type Response struct {
	Status     string   `json:"status"`
	Message    string   `json:"message,omitempty"`
	Players    int      `json:"players"`
	Records    int      `json:"records"`
	Failed     int      `json:"failed"`
	Mismatches int      `json:"mismatches"`
	Stored     int      `json:"stored"`
	Uploaded   []string `json:"uploaded,omitempty"`
}

// Lambda has no browser; only /tmp is writable.
const workDir = "/tmp"

func handler(ctx context.Context, e Event) (*Response, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	log := logging.New(cfg.LogLevel)
	defer func() { _ = log.Sync() }()

	opts := pipeline.Options{
		TeamURL:      cfg.TeamURL,
		OutPrefix:    outPrefix(e.OutPrefix),
		PlayerFilter: e.Player,
		Report:       report.DefaultOptions(),
	}
	if e.TeamURL != "" {
		opts.TeamURL = e.TeamURL
	}
	if e.MaxDivisions != nil {
		opts.Report.MaxDivisions = *e.MaxDivisions
	}
	if e.MaxLeagues != nil {
		opts.Report.MaxLeagues = *e.MaxLeagues
	}

	sinks, err := pipeline.AWSSinks(ctx, cfg.AppearancesTable, cfg.ArtifactBucket, cfg.ArtifactPrefix)
	if err != nil {
		return nil, err
	}
	r := &pipeline.Runner{
		Site: cfg.Site(),
		Open: func(context.Context) (pipeline.Session, error) {
			return pipeline.StaticSession(innebandy.NewHTTPFetcher(cfg.FetchTimeout())), nil
		},
		Log:   log,
		Out:   io.Discard,
		Sinks: sinks,
	}

	sum, err := r.Run(ctx, opts)
	resp := &Response{
		Status:     "ok",
		Players:    sum.Roster,
		Records:    sum.Records,
		Failed:     len(sum.Failures),
		Mismatches: len(sum.Mismatches),
		Stored:     sum.Stored,
		Uploaded:   sum.Uploaded,
	}
	if pipeline.IsNoData(err) {
		resp.Status = "no_data"
		resp.Message = err.Error()
		return resp, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "run")
	}
	log.Info("run finished", "players", resp.Players, "records", resp.Records, "uploaded", len(resp.Uploaded))
	return resp, nil
}

// outPrefix keeps every artifact directly under workDir.
func outPrefix(p string) string {
	p = strings.TrimSpace(p)
	if p == "" {
		return workDir + "/"
	}
	return filepath.Join(workDir, filepath.Base(p))
}

func main() {
	lambda.Start(handler)
}
