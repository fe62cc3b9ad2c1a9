// Command appearances scrapes a floorball team's roster and player pages and
// charts how many matches each player has played per division.
//
// Usage:
//
//	appearances analyze --trupp trupp.csv --out-prefix lag_
//	appearances analyze --team-url https://stats.innebandy.se/sasong/43/lag/24067/trupp
//	appearances roster --out trupp.csv
//	appearances schedule --contains match --out spelprogram.csv
//	appearances replay --season 2025/26
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/tyler180/floorball-appearances/internal/browser"
	"github.com/tyler180/floorball-appearances/internal/config"
	"github.com/tyler180/floorball-appearances/internal/innebandy"
	"github.com/tyler180/floorball-appearances/internal/logging"
	"github.com/tyler180/floorball-appearances/internal/pipeline"
)

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

var logLevel string

func rootCmd() *cobra.Command {
	var opts analyzeFlags
	root := &cobra.Command{
		Use:          "appearances",
		Short:        "Floorball player appearances per division",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(opts)
		},
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "debug|info|warn|error (overrides LOG_LEVEL)")
	opts.register(root)

	root.AddCommand(analyzeCmd())
	root.AddCommand(rosterCmd())
	root.AddCommand(scheduleCmd())
	root.AddCommand(replayCmd())
	return root
}

// env bundles what every command needs.
type env struct {
	cfg config.Config
	log *logging.Logger
}

func setup() (context.Context, context.CancelFunc, env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, env{}, err
	}
	if logLevel != "" {
		cfg.LogLevel = logging.ParseLevel(logLevel)
	}
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	return ctx, cancel, env{cfg: cfg, log: logging.New(cfg.LogLevel)}, nil
}

// opener picks the page fetcher named by FETCHER.
func (e env) opener(site innebandy.Site) pipeline.OpenFunc {
	return func(ctx context.Context) (pipeline.Session, error) {
		if e.cfg.Fetcher == config.FetcherHTTP {
			return pipeline.StaticSession(innebandy.NewHTTPFetcher(e.cfg.FetchTimeout())), nil
		}
		s, err := browser.Open(site, browser.Options{
			Headless: e.cfg.Headless,
			Timeout:  e.cfg.FetchTimeout(),
		}, e.log)
		if err != nil {
			return nil, err
		}
		return s, nil
	}
}

// exitClean prints the no-data message and swallows ErrNoData.
func exitClean(err error) error {
	if pipeline.IsNoData(err) {
		fmt.Println(err.Error())
		return nil
	}
	return err
}
