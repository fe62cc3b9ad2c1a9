package main

import (
	"os"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/tyler180/floorball-appearances/internal/innebandy"
	"github.com/tyler180/floorball-appearances/internal/pipeline"
	"github.com/tyler180/floorball-appearances/internal/report"
	"github.com/tyler180/floorball-appearances/internal/store"
)

func replayCmd() *cobra.Command {
	var season, outPrefix, fromCSV string
	var maxDivisions, maxLeagues int
	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Rebuild charts from stored appearances (DynamoDB or a CSV)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel, e, err := setup()
			if err != nil {
				return err
			}
			defer cancel()
			defer func() { _ = e.log.Sync() }()

			table := e.cfg.AppearancesTable
			if fromCSV != "" {
				table = ""
			} else if table == "" {
				return errors.New("replay needs --from-csv or APPEARANCES_TABLE")
			}
			if season == "" {
				season = e.cfg.SeasonLabel
			}
			sinks, err := pipeline.AWSSinks(ctx, table, e.cfg.ArtifactBucket, e.cfg.ArtifactPrefix)
			if err != nil {
				return err
			}

			var recs []innebandy.AppearanceRecord
			if fromCSV != "" {
				recs, err = store.ReadAppearancesFile(fromCSV)
				if err != nil {
					return err
				}
				e.log.Info("loaded appearances", "path", fromCSV, "records", len(recs))
			} else {
				recs, err = store.LoadAppearances(ctx, sinks.DynamoDB, sinks.Table, season)
				if err != nil {
					return err
				}
				e.log.Info("loaded appearances", "table", sinks.Table, "season", season, "records", len(recs))
			}

			// replay never writes appearance rows; only artifacts are uploaded
			r := &pipeline.Runner{
				Site:  e.cfg.Site(),
				Log:   e.log,
				Out:   os.Stdout,
				Sinks: pipeline.Sinks{Uploader: sinks.Uploader},
			}
			sum, err := r.Report(ctx, recs, pipeline.Options{
				OutPrefix: outPrefix,
				Report:    report.Options{MaxDivisions: maxDivisions, MaxLeagues: maxLeagues},
			})
			if err != nil {
				return exitClean(err)
			}
			printSummary(sum)
			return nil
		},
	}
	cmd.Flags().StringVar(&season, "season", "", "Season partition to read (defaults to SEASON_LABEL)")
	cmd.Flags().StringVar(&outPrefix, "out-prefix", "", "Prefix for output files")
	cmd.Flags().StringVar(&fromCSV, "from-csv", "", "Read an appearances CSV instead of DynamoDB")
	cmd.Flags().IntVar(&maxDivisions, "max-divisions", 8, "Max divisions on the per-player chart (0 = all)")
	cmd.Flags().IntVar(&maxLeagues, "max-leagues", 12, "Max leagues on the players-per-league chart (0 = all)")
	return cmd
}
