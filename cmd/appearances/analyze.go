package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tyler180/floorball-appearances/internal/pipeline"
	"github.com/tyler180/floorball-appearances/internal/report"
)

type analyzeFlags struct {
	trupp        string
	teamURL      string
	outPrefix    string
	player       string
	maxDivisions int
	maxLeagues   int
}

func (f *analyzeFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.trupp, "trupp", "trupp.csv", "Path to roster CSV")
	cmd.Flags().StringVar(&f.teamURL, "team-url", "", "Team roster URL to scrape instead of using a CSV")
	cmd.Flags().StringVar(&f.outPrefix, "out-prefix", "", "Prefix for output files (e.g. team_)")
	cmd.Flags().StringVar(&f.player, "player", "", "Only analyze players whose name contains this (case-insensitive)")
	cmd.Flags().IntVar(&f.maxDivisions, "max-divisions", 8, "Max divisions on the per-player chart (0 = all)")
	cmd.Flags().IntVar(&f.maxLeagues, "max-leagues", 12, "Max leagues on the players-per-league chart (0 = all)")
}

func (f analyzeFlags) options() pipeline.Options {
	return pipeline.Options{
		RosterCSV:    f.trupp,
		TeamURL:      f.teamURL,
		OutPrefix:    f.outPrefix,
		PlayerFilter: f.player,
		Report: report.Options{
			MaxDivisions: f.maxDivisions,
			MaxLeagues:   f.maxLeagues,
		},
	}
}

func analyzeCmd() *cobra.Command {
	var f analyzeFlags
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Collect appearances for a roster and render the charts",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(f)
		},
	}
	f.register(cmd)
	return cmd
}

func runAnalyze(f analyzeFlags) error {
	ctx, cancel, e, err := setup()
	if err != nil {
		return err
	}
	defer cancel()
	defer func() { _ = e.log.Sync() }()

	site := e.cfg.Site()
	sinks, err := pipeline.AWSSinks(ctx, e.cfg.AppearancesTable, e.cfg.ArtifactBucket, e.cfg.ArtifactPrefix)
	if err != nil {
		return err
	}
	r := &pipeline.Runner{
		Site:  site,
		Open:  e.opener(site),
		Log:   e.log,
		Out:   os.Stdout,
		Sinks: sinks,
	}
	sum, err := r.Run(ctx, f.options())
	if err != nil {
		return exitClean(err)
	}
	printSummary(sum)
	return nil
}

func printSummary(sum pipeline.Summary) {
	fmt.Printf("Players: %d  Records: %d  Failed: %d  No link: %d  Low confidence: %d\n",
		sum.Roster, sum.Records, len(sum.Failures), sum.NoLink, len(sum.LowConfidence))
	for _, f := range sum.Failures {
		fmt.Printf("  failed %s (%s): %v\n", f.Label, f.URL, f.Err)
	}
	for _, m := range sum.Mismatches {
		fmt.Printf("WARNING: %s sum of matches (%d) does not match TOTALT (%d)\n", m.Player, m.Computed, m.Expected)
	}
	for _, p := range sum.Files {
		fmt.Printf("Saved %s\n", p)
	}
	if sum.Stored > 0 {
		fmt.Printf("Stored %d items\n", sum.Stored)
	}
	for _, k := range sum.Uploaded {
		fmt.Printf("Uploaded %s\n", k)
	}
}
