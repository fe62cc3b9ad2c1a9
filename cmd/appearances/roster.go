package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/tyler180/floorball-appearances/internal/pipeline"
	"github.com/tyler180/floorball-appearances/internal/report"
	"github.com/tyler180/floorball-appearances/internal/store"
)

func rosterCmd() *cobra.Command {
	var teamURL, out string
	cmd := &cobra.Command{
		Use:   "roster",
		Short: "Scrape the team roster page into a roster CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel, e, err := setup()
			if err != nil {
				return err
			}
			defer cancel()
			defer func() { _ = e.log.Sync() }()

			if teamURL == "" {
				teamURL = e.cfg.TeamURL
			}
			site := e.cfg.Site()
			sess, err := e.opener(site)(ctx)
			if err != nil {
				return err
			}
			defer func() {
				if cerr := sess.Close(); cerr != nil {
					e.log.Warn("closing fetch session", "error", cerr)
				}
			}()

			rows, err := pipeline.ScrapeRoster(ctx, sess.RosterFetcher(), teamURL, e.log)
			if err != nil {
				return err
			}
			if len(rows) == 0 {
				fmt.Println("Roster scraper returned no players.")
				return nil
			}
			if err := store.WriteFile(out, func(w io.Writer) error {
				return store.WriteRoster(w, rows)
			}); err != nil {
				return err
			}
			fmt.Printf("Saved %s (%d rows)\n", out, len(rows))
			report.RenderRoster(os.Stdout, site.NormalizeRoster(rows), 20)
			return nil
		},
	}
	cmd.Flags().StringVar(&teamURL, "team-url", "", "Team roster URL (defaults to TEAM_URL)")
	cmd.Flags().StringVar(&out, "out", "trupp.csv", "Output CSV path")
	return cmd
}
