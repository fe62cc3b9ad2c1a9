package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/tyler180/floorball-appearances/internal/config"
	"github.com/tyler180/floorball-appearances/internal/innebandy"
	"github.com/tyler180/floorball-appearances/internal/pipeline"
	"github.com/tyler180/floorball-appearances/internal/report"
	"github.com/tyler180/floorball-appearances/internal/store"
)

func scheduleCmd() *cobra.Command {
	var pageURL, contains, out string
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Collect match links from the team schedule page",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel, e, err := setup()
			if err != nil {
				return err
			}
			defer cancel()
			defer func() { _ = e.log.Sync() }()

			sess, err := e.opener(e.cfg.Site())(ctx)
			if err != nil {
				return err
			}
			links, err := pipeline.ScrapeLinks(ctx, sess, pageURL, contains, e.log)
			if cerr := sess.Close(); cerr != nil {
				e.log.Warn("closing fetch session", "error", cerr)
			}
			if err != nil {
				e.log.Warn("schedule scrape failed", "error", err)
			}

			// static HTML sometimes carries the anchors the rendered page hides
			if len(links) == 0 && e.cfg.Fetcher != config.FetcherHTTP {
				e.log.Info("no links from browser, retrying with plain HTTP")
				links, err = pipeline.ScrapeLinks(ctx, innebandy.NewHTTPFetcher(e.cfg.FetchTimeout()), pageURL, contains, e.log)
				if err != nil {
					return err
				}
			}
			if len(links) == 0 {
				fmt.Println("No schedule links found.")
				return nil
			}

			if err := store.WriteFile(out, func(w io.Writer) error {
				return store.WriteLinks(w, links)
			}); err != nil {
				return err
			}
			fmt.Printf("Saved %s (%d rows)\n", out, len(links))
			report.RenderLinks(os.Stdout, links, 20)
			return nil
		},
	}
	cmd.Flags().StringVar(&pageURL, "url", innebandy.DefaultScheduleURL, "Schedule page URL")
	cmd.Flags().StringVar(&contains, "contains", "match", "Keep anchors whose href contains this")
	cmd.Flags().StringVar(&out, "out", "spelprogram.csv", "Output CSV path")
	return cmd
}
