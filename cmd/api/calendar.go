package main

import (
	"fmt"
	"net/http"
	"text/tabwriter"
	"time"

	"clover/internal/client"
	"clover/internal/config"

	"github.com/spf13/cobra"
)

func newCalendarCmd(cfg *config.Config) *cobra.Command {
	var month string

	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Show the scheduled posts of one month",
		RunE: func(cmd *cobra.Command, args []string) error {
			if month == "" {
				month = time.Now().Format("2006-01")
			}

			posts := client.NewScheduledPosts(&http.Client{Timeout: 30 * time.Second}, cfg.Client.APIURL, cfg.Client.Token)
			grid, err := posts.Calendar(cmd.Context(), month)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintf(w, "%s\n", grid.Month)
			for _, day := range grid.Days {
				for _, p := range day.Posts {
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", day.Date, p.ScheduledAt.Local().Format("15:04"), p.Platform, p.Status, p.Title)
				}
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVarP(&month, "month", "m", "", "month as YYYY-MM (defaults to the current month)")
	return cmd
}
