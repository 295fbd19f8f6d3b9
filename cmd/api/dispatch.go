package main

import (
	"fmt"

	"clover/cmd/app"
	"clover/internal/config"
	"clover/internal/scheduler"

	"github.com/spf13/cobra"
)

func newDispatchCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "dispatch",
		Short: "Publish every scheduled post that is due, once",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := app.New(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			dispatcher := scheduler.NewDispatcher(a.Repo.ScheduledPost, a.Services.UploadPost.PublishScheduled, cfg.Dispatch.BatchSize)
			n, err := dispatcher.Sweep(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "processed %d posts\n", n)
			return nil
		},
	}
}
