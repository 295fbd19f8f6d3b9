package main

import (
	"context"
	"os"

	"clover/internal/config"
	"clover/internal/logger"

	"github.com/spf13/cobra"
)

func newRootCmd(cfg *config.Config) *cobra.Command {
	root := &cobra.Command{
		Use:           "clover",
		Short:         "Clover content platform backend",
		SilenceErrors: true,
		SilenceUsage:  true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger.Setup(cfg.LogLevel)
		},
	}

	root.PersistentFlags().StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (debug, info, warn, error)")

	root.AddCommand(
		newServeCmd(cfg),
		newMigrateCmd(cfg),
		newDispatchCmd(cfg),
		newGenerateCmd(cfg),
		newCalendarCmd(cfg),
		newTokenCmd(cfg),
	)

	return root
}

func main() {
	cfg := config.LoadConfig()

	if err := newRootCmd(cfg).ExecuteContext(context.Background()); err != nil {
		logger.WithError(err).Error("command failed")
		os.Exit(1)
	}
}
