package main

import (
	"fmt"

	"clover/internal/config"
	"clover/internal/database"

	migrate "github.com/rubenv/sql-migrate"
	"github.com/spf13/cobra"
)

var migrateExample = `
  clover migrate
  clover migrate down`

func newMigrateCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:       "migrate [up|down]",
		Short:     "Apply or roll back the database schema",
		Example:   migrateExample,
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"up", "down"},
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := migrate.Up
			if len(args) == 1 {
				switch args[0] {
				case "up":
				case "down":
					dir = migrate.Down
				default:
					return fmt.Errorf("unknown direction %q", args[0])
				}
			}

			db, err := database.ConnectDB(cfg)
			if err != nil {
				return err
			}
			defer db.CloseDB()

			n, err := db.RunMigrations(dir)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "applied %d migrations\n", n)
			return nil
		},
	}
}
