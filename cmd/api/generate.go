package main

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"

	"clover/internal/client"
	"clover/internal/config"
	"clover/internal/models"

	"github.com/spf13/cobra"
)

var generateExample = `
  clover generate "three hooks for a coffee shop reel"
  clover generate --type blog "why we moved to Go"`

func newGenerateCmd(cfg *config.Config) *cobra.Command {
	var contentType string

	cmd := &cobra.Command{
		Use:     "generate <prompt>",
		Short:   "Stream generated content from a running server",
		Example: generateExample,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := models.ParseContentType(contentType)
			if err != nil {
				return err
			}
			if cfg.Client.Token == "" {
				return errors.New("CLOVER_TOKEN is not set")
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			out := cmd.OutOrStdout()
			printed := 0
			gen := client.NewGenerator(&http.Client{}, cfg.Client.APIURL, cfg.Client.Token)

			text, err := gen.Generate(ctx, strings.Join(args, " "), t, func(accumulated string) {
				fmt.Fprint(out, accumulated[printed:])
				printed = len(accumulated)
			})
			if err != nil {
				return err
			}

			fmt.Fprint(out, text[printed:])
			fmt.Fprintln(out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&contentType, "type", "t", string(models.ContentSocial), "content type (social, video, blog, email)")
	return cmd
}
