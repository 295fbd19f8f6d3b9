package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"clover/cmd/app"
	"clover/internal/config"
	handlers "clover/internal/handler"
	"clover/internal/logger"
	"clover/internal/middleware"
	"clover/internal/scheduler"

	migrate "github.com/rubenv/sql-migrate"
	"github.com/spf13/cobra"
)

const (
	limiterIdle     = 10 * time.Minute
	shutdownTimeout = 15 * time.Second
)

func newServeCmd(cfg *config.Config) *cobra.Command {
	var skipMigrations bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the scheduled post dispatcher",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.AuthJWTSecret == "" {
				return errors.New("AUTH_JWT_SECRET is not set")
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			a, err := app.New(ctx, cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			if !skipMigrations {
				if _, err := a.DB.RunMigrations(migrate.Up); err != nil {
					return err
				}
			}

			limiter := middleware.NewRateLimiter(cfg.RateLimit.PerMinute, cfg.RateLimit.Burst, limiterIdle)
			go limiter.Run(ctx, time.Minute)

			if cfg.Dispatch.Enabled {
				dispatcher := scheduler.NewDispatcher(a.Repo.ScheduledPost, a.Services.UploadPost.PublishScheduled, cfg.Dispatch.BatchSize)
				stopDispatch, err := dispatcher.Start(ctx, cfg.Dispatch.Spec)
				if err != nil {
					return err
				}
				defer stopDispatch()
			}

			h := handlers.NewHandlers(a.Services, cfg)
			srv := &http.Server{
				Addr:              fmt.Sprintf(":%d", cfg.ServerPort),
				Handler:           handlers.NewRouter(h, a.Services.Auth, limiter),
				ReadHeaderTimeout: 10 * time.Second,
			}

			go func() {
				<-ctx.Done()
				shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer cancel()
				if err := srv.Shutdown(shutdownCtx); err != nil {
					logger.WithError(err).Error("server shutdown")
				}
			}()

			logger.WithFields(logger.Fields{"addr": srv.Addr, "db": cfg.DB.DbNAME}).Info("server started")

			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("serving http: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&skipMigrations, "skip-migrations", false, "do not apply pending migrations on start")
	return cmd
}
