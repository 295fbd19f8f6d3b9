package app

import (
	"context"
	"fmt"
	"net/http"

	"clover/internal/ai"
	"clover/internal/article"
	"clover/internal/config"
	"clover/internal/database"
	"clover/internal/feed"
	"clover/internal/imagegen"
	"clover/internal/repository"
	"clover/internal/safeurl"
	"clover/internal/secrets"
	"clover/internal/service"
	"clover/internal/storage"
	"clover/internal/uploadpost"
	"clover/internal/upstream"
	"clover/internal/voice"
	"clover/internal/wordpress"
)

// Outgoing pace for the metered third-party APIs.
const (
	upstreamPerSecond = 5
	upstreamBurst     = 10
)

// App holds what the server and the maintenance commands share.
type App struct {
	Cfg      *config.Config
	DB       *database.DB
	Repo     *repository.Repository
	Services *service.Service
}

// New connects the database and object storage and builds every service.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	db, err := database.ConnectDB(cfg)
	if err != nil {
		return nil, err
	}

	deps, err := Dependencies(ctx, cfg)
	if err != nil {
		db.CloseDB()
		return nil, err
	}

	repo := repository.NewRepository(db.DB)

	return &App{
		Cfg:      cfg,
		DB:       db,
		Repo:     repo,
		Services: service.NewService(repo, cfg, deps),
	}, nil
}

func (a *App) Close() error {
	return a.DB.CloseDB()
}

// Dependencies builds the upstream clients. User supplied URLs go through a
// client that refuses private targets; the configured APIs are paced.
func Dependencies(ctx context.Context, cfg *config.Config) (service.Dependencies, error) {
	minioClient, err := storage.NewMinIOClient(cfg)
	if err != nil {
		return service.Dependencies{}, err
	}
	if err := minioClient.EnsureBucket(ctx, cfg.MinIO.Region); err != nil {
		return service.Dependencies{}, err
	}

	sealer, err := secrets.NewSealer(cfg.SecretsKey)
	if err != nil {
		return service.Dependencies{}, fmt.Errorf("SECRETS_KEY: %w", err)
	}

	gateway, err := ai.New(cfg.AI)
	if err != nil {
		return service.Dependencies{}, err
	}

	outbound := safeurl.NewClient(cfg.UpstreamTimeout)
	metered := upstream.NewRateLimitedHTTPClient(&http.Client{Timeout: cfg.UpstreamTimeout}, upstreamPerSecond, upstreamBurst)

	return service.Dependencies{
		Storage:  minioClient,
		Sealer:   sealer,
		AI:       gateway,
		Images:   imagegen.New(cfg.Image, metered),
		Voice:    voice.New(cfg.Voice, metered),
		Feeds:    feed.NewFetcher(outbound),
		Articles: article.NewExtractor(outbound),
		WordPress: func(siteURL, username, appPassword string) service.WordPressAPI {
			return wordpress.New(outbound, siteURL, username, appPassword)
		},
		Publisher: func(apiKey string) service.Publisher {
			return uploadpost.New(metered, cfg.UploadPostBaseURL, apiKey)
		},
	}, nil
}
